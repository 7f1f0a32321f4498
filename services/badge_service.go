package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ecoTrackAPI/internal/activity"
	"ecoTrackAPI/internal/apperrors"
	"ecoTrackAPI/internal/badge"
	"ecoTrackAPI/internal/stats"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/store"
)

// BadgeService owns the running per-user statistics record and the badge
// catalog evaluation that runs against every fresh snapshot of it.
type BadgeService struct {
	statsStore store.StatsStore
	badgeStore store.BadgeStore
}

func NewBadgeService(statsStore store.StatsStore, badgeStore store.BadgeStore) *BadgeService {
	return &BadgeService{
		statsStore: statsStore,
		badgeStore: badgeStore,
	}
}

// RecordActivity folds one logged activity into the user's stats record,
// persists it, and evaluates the badge catalog against the fresh snapshot.
// Badge evaluation failures degrade to an empty badge list; they never
// fail the stats update.
func (s *BadgeService) RecordActivity(ctx context.Context, userID string, a *activity.Activity) (*stats.UserStats, []badge.Badge, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}

	us, err := s.statsStore.GetOrInit(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user stats: %w", err)
	}

	us.TotalActivities++
	us.TotalPoints += a.Points

	if a.Points > 0 {
		us.TotalPositiveActivities++
		us.ConsecutivePositiveActivities++
		if us.ConsecutivePositiveActivities > us.MaxConsecutivePositiveActivities {
			us.MaxConsecutivePositiveActivities = us.ConsecutivePositiveActivities
		}
	} else {
		us.TotalNegativeActivities++
		us.ConsecutivePositiveActivities = 0
	}

	// Unknown categories still count toward totals, just not per-category.
	if activity.IsKnownCategory(a.Category) {
		us.CategoryStats[a.Category]++
	}

	s.updateStreak(us, a.Date)

	us.LastUpdated = time.Now()

	if err := s.statsStore.Upsert(ctx, us); err != nil {
		return nil, nil, fmt.Errorf("failed to persist user stats: %w", err)
	}

	return us, s.EvaluateBadges(ctx, userID, us), nil
}

// updateStreak applies calendar-day streak semantics: same day keeps the
// streak, the immediately following day extends it, anything else resets
// to 1. Backdated entries land in the reset branch too; that reading of
// the rules still needs product confirmation.
func (s *BadgeService) updateStreak(us *stats.UserStats, activityDate time.Time) {
	day := dateOnly(activityDate)

	if us.LastActivityDate == nil {
		us.CurrentStreak = 1
	} else {
		switch daysBetween(dateOnly(*us.LastActivityDate), day) {
		case 0:
			// Same-day logging neither advances nor breaks a streak.
		case 1:
			us.CurrentStreak++
		default:
			us.CurrentStreak = 1
		}
	}

	if us.CurrentStreak > us.LongestStreak {
		us.LongestStreak = us.CurrentStreak
	}
	us.LastActivityDate = &day
}

// RecordGoalCreated bumps the goals-created counter and re-evaluates badges.
func (s *BadgeService) RecordGoalCreated(ctx context.Context, userID string) (*stats.UserStats, []badge.Badge, error) {
	return s.recordGoalEvent(ctx, userID, func(us *stats.UserStats) { us.GoalsCreated++ })
}

// RecordGoalCompleted bumps the goals-completed counter and re-evaluates badges.
func (s *BadgeService) RecordGoalCompleted(ctx context.Context, userID string) (*stats.UserStats, []badge.Badge, error) {
	return s.recordGoalEvent(ctx, userID, func(us *stats.UserStats) { us.GoalsCompleted++ })
}

func (s *BadgeService) recordGoalEvent(ctx context.Context, userID string, apply func(*stats.UserStats)) (*stats.UserStats, []badge.Badge, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}

	us, err := s.statsStore.GetOrInit(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load user stats: %w", err)
	}

	apply(us)
	us.LastUpdated = time.Now()

	if err := s.statsStore.Upsert(ctx, us); err != nil {
		return nil, nil, fmt.Errorf("failed to persist user stats: %w", err)
	}

	return us, s.EvaluateBadges(ctx, userID, us), nil
}

// EvaluateBadges walks the catalog in order and awards every badge whose
// predicate the snapshot satisfies and the user does not own yet. Ownership
// is decided by the storage-level unique index via an atomic conditional
// insert, never by a prior read, so concurrent evaluations cannot
// double-award. Store failures on one entry are logged and evaluation
// moves on to the next.
func (s *BadgeService) EvaluateBadges(ctx context.Context, userID string, snapshot *stats.UserStats) []badge.Badge {
	var newBadges []badge.Badge

	for i := range badge.Catalog {
		def := &badge.Catalog[i]

		if !def.Trigger(snapshot) {
			continue
		}

		b := &badge.Badge{
			ID:           uuid.New(),
			UserID:       userID,
			BadgeID:      def.BadgeID,
			Name:         def.Name,
			Description:  def.Description,
			Icon:         def.Icon,
			Category:     def.Category,
			Rarity:       def.Rarity,
			EarnedDate:   time.Now(),
			RelatedValue: def.RelatedValue(snapshot),
			IsVisible:    true,
		}

		inserted, err := s.badgeStore.InsertIfAbsent(ctx, b)
		if err != nil {
			log.Printf("EvaluateBadges: failed to award %s to %s: %v", def.BadgeID, userID, err)
			continue
		}
		if !inserted {
			// Already owned, possibly awarded by a concurrent evaluation.
			continue
		}

		middleware.RecordBadgeAward(string(def.Rarity))
		log.Printf("New badge awarded to %s: %s", userID, def.Name)
		newBadges = append(newBadges, *b)
	}

	return newBadges
}

// GetUserStats returns the user's stats record, a zeroed one if nothing
// has been recorded yet.
func (s *BadgeService) GetUserStats(ctx context.Context, userID string) (*stats.UserStats, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return s.statsStore.GetOrInit(ctx, userID)
}

func (s *BadgeService) GetUserBadges(ctx context.Context, userID string) ([]badge.Badge, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return s.badgeStore.ListByUser(ctx, userID)
}

func (s *BadgeService) GetRecentBadges(ctx context.Context, userID string, limit int) ([]badge.Badge, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return s.badgeStore.ListRecentByUser(ctx, userID, limit)
}

func (s *BadgeService) GetBadgeLeaderboard(ctx context.Context, n int) ([]badge.LeaderboardEntry, error) {
	return s.badgeStore.LeaderboardTop(ctx, n)
}

// dateOnly truncates to calendar-day granularity on the UTC calendar, so
// streak comparisons see the same day regardless of the zone a timestamp
// arrives in.
func dateOnly(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
