package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"ecoTrackAPI/internal/apperrors"
	"ecoTrackAPI/internal/badge"
	"ecoTrackAPI/internal/goal"
	"ecoTrackAPI/middleware"
	"ecoTrackAPI/store"
)

// GoalService owns the rolling-goal state machine: progress recomputation
// for active goals, expiry detection, archival, and spawning the next
// period's goal.
type GoalService struct {
	goalStore     store.GoalStore
	activityStore store.ActivityStore
	badgeService  *BadgeService

	// now is swappable for tests.
	now func() time.Time
}

func NewGoalService(goalStore store.GoalStore, activityStore store.ActivityStore, badgeService *BadgeService) *GoalService {
	return &GoalService{
		goalStore:     goalStore,
		activityStore: activityStore,
		badgeService:  badgeService,
		now:           time.Now,
	}
}

// CreateGoal validates and inserts a new active goal, then records the
// creation in the user's stats. The stats/badge side effect is secondary:
// its failure is logged, not returned, because the goal is already saved.
func (s *GoalService) CreateGoal(ctx context.Context, userID string, req *goal.CreateGoalRequest) (*goal.Goal, []badge.Badge, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	if req.TargetPoints <= 0 {
		return nil, nil, fmt.Errorf("%w: target points must be positive", apperrors.ErrInvalidInput)
	}
	if !req.GoalType.Valid() {
		return nil, nil, fmt.Errorf("%w: unknown goal type %q", apperrors.ErrInvalidInput, req.GoalType)
	}

	now := s.now()
	start := now
	end := req.EndDate
	if end == nil {
		_, windowEnd, _ := req.GoalType.NextWindow(now)
		end = &windowEnd
	}
	if !end.After(start) {
		return nil, nil, fmt.Errorf("%w: end date must be in the future", apperrors.ErrInvalidInput)
	}

	g := &goal.Goal{
		ID:           uuid.New(),
		UserID:       userID,
		TargetPoints: req.TargetPoints,
		StartDate:    start,
		EndDate:      *end,
		GoalType:     req.GoalType,
	}

	if err := s.goalStore.Insert(ctx, g); err != nil {
		return nil, nil, fmt.Errorf("failed to create goal: %w", err)
	}

	_, newBadges, err := s.badgeService.RecordGoalCreated(ctx, userID)
	if err != nil {
		log.Printf("CreateGoal: stats update failed for %s: %v", userID, err)
		newBadges = []badge.Badge{}
	}

	return g, newBadges, nil
}

// UpdateGoalProgress sets a goal's accrued points directly. Normally
// progress comes from RefreshGoals; this remains for manual corrections.
func (s *GoalService) UpdateGoalProgress(ctx context.Context, id uuid.UUID, currentPoints int) (*goal.Goal, error) {
	g, err := s.goalStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g.CurrentPoints = currentPoints
	if err := s.goalStore.Update(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// RefreshGoals brings every non-archived goal of the user up to date and
// returns the goals still active afterwards. It is idempotent and safe to
// call from the list endpoint and the periodic timer concurrently: the
// IsArchived guard makes the expiry transition one-way.
func (s *GoalService) RefreshGoals(ctx context.Context, userID string) ([]goal.Goal, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}

	goals, err := s.goalStore.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}

	now := s.now()
	var active []goal.Goal

	for i := range goals {
		g := goals[i]
		if g.IsArchived {
			continue
		}

		if now.After(g.EndDate) {
			if err := s.archiveExpired(ctx, &g, now); err != nil {
				log.Printf("RefreshGoals: failed to archive goal %s: %v", g.ID, err)
				continue
			}
			if successor := s.spawnSuccessor(ctx, &g); successor != nil {
				active = append(active, *successor)
			}
			continue
		}

		if err := s.recomputeProgress(ctx, &g); err != nil {
			log.Printf("RefreshGoals: failed to recompute goal %s: %v", g.ID, err)
		}
		active = append(active, g)
	}

	if active == nil {
		active = []goal.Goal{}
	}

	return active, nil
}

// archiveExpired performs the one-way Active -> Archived transition. The
// completion date is the nominal period end, not wall-clock now.
func (s *GoalService) archiveExpired(ctx context.Context, g *goal.Goal, now time.Time) error {
	completionDate := g.EndDate
	successful := g.CurrentPoints >= g.TargetPoints

	g.IsCompleted = true
	g.CompletionDate = &completionDate
	g.WasSuccessful = &successful
	g.IsArchived = true

	if err := s.goalStore.Update(ctx, g); err != nil {
		return err
	}

	middleware.RecordGoalArchived(successful)

	if successful {
		// The archival is committed; a stats failure here must not undo it.
		if _, _, err := s.badgeService.RecordGoalCompleted(ctx, g.UserID); err != nil {
			log.Printf("archiveExpired: goal-completed stats update failed for %s: %v", g.UserID, err)
		}
	}

	return nil
}

// spawnSuccessor creates the next period's goal for an archived one.
// Goals never restart in place; the successor is a fresh entity.
func (s *GoalService) spawnSuccessor(ctx context.Context, archived *goal.Goal) *goal.Goal {
	start, end, ok := archived.GoalType.NextWindow(s.now())
	if !ok {
		log.Printf("spawnSuccessor: unknown goal type %q on goal %s, no successor", archived.GoalType, archived.ID)
		return nil
	}

	next := &goal.Goal{
		ID:            uuid.New(),
		UserID:        archived.UserID,
		TargetPoints:  archived.TargetPoints,
		StartDate:     start,
		EndDate:       end,
		CurrentPoints: 0,
		GoalType:      archived.GoalType,
	}

	if err := s.goalStore.Insert(ctx, next); err != nil {
		log.Printf("spawnSuccessor: failed to create successor for goal %s: %v", archived.ID, err)
		return nil
	}

	return next
}

// recomputeProgress sums activity points inside the goal window and writes
// the goal back only when the value actually changed.
func (s *GoalService) recomputeProgress(ctx context.Context, g *goal.Goal) error {
	activities, err := s.activityStore.ListByUserInRange(ctx, g.UserID, g.StartDate, g.EndDate)
	if err != nil {
		return fmt.Errorf("failed to load activities for goal window: %w", err)
	}

	points := 0
	for _, a := range activities {
		points += a.Points
	}

	if points == g.CurrentPoints {
		return nil
	}

	g.CurrentPoints = points
	return s.goalStore.Update(ctx, g)
}

// GetGoalHistory lists the user's archived goals, newest first.
func (s *GoalService) GetGoalHistory(ctx context.Context, userID string) ([]goal.Goal, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return s.goalStore.ListArchivedByUser(ctx, userID)
}

// RefreshAllUsers runs RefreshGoals for every user with at least one
// non-archived goal. The periodic timer calls this; failures for one user
// never block the rest.
func (s *GoalService) RefreshAllUsers(ctx context.Context) {
	users, err := s.goalStore.ListUsersWithActiveGoals(ctx)
	if err != nil {
		log.Printf("RefreshAllUsers: failed to list users: %v", err)
		return
	}

	for _, userID := range users {
		if _, err := s.RefreshGoals(ctx, userID); err != nil {
			log.Printf("RefreshAllUsers: refresh failed for %s: %v", userID, err)
		}
	}
}
