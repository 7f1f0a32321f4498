package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ecoTrackAPI/internal/activity"
	"ecoTrackAPI/internal/badge"
	"ecoTrackAPI/internal/goal"
	"ecoTrackAPI/internal/stats"
)

// ActivityStore persists immutable activity facts.
type ActivityStore interface {
	Insert(ctx context.Context, a *activity.Activity) error
	ListByUser(ctx context.Context, userID string) ([]activity.Activity, error)
	ListByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]activity.Activity, error)
	// DeleteByID reports apperrors.ErrNotFound when no row matched.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// StatsStore holds the single running-statistics record per user.
type StatsStore interface {
	// GetOrInit returns the user's stats record, creating a zeroed one if
	// none exists yet. Callers never branch on absence.
	GetOrInit(ctx context.Context, userID string) (*stats.UserStats, error)
	Upsert(ctx context.Context, s *stats.UserStats) error
}

// BadgeStore owns badge ownership records. The (user_id, badge_id) pair is
// unique at the storage layer; InsertIfAbsent is the only write path.
type BadgeStore interface {
	// InsertIfAbsent atomically inserts the badge unless the user already
	// owns one with the same badge id. Returns false (and no error) when
	// the uniqueness constraint rejected the insert.
	InsertIfAbsent(ctx context.Context, b *badge.Badge) (inserted bool, err error)
	ListByUser(ctx context.Context, userID string) ([]badge.Badge, error)
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]badge.Badge, error)
	LeaderboardTop(ctx context.Context, n int) ([]badge.LeaderboardEntry, error)
}

// GoalStore persists time-boxed goals, active and archived.
type GoalStore interface {
	Insert(ctx context.Context, g *goal.Goal) error
	GetByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error)
	Update(ctx context.Context, g *goal.Goal) error
	ListActiveByUser(ctx context.Context, userID string) ([]goal.Goal, error)
	ListArchivedByUser(ctx context.Context, userID string) ([]goal.Goal, error)
	// ListUsersWithActiveGoals feeds the periodic refresh job.
	ListUsersWithActiveGoals(ctx context.Context) ([]string, error)
}
