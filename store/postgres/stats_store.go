package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecoTrackAPI/internal/activity"
	"ecoTrackAPI/internal/stats"
)

type StatsStore struct {
	db *pgxpool.Pool
}

func NewStatsStore(db *pgxpool.Pool) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) GetOrInit(ctx context.Context, userID string) (*stats.UserStats, error) {
	query := `
	SELECT user_id, current_streak, longest_streak, last_activity_date,
		consecutive_positive_activities, max_consecutive_positive_activities,
		total_activities, total_positive_activities, total_negative_activities,
		total_points, goals_completed, goals_created, category_stats, last_updated
	FROM user_stats
	WHERE user_id = $1
	`

	us := &stats.UserStats{}
	err := s.db.QueryRow(ctx, query, userID).Scan(
		&us.UserID,
		&us.CurrentStreak,
		&us.LongestStreak,
		&us.LastActivityDate,
		&us.ConsecutivePositiveActivities,
		&us.MaxConsecutivePositiveActivities,
		&us.TotalActivities,
		&us.TotalPositiveActivities,
		&us.TotalNegativeActivities,
		&us.TotalPoints,
		&us.GoalsCompleted,
		&us.GoalsCreated,
		&us.CategoryStats,
		&us.LastUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return stats.New(userID, activity.Categories), nil
		}
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	// Rows written before a category was introduced may miss its key.
	for _, c := range activity.Categories {
		if _, ok := us.CategoryStats[c]; !ok {
			us.CategoryStats[c] = 0
		}
	}

	return us, nil
}

func (s *StatsStore) Upsert(ctx context.Context, us *stats.UserStats) error {
	query := `
	INSERT INTO user_stats (
		user_id, current_streak, longest_streak, last_activity_date,
		consecutive_positive_activities, max_consecutive_positive_activities,
		total_activities, total_positive_activities, total_negative_activities,
		total_points, goals_completed, goals_created, category_stats, last_updated
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	ON CONFLICT (user_id) DO UPDATE SET
		current_streak = $2,
		longest_streak = $3,
		last_activity_date = $4,
		consecutive_positive_activities = $5,
		max_consecutive_positive_activities = $6,
		total_activities = $7,
		total_positive_activities = $8,
		total_negative_activities = $9,
		total_points = $10,
		goals_completed = $11,
		goals_created = $12,
		category_stats = $13,
		last_updated = $14
	`

	_, err := s.db.Exec(
		ctx,
		query,
		us.UserID,
		us.CurrentStreak,
		us.LongestStreak,
		us.LastActivityDate,
		us.ConsecutivePositiveActivities,
		us.MaxConsecutivePositiveActivities,
		us.TotalActivities,
		us.TotalPositiveActivities,
		us.TotalNegativeActivities,
		us.TotalPoints,
		us.GoalsCompleted,
		us.GoalsCreated,
		us.CategoryStats,
		us.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user stats: %w", err)
	}

	return nil
}
