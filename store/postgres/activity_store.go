package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecoTrackAPI/internal/activity"
	"ecoTrackAPI/internal/apperrors"
)

type ActivityStore struct {
	db *pgxpool.Pool
}

func NewActivityStore(db *pgxpool.Pool) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) Insert(ctx context.Context, a *activity.Activity) error {
	query := `
	INSERT INTO activities (id, user_id, activity_name, type, points, category, date, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at
	`

	err := s.db.QueryRow(
		ctx,
		query,
		a.ID,
		a.UserID,
		a.ActivityName,
		a.Type,
		a.Points,
		a.Category,
		a.Date,
		a.CreatedAt,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

func (s *ActivityStore) ListByUser(ctx context.Context, userID string) ([]activity.Activity, error) {
	query := `
	SELECT id, user_id, activity_name, type, points, category, date, created_at
	FROM activities
	WHERE user_id = $1
	ORDER BY date DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

func (s *ActivityStore) ListByUserInRange(ctx context.Context, userID string, start, end time.Time) ([]activity.Activity, error) {
	query := `
	SELECT id, user_id, activity_name, type, points, category, date, created_at
	FROM activities
	WHERE user_id = $1
		AND date >= $2
		AND date <= $3
	ORDER BY date
	`

	rows, err := s.db.Query(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities in range: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

func (s *ActivityStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete activity: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: activity %s", apperrors.ErrNotFound, id)
	}

	return nil
}

func scanActivities(rows pgx.Rows) ([]activity.Activity, error) {
	var activities []activity.Activity
	for rows.Next() {
		var a activity.Activity
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.ActivityName,
			&a.Type,
			&a.Points,
			&a.Category,
			&a.Date,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities: %w", err)
	}

	if activities == nil {
		activities = []activity.Activity{}
	}

	return activities, nil
}
