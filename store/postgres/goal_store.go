package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecoTrackAPI/internal/apperrors"
	"ecoTrackAPI/internal/goal"
)

type GoalStore struct {
	db *pgxpool.Pool
}

func NewGoalStore(db *pgxpool.Pool) *GoalStore {
	return &GoalStore{db: db}
}

func (s *GoalStore) Insert(ctx context.Context, g *goal.Goal) error {
	query := `
	INSERT INTO goals (
		id, user_id, target_points, start_date, end_date, current_points,
		goal_type, is_completed, completion_date, was_successful, is_archived
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.db.Exec(
		ctx,
		query,
		g.ID,
		g.UserID,
		g.TargetPoints,
		g.StartDate,
		g.EndDate,
		g.CurrentPoints,
		g.GoalType,
		g.IsCompleted,
		g.CompletionDate,
		g.WasSuccessful,
		g.IsArchived,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}

	return nil
}

func (s *GoalStore) GetByID(ctx context.Context, id uuid.UUID) (*goal.Goal, error) {
	query := `
	SELECT id, user_id, target_points, start_date, end_date, current_points,
		goal_type, is_completed, completion_date, was_successful, is_archived
	FROM goals
	WHERE id = $1
	`

	g := &goal.Goal{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&g.ID,
		&g.UserID,
		&g.TargetPoints,
		&g.StartDate,
		&g.EndDate,
		&g.CurrentPoints,
		&g.GoalType,
		&g.IsCompleted,
		&g.CompletionDate,
		&g.WasSuccessful,
		&g.IsArchived,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return g, nil
}

func (s *GoalStore) Update(ctx context.Context, g *goal.Goal) error {
	query := `
	UPDATE goals
	SET target_points = $2,
		start_date = $3,
		end_date = $4,
		current_points = $5,
		goal_type = $6,
		is_completed = $7,
		completion_date = $8,
		was_successful = $9,
		is_archived = $10
	WHERE id = $1
	`

	result, err := s.db.Exec(
		ctx,
		query,
		g.ID,
		g.TargetPoints,
		g.StartDate,
		g.EndDate,
		g.CurrentPoints,
		g.GoalType,
		g.IsCompleted,
		g.CompletionDate,
		g.WasSuccessful,
		g.IsArchived,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, g.ID)
	}

	return nil
}

func (s *GoalStore) ListActiveByUser(ctx context.Context, userID string) ([]goal.Goal, error) {
	return s.listByUser(ctx, userID, false)
}

func (s *GoalStore) ListArchivedByUser(ctx context.Context, userID string) ([]goal.Goal, error) {
	return s.listByUser(ctx, userID, true)
}

func (s *GoalStore) listByUser(ctx context.Context, userID string, archived bool) ([]goal.Goal, error) {
	query := `
	SELECT id, user_id, target_points, start_date, end_date, current_points,
		goal_type, is_completed, completion_date, was_successful, is_archived
	FROM goals
	WHERE user_id = $1 AND is_archived = $2
	ORDER BY end_date DESC
	`

	rows, err := s.db.Query(ctx, query, userID, archived)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	defer rows.Close()

	var goals []goal.Goal
	for rows.Next() {
		var g goal.Goal
		err := rows.Scan(
			&g.ID,
			&g.UserID,
			&g.TargetPoints,
			&g.StartDate,
			&g.EndDate,
			&g.CurrentPoints,
			&g.GoalType,
			&g.IsCompleted,
			&g.CompletionDate,
			&g.WasSuccessful,
			&g.IsArchived,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	if goals == nil {
		goals = []goal.Goal{}
	}

	return goals, nil
}

func (s *GoalStore) ListUsersWithActiveGoals(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT DISTINCT user_id FROM goals WHERE is_archived = false`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with active goals: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		users = append(users, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
