package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecoTrackAPI/internal/badge"
)

type BadgeStore struct {
	db *pgxpool.Pool
}

func NewBadgeStore(db *pgxpool.Pool) *BadgeStore {
	return &BadgeStore{db: db}
}

// InsertIfAbsent relies on the unique index on (user_id, badge_id): the
// conditional insert is atomic, so two concurrent award attempts cannot
// both succeed. A conflicting insert reports inserted=false.
func (s *BadgeStore) InsertIfAbsent(ctx context.Context, b *badge.Badge) (bool, error) {
	query := `
	INSERT INTO badges (
		id, user_id, badge_id, badge_name, badge_description, badge_icon,
		badge_category, badge_rarity, earned_date, related_value, is_visible
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	ON CONFLICT (user_id, badge_id) DO NOTHING
	`

	result, err := s.db.Exec(
		ctx,
		query,
		b.ID,
		b.UserID,
		b.BadgeID,
		b.Name,
		b.Description,
		b.Icon,
		b.Category,
		b.Rarity,
		b.EarnedDate,
		b.RelatedValue,
		b.IsVisible,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert badge: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (s *BadgeStore) ListByUser(ctx context.Context, userID string) ([]badge.Badge, error) {
	query := `
	SELECT id, user_id, badge_id, badge_name, badge_description, badge_icon,
		badge_category, badge_rarity, earned_date, related_value, is_visible
	FROM badges
	WHERE user_id = $1 AND is_visible = true
	ORDER BY earned_date DESC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	return scanBadges(rows)
}

func (s *BadgeStore) ListRecentByUser(ctx context.Context, userID string, limit int) ([]badge.Badge, error) {
	query := `
	SELECT id, user_id, badge_id, badge_name, badge_description, badge_icon,
		badge_category, badge_rarity, earned_date, related_value, is_visible
	FROM badges
	WHERE user_id = $1
	ORDER BY earned_date DESC
	LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent badges: %w", err)
	}
	defer rows.Close()

	return scanBadges(rows)
}

func (s *BadgeStore) LeaderboardTop(ctx context.Context, n int) ([]badge.LeaderboardEntry, error) {
	query := `
	SELECT
		user_id,
		COUNT(*) AS badge_count,
		COUNT(*) FILTER (WHERE badge_rarity = 'rare') AS rare_count,
		COUNT(*) FILTER (WHERE badge_rarity = 'epic') AS epic_count,
		COUNT(*) FILTER (WHERE badge_rarity = 'legendary') AS legendary_count
	FROM badges
	WHERE is_visible = true
	GROUP BY user_id
	ORDER BY legendary_count DESC, epic_count DESC, rare_count DESC, badge_count DESC
	LIMIT $1
	`

	rows, err := s.db.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch badge leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []badge.LeaderboardEntry
	for rows.Next() {
		var e badge.LeaderboardEntry
		err := rows.Scan(
			&e.UserID,
			&e.BadgeCount,
			&e.RareCount,
			&e.EpicCount,
			&e.LegendaryCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	if entries == nil {
		entries = []badge.LeaderboardEntry{}
	}

	return entries, nil
}

func scanBadges(rows pgx.Rows) ([]badge.Badge, error) {
	var badges []badge.Badge
	for rows.Next() {
		var b badge.Badge
		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.BadgeID,
			&b.Name,
			&b.Description,
			&b.Icon,
			&b.Category,
			&b.Rarity,
			&b.EarnedDate,
			&b.RelatedValue,
			&b.IsVisible,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating badges: %w", err)
	}

	if badges == nil {
		badges = []badge.Badge{}
	}

	return badges, nil
}
