package badge

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryStreak      Category = "streak"
	CategoryAchievement Category = "achievement"
	CategoryMilestone   Category = "milestone"
	CategorySpecial     Category = "special"
)

type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Badge is one user's ownership of one catalog badge. At most one record
// exists per (user_id, badge_id); the pair is unique-indexed in storage.
type Badge struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	BadgeID      string    `json:"badge_id" db:"badge_id"`
	Name         string    `json:"badge_name" db:"badge_name"`
	Description  string    `json:"badge_description" db:"badge_description"`
	Icon         string    `json:"badge_icon" db:"badge_icon"`
	Category     Category  `json:"badge_category" db:"badge_category"`
	Rarity       Rarity    `json:"badge_rarity" db:"badge_rarity"`
	EarnedDate   time.Time `json:"earned_date" db:"earned_date"`
	RelatedValue *int      `json:"related_value,omitempty" db:"related_value"`
	IsVisible    bool      `json:"is_visible" db:"is_visible"`
}

// LeaderboardEntry is one row of the badge leaderboard, ranked by
// legendary, then epic, then rare, then total badge count.
type LeaderboardEntry struct {
	UserID         string `json:"user_id" db:"user_id"`
	BadgeCount     int    `json:"badge_count" db:"badge_count"`
	RareCount      int    `json:"rare_count" db:"rare_count"`
	EpicCount      int    `json:"epic_count" db:"epic_count"`
	LegendaryCount int    `json:"legendary_count" db:"legendary_count"`
}
