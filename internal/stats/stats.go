package stats

import (
	"time"
)

// UserStats is the running statistics record for one user. There is exactly
// one per user, created lazily on the first activity or goal event.
type UserStats struct {
	UserID string `json:"user_id" db:"user_id"`

	CurrentStreak    int        `json:"current_streak" db:"current_streak"`
	LongestStreak    int        `json:"longest_streak" db:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date" db:"last_activity_date"`

	ConsecutivePositiveActivities    int `json:"consecutive_positive_activities" db:"consecutive_positive_activities"`
	MaxConsecutivePositiveActivities int `json:"max_consecutive_positive_activities" db:"max_consecutive_positive_activities"`

	TotalActivities         int `json:"total_activities" db:"total_activities"`
	TotalPositiveActivities int `json:"total_positive_activities" db:"total_positive_activities"`
	TotalNegativeActivities int `json:"total_negative_activities" db:"total_negative_activities"`
	TotalPoints             int `json:"total_points" db:"total_points"`

	GoalsCompleted int `json:"goals_completed" db:"goals_completed"`
	GoalsCreated   int `json:"goals_created" db:"goals_created"`

	CategoryStats map[string]int `json:"category_stats" db:"category_stats"`

	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

// New returns a zeroed stats record with every known category initialized,
// so category accrual never has to branch on map membership for known keys.
func New(userID string, categories []string) *UserStats {
	cs := make(map[string]int, len(categories))
	for _, c := range categories {
		cs[c] = 0
	}
	return &UserStats{
		UserID:        userID,
		CategoryStats: cs,
		LastUpdated:   time.Now(),
	}
}

// ActiveCategories counts categories with at least one logged activity.
func (s *UserStats) ActiveCategories() int {
	n := 0
	for _, count := range s.CategoryStats {
		if count > 0 {
			n++
		}
	}
	return n
}
