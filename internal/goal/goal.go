package goal

import (
	"time"

	"github.com/google/uuid"
)

type GoalType string

const (
	TypeDaily   GoalType = "daily"
	TypeWeekly  GoalType = "weekly"
	TypeMonthly GoalType = "monthly"
)

func (t GoalType) Valid() bool {
	switch t {
	case TypeDaily, TypeWeekly, TypeMonthly:
		return true
	}
	return false
}

// Goal is one time-boxed point target. It is mutated by progress
// recomputation while active and transitions exactly once to an archived
// terminal state; a fresh goal for the next period is spawned as a side
// effect of that transition.
type Goal struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         string     `json:"user_id" db:"user_id"`
	TargetPoints   int        `json:"target_points" db:"target_points"`
	StartDate      time.Time  `json:"start_date" db:"start_date"`
	EndDate        time.Time  `json:"end_date" db:"end_date"`
	CurrentPoints  int        `json:"current_points" db:"current_points"`
	GoalType       GoalType   `json:"goal_type" db:"goal_type"`
	IsCompleted    bool       `json:"is_completed" db:"is_completed"`
	CompletionDate *time.Time `json:"completion_date,omitempty" db:"completion_date"`
	WasSuccessful  *bool      `json:"was_successful,omitempty" db:"was_successful"`
	IsArchived     bool       `json:"is_archived" db:"is_archived"`
}

type CreateGoalRequest struct {
	TargetPoints int        `json:"target_points"`
	GoalType     GoalType   `json:"goal_type"`
	EndDate      *time.Time `json:"end_date,omitempty"`
}

// NextWindow computes the [start, end) window for the period following
// "now", anchored to the current date truncated to day granularity.
func (t GoalType) NextWindow(now time.Time) (start, end time.Time, ok bool) {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch t {
	case TypeDaily:
		return day, day.AddDate(0, 0, 1), true
	case TypeWeekly:
		return day, day.AddDate(0, 0, 7), true
	case TypeMonthly:
		return day, day.AddDate(0, 1, 0), true
	}
	return time.Time{}, time.Time{}, false
}
