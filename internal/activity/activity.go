package activity

import (
	"time"

	"github.com/google/uuid"
)

type ActivityType string

const (
	TypePositive ActivityType = "Positive"
	TypeNegative ActivityType = "Negative"
)

const DefaultCategory = "General"

// Categories is the fixed set of eco-categories an activity can belong to.
// Activities with any other category string still count toward totals but
// are not tracked per-category.
var Categories = []string{
	"Transportation",
	"Energy",
	"Waste",
	"Food",
	"Water",
	"Shopping",
	"Home",
	"Work",
	"Recreation",
	"General",
}

func IsKnownCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Activity struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	UserID       string       `json:"user_id" db:"user_id"`
	ActivityName string       `json:"activity_name" db:"activity_name"`
	Type         ActivityType `json:"type" db:"type"`
	Points       int          `json:"points" db:"points"`
	Category     string       `json:"category" db:"category"`
	Date         time.Time    `json:"date" db:"date"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

type CreateActivityRequest struct {
	ActivityName string     `json:"activity"`
	Points       *int       `json:"points"`
	Category     string     `json:"category,omitempty"`
	Date         *time.Time `json:"date,omitempty"`
}
