package utils

import "math"

// CalculateEcoScore folds a user's engagement signals into one display
// number. Streak length dominates quadratically, lifetime activity volume
// and badge count contribute linearly.
func CalculateEcoScore(currentStreak, totalActivities, badgeCount int) float64 {
	streakScore := math.Pow(float64(currentStreak), 2) * 0.3
	activityScore := float64(totalActivities) * 0.05
	badgeScore := float64(badgeCount) * 1.0

	return streakScore + activityScore + badgeScore
}
