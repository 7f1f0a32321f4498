package badge

import (
	"ecoTrackAPI/internal/stats"
)

// ValueFamily tells the evaluator which stat to snapshot into a badge's
// RelatedValue at award time.
type ValueFamily string

const (
	ValueNone        ValueFamily = ""
	ValueStreak      ValueFamily = "streak"
	ValuePositiveRun ValueFamily = "positive_run"
	ValuePoints      ValueFamily = "points"
	ValueGoals       ValueFamily = "goals"
)

// Definition is one catalog entry: display metadata plus a pure predicate
// over a stats snapshot. Predicates read nothing but the snapshot.
type Definition struct {
	BadgeID     string
	Name        string
	Description string
	Icon        string
	Category    Category
	Rarity      Rarity
	ValueFamily ValueFamily
	Trigger     func(s *stats.UserStats) bool
}

// RelatedValue snapshots the stat that triggered the award, for display.
func (d *Definition) RelatedValue(s *stats.UserStats) *int {
	var v int
	switch d.ValueFamily {
	case ValueStreak:
		v = s.CurrentStreak
	case ValuePositiveRun:
		v = s.ConsecutivePositiveActivities
	case ValuePoints:
		v = s.TotalPoints
	case ValueGoals:
		v = s.GoalsCompleted
	default:
		return nil
	}
	return &v
}

// Catalog is the process-wide badge table. Order is the award order the
// evaluator follows; it never changes at runtime.
var Catalog = []Definition{
	{
		BadgeID:     "first_day",
		Name:        "First Step",
		Description: "Logged your first eco-activity!",
		Icon:        "🌱",
		Category:    CategoryMilestone,
		Rarity:      RarityCommon,
		Trigger:     func(s *stats.UserStats) bool { return s.TotalActivities >= 1 },
	},
	{
		BadgeID:     "streak_3",
		Name:        "Getting Started",
		Description: "Maintained a 3-day activity streak!",
		Icon:        "🔥",
		Category:    CategoryStreak,
		Rarity:      RarityCommon,
		ValueFamily: ValueStreak,
		Trigger:     func(s *stats.UserStats) bool { return s.CurrentStreak >= 3 },
	},
	{
		BadgeID:     "streak_7",
		Name:        "Week Warrior",
		Description: "Amazing! 7-day activity streak achieved!",
		Icon:        "⚡",
		Category:    CategoryStreak,
		Rarity:      RarityRare,
		ValueFamily: ValueStreak,
		Trigger:     func(s *stats.UserStats) bool { return s.CurrentStreak >= 7 },
	},
	{
		BadgeID:     "streak_30",
		Name:        "Eco Champion",
		Description: "Incredible 30-day streak! You're an eco warrior!",
		Icon:        "👑",
		Category:    CategoryStreak,
		Rarity:      RarityEpic,
		ValueFamily: ValueStreak,
		Trigger:     func(s *stats.UserStats) bool { return s.CurrentStreak >= 30 },
	},
	{
		BadgeID:     "streak_100",
		Name:        "Legendary Guardian",
		Description: "100-day streak! You're protecting our planet every day!",
		Icon:        "🌍",
		Category:    CategoryStreak,
		Rarity:      RarityLegendary,
		ValueFamily: ValueStreak,
		Trigger:     func(s *stats.UserStats) bool { return s.CurrentStreak >= 100 },
	},
	{
		BadgeID:     "positive_5",
		Name:        "Positive Vibes",
		Description: "5 positive activities in a row!",
		Icon:        "🌟",
		Category:    CategoryAchievement,
		Rarity:      RarityCommon,
		ValueFamily: ValuePositiveRun,
		Trigger:     func(s *stats.UserStats) bool { return s.ConsecutivePositiveActivities >= 5 },
	},
	{
		BadgeID:     "positive_10",
		Name:        "Green Machine",
		Description: "10 consecutive positive eco-actions!",
		Icon:        "💚",
		Category:    CategoryAchievement,
		Rarity:      RarityRare,
		ValueFamily: ValuePositiveRun,
		Trigger:     func(s *stats.UserStats) bool { return s.ConsecutivePositiveActivities >= 10 },
	},
	{
		BadgeID:     "positive_25",
		Name:        "Positivity Master",
		Description: "25 positive activities without a single negative one!",
		Icon:        "✨",
		Category:    CategoryAchievement,
		Rarity:      RarityEpic,
		ValueFamily: ValuePositiveRun,
		Trigger:     func(s *stats.UserStats) bool { return s.ConsecutivePositiveActivities >= 25 },
	},
	{
		BadgeID:     "points_100",
		Name:        "Century Club",
		Description: "Earned your first 100 eco-points!",
		Icon:        "💯",
		Category:    CategoryMilestone,
		Rarity:      RarityCommon,
		ValueFamily: ValuePoints,
		Trigger:     func(s *stats.UserStats) bool { return s.TotalPoints >= 100 },
	},
	{
		BadgeID:     "points_500",
		Name:        "Points Collector",
		Description: "500 eco-points accumulated!",
		Icon:        "🏆",
		Category:    CategoryMilestone,
		Rarity:      RarityRare,
		ValueFamily: ValuePoints,
		Trigger:     func(s *stats.UserStats) bool { return s.TotalPoints >= 500 },
	},
	{
		BadgeID:     "points_1000",
		Name:        "Eco Millionaire",
		Description: "1000 eco-points! You're making a real difference!",
		Icon:        "💎",
		Category:    CategoryMilestone,
		Rarity:      RarityEpic,
		ValueFamily: ValuePoints,
		Trigger:     func(s *stats.UserStats) bool { return s.TotalPoints >= 1000 },
	},
	{
		BadgeID:     "first_goal",
		Name:        "Goal Setter",
		Description: "Created your first eco-goal!",
		Icon:        "🎯",
		Category:    CategoryMilestone,
		Rarity:      RarityCommon,
		Trigger:     func(s *stats.UserStats) bool { return s.GoalsCreated >= 1 },
	},
	{
		BadgeID:     "goals_5",
		Name:        "Achievement Hunter",
		Description: "Completed 5 eco-goals!",
		Icon:        "🏅",
		Category:    CategoryAchievement,
		Rarity:      RarityRare,
		ValueFamily: ValueGoals,
		Trigger:     func(s *stats.UserStats) bool { return s.GoalsCompleted >= 5 },
	},
	{
		BadgeID:     "transport_master",
		Name:        "Transport Master",
		Description: "Logged 25+ transportation activities!",
		Icon:        "🚲",
		Category:    CategorySpecial,
		Rarity:      RarityRare,
		Trigger:     func(s *stats.UserStats) bool { return s.CategoryStats["Transportation"] >= 25 },
	},
	{
		BadgeID:     "energy_saver",
		Name:        "Energy Saver",
		Description: "Expert in energy conservation!",
		Icon:        "⚡",
		Category:    CategorySpecial,
		Rarity:      RarityRare,
		Trigger:     func(s *stats.UserStats) bool { return s.CategoryStats["Energy"] >= 25 },
	},
	{
		BadgeID:     "waste_warrior",
		Name:        "Waste Warrior",
		Description: "Fighting waste like a champion!",
		Icon:        "♻️",
		Category:    CategorySpecial,
		Rarity:      RarityRare,
		Trigger:     func(s *stats.UserStats) bool { return s.CategoryStats["Waste"] >= 25 },
	},
	{
		BadgeID:     "comeback_kid",
		Name:        "Comeback Kid",
		Description: "Bounced back with positive activities after negatives!",
		Icon:        "🌈",
		Category:    CategorySpecial,
		Rarity:      RarityRare,
		Trigger: func(s *stats.UserStats) bool {
			return s.ConsecutivePositiveActivities >= 5 && s.TotalNegativeActivities > 0
		},
	},
	{
		BadgeID:     "balanced_life",
		Name:        "Balanced Life",
		Description: "Active in 5+ different eco-categories!",
		Icon:        "⚖️",
		Category:    CategorySpecial,
		Rarity:      RarityEpic,
		Trigger:     func(s *stats.UserStats) bool { return s.ActiveCategories() >= 5 },
	},
}
