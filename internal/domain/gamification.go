package domain

import "time"

// Counter names one of the activity counters tracked by the gamification
// engine. Counters only grow; achievement conditions compare against them.
type Counter string

const (
	CounterTripsCompleted Counter = "tripsCompleted"
	CounterItemsPacked    Counter = "itemsPacked"
	CounterBudgetEntries  Counter = "budgetEntries"
	CounterItineraryItems Counter = "itineraryItems"
)

// Unlock records that an achievement has been earned. Each achievement id
// appears at most once.
type Unlock struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// GamificationStats is the single persisted gamification state object.
// TotalPoints never decreases except on an explicit reset; CurrentStreak is
// the one non-monotone field (it drops back to 1 after a missed day).
// The current level is derived from TotalPoints and never stored.
type GamificationStats struct {
	TotalPoints      int        `json:"total_points"`
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
	TripsCompleted   int        `json:"trips_completed"`
	ItemsPacked      int        `json:"items_packed"`
	BudgetEntries    int        `json:"budget_entries"`
	ItineraryItems   int        `json:"itinerary_items"`
	Unlocks          []Unlock   `json:"unlocks"`
}

// AchievementProgress is the read-only unlocked/total ratio over the static
// achievement catalog.
type AchievementProgress struct {
	Unlocked   int     `json:"unlocked"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}
