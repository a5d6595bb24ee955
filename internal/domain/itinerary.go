package domain

import (
	"time"

	"github.com/google/uuid"
)

// ActivityCategory classifies an itinerary activity for statistics.
type ActivityCategory string

const (
	ActivitySightseeing ActivityCategory = "sightseeing"
	ActivityFood        ActivityCategory = "food"
	ActivityCulture     ActivityCategory = "culture"
	ActivityNature      ActivityCategory = "nature"
	ActivityShopping    ActivityCategory = "shopping"
	ActivityNightlife   ActivityCategory = "nightlife"
	ActivityOther       ActivityCategory = "other"
)

// Valid reports whether c is one of the known activity categories.
func (c ActivityCategory) Valid() bool {
	switch c {
	case ActivitySightseeing, ActivityFood, ActivityCulture, ActivityNature,
		ActivityShopping, ActivityNightlife, ActivityOther:
		return true
	}
	return false
}

// DayPlan is one day of a trip's itinerary with its ordered activities.
type DayPlan struct {
	ID         uuid.UUID     `json:"id"`
	TripID     uuid.UUID     `json:"trip_id"`
	PlanDate   time.Time     `json:"plan_date"`
	Notes      string        `json:"notes,omitempty"`
	Activities []DayActivity `json:"activities"`
	CreatedAt  time.Time     `json:"created_at"`
}

// DayActivity is a single planned activity within a day.
// OrderIndex is contiguous 0..n-1 within the day plan.
type DayActivity struct {
	ID         uuid.UUID        `json:"id"`
	DayPlanID  uuid.UUID        `json:"day_plan_id"`
	Name       string           `json:"name"`
	Category   ActivityCategory `json:"category"`
	StartsAt   *time.Time       `json:"starts_at,omitempty"`
	OrderIndex int              `json:"order_index"`
}
