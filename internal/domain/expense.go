package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense categories are free-form strings in storage; these constants cover
// the values the UI offers by default.
const (
	ExpenseCategoryAccommodation = "accommodation"
	ExpenseCategoryFood          = "food"
	ExpenseCategoryTransport     = "transport"
	ExpenseCategoryActivities    = "activities"
	ExpenseCategoryShopping      = "shopping"
	ExpenseCategoryOther         = "other"
)

// Expense is a single spend record against a trip's budget.
// DayPlanID optionally pins the expense to a specific itinerary day.
type Expense struct {
	ID             uuid.UUID  `json:"id"`
	TripID         uuid.UUID  `json:"trip_id"`
	DayPlanID      *uuid.UUID `json:"day_plan_id,omitempty"`
	Title          string     `json:"title"`
	Amount         float64    `json:"amount"`
	Currency       string     `json:"currency"`
	Category       string     `json:"category"`
	SpentOn        time.Time  `json:"spent_on"`
	IsReimbursable bool       `json:"is_reimbursable"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CategoryTotal is one row of an expense aggregation grouped by category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
