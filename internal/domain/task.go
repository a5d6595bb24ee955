package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus is either open or completed; toggling between the two also sets
// or clears CompletedAt atomically.
type TaskStatus string

const (
	TaskOpen      TaskStatus = "open"
	TaskCompleted TaskStatus = "completed"
)

// TaskPriority orders tasks by urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the known priorities.
func (p TaskPriority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a single to-do item for a trip.
// A task is overdue when its deadline has passed and it is still open.
type Task struct {
	ID          uuid.UUID    `json:"id"`
	TripID      uuid.UUID    `json:"trip_id"`
	Title       string       `json:"title"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	Category    string       `json:"category"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
