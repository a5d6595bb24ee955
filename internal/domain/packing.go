package domain

import (
	"time"

	"github.com/google/uuid"
)

// PackingList is the root of the packing hierarchy for a trip:
// list → ordered categories → ordered items.
type PackingList struct {
	ID         uuid.UUID         `json:"id"`
	TripID     uuid.UUID         `json:"trip_id"`
	Name       string            `json:"name"`
	Categories []PackingCategory `json:"categories"`
	CreatedAt  time.Time         `json:"created_at"`
}

// PackingCategory groups related items within a list ("Clothes", "Electronics").
// OrderIndex is contiguous 0..n-1 within the list.
type PackingCategory struct {
	ID         uuid.UUID     `json:"id"`
	ListID     uuid.UUID     `json:"list_id"`
	Name       string        `json:"name"`
	OrderIndex int           `json:"order_index"`
	Items      []PackingItem `json:"items"`
}

// PackingItem is a single thing to pack. IsEssential items are highlighted by
// the UI; IsPacked flips via the toggle endpoint and feeds the itemsPacked
// gamification counter.
type PackingItem struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	IsPacked    bool      `json:"is_packed"`
	IsEssential bool      `json:"is_essential"`
	OrderIndex  int       `json:"order_index"`
}
