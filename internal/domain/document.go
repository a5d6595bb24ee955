package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a file attached to a trip (ticket, reservation, visa scan).
// The payload is stored inline as base64; SizeBytes is the decoded size and
// is validated against the configured upload limit.
type Document struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Name      string    `json:"name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	Data      string    `json:"data"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}
