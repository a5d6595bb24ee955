package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccommodationType categorizes a lodging record.
type AccommodationType string

const (
	AccommodationHotel     AccommodationType = "hotel"
	AccommodationHostel    AccommodationType = "hostel"
	AccommodationApartment AccommodationType = "apartment"
	AccommodationCamping   AccommodationType = "camping"
	AccommodationOther     AccommodationType = "other"
)

// Valid reports whether t is one of the known accommodation types.
func (t AccommodationType) Valid() bool {
	switch t {
	case AccommodationHotel, AccommodationHostel, AccommodationApartment,
		AccommodationCamping, AccommodationOther:
		return true
	}
	return false
}

// Accommodation is a lodging booking for a trip. DestinationID is optional:
// lodging may be recorded before the itinerary has destinations, and deleting
// a destination clears the link rather than deleting the booking.
type Accommodation struct {
	ID            uuid.UUID         `json:"id"`
	TripID        uuid.UUID         `json:"trip_id"`
	DestinationID *uuid.UUID        `json:"destination_id,omitempty"`
	Name          string            `json:"name"`
	Type          AccommodationType `json:"type"`
	CheckIn       *time.Time        `json:"check_in,omitempty"`
	CheckOut      *time.Time        `json:"check_out,omitempty"`
	Price         float64           `json:"price"`
	IsPaid        bool              `json:"is_paid"`
	CreatedAt     time.Time         `json:"created_at"`
}
