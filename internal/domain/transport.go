package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransportMode categorizes how a leg of the journey is travelled.
type TransportMode string

const (
	TransportFlight TransportMode = "flight"
	TransportTrain  TransportMode = "train"
	TransportBus    TransportMode = "bus"
	TransportCar    TransportMode = "car"
	TransportFerry  TransportMode = "ferry"
	TransportOther  TransportMode = "other"
)

// Valid reports whether m is one of the known transport modes.
func (m TransportMode) Valid() bool {
	switch m {
	case TransportFlight, TransportTrain, TransportBus, TransportCar,
		TransportFerry, TransportOther:
		return true
	}
	return false
}

// Transport is a single travel leg between two locations.
type Transport struct {
	ID          uuid.UUID     `json:"id"`
	TripID      uuid.UUID     `json:"trip_id"`
	Mode        TransportMode `json:"mode"`
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	DepartsAt   *time.Time    `json:"departs_at,omitempty"`
	ArrivesAt   *time.Time    `json:"arrives_at,omitempty"`
	Price       float64       `json:"price"`
	IsPaid      bool          `json:"is_paid"`
	CreatedAt   time.Time     `json:"created_at"`
}
