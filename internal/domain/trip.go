// Package domain contains the core data types for the Wayfarer trip planner.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler, gamify).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus describes where a trip is in its lifecycle.
type TripStatus string

const (
	TripPlanning  TripStatus = "planning"
	TripUpcoming  TripStatus = "upcoming"
	TripOngoing   TripStatus = "ongoing"
	TripCompleted TripStatus = "completed"
)

// Valid reports whether s is one of the known trip statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case TripPlanning, TripUpcoming, TripOngoing, TripCompleted:
		return true
	}
	return false
}

// Trip is the top-level aggregate. Every other entity references a trip by ID,
// and destinations are owned directly by the trip as an ordered list.
type Trip struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
	Status       TripStatus    `json:"status"`
	Currency     string        `json:"currency"`
	TotalBudget  float64       `json:"total_budget"`
	Destinations []Destination `json:"destinations"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Destination is a single place visited during a trip.
// OrderIndex values are contiguous 0..n-1 within a trip; any delete or
// reorder renumbers the remaining siblings immediately.
type Destination struct {
	ID            uuid.UUID  `json:"id"`
	TripID        uuid.UUID  `json:"trip_id"`
	Name          string     `json:"name"`
	Country       string     `json:"country"`
	ArrivalDate   *time.Time `json:"arrival_date,omitempty"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
	OrderIndex    int        `json:"order_index"`
	CreatedAt     time.Time  `json:"created_at"`
}
