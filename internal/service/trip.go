// Package service contains the business logic for the Wayfarer API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls; mutations that also touch gamification state run inside a single
// transaction via repo.Atomic. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// TripService implements business logic for the Trip aggregate and its
// embedded destination list.
type TripService struct {
	trips  repo.TripRepo
	atomic repo.Atomic
}

// NewTripService constructs a TripService.
func NewTripService(trips repo.TripRepo, atomic repo.Atomic) *TripService {
	return &TripService{trips: trips, atomic: atomic}
}

// Create validates and persists a new trip. An empty status defaults to
// planning; currency defaults to EUR.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.Status == "" {
		trip.Status = domain.TripPlanning
	}
	if trip.Currency == "" {
		trip.Currency = "EUR"
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip with its destinations.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	result, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all trips, most recent start date first.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and persists changes to a trip. The transition into
// completed status counts as a qualifying activity: the trip write and the
// gamification update commit in one transaction, and any achievements it
// unlocks are returned.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, []gamify.Achievement, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, nil, err
	}

	existing, err := s.trips.GetByID(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Update: %w", err)
	}

	completing := existing.Status != domain.TripCompleted && trip.Status == domain.TripCompleted
	if !completing {
		result, err := s.trips.Update(ctx, trip)
		if err != nil {
			return domain.Trip{}, nil, fmt.Errorf("service.TripService.Update: %w", err)
		}
		return result, nil, nil
	}

	var (
		result   domain.Trip
		unlocked []gamify.Achievement
	)
	err = s.atomic.Tx(ctx, func(r repo.Repos) error {
		var err error
		result, err = r.Trips.Update(ctx, trip)
		if err != nil {
			return err
		}
		unlocked, err = recordActivity(ctx, r, domain.CounterTripsCompleted, time.Now().UTC())
		return err
	})
	if err != nil {
		return domain.Trip{}, nil, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, unlocked, nil
}

// Delete removes a trip. All dependent records cascade at the database level,
// so no child store can be left with a dangling trip reference.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// ---- destinations ----------------------------------------------------------

// AddDestination appends a destination to the trip's ordered list.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	if _, err := s.trips.GetByID(ctx, d.TripID); err != nil {
		return domain.Destination{}, fmt.Errorf("service.TripService.AddDestination: %w", err)
	}
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}

	result, err := s.trips.AddDestination(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.TripService.AddDestination: %w", err)
	}
	return result, nil
}

// UpdateDestination persists changes to a destination's fields (not its order).
func (s *TripService) UpdateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	if err := validateDestination(d); err != nil {
		return domain.Destination{}, err
	}

	result, err := s.trips.UpdateDestination(ctx, d)
	if err != nil {
		return domain.Destination{}, fmt.Errorf("service.TripService.UpdateDestination: %w", err)
	}
	return result, nil
}

// DeleteDestination removes a destination; sibling order indexes are
// renumbered so they stay contiguous. Runs in a transaction so a failure
// cannot leave a gap in the sequence.
func (s *TripService) DeleteDestination(ctx context.Context, tripID, destID uuid.UUID) error {
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		return r.Trips.DeleteDestination(ctx, tripID, destID)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.DeleteDestination: %w", err)
	}
	return nil
}

// ReorderDestination moves a destination to newIndex and returns the full
// reordered list. The shift and placement commit atomically.
func (s *TripService) ReorderDestination(ctx context.Context, tripID, destID uuid.UUID, newIndex int) ([]domain.Destination, error) {
	var list []domain.Destination
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		var err error
		list, err = r.Trips.ReorderDestination(ctx, tripID, destID, newIndex)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ReorderDestination: %w", err)
	}
	return list, nil
}

// ---- validation ------------------------------------------------------------

// validateTrip enforces business rules common to Create and Update.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if !trip.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	if len(trip.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}
	if trip.TotalBudget < 0 {
		return fmt.Errorf("%w: total_budget must not be negative", domain.ErrValidation)
	}
	return nil
}

func validateDestination(d domain.Destination) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if d.ArrivalDate != nil && d.DepartureDate != nil && d.DepartureDate.Before(*d.ArrivalDate) {
		return fmt.Errorf("%w: departure_date must not be before arrival_date", domain.ErrValidation)
	}
	return nil
}
