package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// AccommodationService implements business logic for lodging records.
type AccommodationService struct {
	trips          repo.TripRepo
	accommodations repo.AccommodationRepo
}

// NewAccommodationService constructs an AccommodationService.
func NewAccommodationService(trips repo.TripRepo, accommodations repo.AccommodationRepo) *AccommodationService {
	return &AccommodationService{trips: trips, accommodations: accommodations}
}

// Create validates the record, verifies the parent trip exists, then persists.
func (s *AccommodationService) Create(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	if _, err := s.trips.GetByID(ctx, a.TripID); err != nil {
		return domain.Accommodation{}, fmt.Errorf("service.AccommodationService.Create: %w", err)
	}
	if a.Type == "" {
		a.Type = domain.AccommodationOther
	}
	if err := validateAccommodation(a); err != nil {
		return domain.Accommodation{}, err
	}

	result, err := s.accommodations.Create(ctx, a)
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("service.AccommodationService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single accommodation, scoped to the given trip.
func (s *AccommodationService) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error) {
	result, err := s.accommodations.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("service.AccommodationService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's accommodations ordered by check-in date.
// Always returns a non-nil slice so callers can safely range over it.
func (s *AccommodationService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Accommodation, error) {
	out, err := s.accommodations.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.AccommodationService.ListByTrip: %w", err)
	}
	if out == nil {
		return []domain.Accommodation{}, nil
	}
	return out, nil
}

// Update validates and persists changes to an accommodation.
func (s *AccommodationService) Update(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	if err := validateAccommodation(a); err != nil {
		return domain.Accommodation{}, err
	}

	result, err := s.accommodations.Update(ctx, a)
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("service.AccommodationService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an accommodation, scoped to the given trip.
func (s *AccommodationService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.accommodations.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.AccommodationService.Delete: %w", err)
	}
	return nil
}

// TogglePaid flips the paid flag and returns the updated record.
func (s *AccommodationService) TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error) {
	result, err := s.accommodations.TogglePaid(ctx, tripID, id)
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("service.AccommodationService.TogglePaid: %w", err)
	}
	return result, nil
}

func validateAccommodation(a domain.Accommodation) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !a.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", domain.ErrValidation, a.Type)
	}
	if a.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if a.CheckIn != nil && a.CheckOut != nil && a.CheckOut.Before(*a.CheckIn) {
		return fmt.Errorf("%w: check_out must not be before check_in", domain.ErrValidation)
	}
	return nil
}
