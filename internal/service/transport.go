package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// TransportService implements business logic for travel legs.
type TransportService struct {
	trips      repo.TripRepo
	transports repo.TransportRepo
}

// NewTransportService constructs a TransportService.
func NewTransportService(trips repo.TripRepo, transports repo.TransportRepo) *TransportService {
	return &TransportService{trips: trips, transports: transports}
}

// Create validates the leg, verifies the parent trip exists, then persists.
func (s *TransportService) Create(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	if _, err := s.trips.GetByID(ctx, tr.TripID); err != nil {
		return domain.Transport{}, fmt.Errorf("service.TransportService.Create: %w", err)
	}
	if tr.Mode == "" {
		tr.Mode = domain.TransportOther
	}
	if err := validateTransport(tr); err != nil {
		return domain.Transport{}, err
	}

	result, err := s.transports.Create(ctx, tr)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.TransportService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single transport leg, scoped to the given trip.
func (s *TransportService) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error) {
	result, err := s.transports.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.TransportService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's transport legs ordered by departure time.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TransportService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error) {
	out, err := s.transports.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TransportService.ListByTrip: %w", err)
	}
	if out == nil {
		return []domain.Transport{}, nil
	}
	return out, nil
}

// Update validates and persists changes to a transport leg.
func (s *TransportService) Update(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	if err := validateTransport(tr); err != nil {
		return domain.Transport{}, err
	}

	result, err := s.transports.Update(ctx, tr)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.TransportService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a transport leg, scoped to the given trip.
func (s *TransportService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.transports.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.TransportService.Delete: %w", err)
	}
	return nil
}

// TogglePaid flips the paid flag and returns the updated record.
func (s *TransportService) TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error) {
	result, err := s.transports.TogglePaid(ctx, tripID, id)
	if err != nil {
		return domain.Transport{}, fmt.Errorf("service.TransportService.TogglePaid: %w", err)
	}
	return result, nil
}

func validateTransport(tr domain.Transport) error {
	if !tr.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", domain.ErrValidation, tr.Mode)
	}
	if strings.TrimSpace(tr.Origin) == "" || strings.TrimSpace(tr.Destination) == "" {
		return fmt.Errorf("%w: origin and destination are required", domain.ErrValidation)
	}
	if tr.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	if tr.DepartsAt != nil && tr.ArrivesAt != nil && tr.ArrivesAt.Before(*tr.DepartsAt) {
		return fmt.Errorf("%w: arrives_at must not be before departs_at", domain.ErrValidation)
	}
	return nil
}
