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

// PackingService implements business logic for the packing hierarchy.
// Packing an item (toggle to packed) counts as a qualifying activity.
type PackingService struct {
	trips   repo.TripRepo
	packing repo.PackingRepo
	atomic  repo.Atomic
}

// NewPackingService constructs a PackingService.
func NewPackingService(trips repo.TripRepo, packing repo.PackingRepo, atomic repo.Atomic) *PackingService {
	return &PackingService{trips: trips, packing: packing, atomic: atomic}
}

// ---- lists -----------------------------------------------------------------

// CreateList validates and persists a new packing list for the trip.
func (s *PackingService) CreateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	if _, err := s.trips.GetByID(ctx, l.TripID); err != nil {
		return domain.PackingList{}, fmt.Errorf("service.PackingService.CreateList: %w", err)
	}
	if strings.TrimSpace(l.Name) == "" {
		return domain.PackingList{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	result, err := s.packing.CreateList(ctx, l)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.PackingService.CreateList: %w", err)
	}
	return result, nil
}

// GetList returns one list with its full category and item hierarchy.
func (s *PackingService) GetList(ctx context.Context, tripID, listID uuid.UUID) (domain.PackingList, error) {
	result, err := s.packing.GetList(ctx, tripID, listID)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.PackingService.GetList: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's packing lists, fully populated.
func (s *PackingService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PackingList, error) {
	out, err := s.packing.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PackingService.ListByTrip: %w", err)
	}
	if out == nil {
		return []domain.PackingList{}, nil
	}
	return out, nil
}

// UpdateList renames a packing list.
func (s *PackingService) UpdateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	if strings.TrimSpace(l.Name) == "" {
		return domain.PackingList{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	result, err := s.packing.UpdateList(ctx, l)
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("service.PackingService.UpdateList: %w", err)
	}
	return result, nil
}

// DeleteList removes a list; its categories and items cascade.
func (s *PackingService) DeleteList(ctx context.Context, tripID, listID uuid.UUID) error {
	if err := s.packing.DeleteList(ctx, tripID, listID); err != nil {
		return fmt.Errorf("service.PackingService.DeleteList: %w", err)
	}
	return nil
}

// ---- categories ------------------------------------------------------------

// AddCategory appends a category to the end of the list's order.
func (s *PackingService) AddCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.PackingCategory{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	result, err := s.packing.AddCategory(ctx, c)
	if err != nil {
		return domain.PackingCategory{}, fmt.Errorf("service.PackingService.AddCategory: %w", err)
	}
	return result, nil
}

// UpdateCategory renames a category.
func (s *PackingService) UpdateCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.PackingCategory{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	result, err := s.packing.UpdateCategory(ctx, c)
	if err != nil {
		return domain.PackingCategory{}, fmt.Errorf("service.PackingService.UpdateCategory: %w", err)
	}
	return result, nil
}

// DeleteCategory removes a category and renumbers its siblings atomically.
func (s *PackingService) DeleteCategory(ctx context.Context, listID, catID uuid.UUID) error {
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		return r.Packing.DeleteCategory(ctx, listID, catID)
	})
	if err != nil {
		return fmt.Errorf("service.PackingService.DeleteCategory: %w", err)
	}
	return nil
}

// ---- items -----------------------------------------------------------------

// AddItem appends an item to the end of the category's order. Quantity
// defaults to 1.
func (s *PackingService) AddItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error) {
	if it.Quantity == 0 {
		it.Quantity = 1
	}
	if err := validatePackingItem(it); err != nil {
		return domain.PackingItem{}, err
	}

	result, err := s.packing.AddItem(ctx, it)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.AddItem: %w", err)
	}
	return result, nil
}

// UpdateItem persists changes to an item's fields (not its packed state).
func (s *PackingService) UpdateItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error) {
	if err := validatePackingItem(it); err != nil {
		return domain.PackingItem{}, err
	}

	result, err := s.packing.UpdateItem(ctx, it)
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("service.PackingService.UpdateItem: %w", err)
	}
	return result, nil
}

// DeleteItem removes an item and renumbers its siblings atomically.
func (s *PackingService) DeleteItem(ctx context.Context, catID, itemID uuid.UUID) error {
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		return r.Packing.DeleteItem(ctx, catID, itemID)
	})
	if err != nil {
		return fmt.Errorf("service.PackingService.DeleteItem: %w", err)
	}
	return nil
}

// ToggleItemPacked flips an item's packed state. Only the transition into
// packed counts for gamification; unpacking never rolls the counter back.
// The toggle and any gamification write commit together.
func (s *PackingService) ToggleItemPacked(ctx context.Context, catID, itemID uuid.UUID) (domain.PackingItem, []gamify.Achievement, error) {
	var (
		result   domain.PackingItem
		unlocked []gamify.Achievement
	)
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		var err error
		result, err = r.Packing.ToggleItemPacked(ctx, catID, itemID)
		if err != nil {
			return err
		}
		if !result.IsPacked {
			return nil
		}
		unlocked, err = recordActivity(ctx, r, domain.CounterItemsPacked, time.Now().UTC())
		return err
	})
	if err != nil {
		return domain.PackingItem{}, nil, fmt.Errorf("service.PackingService.ToggleItemPacked: %w", err)
	}
	return result, unlocked, nil
}

func validatePackingItem(it domain.PackingItem) error {
	if strings.TrimSpace(it.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if it.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be at least 1", domain.ErrValidation)
	}
	return nil
}
