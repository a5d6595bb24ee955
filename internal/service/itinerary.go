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

// ItineraryService implements business logic for day plans and their
// activities. Adding an activity counts as a qualifying activity for
// gamification.
type ItineraryService struct {
	trips    repo.TripRepo
	dayPlans repo.DayPlanRepo
	atomic   repo.Atomic
}

// NewItineraryService constructs an ItineraryService.
func NewItineraryService(trips repo.TripRepo, dayPlans repo.DayPlanRepo, atomic repo.Atomic) *ItineraryService {
	return &ItineraryService{trips: trips, dayPlans: dayPlans, atomic: atomic}
}

// CreateDayPlan validates and persists a new itinerary day for the trip.
func (s *ItineraryService) CreateDayPlan(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error) {
	if _, err := s.trips.GetByID(ctx, p.TripID); err != nil {
		return domain.DayPlan{}, fmt.Errorf("service.ItineraryService.CreateDayPlan: %w", err)
	}
	if p.PlanDate.IsZero() {
		return domain.DayPlan{}, fmt.Errorf("%w: plan_date is required", domain.ErrValidation)
	}

	result, err := s.dayPlans.Create(ctx, p)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("service.ItineraryService.CreateDayPlan: %w", err)
	}
	return result, nil
}

// GetDayPlan returns one day plan with its ordered activities.
func (s *ItineraryService) GetDayPlan(ctx context.Context, tripID, id uuid.UUID) (domain.DayPlan, error) {
	result, err := s.dayPlans.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("service.ItineraryService.GetDayPlan: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's day plans in chronological order.
func (s *ItineraryService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DayPlan, error) {
	out, err := s.dayPlans.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.ListByTrip: %w", err)
	}
	if out == nil {
		return []domain.DayPlan{}, nil
	}
	return out, nil
}

// UpdateDayPlan persists changes to a day plan's date and notes.
func (s *ItineraryService) UpdateDayPlan(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error) {
	if p.PlanDate.IsZero() {
		return domain.DayPlan{}, fmt.Errorf("%w: plan_date is required", domain.ErrValidation)
	}

	result, err := s.dayPlans.Update(ctx, p)
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("service.ItineraryService.UpdateDayPlan: %w", err)
	}
	return result, nil
}

// DeleteDayPlan removes a day plan; its activities cascade and any expenses
// pinned to the day keep their trip but lose the day reference.
func (s *ItineraryService) DeleteDayPlan(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.dayPlans.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteDayPlan: %w", err)
	}
	return nil
}

// AddActivity appends an activity to the day's ordered list. The insert and
// the gamification update (itineraryItems counter, streak, achievement
// evaluation) commit in one transaction; newly unlocked achievements are
// returned.
func (s *ItineraryService) AddActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, []gamify.Achievement, error) {
	if a.Category == "" {
		a.Category = domain.ActivityOther
	}
	if err := validateActivity(a); err != nil {
		return domain.DayActivity{}, nil, err
	}

	var (
		result   domain.DayActivity
		unlocked []gamify.Achievement
	)
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		var err error
		result, err = r.DayPlans.AddActivity(ctx, a)
		if err != nil {
			return err
		}
		unlocked, err = recordActivity(ctx, r, domain.CounterItineraryItems, time.Now().UTC())
		return err
	})
	if err != nil {
		return domain.DayActivity{}, nil, fmt.Errorf("service.ItineraryService.AddActivity: %w", err)
	}
	return result, unlocked, nil
}

// UpdateActivity persists changes to an activity's fields (not its order).
func (s *ItineraryService) UpdateActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, error) {
	if err := validateActivity(a); err != nil {
		return domain.DayActivity{}, err
	}

	result, err := s.dayPlans.UpdateActivity(ctx, a)
	if err != nil {
		return domain.DayActivity{}, fmt.Errorf("service.ItineraryService.UpdateActivity: %w", err)
	}
	return result, nil
}

// DeleteActivity removes an activity and renumbers its siblings atomically.
func (s *ItineraryService) DeleteActivity(ctx context.Context, planID, activityID uuid.UUID) error {
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		return r.DayPlans.DeleteActivity(ctx, planID, activityID)
	})
	if err != nil {
		return fmt.Errorf("service.ItineraryService.DeleteActivity: %w", err)
	}
	return nil
}

func validateActivity(a domain.DayActivity) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if !a.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, a.Category)
	}
	return nil
}
