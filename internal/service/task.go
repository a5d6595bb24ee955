package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// TaskService implements business logic for trip to-do items.
type TaskService struct {
	trips repo.TripRepo
	tasks repo.TaskRepo
}

// NewTaskService constructs a TaskService.
func NewTaskService(trips repo.TripRepo, tasks repo.TaskRepo) *TaskService {
	return &TaskService{trips: trips, tasks: tasks}
}

// Create validates the task, verifies the parent trip exists, then persists.
// New tasks always start open with priority defaulting to medium.
func (s *TaskService) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	if _, err := s.trips.GetByID(ctx, t.TripID); err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Create: %w", err)
	}
	t.Status = domain.TaskOpen
	t.CompletedAt = nil
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := validateTask(t); err != nil {
		return domain.Task{}, err
	}

	result, err := s.tasks.Create(ctx, t)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single task, scoped to the given trip.
func (s *TaskService) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Task, error) {
	result, err := s.tasks.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's tasks ordered by deadline, undated tasks last.
func (s *TaskService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error) {
	out, err := s.tasks.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TaskService.ListByTrip: %w", err)
	}
	if out == nil {
		return []domain.Task{}, nil
	}
	return out, nil
}

// ListOverdue returns the trip's open tasks whose deadline has passed.
func (s *TaskService) ListOverdue(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error) {
	out, err := s.tasks.ListOverdue(ctx, tripID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("service.TaskService.ListOverdue: %w", err)
	}
	if out == nil {
		return []domain.Task{}, nil
	}
	return out, nil
}

// Update validates and persists changes to a task's fields. Status is only
// changed through ToggleStatus so completed_at can never drift.
func (s *TaskService) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	if err := validateTask(t); err != nil {
		return domain.Task{}, err
	}

	result, err := s.tasks.Update(ctx, t)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a task, scoped to the given trip.
func (s *TaskService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.TaskService.Delete: %w", err)
	}
	return nil
}

// ToggleStatus flips a task between open and completed, stamping or clearing
// the completion time in the same statement.
func (s *TaskService) ToggleStatus(ctx context.Context, tripID, id uuid.UUID) (domain.Task, error) {
	result, err := s.tasks.ToggleStatus(ctx, tripID, id, time.Now().UTC())
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.ToggleStatus: %w", err)
	}
	return result, nil
}

func validateTask(t domain.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if !t.Priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, t.Priority)
	}
	return nil
}
