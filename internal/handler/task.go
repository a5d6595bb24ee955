package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// TaskServicer defines the operations the task handlers use.
type TaskServicer interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Task, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error)
	ListOverdue(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
	ToggleStatus(ctx context.Context, tripID, id uuid.UUID) (domain.Task, error)
}

// TaskRequest is the JSON body for creating or updating a task. Status and
// completion are server-managed; the only way to complete a task is the
// toggle-status endpoint.
type TaskRequest struct {
	Title    string              `json:"title"`
	Priority domain.TaskPriority `json:"priority,omitempty"`
	Category string              `json:"category,omitempty"`
	Deadline *time.Time          `json:"deadline,omitempty"`
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	tasks, err := s.svc.Tasks.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req TaskRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Tasks.Create(r.Context(), requestToTask(tripID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) listOverdueTasks(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	tasks, err := s.svc.Tasks.ListOverdue(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	t, err := s.svc.Tasks.GetByID(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req TaskRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Tasks.Update(r.Context(), requestToTask(tripID, id, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.svc.Tasks.Delete(r.Context(), tripID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleTaskStatus(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	t, err := s.svc.Tasks.ToggleStatus(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func requestToTask(tripID, id uuid.UUID, req TaskRequest) domain.Task {
	return domain.Task{
		ID:       id,
		TripID:   tripID,
		Title:    req.Title,
		Priority: req.Priority,
		Category: req.Category,
		Deadline: req.Deadline,
	}
}
