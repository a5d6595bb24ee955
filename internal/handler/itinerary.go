package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
)

// ItineraryServicer defines the operations the day plan handlers use.
type ItineraryServicer interface {
	CreateDayPlan(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error)
	GetDayPlan(ctx context.Context, tripID, id uuid.UUID) (domain.DayPlan, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DayPlan, error)
	UpdateDayPlan(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error)
	DeleteDayPlan(ctx context.Context, tripID, id uuid.UUID) error

	AddActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, []gamify.Achievement, error)
	UpdateActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, error)
	DeleteActivity(ctx context.Context, planID, activityID uuid.UUID) error
}

// DayPlanRequest is the JSON body for creating or updating a day plan.
// PlanDate is a date-only string.
type DayPlanRequest struct {
	PlanDate openapi_types.Date `json:"plan_date"`
	Notes    string             `json:"notes,omitempty"`
}

// DayPlanResponse is the JSON representation of a day plan with its activities.
type DayPlanResponse struct {
	ID         uuid.UUID            `json:"id"`
	TripID     uuid.UUID            `json:"trip_id"`
	PlanDate   openapi_types.Date   `json:"plan_date"`
	Notes      string               `json:"notes,omitempty"`
	Activities []domain.DayActivity `json:"activities"`
	CreatedAt  time.Time            `json:"created_at"`
}

// ActivityRequest is the JSON body for adding or updating an activity.
type ActivityRequest struct {
	Name     string                  `json:"name"`
	Category domain.ActivityCategory `json:"category,omitempty"`
	StartsAt *time.Time              `json:"starts_at,omitempty"`
}

// ActivityCreateResponse adds the achievements the new activity unlocked.
type ActivityCreateResponse struct {
	domain.DayActivity
	UnlockedAchievements []gamify.Achievement `json:"unlocked_achievements,omitempty"`
}

// ---- day plan handlers -----------------------------------------------------

func (s *Server) listDayPlans(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	plans, err := s.svc.Itinerary.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]DayPlanResponse, len(plans))
	for i, p := range plans {
		out[i] = dayPlanToResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createDayPlan(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req DayPlanRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Itinerary.CreateDayPlan(r.Context(), requestToDayPlan(tripID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dayPlanToResponse(created))
}

func (s *Server) getDayPlan(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	planID, ok := pathID(w, r, "planID")
	if !ok {
		return
	}

	p, err := s.svc.Itinerary.GetDayPlan(r.Context(), tripID, planID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dayPlanToResponse(p))
}

func (s *Server) updateDayPlan(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	planID, ok := pathID(w, r, "planID")
	if !ok {
		return
	}
	var req DayPlanRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Itinerary.UpdateDayPlan(r.Context(), requestToDayPlan(tripID, planID, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dayPlanToResponse(updated))
}

func (s *Server) deleteDayPlan(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	planID, ok := pathID(w, r, "planID")
	if !ok {
		return
	}

	if err := s.svc.Itinerary.DeleteDayPlan(r.Context(), tripID, planID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- activity handlers -----------------------------------------------------

func (s *Server) addActivity(w http.ResponseWriter, r *http.Request) {
	planID, ok := pathID(w, r, "planID")
	if !ok {
		return
	}
	var req ActivityRequest
	if !decode(w, r, &req) {
		return
	}

	created, unlocked, err := s.svc.Itinerary.AddActivity(r.Context(), requestToActivity(planID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ActivityCreateResponse{
		DayActivity:          created,
		UnlockedAchievements: unlocked,
	})
}

func (s *Server) updateActivity(w http.ResponseWriter, r *http.Request) {
	planID, ok := pathID(w, r, "planID")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}
	var req ActivityRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Itinerary.UpdateActivity(r.Context(), requestToActivity(planID, activityID, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteActivity(w http.ResponseWriter, r *http.Request) {
	planID, ok := pathID(w, r, "planID")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityID")
	if !ok {
		return
	}

	if err := s.svc.Itinerary.DeleteActivity(r.Context(), planID, activityID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- mapping helpers -------------------------------------------------------

func requestToDayPlan(tripID, id uuid.UUID, req DayPlanRequest) domain.DayPlan {
	return domain.DayPlan{
		ID:       id,
		TripID:   tripID,
		PlanDate: req.PlanDate.Time,
		Notes:    req.Notes,
	}
}

func dayPlanToResponse(p domain.DayPlan) DayPlanResponse {
	resp := DayPlanResponse{
		ID:         p.ID,
		TripID:     p.TripID,
		PlanDate:   openapi_types.Date{Time: p.PlanDate},
		Notes:      p.Notes,
		Activities: p.Activities,
		CreatedAt:  p.CreatedAt,
	}
	if resp.Activities == nil {
		resp.Activities = []domain.DayActivity{}
	}
	return resp
}

func requestToActivity(planID, id uuid.UUID, req ActivityRequest) domain.DayActivity {
	return domain.DayActivity{
		ID:        id,
		DayPlanID: planID,
		Name:      req.Name,
		Category:  req.Category,
		StartsAt:  req.StartsAt,
	}
}
