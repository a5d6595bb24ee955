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

// TripServicer defines the business operations the trip handlers depend on.
// Declaring the interface in the consumer package lets handler tests inject a
// mock without touching the service layer or the database.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, []gamify.Achievement, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)
	UpdateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)
	DeleteDestination(ctx context.Context, tripID, destID uuid.UUID) error
	ReorderDestination(ctx context.Context, tripID, destID uuid.UUID, newIndex int) ([]domain.Destination, error)
}

// TripRequest is the JSON body for creating or updating a trip. Dates are
// date-only strings (2026-06-01), not timestamps.
type TripRequest struct {
	Name        string             `json:"name"`
	StartDate   openapi_types.Date `json:"start_date"`
	EndDate     openapi_types.Date `json:"end_date"`
	Status      domain.TripStatus  `json:"status,omitempty"`
	Currency    string             `json:"currency,omitempty"`
	TotalBudget float64            `json:"total_budget,omitempty"`
}

// TripResponse is the JSON representation of a trip with its destinations.
type TripResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	StartDate    openapi_types.Date    `json:"start_date"`
	EndDate      openapi_types.Date    `json:"end_date"`
	Status       domain.TripStatus     `json:"status"`
	Currency     string                `json:"currency"`
	TotalBudget  float64               `json:"total_budget"`
	Destinations []DestinationResponse `json:"destinations"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// TripUpdateResponse adds the achievements a status transition unlocked.
type TripUpdateResponse struct {
	TripResponse
	UnlockedAchievements []gamify.Achievement `json:"unlocked_achievements,omitempty"`
}

// DestinationRequest is the JSON body for adding or updating a destination.
type DestinationRequest struct {
	Name          string              `json:"name"`
	Country       string              `json:"country,omitempty"`
	ArrivalDate   *openapi_types.Date `json:"arrival_date,omitempty"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
}

// DestinationResponse is the JSON representation of a destination.
type DestinationResponse struct {
	ID            uuid.UUID           `json:"id"`
	TripID        uuid.UUID           `json:"trip_id"`
	Name          string              `json:"name"`
	Country       string              `json:"country"`
	ArrivalDate   *openapi_types.Date `json:"arrival_date,omitempty"`
	DepartureDate *openapi_types.Date `json:"departure_date,omitempty"`
	OrderIndex    int                 `json:"order_index"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ---- trip handlers ---------------------------------------------------------

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.svc.Trips.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]TripResponse, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Trips.Create(r.Context(), requestToTrip(uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.svc.Trips.GetByID(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req TripRequest
	if !decode(w, r, &req) {
		return
	}

	updated, unlocked, err := s.svc.Trips.Update(r.Context(), requestToTrip(tripID, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TripUpdateResponse{
		TripResponse:         tripToResponse(updated),
		UnlockedAchievements: unlocked,
	})
}

func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	if err := s.svc.Trips.Delete(r.Context(), tripID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- destination handlers --------------------------------------------------

func (s *Server) listDestinations(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	trip, err := s.svc.Trips.GetByID(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]DestinationResponse, len(trip.Destinations))
	for i, d := range trip.Destinations {
		out[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req DestinationRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Trips.AddDestination(r.Context(), requestToDestination(tripID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, destinationToResponse(created))
}

func (s *Server) updateDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	destID, ok := pathID(w, r, "destID")
	if !ok {
		return
	}
	var req DestinationRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Trips.UpdateDestination(r.Context(), requestToDestination(tripID, destID, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, destinationToResponse(updated))
}

func (s *Server) deleteDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	destID, ok := pathID(w, r, "destID")
	if !ok {
		return
	}

	if err := s.svc.Trips.DeleteDestination(r.Context(), tripID, destID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) reorderDestination(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	destID, ok := pathID(w, r, "destID")
	if !ok {
		return
	}
	var req struct {
		NewIndex int `json:"new_index"`
	}
	if !decode(w, r, &req) {
		return
	}

	list, err := s.svc.Trips.ReorderDestination(r.Context(), tripID, destID, req.NewIndex)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]DestinationResponse, len(list))
	for i, d := range list {
		out[i] = destinationToResponse(d)
	}
	writeJSON(w, http.StatusOK, out)
}

// ---- mapping helpers -------------------------------------------------------

func requestToTrip(id uuid.UUID, req TripRequest) domain.Trip {
	return domain.Trip{
		ID:          id,
		Name:        req.Name,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Status:      req.Status,
		Currency:    req.Currency,
		TotalBudget: req.TotalBudget,
	}
}

func tripToResponse(t domain.Trip) TripResponse {
	resp := TripResponse{
		ID:           t.ID,
		Name:         t.Name,
		StartDate:    openapi_types.Date{Time: t.StartDate},
		EndDate:      openapi_types.Date{Time: t.EndDate},
		Status:       t.Status,
		Currency:     t.Currency,
		TotalBudget:  t.TotalBudget,
		Destinations: []DestinationResponse{},
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	for _, d := range t.Destinations {
		resp.Destinations = append(resp.Destinations, destinationToResponse(d))
	}
	return resp
}

func requestToDestination(tripID, id uuid.UUID, req DestinationRequest) domain.Destination {
	d := domain.Destination{
		ID:      id,
		TripID:  tripID,
		Name:    req.Name,
		Country: req.Country,
	}
	if req.ArrivalDate != nil {
		t := req.ArrivalDate.Time
		d.ArrivalDate = &t
	}
	if req.DepartureDate != nil {
		t := req.DepartureDate.Time
		d.DepartureDate = &t
	}
	return d
}

func destinationToResponse(d domain.Destination) DestinationResponse {
	resp := DestinationResponse{
		ID:         d.ID,
		TripID:     d.TripID,
		Name:       d.Name,
		Country:    d.Country,
		OrderIndex: d.OrderIndex,
		CreatedAt:  d.CreatedAt,
	}
	if d.ArrivalDate != nil {
		resp.ArrivalDate = &openapi_types.Date{Time: *d.ArrivalDate}
	}
	if d.DepartureDate != nil {
		resp.DepartureDate = &openapi_types.Date{Time: *d.DepartureDate}
	}
	return resp
}
