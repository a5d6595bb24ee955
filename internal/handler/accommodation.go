package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// AccommodationServicer defines the operations the accommodation handlers use.
type AccommodationServicer interface {
	Create(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Accommodation, error)
	Update(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
	TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error)
}

// AccommodationRequest is the JSON body for creating or updating an accommodation.
type AccommodationRequest struct {
	DestinationID *uuid.UUID               `json:"destination_id,omitempty"`
	Name          string                   `json:"name"`
	Type          domain.AccommodationType `json:"type,omitempty"`
	CheckIn       *openapi_types.Date      `json:"check_in,omitempty"`
	CheckOut      *openapi_types.Date      `json:"check_out,omitempty"`
	Price         float64                  `json:"price,omitempty"`
	IsPaid        bool                     `json:"is_paid,omitempty"`
}

// AccommodationResponse is the JSON representation of an accommodation.
type AccommodationResponse struct {
	ID            uuid.UUID                `json:"id"`
	TripID        uuid.UUID                `json:"trip_id"`
	DestinationID *uuid.UUID               `json:"destination_id,omitempty"`
	Name          string                   `json:"name"`
	Type          domain.AccommodationType `json:"type"`
	CheckIn       *openapi_types.Date      `json:"check_in,omitempty"`
	CheckOut      *openapi_types.Date      `json:"check_out,omitempty"`
	Price         float64                  `json:"price"`
	IsPaid        bool                     `json:"is_paid"`
	CreatedAt     time.Time                `json:"created_at"`
}

func (s *Server) listAccommodations(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	accs, err := s.svc.Accommodations.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}

	out := make([]AccommodationResponse, len(accs))
	for i, a := range accs {
		out[i] = accommodationToResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createAccommodation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req AccommodationRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Accommodations.Create(r.Context(), requestToAccommodation(tripID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, accommodationToResponse(created))
}

func (s *Server) getAccommodation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	a, err := s.svc.Accommodations.GetByID(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accommodationToResponse(a))
}

func (s *Server) updateAccommodation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req AccommodationRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Accommodations.Update(r.Context(), requestToAccommodation(tripID, id, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accommodationToResponse(updated))
}

func (s *Server) deleteAccommodation(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.svc.Accommodations.Delete(r.Context(), tripID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleAccommodationPaid(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	a, err := s.svc.Accommodations.TogglePaid(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, accommodationToResponse(a))
}

func requestToAccommodation(tripID, id uuid.UUID, req AccommodationRequest) domain.Accommodation {
	a := domain.Accommodation{
		ID:            id,
		TripID:        tripID,
		DestinationID: req.DestinationID,
		Name:          req.Name,
		Type:          req.Type,
		Price:         req.Price,
		IsPaid:        req.IsPaid,
	}
	if req.CheckIn != nil {
		t := req.CheckIn.Time
		a.CheckIn = &t
	}
	if req.CheckOut != nil {
		t := req.CheckOut.Time
		a.CheckOut = &t
	}
	return a
}

func accommodationToResponse(a domain.Accommodation) AccommodationResponse {
	resp := AccommodationResponse{
		ID:            a.ID,
		TripID:        a.TripID,
		DestinationID: a.DestinationID,
		Name:          a.Name,
		Type:          a.Type,
		Price:         a.Price,
		IsPaid:        a.IsPaid,
		CreatedAt:     a.CreatedAt,
	}
	if a.CheckIn != nil {
		resp.CheckIn = &openapi_types.Date{Time: *a.CheckIn}
	}
	if a.CheckOut != nil {
		resp.CheckOut = &openapi_types.Date{Time: *a.CheckOut}
	}
	return resp
}
