package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// TransportServicer defines the operations the transport handlers use.
type TransportServicer interface {
	Create(ctx context.Context, tr domain.Transport) (domain.Transport, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error)
	Update(ctx context.Context, tr domain.Transport) (domain.Transport, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
	TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error)
}

// TransportRequest is the JSON body for creating or updating a transport leg.
// Departure and arrival are full timestamps since legs cross time zones.
type TransportRequest struct {
	Mode        domain.TransportMode `json:"mode,omitempty"`
	Origin      string               `json:"origin"`
	Destination string               `json:"destination"`
	DepartsAt   *time.Time           `json:"departs_at,omitempty"`
	ArrivesAt   *time.Time           `json:"arrives_at,omitempty"`
	Price       float64              `json:"price,omitempty"`
	IsPaid      bool                 `json:"is_paid,omitempty"`
}

func (s *Server) listTransports(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	out, err := s.svc.Transports.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTransport(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req TransportRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Transports.Create(r.Context(), requestToTransport(tripID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getTransport(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tr, err := s.svc.Transports.GetByID(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func (s *Server) updateTransport(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req TransportRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Transports.Update(r.Context(), requestToTransport(tripID, id, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteTransport(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.svc.Transports.Delete(r.Context(), tripID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) toggleTransportPaid(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tr, err := s.svc.Transports.TogglePaid(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tr)
}

func requestToTransport(tripID, id uuid.UUID, req TransportRequest) domain.Transport {
	return domain.Transport{
		ID:          id,
		TripID:      tripID,
		Mode:        req.Mode,
		Origin:      req.Origin,
		Destination: req.Destination,
		DepartsAt:   req.DepartsAt,
		ArrivesAt:   req.ArrivesAt,
		Price:       req.Price,
		IsPaid:      req.IsPaid,
	}
}
