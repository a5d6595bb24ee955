package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// StatsServicer defines the statistics operation the handlers use.
// A nil trip id requests the global report.
type StatsServicer interface {
	Compute(ctx context.Context, tripID *uuid.UUID) (domain.StatisticsReport, error)
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) {
	report, err := s.svc.Stats.Compute(r.Context(), nil)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) getTripStats(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	report, err := s.svc.Stats.Compute(r.Context(), &tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
