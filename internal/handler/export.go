package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

// ExportServicer defines the snapshot operations the handlers use.
type ExportServicer interface {
	Export(ctx context.Context, tripID *uuid.UUID) (domain.Snapshot, error)
	Import(ctx context.Context, snap domain.Snapshot) (service.ImportSummary, error)
}

// exportSnapshot serves a full snapshot, or a single trip's when the
// trip_id query parameter is set.
func (s *Server) exportSnapshot(w http.ResponseWriter, r *http.Request) {
	var tripID *uuid.UUID
	if raw := r.URL.Query().Get("trip_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(w, "invalid trip_id")
			return
		}
		tripID = &id
	}

	snap, err := s.svc.Export.Export(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) importSnapshot(w http.ResponseWriter, r *http.Request) {
	var snap domain.Snapshot
	if !decode(w, r, &snap) {
		return
	}

	summary, err := s.svc.Export.Import(r.Context(), snap)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
