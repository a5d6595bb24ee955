package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// DocumentServicer defines the operations the document handlers use.
type DocumentServicer interface {
	Create(ctx context.Context, d domain.Document) (domain.Document, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Document, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Document, error)
	Update(ctx context.Context, d domain.Document) (domain.Document, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

// DocumentRequest is the JSON body for uploading or replacing a document.
// Data is the base64-encoded payload; the decoded size is computed server-side.
type DocumentRequest struct {
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
	Category string `json:"category,omitempty"`
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	docs, err := s.svc.Documents.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req DocumentRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Documents.Create(r.Context(), requestToDocument(tripID, uuid.Nil, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	d, err := s.svc.Documents.GetByID(r.Context(), tripID, id)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req DocumentRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Documents.Update(r.Context(), requestToDocument(tripID, id, req))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.svc.Documents.Delete(r.Context(), tripID, id); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func requestToDocument(tripID, id uuid.UUID, req DocumentRequest) domain.Document {
	return domain.Document{
		ID:       id,
		TripID:   tripID,
		Name:     req.Name,
		MimeType: req.MimeType,
		Data:     req.Data,
		Category: req.Category,
	}
}
