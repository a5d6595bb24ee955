package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// DocumentService implements business logic for trip file attachments.
// Payloads arrive base64-encoded; the service verifies the encoding and
// enforces the configured size limit before anything touches storage.
type DocumentService struct {
	trips     repo.TripRepo
	documents repo.DocumentRepo
	maxBytes  int64
}

// NewDocumentService constructs a DocumentService. maxBytes caps the decoded
// payload size of a single document.
func NewDocumentService(trips repo.TripRepo, documents repo.DocumentRepo, maxBytes int64) *DocumentService {
	return &DocumentService{trips: trips, documents: documents, maxBytes: maxBytes}
}

// Create validates the document, verifies the parent trip exists, then
// persists. SizeBytes is always recomputed from the decoded payload, never
// trusted from the client.
func (s *DocumentService) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	if _, err := s.trips.GetByID(ctx, d.TripID); err != nil {
		return domain.Document{}, fmt.Errorf("service.DocumentService.Create: %w", err)
	}

	size, err := s.validateDocument(d)
	if err != nil {
		return domain.Document{}, err
	}
	d.SizeBytes = size

	result, err := s.documents.Create(ctx, d)
	if err != nil {
		return domain.Document{}, fmt.Errorf("service.DocumentService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single document including its payload, scoped to the trip.
func (s *DocumentService) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Document, error) {
	result, err := s.documents.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("service.DocumentService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's documents without payloads; fetch a single
// document to get its data.
func (s *DocumentService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Document, error) {
	out, err := s.documents.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DocumentService.ListByTrip: %w", err)
	}
	if out == nil {
		return []domain.Document{}, nil
	}
	return out, nil
}

// Update validates and persists changes to a document, re-deriving SizeBytes
// from the (possibly replaced) payload.
func (s *DocumentService) Update(ctx context.Context, d domain.Document) (domain.Document, error) {
	size, err := s.validateDocument(d)
	if err != nil {
		return domain.Document{}, err
	}
	d.SizeBytes = size

	result, err := s.documents.Update(ctx, d)
	if err != nil {
		return domain.Document{}, fmt.Errorf("service.DocumentService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a document, scoped to the given trip.
func (s *DocumentService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.documents.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.DocumentService.Delete: %w", err)
	}
	return nil
}

// validateDocument checks required fields and the payload encoding, returning
// the decoded size.
func (s *DocumentService) validateDocument(d domain.Document) (int64, error) {
	if strings.TrimSpace(d.Name) == "" {
		return 0, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(d.MimeType) == "" {
		return 0, fmt.Errorf("%w: mime_type is required", domain.ErrValidation)
	}
	if d.Data == "" {
		return 0, fmt.Errorf("%w: data is required", domain.ErrValidation)
	}

	decoded, err := base64.StdEncoding.DecodeString(d.Data)
	if err != nil {
		return 0, fmt.Errorf("%w: data is not valid base64", domain.ErrValidation)
	}
	size := int64(len(decoded))
	if s.maxBytes > 0 && size > s.maxBytes {
		return 0, fmt.Errorf("%w: document exceeds the %d byte limit", domain.ErrValidation, s.maxBytes)
	}
	return size, nil
}
