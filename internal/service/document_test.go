package service_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

// mockDocumentRepo is a hand-written test double for repo.DocumentRepo.
type mockDocumentRepo struct {
	create     func(ctx context.Context, d domain.Document) (domain.Document, error)
	getByID    func(ctx context.Context, tripID, id uuid.UUID) (domain.Document, error)
	list       func(ctx context.Context) ([]domain.Document, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Document, error)
	update     func(ctx context.Context, d domain.Document) (domain.Document, error)
	delete     func(ctx context.Context, tripID, id uuid.UUID) error
}

func (m *mockDocumentRepo) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	return m.create(ctx, d)
}
func (m *mockDocumentRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Document, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockDocumentRepo) List(ctx context.Context) ([]domain.Document, error) {
	return m.list(ctx)
}
func (m *mockDocumentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Document, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockDocumentRepo) Update(ctx context.Context, d domain.Document) (domain.Document, error) {
	return m.update(ctx, d)
}
func (m *mockDocumentRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}

var _ repo.DocumentRepo = (*mockDocumentRepo)(nil)

// ---- tests -----------------------------------------------------------------

func validDocument() domain.Document {
	return domain.Document{
		TripID:   uuid.New(),
		Name:     "boarding-pass.pdf",
		MimeType: "application/pdf",
		Data:     base64.StdEncoding.EncodeToString([]byte("pdf bytes")),
	}
}

func TestDocumentService_Create_ComputesSize(t *testing.T) {
	docs := &mockDocumentRepo{
		create: func(_ context.Context, d domain.Document) (domain.Document, error) { return d, nil },
	}
	svc := service.NewDocumentService(echoTripRepo(), docs, 1<<20)

	doc := validDocument()
	doc.SizeBytes = 99999 // client-supplied size is ignored

	got, err := svc.Create(context.Background(), doc)

	require.NoError(t, err)
	assert.Equal(t, int64(len("pdf bytes")), got.SizeBytes)
}

func TestDocumentService_Create_InvalidBase64(t *testing.T) {
	svc := service.NewDocumentService(echoTripRepo(), &mockDocumentRepo{}, 1<<20)

	doc := validDocument()
	doc.Data = "not base64!!!"

	_, err := svc.Create(context.Background(), doc)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentService_Create_TooLarge(t *testing.T) {
	svc := service.NewDocumentService(echoTripRepo(), &mockDocumentRepo{}, 4)

	_, err := svc.Create(context.Background(), validDocument())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDocumentService_Create_MissingMimeType(t *testing.T) {
	svc := service.NewDocumentService(echoTripRepo(), &mockDocumentRepo{}, 1<<20)

	doc := validDocument()
	doc.MimeType = ""

	_, err := svc.Create(context.Background(), doc)

	assert.ErrorIs(t, err, domain.ErrValidation)
}
