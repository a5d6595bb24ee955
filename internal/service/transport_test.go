package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

// mockTransportRepo is a hand-written test double for repo.TransportRepo.
type mockTransportRepo struct {
	create     func(ctx context.Context, tr domain.Transport) (domain.Transport, error)
	getByID    func(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error)
	list       func(ctx context.Context) ([]domain.Transport, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error)
	update     func(ctx context.Context, tr domain.Transport) (domain.Transport, error)
	delete     func(ctx context.Context, tripID, id uuid.UUID) error
	togglePaid func(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error)
}

func (m *mockTransportRepo) Create(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	return m.create(ctx, tr)
}
func (m *mockTransportRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockTransportRepo) List(ctx context.Context) ([]domain.Transport, error) {
	return m.list(ctx)
}
func (m *mockTransportRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockTransportRepo) Update(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	return m.update(ctx, tr)
}
func (m *mockTransportRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockTransportRepo) TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error) {
	return m.togglePaid(ctx, tripID, id)
}

var _ repo.TransportRepo = (*mockTransportRepo)(nil)

// ---- tests -----------------------------------------------------------------

func validTransport() domain.Transport {
	return domain.Transport{
		TripID:      uuid.New(),
		Mode:        domain.TransportTrain,
		Origin:      "Lisbon",
		Destination: "Porto",
	}
}

func TestTransportService_Create_Valid(t *testing.T) {
	transports := &mockTransportRepo{
		create: func(_ context.Context, tr domain.Transport) (domain.Transport, error) { return tr, nil },
	}
	svc := service.NewTransportService(echoTripRepo(), transports)

	got, err := svc.Create(context.Background(), validTransport())

	require.NoError(t, err)
	assert.Equal(t, domain.TransportTrain, got.Mode)
}

func TestTransportService_Create_MissingEndpoints(t *testing.T) {
	svc := service.NewTransportService(echoTripRepo(), &mockTransportRepo{})

	tr := validTransport()
	tr.Destination = " "

	_, err := svc.Create(context.Background(), tr)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransportService_Create_ArrivalBeforeDeparture(t *testing.T) {
	svc := service.NewTransportService(echoTripRepo(), &mockTransportRepo{})

	tr := validTransport()
	departs := time.Date(2026, 6, 2, 9, 0, 0, 0, time.UTC)
	arrives := departs.Add(-time.Hour)
	tr.DepartsAt = &departs
	tr.ArrivesAt = &arrives

	_, err := svc.Create(context.Background(), tr)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransportService_TogglePaid_NotFound(t *testing.T) {
	transports := &mockTransportRepo{
		togglePaid: func(_ context.Context, _, _ uuid.UUID) (domain.Transport, error) {
			return domain.Transport{}, domain.ErrNotFound
		},
	}
	svc := service.NewTransportService(echoTripRepo(), transports)

	_, err := svc.TogglePaid(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
