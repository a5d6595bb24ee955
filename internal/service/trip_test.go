package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field; set only the ones your test needs.
type mockTripRepo struct {
	create             func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID            func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	list               func(ctx context.Context) ([]domain.Trip, error)
	update             func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete             func(ctx context.Context, id uuid.UUID) error
	addDestination     func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	updateDestination  func(ctx context.Context, d domain.Destination) (domain.Destination, error)
	deleteDestination  func(ctx context.Context, tripID, destID uuid.UUID) error
	reorderDestination func(ctx context.Context, tripID, destID uuid.UUID, newIndex int) ([]domain.Destination, error)
	listDestinations   func(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	return m.list(ctx)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockTripRepo) AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.addDestination(ctx, d)
}
func (m *mockTripRepo) UpdateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	return m.updateDestination(ctx, d)
}
func (m *mockTripRepo) DeleteDestination(ctx context.Context, tripID, destID uuid.UUID) error {
	return m.deleteDestination(ctx, tripID, destID)
}
func (m *mockTripRepo) ReorderDestination(ctx context.Context, tripID, destID uuid.UUID, newIndex int) ([]domain.Destination, error) {
	return m.reorderDestination(ctx, tripID, destID, newIndex)
}
func (m *mockTripRepo) ListDestinations(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	return m.listDestinations(ctx, tripID)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validTrip() domain.Trip {
	return domain.Trip{
		Name:      "Summer in Portugal",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.TripPlanning,
		Currency:  "EUR",
	}
}

// echoTripRepo echoes writes back and finds every trip, for tests that only
// care about validation, not persistence.
func echoTripRepo() *mockTripRepo {
	return &mockTripRepo{
		create:  func(_ context.Context, trip domain.Trip) (domain.Trip, error) { return trip, nil },
		update:  func(_ context.Context, trip domain.Trip) (domain.Trip, error) { return trip, nil },
		getByID: func(_ context.Context, id uuid.UUID) (domain.Trip, error) { return validTrip(), nil },
	}
}

func noAtomic() repo.Atomic {
	return &fakeAtomic{}
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	got, err := svc.Create(context.Background(), validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Summer in Portugal", got.Name)
}

func TestTripService_Create_Defaults(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	trip := validTrip()
	trip.Status = ""
	trip.Currency = ""

	got, err := svc.Create(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, domain.TripPlanning, got.Status)
	assert.Equal(t, "EUR", got.Currency)
}

func TestTripService_Create_MissingName(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	trip := validTrip()
	trip.Name = "   " // whitespace-only counts as empty

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	trip := validTrip()
	trip.EndDate = trip.StartDate.AddDate(0, 0, -1)

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_SameDayTripIsValid(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	trip := validTrip()
	trip.EndDate = trip.StartDate

	_, err := svc.Create(context.Background(), trip)

	assert.NoError(t, err)
}

func TestTripService_Create_UnknownStatus(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	trip := validTrip()
	trip.Status = "cancelled"

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_NegativeBudget(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	trip := validTrip()
	trip.TotalBudget = -1

	_, err := svc.Create(context.Background(), trip)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	r := echoTripRepo()
	r.create = func(_ context.Context, _ domain.Trip) (domain.Trip, error) {
		return domain.Trip{}, repoErr
	}
	svc := service.NewTripService(r, noAtomic())

	_, err := svc.Create(context.Background(), validTrip())

	assert.ErrorIs(t, err, repoErr)
}

// ---- Update / completion ---------------------------------------------------

func TestTripService_Update_NoStatusChange_NoGamification(t *testing.T) {
	gam := newMemGamificationRepo()
	r := echoTripRepo()
	svc := service.NewTripService(r, &fakeAtomic{repos: repo.Repos{Trips: r, Gamification: gam}})

	trip := validTrip()
	trip.ID = uuid.New()
	trip.Name = "Renamed"

	got, unlocked, err := svc.Update(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Empty(t, unlocked)
	assert.Zero(t, gam.stats.TripsCompleted)
}

func TestTripService_Update_TransitionToCompleted_RecordsActivity(t *testing.T) {
	gam := newMemGamificationRepo()
	r := echoTripRepo()
	svc := service.NewTripService(r, &fakeAtomic{repos: repo.Repos{Trips: r, Gamification: gam}})

	trip := validTrip()
	trip.ID = uuid.New()
	trip.Status = domain.TripCompleted

	got, unlocked, err := svc.Update(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, domain.TripCompleted, got.Status)
	assert.Equal(t, 1, gam.stats.TripsCompleted)
	assert.Equal(t, 1, gam.stats.CurrentStreak)

	require.Len(t, unlocked, 1)
	assert.Equal(t, "first-trip", unlocked[0].ID)
	assert.Equal(t, 50, gam.stats.TotalPoints)
}

func TestTripService_Update_AlreadyCompleted_NotCountedTwice(t *testing.T) {
	gam := newMemGamificationRepo()
	completed := validTrip()
	completed.Status = domain.TripCompleted

	r := echoTripRepo()
	r.getByID = func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return completed, nil }
	svc := service.NewTripService(r, &fakeAtomic{repos: repo.Repos{Trips: r, Gamification: gam}})

	trip := completed
	trip.ID = uuid.New()
	trip.Name = "Still Completed"

	_, unlocked, err := svc.Update(context.Background(), trip)

	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.Zero(t, gam.stats.TripsCompleted)
}

// ---- GetByID / List / Delete -----------------------------------------------

func TestTripService_GetByID_NotFound(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r, noAtomic())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_List_Empty(t *testing.T) {
	r := &mockTripRepo{
		list: func(_ context.Context) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(r, noAtomic())

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTripService_Delete_NotFound(t *testing.T) {
	r := &mockTripRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	svc := service.NewTripService(r, noAtomic())

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- destinations ----------------------------------------------------------

func TestTripService_AddDestination_UnknownTrip(t *testing.T) {
	r := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(r, noAtomic())

	_, err := svc.AddDestination(context.Background(), domain.Destination{TripID: uuid.New(), Name: "Lisbon"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_AddDestination_MissingName(t *testing.T) {
	svc := service.NewTripService(echoTripRepo(), noAtomic())

	_, err := svc.AddDestination(context.Background(), domain.Destination{TripID: uuid.New()})

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_ReorderDestination_RunsInTransaction(t *testing.T) {
	tripID := uuid.New()
	destID := uuid.New()
	want := []domain.Destination{
		{ID: destID, TripID: tripID, Name: "Porto", OrderIndex: 0},
		{ID: uuid.New(), TripID: tripID, Name: "Lisbon", OrderIndex: 1},
	}

	r := &mockTripRepo{
		reorderDestination: func(_ context.Context, gotTrip, gotDest uuid.UUID, newIndex int) ([]domain.Destination, error) {
			assert.Equal(t, tripID, gotTrip)
			assert.Equal(t, destID, gotDest)
			assert.Equal(t, 0, newIndex)
			return want, nil
		},
	}
	svc := service.NewTripService(r, &fakeAtomic{repos: repo.Repos{Trips: r}})

	got, err := svc.ReorderDestination(context.Background(), tripID, destID, 0)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
