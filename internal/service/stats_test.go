package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

func statsFixture() (trips []domain.Trip, accs []domain.Accommodation, trs []domain.Transport, exps []domain.Expense, tasks []domain.Task, plans []domain.DayPlan) {
	tripID := uuid.New()
	past := time.Now().UTC().AddDate(0, 0, -3)

	trips = []domain.Trip{{
		ID:   tripID,
		Name: "Iberia Loop",
		Destinations: []domain.Destination{
			{Name: "Lisbon", Country: "Portugal", OrderIndex: 0},
			{Name: "Porto", Country: "Portugal", OrderIndex: 1},
			{Name: "Madrid", Country: "Spain", OrderIndex: 2},
		},
	}}
	accs = []domain.Accommodation{
		{TripID: tripID, Name: "Casa do Rio", Type: domain.AccommodationHotel},
		{TripID: tripID, Name: "Hilltop Hostel", Type: domain.AccommodationHostel},
		{TripID: tripID, Name: "Gran Via Hotel", Type: domain.AccommodationHotel},
	}
	trs = []domain.Transport{
		{TripID: tripID, Mode: domain.TransportTrain, Origin: "Lisbon", Destination: "Porto"},
		{TripID: tripID, Mode: domain.TransportFlight, Origin: "Porto", Destination: "Madrid"},
	}
	exps = []domain.Expense{
		{TripID: tripID, Title: "Dinner", Amount: 40, Category: "food"},
		{TripID: tripID, Title: "Lunch", Amount: 20, Category: "food"},
		{TripID: tripID, Title: "Metro", Amount: 10, Category: "transport"},
	}
	tasks = []domain.Task{
		{TripID: tripID, Title: "Book flights", Status: domain.TaskCompleted},
		{TripID: tripID, Title: "Renew passport", Status: domain.TaskOpen, Deadline: &past},
		{TripID: tripID, Title: "Buy adapter", Status: domain.TaskOpen},
	}
	plans = []domain.DayPlan{{
		TripID:   tripID,
		PlanDate: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		Activities: []domain.DayActivity{
			{Name: "Belém Tower", Category: domain.ActivitySightseeing},
			{Name: "Time Out Market", Category: domain.ActivityFood},
			{Name: "Alfama walk", Category: domain.ActivitySightseeing},
		},
	}}
	return
}

func TestStatsService_Compute_Global(t *testing.T) {
	trips, accs, trs, exps, tasks, plans := statsFixture()

	svc := service.NewStatsService(
		&mockTripRepo{list: func(_ context.Context) ([]domain.Trip, error) { return trips, nil }},
		&mockAccommodationRepo{list: func(_ context.Context) ([]domain.Accommodation, error) { return accs, nil }},
		&mockTransportRepo{list: func(_ context.Context) ([]domain.Transport, error) { return trs, nil }},
		&mockExpenseRepo{list: func(_ context.Context) ([]domain.Expense, error) { return exps, nil }},
		&mockTaskRepo{list: func(_ context.Context) ([]domain.Task, error) { return tasks, nil }},
		&mockDayPlanRepo{list: func(_ context.Context) ([]domain.DayPlan, error) { return plans, nil }},
	)

	got, err := svc.Compute(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 1, got.TripCount)
	assert.Equal(t, 3, got.DestinationCount)
	// Countries are deduplicated and sorted.
	assert.Equal(t, []string{"Portugal", "Spain"}, got.Countries)

	assert.Equal(t, 70.0, got.TotalSpent)
	assert.Equal(t, 60.0, got.SpendByCategory["food"])
	assert.Equal(t, 30.0, got.AvgSpendByCategory["food"])
	assert.Equal(t, 10.0, got.AvgSpendByCategory["transport"])

	assert.Equal(t, 2, got.AccommodationsByType["hotel"])
	assert.Equal(t, 1, got.AccommodationsByType["hostel"])
	assert.Equal(t, 1, got.TransportsByMode["train"])
	assert.Equal(t, 2, got.ActivitiesByCategory["sightseeing"])

	assert.Equal(t, 2, got.TasksOpen)
	assert.Equal(t, 1, got.TasksCompleted)
	assert.Equal(t, 1, got.TasksOverdue)
}

func TestStatsService_Compute_SingleTrip_NotFound(t *testing.T) {
	svc := service.NewStatsService(
		&mockTripRepo{getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		}},
		&mockAccommodationRepo{},
		&mockTransportRepo{},
		&mockExpenseRepo{},
		&mockTaskRepo{},
		&mockDayPlanRepo{},
	)

	id := uuid.New()
	_, err := svc.Compute(context.Background(), &id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStatsService_Compute_EmptyDatabase(t *testing.T) {
	svc := service.NewStatsService(
		&mockTripRepo{list: func(_ context.Context) ([]domain.Trip, error) { return nil, nil }},
		&mockAccommodationRepo{list: func(_ context.Context) ([]domain.Accommodation, error) { return nil, nil }},
		&mockTransportRepo{list: func(_ context.Context) ([]domain.Transport, error) { return nil, nil }},
		&mockExpenseRepo{list: func(_ context.Context) ([]domain.Expense, error) { return nil, nil }},
		&mockTaskRepo{list: func(_ context.Context) ([]domain.Task, error) { return nil, nil }},
		&mockDayPlanRepo{list: func(_ context.Context) ([]domain.DayPlan, error) { return nil, nil }},
	)

	got, err := svc.Compute(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, got.TripCount)
	assert.NotNil(t, got.Countries)
	assert.Empty(t, got.Countries)
	assert.Zero(t, got.TotalSpent)
}
