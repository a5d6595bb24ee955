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

// mockExpenseRepo is a hand-written test double for repo.ExpenseRepo.
type mockExpenseRepo struct {
	create          func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	getByID         func(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error)
	list            func(ctx context.Context) ([]domain.Expense, error)
	listByTrip      func(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	update          func(ctx context.Context, e domain.Expense) (domain.Expense, error)
	delete          func(ctx context.Context, tripID, id uuid.UUID) error
	totalSpent      func(ctx context.Context, tripID uuid.UUID) (float64, error)
	totalByCategory func(ctx context.Context, tripID uuid.UUID, category string) (float64, error)
	categoryTotals  func(ctx context.Context, tripID *uuid.UUID) ([]domain.CategoryTotal, error)
}

func (m *mockExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.create(ctx, e)
}
func (m *mockExpenseRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error) {
	return m.getByID(ctx, tripID, id)
}
func (m *mockExpenseRepo) List(ctx context.Context) ([]domain.Expense, error) {
	return m.list(ctx)
}
func (m *mockExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	return m.update(ctx, e)
}
func (m *mockExpenseRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	return m.delete(ctx, tripID, id)
}
func (m *mockExpenseRepo) TotalSpent(ctx context.Context, tripID uuid.UUID) (float64, error) {
	return m.totalSpent(ctx, tripID)
}
func (m *mockExpenseRepo) TotalByCategory(ctx context.Context, tripID uuid.UUID, category string) (float64, error) {
	return m.totalByCategory(ctx, tripID, category)
}
func (m *mockExpenseRepo) CategoryTotals(ctx context.Context, tripID *uuid.UUID) ([]domain.CategoryTotal, error) {
	return m.categoryTotals(ctx, tripID)
}

var _ repo.ExpenseRepo = (*mockExpenseRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func validExpense() domain.Expense {
	return domain.Expense{
		TripID:   uuid.New(),
		Title:    "Pastéis de nata",
		Amount:   6.50,
		Currency: "EUR",
		Category: domain.ExpenseCategoryFood,
		SpentOn:  time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC),
	}
}

func echoExpenseRepo() *mockExpenseRepo {
	return &mockExpenseRepo{
		create: func(_ context.Context, e domain.Expense) (domain.Expense, error) {
			e.ID = uuid.New()
			return e, nil
		},
		update: func(_ context.Context, e domain.Expense) (domain.Expense, error) { return e, nil },
	}
}

// ---- Create ----------------------------------------------------------------

func TestExpenseService_Create_RecordsActivity(t *testing.T) {
	gam := newMemGamificationRepo()
	exp := echoExpenseRepo()
	svc := service.NewExpenseService(echoTripRepo(), exp,
		&fakeAtomic{repos: repo.Repos{Expenses: exp, Gamification: gam}})

	got, unlocked, err := svc.Create(context.Background(), validExpense())

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, 1, gam.stats.BudgetEntries)
	assert.Equal(t, 1, gam.stats.CurrentStreak)

	require.Len(t, unlocked, 1)
	assert.Equal(t, "first-expense", unlocked[0].ID)
	assert.Equal(t, 10, gam.stats.TotalPoints)
}

func TestExpenseService_Create_SecondEntrySameDay_NoNewUnlock(t *testing.T) {
	gam := newMemGamificationRepo()
	exp := echoExpenseRepo()
	svc := service.NewExpenseService(echoTripRepo(), exp,
		&fakeAtomic{repos: repo.Repos{Expenses: exp, Gamification: gam}})

	_, _, err := svc.Create(context.Background(), validExpense())
	require.NoError(t, err)

	_, unlocked, err := svc.Create(context.Background(), validExpense())
	require.NoError(t, err)

	assert.Empty(t, unlocked)
	assert.Equal(t, 2, gam.stats.BudgetEntries)
	// Two activities on the same calendar day count as a one-day streak.
	assert.Equal(t, 1, gam.stats.CurrentStreak)
}

func TestExpenseService_Create_UnknownTrip(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewExpenseService(trips, echoExpenseRepo(), noAtomic())

	_, _, err := svc.Create(context.Background(), validExpense())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExpenseService_Create_Invalid(t *testing.T) {
	svc := service.NewExpenseService(echoTripRepo(), echoExpenseRepo(), noAtomic())

	cases := map[string]func(*domain.Expense){
		"missing title":   func(e *domain.Expense) { e.Title = "  " },
		"zero amount":     func(e *domain.Expense) { e.Amount = 0 },
		"negative amount": func(e *domain.Expense) { e.Amount = -5 },
		"bad currency":    func(e *domain.Expense) { e.Currency = "EURO" },
		"missing date":    func(e *domain.Expense) { e.SpentOn = time.Time{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := validExpense()
			mutate(&e)
			_, _, err := svc.Create(context.Background(), e)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ---- Delete ----------------------------------------------------------------

func TestExpenseService_Delete_DoesNotTouchGamification(t *testing.T) {
	gam := newMemGamificationRepo()
	gam.stats.BudgetEntries = 5

	exp := echoExpenseRepo()
	exp.delete = func(_ context.Context, _, _ uuid.UUID) error { return nil }
	svc := service.NewExpenseService(echoTripRepo(), exp,
		&fakeAtomic{repos: repo.Repos{Expenses: exp, Gamification: gam}})

	require.NoError(t, svc.Delete(context.Background(), uuid.New(), uuid.New()))

	// Counters only move forward; deleting an expense never rolls them back.
	assert.Equal(t, 5, gam.stats.BudgetEntries)
}

// ---- Summarize -------------------------------------------------------------

func TestExpenseService_Summarize(t *testing.T) {
	tripID := uuid.New()
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			trip := validTrip()
			trip.ID = tripID
			trip.TotalBudget = 800
			return trip, nil
		},
	}
	exp := &mockExpenseRepo{
		totalSpent: func(_ context.Context, _ uuid.UUID) (float64, error) { return 500, nil },
		categoryTotals: func(_ context.Context, id *uuid.UUID) ([]domain.CategoryTotal, error) {
			require.NotNil(t, id)
			assert.Equal(t, tripID, *id)
			return []domain.CategoryTotal{
				{Category: "food", Total: 300, Count: 10},
				{Category: "transport", Total: 200, Count: 4},
			}, nil
		},
	}
	svc := service.NewExpenseService(trips, exp, noAtomic())

	got, err := svc.Summarize(context.Background(), tripID)

	require.NoError(t, err)
	assert.Equal(t, 500.0, got.TotalSpent)
	assert.Equal(t, 800.0, got.Budget)
	assert.Equal(t, 300.0, got.Remaining)
	assert.Len(t, got.ByCategory, 2)
}

func TestExpenseService_SummarizeCategory(t *testing.T) {
	tripID := uuid.New()
	exp := &mockExpenseRepo{
		totalByCategory: func(_ context.Context, id uuid.UUID, category string) (float64, error) {
			assert.Equal(t, tripID, id)
			assert.Equal(t, domain.ExpenseCategoryFood, category)
			return 210, nil
		},
	}
	svc := service.NewExpenseService(echoTripRepo(), exp, noAtomic())

	got, err := svc.SummarizeCategory(context.Background(), tripID, domain.ExpenseCategoryFood)

	require.NoError(t, err)
	assert.Equal(t, domain.ExpenseCategoryFood, got.Category)
	assert.Equal(t, 210.0, got.TotalSpent)
}

func TestExpenseService_SummarizeCategory_UnknownTrip(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewExpenseService(trips, echoExpenseRepo(), noAtomic())

	_, err := svc.SummarizeCategory(context.Background(), uuid.New(), domain.ExpenseCategoryFood)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
