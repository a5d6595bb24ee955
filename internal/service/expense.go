package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// ExpenseService implements business logic for budget entries. Creating an
// expense counts as a qualifying activity for gamification.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
	atomic   repo.Atomic
}

// NewExpenseService constructs an ExpenseService.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo, atomic repo.Atomic) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses, atomic: atomic}
}

// Create validates and persists a new expense. The insert and the gamification
// update (budgetEntries counter, streak, achievement evaluation) commit in a
// single transaction; newly unlocked achievements are returned.
func (s *ExpenseService) Create(ctx context.Context, e domain.Expense) (domain.Expense, []gamify.Achievement, error) {
	if _, err := s.trips.GetByID(ctx, e.TripID); err != nil {
		return domain.Expense{}, nil, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if e.Currency == "" {
		e.Currency = "EUR"
	}
	if e.Category == "" {
		e.Category = domain.ExpenseCategoryOther
	}
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, nil, err
	}

	var (
		result   domain.Expense
		unlocked []gamify.Achievement
	)
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		var err error
		result, err = r.Expenses.Create(ctx, e)
		if err != nil {
			return err
		}
		unlocked, err = recordActivity(ctx, r, domain.CounterBudgetEntries, time.Now().UTC())
		return err
	})
	if err != nil {
		return domain.Expense{}, nil, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, unlocked, nil
}

// GetByID returns a single expense, scoped to the given trip.
func (s *ExpenseService) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error) {
	result, err := s.expenses.GetByID(ctx, tripID, id)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip returns a trip's expenses, most recent spend date first.
func (s *ExpenseService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	out, err := s.expenses.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if out == nil {
		return []domain.Expense{}, nil
	}
	return out, nil
}

// Update validates and persists changes to an expense. Edits do not count as
// a new gamification activity.
func (s *ExpenseService) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	if err := validateExpense(e); err != nil {
		return domain.Expense{}, err
	}

	result, err := s.expenses.Update(ctx, e)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an expense. The budgetEntries counter is not decremented;
// gamification counters only ever move forward.
func (s *ExpenseService) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	if err := s.expenses.Delete(ctx, tripID, id); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// Summary is the budget read model for a trip: total spend, the remaining
// budget against the trip's own total, and per-category breakdown.
type ExpenseSummary struct {
	TotalSpent float64                `json:"total_spent"`
	Budget     float64                `json:"budget"`
	Remaining  float64                `json:"remaining"`
	ByCategory []domain.CategoryTotal `json:"by_category"`
}

// Summarize computes the budget summary for one trip.
func (s *ExpenseService) Summarize(ctx context.Context, tripID uuid.UUID) (ExpenseSummary, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summarize: %w", err)
	}

	total, err := s.expenses.TotalSpent(ctx, tripID)
	if err != nil {
		return ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summarize: %w", err)
	}

	byCat, err := s.expenses.CategoryTotals(ctx, &tripID)
	if err != nil {
		return ExpenseSummary{}, fmt.Errorf("service.ExpenseService.Summarize: %w", err)
	}

	return ExpenseSummary{
		TotalSpent: total,
		Budget:     trip.TotalBudget,
		Remaining:  trip.TotalBudget - total,
		ByCategory: byCat,
	}, nil
}

// CategorySummary is the spend total for a single category of a trip.
type CategorySummary struct {
	Category   string  `json:"category"`
	TotalSpent float64 `json:"total_spent"`
}

// SummarizeCategory computes the total spent in one category of a trip.
// An unknown category is not an error; it simply totals zero.
func (s *ExpenseService) SummarizeCategory(ctx context.Context, tripID uuid.UUID, category string) (CategorySummary, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return CategorySummary{}, fmt.Errorf("service.ExpenseService.SummarizeCategory: %w", err)
	}

	total, err := s.expenses.TotalByCategory(ctx, tripID, category)
	if err != nil {
		return CategorySummary{}, fmt.Errorf("service.ExpenseService.SummarizeCategory: %w", err)
	}
	return CategorySummary{Category: category, TotalSpent: total}, nil
}

func validateExpense(e domain.Expense) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if len(e.Currency) != 3 {
		return fmt.Errorf("%w: currency must be a 3-letter code", domain.ErrValidation)
	}
	if e.SpentOn.IsZero() {
		return fmt.Errorf("%w: spent_on is required", domain.ErrValidation)
	}
	return nil
}
