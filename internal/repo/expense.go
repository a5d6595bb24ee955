package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// ExpenseRepo defines the persistence operations for budget entries,
// including the SQL-side aggregates the statistics layer builds on.
type ExpenseRepo interface {
	Create(ctx context.Context, e domain.Expense) (domain.Expense, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error)
	List(ctx context.Context) ([]domain.Expense, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, e domain.Expense) (domain.Expense, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// TotalSpent sums all expense amounts for a trip. Returns 0 for a trip
	// with no expenses.
	TotalSpent(ctx context.Context, tripID uuid.UUID) (float64, error)

	// TotalByCategory sums expense amounts for one category of a trip.
	TotalByCategory(ctx context.Context, tripID uuid.UUID, category string) (float64, error)

	// CategoryTotals returns sum and count per category. A nil tripID
	// aggregates across all trips.
	CategoryTotals(ctx context.Context, tripID *uuid.UUID) ([]domain.CategoryTotal, error)
}

type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, day_plan_id, title, amount, currency, category, spent_on, is_reimbursable, created_at`

func (r *pgExpenseRepo) Create(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, day_plan_id, title, amount, currency, category, spent_on, is_reimbursable)
		VALUES (@trip_id, @day_plan_id, @title, @amount, @currency, @category, @spent_on, @is_reimbursable)
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"trip_id":         e.TripID,
		"day_plan_id":     e.DayPlanID,
		"title":           e.Title,
		"amount":          e.Amount,
		"currency":        e.Currency,
		"category":        e.Category,
		"spent_on":        e.SpentOn,
		"is_reimbursable": e.IsReimbursable,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses WHERE id = @id AND trip_id = @trip_id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) List(ctx context.Context) ([]domain.Expense, error) {
	const q = `SELECT ` + expenseColumns + ` FROM expenses ORDER BY spent_on DESC, created_at`
	return r.queryMany(ctx, "List", q, nil)
}

// ListByTrip orders descending by spend date (most recent first), the one
// store whose listing is newest-first.
func (r *pgExpenseRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY spent_on DESC, created_at`
	return r.queryMany(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgExpenseRepo) Update(ctx context.Context, e domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET day_plan_id     = @day_plan_id,
		    title           = @title,
		    amount          = @amount,
		    currency        = @currency,
		    category        = @category,
		    spent_on        = @spent_on,
		    is_reimbursable = @is_reimbursable
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + expenseColumns

	args := pgx.NamedArgs{
		"id":              e.ID,
		"trip_id":         e.TripID,
		"day_plan_id":     e.DayPlanID,
		"title":           e.Title,
		"amount":          e.Amount,
		"currency":        e.Currency,
		"category":        e.Category,
		"spent_on":        e.SpentOn,
		"is_reimbursable": e.IsReimbursable,
	}

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgExpenseRepo) TotalSpent(ctx context.Context, tripID uuid.UUID) (float64, error) {
	const q = `SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE trip_id = @trip_id`

	var total float64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&total); err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.TotalSpent: %w", err)
	}
	return total, nil
}

func (r *pgExpenseRepo) TotalByCategory(ctx context.Context, tripID uuid.UUID, category string) (float64, error) {
	const q = `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE trip_id = @trip_id AND category = @category`

	var total float64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "category": category}).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("repo.ExpenseRepo.TotalByCategory: %w", err)
	}
	return total, nil
}

func (r *pgExpenseRepo) CategoryTotals(ctx context.Context, tripID *uuid.UUID) ([]domain.CategoryTotal, error) {
	const q = `
		SELECT category, COALESCE(SUM(amount), 0), COUNT(*)
		FROM expenses
		WHERE @trip_id::uuid IS NULL OR trip_id = @trip_id
		GROUP BY category
		ORDER BY category`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.CategoryTotals: %w", err)
	}
	defer rows.Close()

	out := []domain.CategoryTotal{}
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.CategoryTotals: scan: %w", err)
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.CategoryTotals: rows: %w", err)
	}
	return out, nil
}

func (r *pgExpenseRepo) queryMany(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Expense, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.%s: %w", op, err)
	}
	defer rows.Close()

	out := []domain.Expense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.%s: scan: %w", op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.%s: rows: %w", op, err)
	}
	return out, nil
}

func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e         domain.Expense
		id        pgtype.UUID
		tripID    pgtype.UUID
		dayPlanID pgtype.UUID
		spentOn   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &dayPlanID, &e.Title, &e.Amount, &e.Currency, &e.Category, &spentOn, &e.IsReimbursable, &e.CreatedAt)
	if err != nil {
		return domain.Expense{}, mapNotFound(err)
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	if dayPlanID.Valid {
		d := uuid.UUID(dayPlanID.Bytes)
		e.DayPlanID = &d
	}
	e.SpentOn = spentOn.Time
	return e, nil
}
