package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// TaskRepo defines the persistence operations for trip to-do items.
type TaskRepo interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// ToggleStatus flips open/completed and sets or clears completed_at in
	// the same statement, so status and timestamp can never disagree.
	ToggleStatus(ctx context.Context, tripID, id uuid.UUID, now time.Time) (domain.Task, error)

	// ListOverdue returns open tasks whose deadline lies before now,
	// most-overdue first.
	ListOverdue(ctx context.Context, tripID uuid.UUID, now time.Time) ([]domain.Task, error)
}

type pgTaskRepo struct {
	db db
}

// NewTaskRepo constructs a TaskRepo backed by the provided db.
func NewTaskRepo(db db) TaskRepo {
	return &pgTaskRepo{db: db}
}

const taskColumns = `id, trip_id, title, status, priority, category, deadline, completed_at, created_at`

func (r *pgTaskRepo) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	const q = `
		INSERT INTO tasks (trip_id, title, status, priority, category, deadline)
		VALUES (@trip_id, @title, @status, @priority, @category, @deadline)
		RETURNING ` + taskColumns

	args := pgx.NamedArgs{
		"trip_id":  t.TripID,
		"title":    t.Title,
		"status":   t.Status,
		"priority": t.Priority,
		"category": t.Category,
		"deadline": t.Deadline,
	}

	result, err := scanTask(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTaskRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE id = @id AND trip_id = @trip_id`

	result, err := scanTask(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTaskRepo) List(ctx context.Context) ([]domain.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks ORDER BY deadline NULLS LAST, created_at`
	return r.queryMany(ctx, "List", q, nil)
}

// ListByTrip orders by deadline ascending; tasks without a deadline sort last,
// ties by insertion order.
func (r *pgTaskRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Task, error) {
	const q = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE trip_id = @trip_id
		ORDER BY deadline NULLS LAST, created_at`
	return r.queryMany(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgTaskRepo) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	const q = `
		UPDATE tasks
		SET title    = @title,
		    priority = @priority,
		    category = @category,
		    deadline = @deadline
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + taskColumns

	args := pgx.NamedArgs{
		"id":       t.ID,
		"trip_id":  t.TripID,
		"title":    t.Title,
		"priority": t.Priority,
		"category": t.Category,
		"deadline": t.Deadline,
	}

	result, err := scanTask(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTaskRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM tasks WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.TaskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TaskRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTaskRepo) ToggleStatus(ctx context.Context, tripID, id uuid.UUID, now time.Time) (domain.Task, error) {
	const q = `
		UPDATE tasks
		SET status       = CASE WHEN status = 'open' THEN 'completed' ELSE 'open' END,
		    completed_at = CASE WHEN status = 'open' THEN @now ELSE NULL END
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + taskColumns

	result, err := scanTask(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID, "now": now}))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.ToggleStatus: %w", err)
	}
	return result, nil
}

func (r *pgTaskRepo) ListOverdue(ctx context.Context, tripID uuid.UUID, now time.Time) ([]domain.Task, error) {
	const q = `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE trip_id = @trip_id AND status = 'open' AND deadline < @now
		ORDER BY deadline, created_at`
	return r.queryMany(ctx, "ListOverdue", q, pgx.NamedArgs{"trip_id": tripID, "now": now})
}

func (r *pgTaskRepo) queryMany(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Task, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.TaskRepo.%s: %w", op, err)
	}
	defer rows.Close()

	out := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TaskRepo.%s: scan: %w", op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TaskRepo.%s: rows: %w", op, err)
	}
	return out, nil
}

func scanTask(s scanner) (domain.Task, error) {
	var (
		t         domain.Task
		id        pgtype.UUID
		tripID    pgtype.UUID
		deadline  pgtype.Timestamptz
		completed pgtype.Timestamptz
	)

	err := s.Scan(&id, &tripID, &t.Title, &t.Status, &t.Priority, &t.Category, &deadline, &completed, &t.CreatedAt)
	if err != nil {
		return domain.Task{}, mapNotFound(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.TripID = uuid.UUID(tripID.Bytes)
	if deadline.Valid {
		d := deadline.Time
		t.Deadline = &d
	}
	if completed.Valid {
		c := completed.Time
		t.CompletedAt = &c
	}
	return t, nil
}
