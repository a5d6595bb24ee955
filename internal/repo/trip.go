package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// TripRepo defines the persistence operations for the Trip aggregate,
// including its embedded ordered destination list.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with
	// DB-generated id, created_at, and updated_at populated). Destinations on
	// the input are ignored; add them via AddDestination.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a trip with its destinations loaded in order.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips with destinations, ordered by start_date descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update overwrites the mutable trip fields and returns the updated record
	// (destinations loaded). Returns domain.ErrNotFound if the trip is absent.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip. Children in every other store cascade at the
	// database level. Returns domain.ErrNotFound if the trip is absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// AddDestination appends a destination at the end of the trip's list and
	// returns the persisted record with its assigned order index.
	AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// UpdateDestination overwrites name, country, and dates, scoped to the
	// destination's trip. Order is changed only via ReorderDestination.
	UpdateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error)

	// DeleteDestination removes a destination and renumbers the remaining
	// siblings so order indexes stay contiguous from 0.
	DeleteDestination(ctx context.Context, tripID, destID uuid.UUID) error

	// ReorderDestination moves a destination to newIndex (clamped to the valid
	// range), shifting siblings, and returns the full reordered list.
	ReorderDestination(ctx context.Context, tripID, destID uuid.UUID, newIndex int) ([]domain.Destination, error)

	// ListDestinations returns the trip's destinations ordered by order_index.
	ListDestinations(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error)
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, start_date, end_date, status, currency, total_budget, created_at, updated_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, start_date, end_date, status, currency, total_budget)
		VALUES (@name, @start_date, @end_date, @status, @currency, @total_budget)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"name":         trip.Name,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"status":       trip.Status,
		"currency":     trip.Currency,
		"total_budget": trip.TotalBudget,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	result.Destinations = []domain.Destination{}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	trip, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}

	trip.Destinations, err = r.ListDestinations(ctx, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips ordered by start_date descending (most recent first).
// Destinations for all trips are loaded with a single second query.
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY start_date DESC, created_at`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		t.Destinations = []domain.Destination{}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}

	const dq = `
		SELECT ` + destinationColumns + `
		FROM destinations
		ORDER BY trip_id, order_index`

	drows, err := r.db.Query(ctx, dq)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: destinations: %w", err)
	}
	defer drows.Close()

	byTrip := make(map[uuid.UUID][]domain.Destination)
	for drows.Next() {
		d, err := scanDestination(drows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan destination: %w", err)
		}
		byTrip[d.TripID] = append(byTrip[d.TripID], d)
	}
	if err := drows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: destination rows: %w", err)
	}

	for i := range trips {
		if ds, ok := byTrip[trips[i].ID]; ok {
			trips[i].Destinations = ds
		}
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name         = @name,
		    start_date   = @start_date,
		    end_date     = @end_date,
		    status       = @status,
		    currency     = @currency,
		    total_budget = @total_budget,
		    updated_at   = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":           trip.ID,
		"name":         trip.Name,
		"start_date":   trip.StartDate,
		"end_date":     trip.EndDate,
		"status":       trip.Status,
		"currency":     trip.Currency,
		"total_budget": trip.TotalBudget,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}

	result.Destinations, err = r.ListDestinations(ctx, result.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip (without destinations).
func scanTrip(s scanner) (domain.Trip, error) {
	var (
		t  domain.Trip
		id pgtype.UUID
		sd pgtype.Date
		ed pgtype.Date
	)

	err := s.Scan(&id, &t.Name, &sd, &ed, &t.Status, &t.Currency, &t.TotalBudget, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Trip{}, mapNotFound(err)
	}

	t.ID = uuid.UUID(id.Bytes)
	t.StartDate = sd.Time
	t.EndDate = ed.Time
	return t, nil
}
