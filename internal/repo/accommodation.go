package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// AccommodationRepo defines the persistence operations for lodging records.
// All write and single-read operations are scoped by tripID to enforce ownership.
type AccommodationRepo interface {
	Create(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error)
	List(ctx context.Context) ([]domain.Accommodation, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Accommodation, error)
	Update(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// TogglePaid flips is_paid in a single statement and returns the updated record.
	TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error)
}

type pgAccommodationRepo struct {
	db db
}

// NewAccommodationRepo constructs an AccommodationRepo backed by the provided db.
func NewAccommodationRepo(db db) AccommodationRepo {
	return &pgAccommodationRepo{db: db}
}

const accommodationColumns = `id, trip_id, destination_id, name, type, check_in, check_out, price, is_paid, created_at`

func (r *pgAccommodationRepo) Create(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	const q = `
		INSERT INTO accommodations (trip_id, destination_id, name, type, check_in, check_out, price, is_paid)
		VALUES (@trip_id, @destination_id, @name, @type, @check_in, @check_out, @price, @is_paid)
		RETURNING ` + accommodationColumns

	args := pgx.NamedArgs{
		"trip_id":        a.TripID,
		"destination_id": a.DestinationID,
		"name":           a.Name,
		"type":           a.Type,
		"check_in":       a.CheckIn,
		"check_out":      a.CheckOut,
		"price":          a.Price,
		"is_paid":        a.IsPaid,
	}

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgAccommodationRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error) {
	const q = `SELECT ` + accommodationColumns + ` FROM accommodations WHERE id = @id AND trip_id = @trip_id`

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgAccommodationRepo) List(ctx context.Context) ([]domain.Accommodation, error) {
	const q = `SELECT ` + accommodationColumns + ` FROM accommodations ORDER BY check_in NULLS LAST, created_at`
	return r.queryMany(ctx, "List", q, nil)
}

// ListByTrip orders by check-in ascending with undated records last, ties by
// insertion order.
func (r *pgAccommodationRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Accommodation, error) {
	const q = `
		SELECT ` + accommodationColumns + `
		FROM accommodations
		WHERE trip_id = @trip_id
		ORDER BY check_in NULLS LAST, created_at`
	return r.queryMany(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgAccommodationRepo) Update(ctx context.Context, a domain.Accommodation) (domain.Accommodation, error) {
	const q = `
		UPDATE accommodations
		SET destination_id = @destination_id,
		    name           = @name,
		    type           = @type,
		    check_in       = @check_in,
		    check_out      = @check_out,
		    price          = @price,
		    is_paid        = @is_paid
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + accommodationColumns

	args := pgx.NamedArgs{
		"id":             a.ID,
		"trip_id":        a.TripID,
		"destination_id": a.DestinationID,
		"name":           a.Name,
		"type":           a.Type,
		"check_in":       a.CheckIn,
		"check_out":      a.CheckOut,
		"price":          a.Price,
		"is_paid":        a.IsPaid,
	}

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgAccommodationRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM accommodations WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.AccommodationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.AccommodationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgAccommodationRepo) TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Accommodation, error) {
	const q = `
		UPDATE accommodations
		SET is_paid = NOT is_paid
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + accommodationColumns

	result, err := scanAccommodation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Accommodation{}, fmt.Errorf("repo.AccommodationRepo.TogglePaid: %w", err)
	}
	return result, nil
}

func (r *pgAccommodationRepo) queryMany(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Accommodation, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.AccommodationRepo.%s: %w", op, err)
	}
	defer rows.Close()

	out := []domain.Accommodation{}
	for rows.Next() {
		a, err := scanAccommodation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.AccommodationRepo.%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AccommodationRepo.%s: rows: %w", op, err)
	}
	return out, nil
}

func scanAccommodation(s scanner) (domain.Accommodation, error) {
	var (
		a      domain.Accommodation
		id     pgtype.UUID
		tripID pgtype.UUID
		destID pgtype.UUID
		in     pgtype.Date
		out    pgtype.Date
	)

	err := s.Scan(&id, &tripID, &destID, &a.Name, &a.Type, &in, &out, &a.Price, &a.IsPaid, &a.CreatedAt)
	if err != nil {
		return domain.Accommodation{}, mapNotFound(err)
	}

	a.ID = uuid.UUID(id.Bytes)
	a.TripID = uuid.UUID(tripID.Bytes)
	if destID.Valid {
		d := uuid.UUID(destID.Bytes)
		a.DestinationID = &d
	}
	if in.Valid {
		t := in.Time
		a.CheckIn = &t
	}
	if out.Valid {
		t := out.Time
		a.CheckOut = &t
	}
	return a, nil
}
