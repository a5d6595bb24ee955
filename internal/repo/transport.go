package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// TransportRepo defines the persistence operations for travel legs.
type TransportRepo interface {
	Create(ctx context.Context, tr domain.Transport) (domain.Transport, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error)
	List(ctx context.Context) ([]domain.Transport, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error)
	Update(ctx context.Context, tr domain.Transport) (domain.Transport, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// TogglePaid flips is_paid in a single statement and returns the updated record.
	TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error)
}

type pgTransportRepo struct {
	db db
}

// NewTransportRepo constructs a TransportRepo backed by the provided db.
func NewTransportRepo(db db) TransportRepo {
	return &pgTransportRepo{db: db}
}

const transportColumns = `id, trip_id, mode, origin, destination, departs_at, arrives_at, price, is_paid, created_at`

func (r *pgTransportRepo) Create(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	const q = `
		INSERT INTO transports (trip_id, mode, origin, destination, departs_at, arrives_at, price, is_paid)
		VALUES (@trip_id, @mode, @origin, @destination, @departs_at, @arrives_at, @price, @is_paid)
		RETURNING ` + transportColumns

	args := pgx.NamedArgs{
		"trip_id":     tr.TripID,
		"mode":        tr.Mode,
		"origin":      tr.Origin,
		"destination": tr.Destination,
		"departs_at":  tr.DepartsAt,
		"arrives_at":  tr.ArrivesAt,
		"price":       tr.Price,
		"is_paid":     tr.IsPaid,
	}

	result, err := scanTransport(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTransportRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error) {
	const q = `SELECT ` + transportColumns + ` FROM transports WHERE id = @id AND trip_id = @trip_id`

	result, err := scanTransport(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTransportRepo) List(ctx context.Context) ([]domain.Transport, error) {
	const q = `SELECT ` + transportColumns + ` FROM transports ORDER BY departs_at NULLS LAST, created_at`
	return r.queryMany(ctx, "List", q, nil)
}

// ListByTrip orders by departure ascending with undated legs last, ties by
// insertion order.
func (r *pgTransportRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Transport, error) {
	const q = `
		SELECT ` + transportColumns + `
		FROM transports
		WHERE trip_id = @trip_id
		ORDER BY departs_at NULLS LAST, created_at`
	return r.queryMany(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgTransportRepo) Update(ctx context.Context, tr domain.Transport) (domain.Transport, error) {
	const q = `
		UPDATE transports
		SET mode        = @mode,
		    origin      = @origin,
		    destination = @destination,
		    departs_at  = @departs_at,
		    arrives_at  = @arrives_at,
		    price       = @price,
		    is_paid     = @is_paid
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + transportColumns

	args := pgx.NamedArgs{
		"id":          tr.ID,
		"trip_id":     tr.TripID,
		"mode":        tr.Mode,
		"origin":      tr.Origin,
		"destination": tr.Destination,
		"departs_at":  tr.DepartsAt,
		"arrives_at":  tr.ArrivesAt,
		"price":       tr.Price,
		"is_paid":     tr.IsPaid,
	}

	result, err := scanTransport(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTransportRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM transports WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.TransportRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TransportRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTransportRepo) TogglePaid(ctx context.Context, tripID, id uuid.UUID) (domain.Transport, error) {
	const q = `
		UPDATE transports
		SET is_paid = NOT is_paid
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + transportColumns

	result, err := scanTransport(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Transport{}, fmt.Errorf("repo.TransportRepo.TogglePaid: %w", err)
	}
	return result, nil
}

func (r *pgTransportRepo) queryMany(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Transport, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.TransportRepo.%s: %w", op, err)
	}
	defer rows.Close()

	out := []domain.Transport{}
	for rows.Next() {
		tr, err := scanTransport(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TransportRepo.%s: scan: %w", op, err)
		}
		out = append(out, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TransportRepo.%s: rows: %w", op, err)
	}
	return out, nil
}

func scanTransport(s scanner) (domain.Transport, error) {
	var (
		tr      domain.Transport
		id      pgtype.UUID
		tripID  pgtype.UUID
		departs pgtype.Timestamptz
		arrives pgtype.Timestamptz
	)

	err := s.Scan(&id, &tripID, &tr.Mode, &tr.Origin, &tr.Destination, &departs, &arrives, &tr.Price, &tr.IsPaid, &tr.CreatedAt)
	if err != nil {
		return domain.Transport{}, mapNotFound(err)
	}

	tr.ID = uuid.UUID(id.Bytes)
	tr.TripID = uuid.UUID(tripID.Bytes)
	if departs.Valid {
		t := departs.Time
		tr.DepartsAt = &t
	}
	if arrives.Valid {
		t := arrives.Time
		tr.ArrivesAt = &t
	}
	return tr, nil
}
