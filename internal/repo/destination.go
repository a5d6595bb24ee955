package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// Destination methods of pgTripRepo. Destinations are part of the trip
// aggregate, so they live on TripRepo rather than a store of their own.
// The invariant maintained here: order_index is contiguous 0..n-1 per trip
// after every mutation.

const destinationColumns = `id, trip_id, name, country, arrival_date, departure_date, order_index, created_at`

func (r *pgTripRepo) AddDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	// order_index = current sibling count appends at the end.
	const q = `
		INSERT INTO destinations (trip_id, name, country, arrival_date, departure_date, order_index)
		VALUES (@trip_id, @name, @country, @arrival_date, @departure_date,
		        (SELECT COUNT(*) FROM destinations WHERE trip_id = @trip_id))
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"trip_id":        d.TripID,
		"name":           d.Name,
		"country":        d.Country,
		"arrival_date":   d.ArrivalDate,
		"departure_date": d.DepartureDate,
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.TripRepo.AddDestination: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) UpdateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	const q = `
		UPDATE destinations
		SET name           = @name,
		    country        = @country,
		    arrival_date   = @arrival_date,
		    departure_date = @departure_date
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + destinationColumns

	args := pgx.NamedArgs{
		"id":             d.ID,
		"trip_id":        d.TripID,
		"name":           d.Name,
		"country":        d.Country,
		"arrival_date":   d.ArrivalDate,
		"departure_date": d.DepartureDate,
	}

	result, err := scanDestination(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Destination{}, fmt.Errorf("repo.TripRepo.UpdateDestination: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) DeleteDestination(ctx context.Context, tripID, destID uuid.UUID) error {
	const del = `
		DELETE FROM destinations
		WHERE id = @id AND trip_id = @trip_id
		RETURNING order_index`

	var removed int
	err := r.db.QueryRow(ctx, del, pgx.NamedArgs{"id": destID, "trip_id": tripID}).Scan(&removed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.TripRepo.DeleteDestination: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.TripRepo.DeleteDestination: %w", err)
	}

	// Close the gap so indexes stay contiguous.
	const shift = `
		UPDATE destinations
		SET order_index = order_index - 1
		WHERE trip_id = @trip_id AND order_index > @removed`

	if _, err := r.db.Exec(ctx, shift, pgx.NamedArgs{"trip_id": tripID, "removed": removed}); err != nil {
		return fmt.Errorf("repo.TripRepo.DeleteDestination: renumber: %w", err)
	}
	return nil
}

func (r *pgTripRepo) ReorderDestination(ctx context.Context, tripID, destID uuid.UUID, newIndex int) ([]domain.Destination, error) {
	var current, count int
	const cur = `
		SELECT order_index, (SELECT COUNT(*) FROM destinations WHERE trip_id = @trip_id)
		FROM destinations
		WHERE id = @id AND trip_id = @trip_id`

	err := r.db.QueryRow(ctx, cur, pgx.NamedArgs{"id": destID, "trip_id": tripID}).Scan(&current, &count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repo.TripRepo.ReorderDestination: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.TripRepo.ReorderDestination: %w", err)
	}

	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > count-1 {
		newIndex = count - 1
	}

	if newIndex != current {
		// Shift the block between the old and new position by one, then slot
		// the moved destination in.
		var shift string
		args := pgx.NamedArgs{"trip_id": tripID, "current": current, "new": newIndex}
		if newIndex > current {
			shift = `
				UPDATE destinations
				SET order_index = order_index - 1
				WHERE trip_id = @trip_id AND order_index > @current AND order_index <= @new`
		} else {
			shift = `
				UPDATE destinations
				SET order_index = order_index + 1
				WHERE trip_id = @trip_id AND order_index >= @new AND order_index < @current`
		}
		if _, err := r.db.Exec(ctx, shift, args); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ReorderDestination: shift: %w", err)
		}

		const place = `UPDATE destinations SET order_index = @new WHERE id = @id`
		if _, err := r.db.Exec(ctx, place, pgx.NamedArgs{"id": destID, "new": newIndex}); err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ReorderDestination: place: %w", err)
		}
	}

	list, err := r.ListDestinations(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ReorderDestination: %w", err)
	}
	return list, nil
}

func (r *pgTripRepo) ListDestinations(ctx context.Context, tripID uuid.UUID) ([]domain.Destination, error) {
	const q = `
		SELECT ` + destinationColumns + `
		FROM destinations
		WHERE trip_id = @trip_id
		ORDER BY order_index`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListDestinations: %w", err)
	}
	defer rows.Close()

	out := []domain.Destination{}
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.ListDestinations: scan: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.ListDestinations: rows: %w", err)
	}
	return out, nil
}

// scanDestination maps a single database row into a domain.Destination.
func scanDestination(s scanner) (domain.Destination, error) {
	var (
		d       domain.Destination
		id      pgtype.UUID
		tripID  pgtype.UUID
		arrival pgtype.Date
		depart  pgtype.Date
	)

	err := s.Scan(&id, &tripID, &d.Name, &d.Country, &arrival, &depart, &d.OrderIndex, &d.CreatedAt)
	if err != nil {
		return domain.Destination{}, mapNotFound(err)
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	if arrival.Valid {
		t := arrival.Time
		d.ArrivalDate = &t
	}
	if depart.Valid {
		t := depart.Time
		d.DepartureDate = &t
	}
	return d, nil
}
