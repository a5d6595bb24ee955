package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// DocumentRepo defines the persistence operations for trip documents.
// Payloads are stored inline, so Update only touches metadata; re-uploading
// means delete + create.
type DocumentRepo interface {
	Create(ctx context.Context, d domain.Document) (domain.Document, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Document, error)
	List(ctx context.Context) ([]domain.Document, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Document, error)
	Update(ctx context.Context, d domain.Document) (domain.Document, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error
}

type pgDocumentRepo struct {
	db db
}

// NewDocumentRepo constructs a DocumentRepo backed by the provided db.
func NewDocumentRepo(db db) DocumentRepo {
	return &pgDocumentRepo{db: db}
}

const documentColumns = `id, trip_id, name, mime_type, size_bytes, data, category, created_at`

func (r *pgDocumentRepo) Create(ctx context.Context, d domain.Document) (domain.Document, error) {
	const q = `
		INSERT INTO documents (trip_id, name, mime_type, size_bytes, data, category)
		VALUES (@trip_id, @name, @mime_type, @size_bytes, @data, @category)
		RETURNING ` + documentColumns

	args := pgx.NamedArgs{
		"trip_id":    d.TripID,
		"name":       d.Name,
		"mime_type":  d.MimeType,
		"size_bytes": d.SizeBytes,
		"data":       d.Data,
		"category":   d.Category,
	}

	result, err := scanDocument(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Document{}, fmt.Errorf("repo.DocumentRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDocumentRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = @id AND trip_id = @trip_id`

	result, err := scanDocument(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.Document{}, fmt.Errorf("repo.DocumentRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDocumentRepo) List(ctx context.Context) ([]domain.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at`
	return r.queryMany(ctx, "List", q, nil)
}

func (r *pgDocumentRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE trip_id = @trip_id
		ORDER BY created_at`
	return r.queryMany(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgDocumentRepo) Update(ctx context.Context, d domain.Document) (domain.Document, error) {
	const q = `
		UPDATE documents
		SET name     = @name,
		    category = @category
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + documentColumns

	args := pgx.NamedArgs{
		"id":       d.ID,
		"trip_id":  d.TripID,
		"name":     d.Name,
		"category": d.Category,
	}

	result, err := scanDocument(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Document{}, fmt.Errorf("repo.DocumentRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDocumentRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM documents WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.DocumentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DocumentRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDocumentRepo) queryMany(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.Document, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.DocumentRepo.%s: %w", op, err)
	}
	defer rows.Close()

	out := []domain.Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DocumentRepo.%s: scan: %w", op, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DocumentRepo.%s: rows: %w", op, err)
	}
	return out, nil
}

func scanDocument(s scanner) (domain.Document, error) {
	var (
		d      domain.Document
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &d.Name, &d.MimeType, &d.SizeBytes, &d.Data, &d.Category, &d.CreatedAt)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	return d, nil
}
