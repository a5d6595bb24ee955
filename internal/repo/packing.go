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

// PackingRepo defines the persistence operations for the packing hierarchy:
// list → ordered categories → ordered items. Categories are scoped by their
// list and items by their category; order indexes stay contiguous 0..n-1
// within the parent after every mutation.
type PackingRepo interface {
	CreateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error)
	GetList(ctx context.Context, tripID, listID uuid.UUID) (domain.PackingList, error)
	List(ctx context.Context) ([]domain.PackingList, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PackingList, error)
	UpdateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error)
	DeleteList(ctx context.Context, tripID, listID uuid.UUID) error

	AddCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error)
	UpdateCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error)
	DeleteCategory(ctx context.Context, listID, catID uuid.UUID) error

	AddItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error)
	UpdateItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error)
	DeleteItem(ctx context.Context, catID, itemID uuid.UUID) error

	// ToggleItemPacked flips is_packed in a single statement and returns the
	// updated item.
	ToggleItemPacked(ctx context.Context, catID, itemID uuid.UUID) (domain.PackingItem, error)
}

type pgPackingRepo struct {
	db db
}

// NewPackingRepo constructs a PackingRepo backed by the provided db.
func NewPackingRepo(db db) PackingRepo {
	return &pgPackingRepo{db: db}
}

const (
	packingListColumns = `id, trip_id, name, created_at`
	packingCatColumns  = `id, list_id, name, order_index`
	packingItemColumns = `id, category_id, name, quantity, is_packed, is_essential, order_index`
)

// ---- lists -----------------------------------------------------------------

func (r *pgPackingRepo) CreateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	const q = `
		INSERT INTO packing_lists (trip_id, name)
		VALUES (@trip_id, @name)
		RETURNING ` + packingListColumns

	result, err := scanPackingList(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": l.TripID, "name": l.Name}))
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.PackingRepo.CreateList: %w", err)
	}
	result.Categories = []domain.PackingCategory{}
	return result, nil
}

func (r *pgPackingRepo) GetList(ctx context.Context, tripID, listID uuid.UUID) (domain.PackingList, error) {
	const q = `SELECT ` + packingListColumns + ` FROM packing_lists WHERE id = @id AND trip_id = @trip_id`

	l, err := scanPackingList(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": listID, "trip_id": tripID}))
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.PackingRepo.GetList: %w", err)
	}

	lists := []domain.PackingList{l}
	if err := r.loadHierarchy(ctx, lists); err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.PackingRepo.GetList: %w", err)
	}
	return lists[0], nil
}

func (r *pgPackingRepo) List(ctx context.Context) ([]domain.PackingList, error) {
	const q = `SELECT ` + packingListColumns + ` FROM packing_lists ORDER BY created_at`
	return r.queryLists(ctx, "List", q, nil)
}

func (r *pgPackingRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PackingList, error) {
	const q = `
		SELECT ` + packingListColumns + `
		FROM packing_lists
		WHERE trip_id = @trip_id
		ORDER BY created_at`
	return r.queryLists(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgPackingRepo) UpdateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	const q = `
		UPDATE packing_lists
		SET name = @name
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + packingListColumns

	result, err := scanPackingList(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": l.ID, "trip_id": l.TripID, "name": l.Name}))
	if err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.PackingRepo.UpdateList: %w", err)
	}

	lists := []domain.PackingList{result}
	if err := r.loadHierarchy(ctx, lists); err != nil {
		return domain.PackingList{}, fmt.Errorf("repo.PackingRepo.UpdateList: %w", err)
	}
	return lists[0], nil
}

func (r *pgPackingRepo) DeleteList(ctx context.Context, tripID, listID uuid.UUID) error {
	const q = `DELETE FROM packing_lists WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": listID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.PackingRepo.DeleteList: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PackingRepo.DeleteList: %w", domain.ErrNotFound)
	}
	return nil
}

// ---- categories ------------------------------------------------------------

func (r *pgPackingRepo) AddCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error) {
	const q = `
		INSERT INTO packing_categories (list_id, name, order_index)
		VALUES (@list_id, @name,
		        (SELECT COUNT(*) FROM packing_categories WHERE list_id = @list_id))
		RETURNING ` + packingCatColumns

	result, err := scanPackingCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"list_id": c.ListID, "name": c.Name}))
	if err != nil {
		return domain.PackingCategory{}, fmt.Errorf("repo.PackingRepo.AddCategory: %w", err)
	}
	result.Items = []domain.PackingItem{}
	return result, nil
}

func (r *pgPackingRepo) UpdateCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error) {
	const q = `
		UPDATE packing_categories
		SET name = @name
		WHERE id = @id AND list_id = @list_id
		RETURNING ` + packingCatColumns

	result, err := scanPackingCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": c.ID, "list_id": c.ListID, "name": c.Name}))
	if err != nil {
		return domain.PackingCategory{}, fmt.Errorf("repo.PackingRepo.UpdateCategory: %w", err)
	}
	return result, nil
}

func (r *pgPackingRepo) DeleteCategory(ctx context.Context, listID, catID uuid.UUID) error {
	const del = `
		DELETE FROM packing_categories
		WHERE id = @id AND list_id = @list_id
		RETURNING order_index`

	var removed int
	err := r.db.QueryRow(ctx, del, pgx.NamedArgs{"id": catID, "list_id": listID}).Scan(&removed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.PackingRepo.DeleteCategory: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.PackingRepo.DeleteCategory: %w", err)
	}

	const shift = `
		UPDATE packing_categories
		SET order_index = order_index - 1
		WHERE list_id = @list_id AND order_index > @removed`

	if _, err := r.db.Exec(ctx, shift, pgx.NamedArgs{"list_id": listID, "removed": removed}); err != nil {
		return fmt.Errorf("repo.PackingRepo.DeleteCategory: renumber: %w", err)
	}
	return nil
}

// ---- items -----------------------------------------------------------------

func (r *pgPackingRepo) AddItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error) {
	const q = `
		INSERT INTO packing_items (category_id, name, quantity, is_packed, is_essential, order_index)
		VALUES (@category_id, @name, @quantity, @is_packed, @is_essential,
		        (SELECT COUNT(*) FROM packing_items WHERE category_id = @category_id))
		RETURNING ` + packingItemColumns

	args := pgx.NamedArgs{
		"category_id":  it.CategoryID,
		"name":         it.Name,
		"quantity":     it.Quantity,
		"is_packed":    it.IsPacked,
		"is_essential": it.IsEssential,
	}

	result, err := scanPackingItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("repo.PackingRepo.AddItem: %w", err)
	}
	return result, nil
}

func (r *pgPackingRepo) UpdateItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error) {
	const q = `
		UPDATE packing_items
		SET name         = @name,
		    quantity     = @quantity,
		    is_essential = @is_essential
		WHERE id = @id AND category_id = @category_id
		RETURNING ` + packingItemColumns

	args := pgx.NamedArgs{
		"id":           it.ID,
		"category_id":  it.CategoryID,
		"name":         it.Name,
		"quantity":     it.Quantity,
		"is_essential": it.IsEssential,
	}

	result, err := scanPackingItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("repo.PackingRepo.UpdateItem: %w", err)
	}
	return result, nil
}

func (r *pgPackingRepo) DeleteItem(ctx context.Context, catID, itemID uuid.UUID) error {
	const del = `
		DELETE FROM packing_items
		WHERE id = @id AND category_id = @category_id
		RETURNING order_index`

	var removed int
	err := r.db.QueryRow(ctx, del, pgx.NamedArgs{"id": itemID, "category_id": catID}).Scan(&removed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.PackingRepo.DeleteItem: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.PackingRepo.DeleteItem: %w", err)
	}

	const shift = `
		UPDATE packing_items
		SET order_index = order_index - 1
		WHERE category_id = @category_id AND order_index > @removed`

	if _, err := r.db.Exec(ctx, shift, pgx.NamedArgs{"category_id": catID, "removed": removed}); err != nil {
		return fmt.Errorf("repo.PackingRepo.DeleteItem: renumber: %w", err)
	}
	return nil
}

func (r *pgPackingRepo) ToggleItemPacked(ctx context.Context, catID, itemID uuid.UUID) (domain.PackingItem, error) {
	const q = `
		UPDATE packing_items
		SET is_packed = NOT is_packed
		WHERE id = @id AND category_id = @category_id
		RETURNING ` + packingItemColumns

	result, err := scanPackingItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": itemID, "category_id": catID}))
	if err != nil {
		return domain.PackingItem{}, fmt.Errorf("repo.PackingRepo.ToggleItemPacked: %w", err)
	}
	return result, nil
}

// ---- hierarchy loading -----------------------------------------------------

func (r *pgPackingRepo) queryLists(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.PackingList, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.PackingRepo.%s: %w", op, err)
	}
	defer rows.Close()

	lists := []domain.PackingList{}
	for rows.Next() {
		l, err := scanPackingList(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PackingRepo.%s: scan: %w", op, err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PackingRepo.%s: rows: %w", op, err)
	}

	if err := r.loadHierarchy(ctx, lists); err != nil {
		return nil, fmt.Errorf("repo.PackingRepo.%s: %w", op, err)
	}
	return lists, nil
}

// loadHierarchy fills Categories and Items for the given lists with two
// queries total, regardless of list count.
func (r *pgPackingRepo) loadHierarchy(ctx context.Context, lists []domain.PackingList) error {
	if len(lists) == 0 {
		return nil
	}

	listIDs := make([]uuid.UUID, len(lists))
	for i, l := range lists {
		listIDs[i] = l.ID
	}

	const cq = `
		SELECT ` + packingCatColumns + `
		FROM packing_categories
		WHERE list_id = ANY(@list_ids)
		ORDER BY list_id, order_index`

	crows, err := r.db.Query(ctx, cq, pgx.NamedArgs{"list_ids": listIDs})
	if err != nil {
		return fmt.Errorf("categories: %w", err)
	}
	defer crows.Close()

	catsByList := make(map[uuid.UUID][]domain.PackingCategory)
	var catIDs []uuid.UUID
	for crows.Next() {
		c, err := scanPackingCategory(crows)
		if err != nil {
			return fmt.Errorf("scan category: %w", err)
		}
		c.Items = []domain.PackingItem{}
		catsByList[c.ListID] = append(catsByList[c.ListID], c)
		catIDs = append(catIDs, c.ID)
	}
	if err := crows.Err(); err != nil {
		return fmt.Errorf("category rows: %w", err)
	}

	itemsByCat := make(map[uuid.UUID][]domain.PackingItem)
	if len(catIDs) > 0 {
		const iq = `
			SELECT ` + packingItemColumns + `
			FROM packing_items
			WHERE category_id = ANY(@cat_ids)
			ORDER BY category_id, order_index`

		irows, err := r.db.Query(ctx, iq, pgx.NamedArgs{"cat_ids": catIDs})
		if err != nil {
			return fmt.Errorf("items: %w", err)
		}
		defer irows.Close()

		for irows.Next() {
			it, err := scanPackingItem(irows)
			if err != nil {
				return fmt.Errorf("scan item: %w", err)
			}
			itemsByCat[it.CategoryID] = append(itemsByCat[it.CategoryID], it)
		}
		if err := irows.Err(); err != nil {
			return fmt.Errorf("item rows: %w", err)
		}
	}

	for li := range lists {
		cats := catsByList[lists[li].ID]
		if cats == nil {
			cats = []domain.PackingCategory{}
		}
		for ci := range cats {
			if items, ok := itemsByCat[cats[ci].ID]; ok {
				cats[ci].Items = items
			}
		}
		lists[li].Categories = cats
	}
	return nil
}

// ---- scanners --------------------------------------------------------------

func scanPackingList(s scanner) (domain.PackingList, error) {
	var (
		l      domain.PackingList
		id     pgtype.UUID
		tripID pgtype.UUID
	)

	err := s.Scan(&id, &tripID, &l.Name, &l.CreatedAt)
	if err != nil {
		return domain.PackingList{}, mapNotFound(err)
	}

	l.ID = uuid.UUID(id.Bytes)
	l.TripID = uuid.UUID(tripID.Bytes)
	return l, nil
}

func scanPackingCategory(s scanner) (domain.PackingCategory, error) {
	var (
		c      domain.PackingCategory
		id     pgtype.UUID
		listID pgtype.UUID
	)

	err := s.Scan(&id, &listID, &c.Name, &c.OrderIndex)
	if err != nil {
		return domain.PackingCategory{}, mapNotFound(err)
	}

	c.ID = uuid.UUID(id.Bytes)
	c.ListID = uuid.UUID(listID.Bytes)
	return c, nil
}

func scanPackingItem(s scanner) (domain.PackingItem, error) {
	var (
		it    domain.PackingItem
		id    pgtype.UUID
		catID pgtype.UUID
	)

	err := s.Scan(&id, &catID, &it.Name, &it.Quantity, &it.IsPacked, &it.IsEssential, &it.OrderIndex)
	if err != nil {
		return domain.PackingItem{}, mapNotFound(err)
	}

	it.ID = uuid.UUID(id.Bytes)
	it.CategoryID = uuid.UUID(catID.Bytes)
	return it, nil
}
