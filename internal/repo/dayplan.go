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

// DayPlanRepo defines the persistence operations for itinerary days and their
// ordered activities.
type DayPlanRepo interface {
	Create(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error)
	GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.DayPlan, error)
	List(ctx context.Context) ([]domain.DayPlan, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DayPlan, error)
	Update(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error)
	Delete(ctx context.Context, tripID, id uuid.UUID) error

	// AddActivity appends an activity at the end of the plan's list.
	AddActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, error)
	UpdateActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, error)
	// DeleteActivity removes an activity and renumbers the remaining siblings.
	DeleteActivity(ctx context.Context, planID, activityID uuid.UUID) error
}

type pgDayPlanRepo struct {
	db db
}

// NewDayPlanRepo constructs a DayPlanRepo backed by the provided db.
func NewDayPlanRepo(db db) DayPlanRepo {
	return &pgDayPlanRepo{db: db}
}

const (
	dayPlanColumns  = `id, trip_id, plan_date, notes, created_at`
	activityColumns = `id, day_plan_id, name, category, starts_at, order_index`
)

func (r *pgDayPlanRepo) Create(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error) {
	const q = `
		INSERT INTO day_plans (trip_id, plan_date, notes)
		VALUES (@trip_id, @plan_date, @notes)
		RETURNING ` + dayPlanColumns

	args := pgx.NamedArgs{"trip_id": p.TripID, "plan_date": p.PlanDate, "notes": p.Notes}

	result, err := scanDayPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.Create: %w", err)
	}
	result.Activities = []domain.DayActivity{}
	return result, nil
}

func (r *pgDayPlanRepo) GetByID(ctx context.Context, tripID, id uuid.UUID) (domain.DayPlan, error) {
	const q = `SELECT ` + dayPlanColumns + ` FROM day_plans WHERE id = @id AND trip_id = @trip_id`

	p, err := scanDayPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID}))
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.GetByID: %w", err)
	}

	plans := []domain.DayPlan{p}
	if err := r.loadActivities(ctx, plans); err != nil {
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.GetByID: %w", err)
	}
	return plans[0], nil
}

func (r *pgDayPlanRepo) List(ctx context.Context) ([]domain.DayPlan, error) {
	const q = `SELECT ` + dayPlanColumns + ` FROM day_plans ORDER BY plan_date, created_at`
	return r.queryMany(ctx, "List", q, nil)
}

// ListByTrip orders chronologically by plan date.
func (r *pgDayPlanRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.DayPlan, error) {
	const q = `
		SELECT ` + dayPlanColumns + `
		FROM day_plans
		WHERE trip_id = @trip_id
		ORDER BY plan_date, created_at`
	return r.queryMany(ctx, "ListByTrip", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgDayPlanRepo) Update(ctx context.Context, p domain.DayPlan) (domain.DayPlan, error) {
	const q = `
		UPDATE day_plans
		SET plan_date = @plan_date,
		    notes     = @notes
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + dayPlanColumns

	args := pgx.NamedArgs{"id": p.ID, "trip_id": p.TripID, "plan_date": p.PlanDate, "notes": p.Notes}

	result, err := scanDayPlan(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.Update: %w", err)
	}

	plans := []domain.DayPlan{result}
	if err := r.loadActivities(ctx, plans); err != nil {
		return domain.DayPlan{}, fmt.Errorf("repo.DayPlanRepo.Update: %w", err)
	}
	return plans[0], nil
}

func (r *pgDayPlanRepo) Delete(ctx context.Context, tripID, id uuid.UUID) error {
	const q = `DELETE FROM day_plans WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.DayPlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayPlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgDayPlanRepo) AddActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, error) {
	const q = `
		INSERT INTO day_activities (day_plan_id, name, category, starts_at, order_index)
		VALUES (@day_plan_id, @name, @category, @starts_at,
		        (SELECT COUNT(*) FROM day_activities WHERE day_plan_id = @day_plan_id))
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"day_plan_id": a.DayPlanID,
		"name":        a.Name,
		"category":    a.Category,
		"starts_at":   a.StartsAt,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayActivity{}, fmt.Errorf("repo.DayPlanRepo.AddActivity: %w", err)
	}
	return result, nil
}

func (r *pgDayPlanRepo) UpdateActivity(ctx context.Context, a domain.DayActivity) (domain.DayActivity, error) {
	const q = `
		UPDATE day_activities
		SET name      = @name,
		    category  = @category,
		    starts_at = @starts_at
		WHERE id = @id AND day_plan_id = @day_plan_id
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"id":          a.ID,
		"day_plan_id": a.DayPlanID,
		"name":        a.Name,
		"category":    a.Category,
		"starts_at":   a.StartsAt,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayActivity{}, fmt.Errorf("repo.DayPlanRepo.UpdateActivity: %w", err)
	}
	return result, nil
}

func (r *pgDayPlanRepo) DeleteActivity(ctx context.Context, planID, activityID uuid.UUID) error {
	const del = `
		DELETE FROM day_activities
		WHERE id = @id AND day_plan_id = @day_plan_id
		RETURNING order_index`

	var removed int
	err := r.db.QueryRow(ctx, del, pgx.NamedArgs{"id": activityID, "day_plan_id": planID}).Scan(&removed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("repo.DayPlanRepo.DeleteActivity: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("repo.DayPlanRepo.DeleteActivity: %w", err)
	}

	const shift = `
		UPDATE day_activities
		SET order_index = order_index - 1
		WHERE day_plan_id = @day_plan_id AND order_index > @removed`

	if _, err := r.db.Exec(ctx, shift, pgx.NamedArgs{"day_plan_id": planID, "removed": removed}); err != nil {
		return fmt.Errorf("repo.DayPlanRepo.DeleteActivity: renumber: %w", err)
	}
	return nil
}

func (r *pgDayPlanRepo) queryMany(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.DayPlan, error) {
	var rows pgx.Rows
	var err error
	if args == nil {
		rows, err = r.db.Query(ctx, q)
	} else {
		rows, err = r.db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, fmt.Errorf("repo.DayPlanRepo.%s: %w", op, err)
	}
	defer rows.Close()

	plans := []domain.DayPlan{}
	for rows.Next() {
		p, err := scanDayPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayPlanRepo.%s: scan: %w", op, err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayPlanRepo.%s: rows: %w", op, err)
	}

	if err := r.loadActivities(ctx, plans); err != nil {
		return nil, fmt.Errorf("repo.DayPlanRepo.%s: %w", op, err)
	}
	return plans, nil
}

// loadActivities fills Activities for the given plans with one query.
func (r *pgDayPlanRepo) loadActivities(ctx context.Context, plans []domain.DayPlan) error {
	if len(plans) == 0 {
		return nil
	}

	planIDs := make([]uuid.UUID, len(plans))
	for i, p := range plans {
		planIDs[i] = p.ID
	}

	const q = `
		SELECT ` + activityColumns + `
		FROM day_activities
		WHERE day_plan_id = ANY(@plan_ids)
		ORDER BY day_plan_id, order_index`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"plan_ids": planIDs})
	if err != nil {
		return fmt.Errorf("activities: %w", err)
	}
	defer rows.Close()

	byPlan := make(map[uuid.UUID][]domain.DayActivity)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return fmt.Errorf("scan activity: %w", err)
		}
		byPlan[a.DayPlanID] = append(byPlan[a.DayPlanID], a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("activity rows: %w", err)
	}

	for i := range plans {
		if as, ok := byPlan[plans[i].ID]; ok {
			plans[i].Activities = as
		} else {
			plans[i].Activities = []domain.DayActivity{}
		}
	}
	return nil
}

func scanDayPlan(s scanner) (domain.DayPlan, error) {
	var (
		p      domain.DayPlan
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &date, &p.Notes, &p.CreatedAt)
	if err != nil {
		return domain.DayPlan{}, mapNotFound(err)
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.PlanDate = date.Time
	return p, nil
}

func scanActivity(s scanner) (domain.DayActivity, error) {
	var (
		a      domain.DayActivity
		id     pgtype.UUID
		planID pgtype.UUID
		starts pgtype.Timestamptz
	)

	err := s.Scan(&id, &planID, &a.Name, &a.Category, &starts, &a.OrderIndex)
	if err != nil {
		return domain.DayActivity{}, mapNotFound(err)
	}

	a.ID = uuid.UUID(id.Bytes)
	a.DayPlanID = uuid.UUID(planID.Bytes)
	if starts.Valid {
		t := starts.Time
		a.StartsAt = &t
	}
	return a, nil
}
