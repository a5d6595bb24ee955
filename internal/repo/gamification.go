package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// GamificationRepo persists the single gamification state row plus the unlock
// set. The row is seeded by migration with id = 1 and is never inserted or
// deleted at runtime, so Get and Save cannot race over row existence.
type GamificationRepo interface {
	// Get loads the stats row and its unlocks ordered by unlock time.
	Get(ctx context.Context) (domain.GamificationStats, error)

	// GetForUpdate is Get with a row lock on the stats row. Write paths that
	// read, mutate, and Save must use it inside a transaction so concurrent
	// updates serialize instead of overwriting each other's counters.
	GetForUpdate(ctx context.Context) (domain.GamificationStats, error)

	// Save overwrites every counter field of the stats row. Unlocks are
	// written separately via AddUnlock.
	Save(ctx context.Context, s domain.GamificationStats) error

	// AddUnlock records an unlock. Inserting the same achievement id twice is
	// a no-op, which keeps achievement evaluation idempotent even across
	// concurrent transactions.
	AddUnlock(ctx context.Context, u domain.Unlock) error

	// Reset zeroes the stats row and removes all unlocks. It issues two
	// statements, so callers run it inside a transaction to commit both
	// together.
	Reset(ctx context.Context) error
}

type pgGamificationRepo struct {
	db db
}

// NewGamificationRepo constructs a GamificationRepo backed by the provided db.
func NewGamificationRepo(db db) GamificationRepo {
	return &pgGamificationRepo{db: db}
}

func (r *pgGamificationRepo) Get(ctx context.Context) (domain.GamificationStats, error) {
	return r.get(ctx, "")
}

func (r *pgGamificationRepo) GetForUpdate(ctx context.Context) (domain.GamificationStats, error) {
	return r.get(ctx, " FOR UPDATE")
}

func (r *pgGamificationRepo) get(ctx context.Context, lock string) (domain.GamificationStats, error) {
	q := `
		SELECT total_points, current_streak, longest_streak, last_activity_date,
		       trips_completed, items_packed, budget_entries, itinerary_items
		FROM gamification_stats
		WHERE id = 1` + lock

	var (
		s    domain.GamificationStats
		last pgtype.Date
	)
	err := r.db.QueryRow(ctx, q).Scan(
		&s.TotalPoints, &s.CurrentStreak, &s.LongestStreak, &last,
		&s.TripsCompleted, &s.ItemsPacked, &s.BudgetEntries, &s.ItineraryItems,
	)
	if err != nil {
		return domain.GamificationStats{}, fmt.Errorf("repo.GamificationRepo.Get: %w", err)
	}
	if last.Valid {
		t := last.Time
		s.LastActivityDate = &t
	}

	const uq = `
		SELECT achievement_id, unlocked_at
		FROM achievement_unlocks
		ORDER BY unlocked_at, achievement_id`

	rows, err := r.db.Query(ctx, uq)
	if err != nil {
		return domain.GamificationStats{}, fmt.Errorf("repo.GamificationRepo.Get: unlocks: %w", err)
	}
	defer rows.Close()

	s.Unlocks = []domain.Unlock{}
	for rows.Next() {
		var u domain.Unlock
		if err := rows.Scan(&u.AchievementID, &u.UnlockedAt); err != nil {
			return domain.GamificationStats{}, fmt.Errorf("repo.GamificationRepo.Get: scan unlock: %w", err)
		}
		s.Unlocks = append(s.Unlocks, u)
	}
	if err := rows.Err(); err != nil {
		return domain.GamificationStats{}, fmt.Errorf("repo.GamificationRepo.Get: unlock rows: %w", err)
	}
	return s, nil
}

func (r *pgGamificationRepo) Save(ctx context.Context, s domain.GamificationStats) error {
	const q = `
		UPDATE gamification_stats
		SET total_points       = @total_points,
		    current_streak     = @current_streak,
		    longest_streak     = @longest_streak,
		    last_activity_date = @last_activity_date,
		    trips_completed    = @trips_completed,
		    items_packed       = @items_packed,
		    budget_entries     = @budget_entries,
		    itinerary_items    = @itinerary_items
		WHERE id = 1`

	args := pgx.NamedArgs{
		"total_points":       s.TotalPoints,
		"current_streak":     s.CurrentStreak,
		"longest_streak":     s.LongestStreak,
		"last_activity_date": s.LastActivityDate,
		"trips_completed":    s.TripsCompleted,
		"items_packed":       s.ItemsPacked,
		"budget_entries":     s.BudgetEntries,
		"itinerary_items":    s.ItineraryItems,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.GamificationRepo.Save: %w", err)
	}
	return nil
}

func (r *pgGamificationRepo) AddUnlock(ctx context.Context, u domain.Unlock) error {
	const q = `
		INSERT INTO achievement_unlocks (achievement_id, unlocked_at)
		VALUES (@achievement_id, @unlocked_at)
		ON CONFLICT (achievement_id) DO NOTHING`

	args := pgx.NamedArgs{"achievement_id": u.AchievementID, "unlocked_at": u.UnlockedAt}
	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.GamificationRepo.AddUnlock: %w", err)
	}
	return nil
}

func (r *pgGamificationRepo) Reset(ctx context.Context) error {
	const zero = `
		UPDATE gamification_stats
		SET total_points = 0, current_streak = 0, longest_streak = 0,
		    last_activity_date = NULL, trips_completed = 0, items_packed = 0,
		    budget_entries = 0, itinerary_items = 0
		WHERE id = 1`

	if _, err := r.db.Exec(ctx, zero); err != nil {
		return fmt.Errorf("repo.GamificationRepo.Reset: %w", err)
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM achievement_unlocks`); err != nil {
		return fmt.Errorf("repo.GamificationRepo.Reset: unlocks: %w", err)
	}
	return nil
}
