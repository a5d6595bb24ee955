package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Repos bundles one repository per store. Services receive the interfaces they
// need individually for simple reads and writes; mutations that must span
// stores (expense + gamification, import) go through Atomic so every repo in
// the closure shares one database transaction.
type Repos struct {
	Trips          TripRepo
	Accommodations AccommodationRepo
	Transports     TransportRepo
	Expenses       ExpenseRepo
	Tasks          TaskRepo
	Documents      DocumentRepo
	Packing        PackingRepo
	DayPlans       DayPlanRepo
	Gamification   GamificationRepo
}

// NewRepos constructs the full repository bundle over a single db handle.
// Pass *pgxpool.Pool for the long-lived bundle or a pgx.Tx inside Tx.
func NewRepos(d db) Repos {
	return Repos{
		Trips:          NewTripRepo(d),
		Accommodations: NewAccommodationRepo(d),
		Transports:     NewTransportRepo(d),
		Expenses:       NewExpenseRepo(d),
		Tasks:          NewTaskRepo(d),
		Documents:      NewDocumentRepo(d),
		Packing:        NewPackingRepo(d),
		DayPlans:       NewDayPlanRepo(d),
		Gamification:   NewGamificationRepo(d),
	}
}

// Beginner is the subset of *pgxpool.Pool needed to open transactions.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Atomic runs a function over a repo bundle bound to one transaction.
// If fn returns an error the transaction is rolled back; otherwise it commits.
// This is the unit-of-work seam services use for multi-store mutations.
type Atomic interface {
	Tx(ctx context.Context, fn func(r Repos) error) error
}

// NewAtomic returns an Atomic backed by the given pool (or any Beginner).
func NewAtomic(b Beginner) Atomic {
	return &pgAtomic{b: b}
}

type pgAtomic struct {
	b Beginner
}

func (a *pgAtomic) Tx(ctx context.Context, fn func(r Repos) error) error {
	tx, err := a.b.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.Atomic: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.Atomic: commit: %w", err)
	}
	return nil
}
