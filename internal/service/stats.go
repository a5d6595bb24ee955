package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// StatsService computes the read-only statistics projection. Loading is the
// only side effect; the aggregation itself is a pure function over the loaded
// records, so the same data always yields the same report.
type StatsService struct {
	trips          repo.TripRepo
	accommodations repo.AccommodationRepo
	transports     repo.TransportRepo
	expenses       repo.ExpenseRepo
	tasks          repo.TaskRepo
	dayPlans       repo.DayPlanRepo
}

// NewStatsService constructs a StatsService over the read side of the stores.
func NewStatsService(
	trips repo.TripRepo,
	accommodations repo.AccommodationRepo,
	transports repo.TransportRepo,
	expenses repo.ExpenseRepo,
	tasks repo.TaskRepo,
	dayPlans repo.DayPlanRepo,
) *StatsService {
	return &StatsService{
		trips:          trips,
		accommodations: accommodations,
		transports:     transports,
		expenses:       expenses,
		tasks:          tasks,
		dayPlans:       dayPlans,
	}
}

// Compute aggregates across all trips when tripID is nil, or a single trip
// otherwise. Returns domain.ErrNotFound for an unknown trip.
func (s *StatsService) Compute(ctx context.Context, tripID *uuid.UUID) (domain.StatisticsReport, error) {
	var (
		trips          []domain.Trip
		accommodations []domain.Accommodation
		transports     []domain.Transport
		expenses       []domain.Expense
		tasks          []domain.Task
		dayPlans       []domain.DayPlan
		err            error
	)

	if tripID == nil {
		trips, err = s.trips.List(ctx)
	} else {
		var trip domain.Trip
		trip, err = s.trips.GetByID(ctx, *tripID)
		trips = []domain.Trip{trip}
	}
	if err != nil {
		return domain.StatisticsReport{}, fmt.Errorf("service.StatsService.Compute: trips: %w", err)
	}

	if tripID == nil {
		accommodations, err = s.accommodations.List(ctx)
	} else {
		accommodations, err = s.accommodations.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.StatisticsReport{}, fmt.Errorf("service.StatsService.Compute: accommodations: %w", err)
	}

	if tripID == nil {
		transports, err = s.transports.List(ctx)
	} else {
		transports, err = s.transports.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.StatisticsReport{}, fmt.Errorf("service.StatsService.Compute: transports: %w", err)
	}

	if tripID == nil {
		expenses, err = s.expenses.List(ctx)
	} else {
		expenses, err = s.expenses.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.StatisticsReport{}, fmt.Errorf("service.StatsService.Compute: expenses: %w", err)
	}

	if tripID == nil {
		tasks, err = s.tasks.List(ctx)
	} else {
		tasks, err = s.tasks.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.StatisticsReport{}, fmt.Errorf("service.StatsService.Compute: tasks: %w", err)
	}

	if tripID == nil {
		dayPlans, err = s.dayPlans.List(ctx)
	} else {
		dayPlans, err = s.dayPlans.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.StatisticsReport{}, fmt.Errorf("service.StatsService.Compute: day plans: %w", err)
	}

	return buildReport(trips, accommodations, transports, expenses, tasks, dayPlans, time.Now().UTC()), nil
}

// buildReport is the pure aggregation over immutable snapshots of the stores.
// now is passed in so overdue classification is deterministic under test.
func buildReport(
	trips []domain.Trip,
	accommodations []domain.Accommodation,
	transports []domain.Transport,
	expenses []domain.Expense,
	tasks []domain.Task,
	dayPlans []domain.DayPlan,
	now time.Time,
) domain.StatisticsReport {
	report := domain.StatisticsReport{
		TripCount:            len(trips),
		Countries:            []string{},
		SpendByCategory:      map[string]float64{},
		AvgSpendByCategory:   map[string]float64{},
		AccommodationsByType: map[string]int{},
		TransportsByMode:     map[string]int{},
		ActivitiesByCategory: map[string]int{},
	}

	seen := map[string]bool{}
	for _, t := range trips {
		report.DestinationCount += len(t.Destinations)
		for _, d := range t.Destinations {
			if d.Country != "" && !seen[d.Country] {
				seen[d.Country] = true
				report.Countries = append(report.Countries, d.Country)
			}
		}
	}
	sort.Strings(report.Countries)

	countByCategory := map[string]int{}
	for _, e := range expenses {
		report.TotalSpent += e.Amount
		report.SpendByCategory[e.Category] += e.Amount
		countByCategory[e.Category]++
	}
	for cat, total := range report.SpendByCategory {
		report.AvgSpendByCategory[cat] = total / float64(countByCategory[cat])
	}

	for _, a := range accommodations {
		report.AccommodationsByType[string(a.Type)]++
	}
	for _, tr := range transports {
		report.TransportsByMode[string(tr.Mode)]++
	}
	for _, p := range dayPlans {
		for _, a := range p.Activities {
			report.ActivitiesByCategory[string(a.Category)]++
		}
	}

	for _, t := range tasks {
		switch t.Status {
		case domain.TaskCompleted:
			report.TasksCompleted++
		default:
			report.TasksOpen++
			if t.Deadline != nil && t.Deadline.Before(now) {
				report.TasksOverdue++
			}
		}
	}

	return report
}
