package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// ExportService produces and consumes full-database snapshots. Export is a
// read-only pass over every store; Import validates the whole snapshot up
// front and applies it in one transaction, so a snapshot is either imported
// completely or not at all.
type ExportService struct {
	repos  repo.Repos
	atomic repo.Atomic
}

// NewExportService constructs an ExportService.
func NewExportService(repos repo.Repos, atomic repo.Atomic) *ExportService {
	return &ExportService{repos: repos, atomic: atomic}
}

// ImportSummary reports how many records of each kind an import created.
type ImportSummary struct {
	Trips          int `json:"trips"`
	Destinations   int `json:"destinations"`
	DayPlans       int `json:"dayPlans"`
	Activities     int `json:"activities"`
	Accommodations int `json:"accommodations"`
	Transports     int `json:"transports"`
	Expenses       int `json:"expenses"`
	Tasks          int `json:"tasks"`
	Documents      int `json:"documents"`
	PackingLists   int `json:"packingLists"`
}

// Export builds a snapshot of every store. A nil tripID exports everything;
// otherwise the snapshot is filtered to the one trip (and fails with
// domain.ErrNotFound if it does not exist).
func (s *ExportService) Export(ctx context.Context, tripID *uuid.UUID) (domain.Snapshot, error) {
	snap := domain.Snapshot{
		Version:    domain.SnapshotVersion,
		ExportedAt: time.Now().UTC(),
	}

	var err error
	if tripID == nil {
		snap.Data.Trips, err = s.repos.Trips.List(ctx)
	} else {
		var trip domain.Trip
		trip, err = s.repos.Trips.GetByID(ctx, *tripID)
		snap.Data.Trips = []domain.Trip{trip}
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: trips: %w", err)
	}

	if tripID == nil {
		snap.Data.DayPlans, err = s.repos.DayPlans.List(ctx)
	} else {
		snap.Data.DayPlans, err = s.repos.DayPlans.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: day plans: %w", err)
	}

	if tripID == nil {
		snap.Data.Accommodations, err = s.repos.Accommodations.List(ctx)
	} else {
		snap.Data.Accommodations, err = s.repos.Accommodations.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: accommodations: %w", err)
	}

	if tripID == nil {
		snap.Data.Expenses, err = s.repos.Expenses.List(ctx)
	} else {
		snap.Data.Expenses, err = s.repos.Expenses.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: expenses: %w", err)
	}

	if tripID == nil {
		snap.Data.PackingLists, err = s.repos.Packing.List(ctx)
	} else {
		snap.Data.PackingLists, err = s.repos.Packing.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: packing lists: %w", err)
	}

	if tripID == nil {
		snap.Data.Transports, err = s.repos.Transports.List(ctx)
	} else {
		snap.Data.Transports, err = s.repos.Transports.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: transports: %w", err)
	}

	if tripID == nil {
		snap.Data.Tasks, err = s.repos.Tasks.List(ctx)
	} else {
		snap.Data.Tasks, err = s.repos.Tasks.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: tasks: %w", err)
	}

	if tripID == nil {
		snap.Data.Documents, err = s.repos.Documents.List(ctx)
	} else {
		snap.Data.Documents, err = s.repos.Documents.ListByTrip(ctx, *tripID)
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("service.ExportService.Export: documents: %w", err)
	}

	return snap, nil
}

// Import validates the snapshot in full, then applies it inside a single
// transaction. All ids are remapped to fresh ones, so a snapshot can be
// imported into a database that already holds data (including its own
// origin) without collisions. Existing records are never touched.
//
// Validation failures carry every violation found, wrapped in
// domain.ErrValidation, and nothing is written.
func (s *ExportService) Import(ctx context.Context, snap domain.Snapshot) (ImportSummary, error) {
	if violations := validateSnapshot(snap); len(violations) > 0 {
		return ImportSummary{}, fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(violations, "; "))
	}

	var summary ImportSummary
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		return applySnapshot(ctx, r, snap.Data, &summary)
	})
	if err != nil {
		return ImportSummary{}, fmt.Errorf("service.ExportService.Import: %w", err)
	}
	return summary, nil
}

// validateSnapshot checks the version, every record's fields, and the
// referential integrity of the whole snapshot. It collects all violations
// rather than stopping at the first so a client can fix a file in one pass.
func validateSnapshot(snap domain.Snapshot) []string {
	var violations []string

	if snap.Version != domain.SnapshotVersion {
		violations = append(violations, fmt.Sprintf("unsupported snapshot version %q", snap.Version))
	}

	tripIDs := map[uuid.UUID]bool{}
	for i, t := range snap.Data.Trips {
		if t.ID == uuid.Nil {
			violations = append(violations, fmt.Sprintf("trips[%d]: missing id", i))
		} else if tripIDs[t.ID] {
			violations = append(violations, fmt.Sprintf("trips[%d]: duplicate id %s", i, t.ID))
		}
		tripIDs[t.ID] = true
		if err := validateTrip(t); err != nil {
			violations = append(violations, fmt.Sprintf("trips[%d]: %v", i, err))
		}
		for j, d := range t.Destinations {
			if err := validateDestination(d); err != nil {
				violations = append(violations, fmt.Sprintf("trips[%d].destinations[%d]: %v", i, j, err))
			}
		}
	}

	planIDs := map[uuid.UUID]bool{}
	destIDs := map[uuid.UUID]bool{}
	for _, t := range snap.Data.Trips {
		for _, d := range t.Destinations {
			destIDs[d.ID] = true
		}
	}

	for i, p := range snap.Data.DayPlans {
		if !tripIDs[p.TripID] {
			violations = append(violations, fmt.Sprintf("dayPlans[%d]: unknown trip %s", i, p.TripID))
		}
		if p.PlanDate.IsZero() {
			violations = append(violations, fmt.Sprintf("dayPlans[%d]: plan_date is required", i))
		}
		planIDs[p.ID] = true
		for j, a := range p.Activities {
			if err := validateActivity(a); err != nil {
				violations = append(violations, fmt.Sprintf("dayPlans[%d].activities[%d]: %v", i, j, err))
			}
		}
	}

	for i, a := range snap.Data.Accommodations {
		if !tripIDs[a.TripID] {
			violations = append(violations, fmt.Sprintf("accommodations[%d]: unknown trip %s", i, a.TripID))
		}
		if a.DestinationID != nil && !destIDs[*a.DestinationID] {
			violations = append(violations, fmt.Sprintf("accommodations[%d]: unknown destination %s", i, *a.DestinationID))
		}
		if err := validateAccommodation(a); err != nil {
			violations = append(violations, fmt.Sprintf("accommodations[%d]: %v", i, err))
		}
	}

	for i, tr := range snap.Data.Transports {
		if !tripIDs[tr.TripID] {
			violations = append(violations, fmt.Sprintf("transports[%d]: unknown trip %s", i, tr.TripID))
		}
		if err := validateTransport(tr); err != nil {
			violations = append(violations, fmt.Sprintf("transports[%d]: %v", i, err))
		}
	}

	for i, e := range snap.Data.Expenses {
		if !tripIDs[e.TripID] {
			violations = append(violations, fmt.Sprintf("expenses[%d]: unknown trip %s", i, e.TripID))
		}
		if e.DayPlanID != nil && !planIDs[*e.DayPlanID] {
			violations = append(violations, fmt.Sprintf("expenses[%d]: unknown day plan %s", i, *e.DayPlanID))
		}
		if err := validateExpense(e); err != nil {
			violations = append(violations, fmt.Sprintf("expenses[%d]: %v", i, err))
		}
	}

	for i, t := range snap.Data.Tasks {
		if !tripIDs[t.TripID] {
			violations = append(violations, fmt.Sprintf("tasks[%d]: unknown trip %s", i, t.TripID))
		}
		if err := validateTask(t); err != nil {
			violations = append(violations, fmt.Sprintf("tasks[%d]: %v", i, err))
		}
	}

	for i, d := range snap.Data.Documents {
		if !tripIDs[d.TripID] {
			violations = append(violations, fmt.Sprintf("documents[%d]: unknown trip %s", i, d.TripID))
		}
		if strings.TrimSpace(d.Name) == "" {
			violations = append(violations, fmt.Sprintf("documents[%d]: name is required", i))
		}
	}

	for i, l := range snap.Data.PackingLists {
		if !tripIDs[l.TripID] {
			violations = append(violations, fmt.Sprintf("packingLists[%d]: unknown trip %s", i, l.TripID))
		}
		if strings.TrimSpace(l.Name) == "" {
			violations = append(violations, fmt.Sprintf("packingLists[%d]: name is required", i))
		}
		for j, c := range l.Categories {
			if strings.TrimSpace(c.Name) == "" {
				violations = append(violations, fmt.Sprintf("packingLists[%d].categories[%d]: name is required", i, j))
			}
			for k, it := range c.Items {
				if strings.TrimSpace(it.Name) == "" {
					violations = append(violations, fmt.Sprintf("packingLists[%d].categories[%d].items[%d]: name is required", i, j, k))
				}
			}
		}
	}

	return violations
}

// applySnapshot writes the snapshot's records through the repos, remapping
// every snapshot id to the freshly generated one. Parents are created before
// children so the remap tables are always populated when a child needs them.
func applySnapshot(ctx context.Context, r repo.Repos, data domain.SnapshotData, summary *ImportSummary) error {
	tripMap := map[uuid.UUID]uuid.UUID{}
	destMap := map[uuid.UUID]uuid.UUID{}
	planMap := map[uuid.UUID]uuid.UUID{}

	for _, t := range data.Trips {
		created, err := r.Trips.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("trip %q: %w", t.Name, err)
		}
		tripMap[t.ID] = created.ID
		summary.Trips++

		dests := append([]domain.Destination(nil), t.Destinations...)
		sort.Slice(dests, func(i, j int) bool { return dests[i].OrderIndex < dests[j].OrderIndex })
		for _, d := range dests {
			d.TripID = created.ID
			createdDest, err := r.Trips.AddDestination(ctx, d)
			if err != nil {
				return fmt.Errorf("trip %q destination %q: %w", t.Name, d.Name, err)
			}
			destMap[d.ID] = createdDest.ID
			summary.Destinations++
		}
	}

	for _, p := range data.DayPlans {
		oldID := p.ID
		p.TripID = tripMap[p.TripID]
		created, err := r.DayPlans.Create(ctx, p)
		if err != nil {
			return fmt.Errorf("day plan %s: %w", p.PlanDate.Format("2006-01-02"), err)
		}
		planMap[oldID] = created.ID
		summary.DayPlans++

		acts := append([]domain.DayActivity(nil), p.Activities...)
		sort.Slice(acts, func(i, j int) bool { return acts[i].OrderIndex < acts[j].OrderIndex })
		for _, a := range acts {
			a.DayPlanID = created.ID
			if _, err := r.DayPlans.AddActivity(ctx, a); err != nil {
				return fmt.Errorf("activity %q: %w", a.Name, err)
			}
			summary.Activities++
		}
	}

	for _, a := range data.Accommodations {
		a.TripID = tripMap[a.TripID]
		if a.DestinationID != nil {
			mapped := destMap[*a.DestinationID]
			a.DestinationID = &mapped
		}
		if _, err := r.Accommodations.Create(ctx, a); err != nil {
			return fmt.Errorf("accommodation %q: %w", a.Name, err)
		}
		summary.Accommodations++
	}

	for _, tr := range data.Transports {
		tr.TripID = tripMap[tr.TripID]
		if _, err := r.Transports.Create(ctx, tr); err != nil {
			return fmt.Errorf("transport %s to %s: %w", tr.Origin, tr.Destination, err)
		}
		summary.Transports++
	}

	for _, e := range data.Expenses {
		e.TripID = tripMap[e.TripID]
		if e.DayPlanID != nil {
			mapped := planMap[*e.DayPlanID]
			e.DayPlanID = &mapped
		}
		if _, err := r.Expenses.Create(ctx, e); err != nil {
			return fmt.Errorf("expense %q: %w", e.Title, err)
		}
		summary.Expenses++
	}

	for _, t := range data.Tasks {
		wasCompleted := t.Status == domain.TaskCompleted
		completedAt := time.Now().UTC()
		if t.CompletedAt != nil {
			completedAt = *t.CompletedAt
		}

		t.TripID = tripMap[t.TripID]
		t.Status = domain.TaskOpen
		created, err := r.Tasks.Create(ctx, t)
		if err != nil {
			return fmt.Errorf("task %q: %w", t.Title, err)
		}
		// Completion is restored via the same toggle path normal writes use,
		// keeping status and completed_at consistent.
		if wasCompleted {
			if _, err := r.Tasks.ToggleStatus(ctx, t.TripID, created.ID, completedAt); err != nil {
				return fmt.Errorf("task %q: restore completion: %w", t.Title, err)
			}
		}
		summary.Tasks++
	}

	for _, d := range data.Documents {
		d.TripID = tripMap[d.TripID]
		if _, err := r.Documents.Create(ctx, d); err != nil {
			return fmt.Errorf("document %q: %w", d.Name, err)
		}
		summary.Documents++
	}

	for _, l := range data.PackingLists {
		cats := append([]domain.PackingCategory(nil), l.Categories...)
		sort.Slice(cats, func(i, j int) bool { return cats[i].OrderIndex < cats[j].OrderIndex })

		l.TripID = tripMap[l.TripID]
		createdList, err := r.Packing.CreateList(ctx, l)
		if err != nil {
			return fmt.Errorf("packing list %q: %w", l.Name, err)
		}
		summary.PackingLists++

		for _, c := range cats {
			items := append([]domain.PackingItem(nil), c.Items...)
			sort.Slice(items, func(i, j int) bool { return items[i].OrderIndex < items[j].OrderIndex })

			c.ListID = createdList.ID
			createdCat, err := r.Packing.AddCategory(ctx, c)
			if err != nil {
				return fmt.Errorf("packing category %q: %w", c.Name, err)
			}

			for _, it := range items {
				it.CategoryID = createdCat.ID
				if it.Quantity < 1 {
					it.Quantity = 1
				}
				if _, err := r.Packing.AddItem(ctx, it); err != nil {
					return fmt.Errorf("packing item %q: %w", it.Name, err)
				}
			}
		}
	}

	return nil
}
