package domain

import "time"

// SnapshotVersion is the current export format version. Import rejects
// snapshots with any other version.
const SnapshotVersion = "1"

// Snapshot is the full or per-trip export of every store.
// Trips carry their destinations, day plans their activities, and packing
// lists their full category/item hierarchy, so the snapshot is self-contained.
type Snapshot struct {
	Version    string       `json:"version"`
	ExportedAt time.Time    `json:"exportedAt"`
	Data       SnapshotData `json:"data"`
}

// SnapshotData holds one slice per store. A per-trip export filters every
// slice to records whose trip id matches; a global export includes all.
type SnapshotData struct {
	Trips          []Trip          `json:"trips"`
	DayPlans       []DayPlan       `json:"dayPlans"`
	Accommodations []Accommodation `json:"accommodations"`
	Expenses       []Expense       `json:"expenses"`
	PackingLists   []PackingList   `json:"packingLists"`
	Transports     []Transport     `json:"transports"`
	Tasks          []Task          `json:"tasks"`
	Documents      []Document      `json:"documents"`
}
