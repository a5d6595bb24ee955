package domain

// StatisticsReport is the result of the read-only statistics projection.
// It is computed from immutable snapshots of the stores and carries no
// identity: recomputing over the same data yields the same report.
type StatisticsReport struct {
	TripCount        int `json:"trip_count"`
	DestinationCount int `json:"destination_count"`

	// Countries visited across the scope, deduplicated and sorted.
	Countries []string `json:"countries"`

	TotalSpent         float64            `json:"total_spent"`
	SpendByCategory    map[string]float64 `json:"spend_by_category"`
	AvgSpendByCategory map[string]float64 `json:"avg_spend_by_category"`

	AccommodationsByType map[string]int `json:"accommodations_by_type"`
	TransportsByMode     map[string]int `json:"transports_by_mode"`
	ActivitiesByCategory map[string]int `json:"activities_by_category"`

	TasksOpen      int `json:"tasks_open"`
	TasksCompleted int `json:"tasks_completed"`
	TasksOverdue   int `json:"tasks_overdue"`
}
