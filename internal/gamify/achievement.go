package gamify

// ConditionType names the counter or derived metric an achievement condition
// is evaluated against.
type ConditionType string

const (
	ConditionTripsCompleted ConditionType = "tripsCompleted"
	ConditionItemsPacked    ConditionType = "itemsPacked"
	ConditionBudgetEntries  ConditionType = "budgetEntries"
	ConditionItineraryItems ConditionType = "itineraryItems"
	ConditionTotalPoints    ConditionType = "totalPoints"
	ConditionCurrentStreak  ConditionType = "currentStreak"
)

// Rarity roughly signals how hard an achievement is to earn.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityLegendary Rarity = "legendary"
)

// Condition is the data-driven unlock rule: the achievement unlocks once the
// metric named by Type reaches Threshold.
type Condition struct {
	Type      ConditionType `json:"type"`
	Threshold int           `json:"threshold"`
}

// Achievement is one entry of the static catalog. The catalog itself is never
// persisted; only unlocks are.
type Achievement struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Rarity      Rarity    `json:"rarity"`
	Category    string    `json:"category"`
	Points      int       `json:"points"`
	Condition   Condition `json:"condition"`
}

// Catalog is the full achievement table. Evaluation code never special-cases
// an entry: adding an achievement means adding a row here.
var Catalog = []Achievement{
	{
		ID: "first-trip", Title: "First Steps",
		Description: "Complete your first trip.",
		Rarity:      RarityCommon, Category: "trips", Points: 50,
		Condition: Condition{Type: ConditionTripsCompleted, Threshold: 1},
	},
	{
		ID: "frequent-traveler", Title: "Frequent Traveler",
		Description: "Complete 5 trips.",
		Rarity:      RarityUncommon, Category: "trips", Points: 150,
		Condition: Condition{Type: ConditionTripsCompleted, Threshold: 5},
	},
	{
		ID: "world-citizen", Title: "World Citizen",
		Description: "Complete 15 trips.",
		Rarity:      RarityLegendary, Category: "trips", Points: 500,
		Condition: Condition{Type: ConditionTripsCompleted, Threshold: 15},
	},
	{
		ID: "first-pack", Title: "Packed and Ready",
		Description: "Pack your first item.",
		Rarity:      RarityCommon, Category: "packing", Points: 10,
		Condition: Condition{Type: ConditionItemsPacked, Threshold: 1},
	},
	{
		ID: "packing-pro", Title: "Packing Pro",
		Description: "Pack 50 items.",
		Rarity:      RarityUncommon, Category: "packing", Points: 75,
		Condition: Condition{Type: ConditionItemsPacked, Threshold: 50},
	},
	{
		ID: "packing-machine", Title: "Packing Machine",
		Description: "Pack 200 items.",
		Rarity:      RarityRare, Category: "packing", Points: 200,
		Condition: Condition{Type: ConditionItemsPacked, Threshold: 200},
	},
	{
		ID: "first-expense", Title: "Penny Tracker",
		Description: "Record your first expense.",
		Rarity:      RarityCommon, Category: "budget", Points: 10,
		Condition: Condition{Type: ConditionBudgetEntries, Threshold: 1},
	},
	{
		ID: "budget-keeper", Title: "Budget Keeper",
		Description: "Record 25 expenses.",
		Rarity:      RarityUncommon, Category: "budget", Points: 75,
		Condition: Condition{Type: ConditionBudgetEntries, Threshold: 25},
	},
	{
		ID: "bean-counter", Title: "Bean Counter",
		Description: "Record 100 expenses.",
		Rarity:      RarityRare, Category: "budget", Points: 200,
		Condition: Condition{Type: ConditionBudgetEntries, Threshold: 100},
	},
	{
		ID: "first-activity", Title: "Day Dreamer",
		Description: "Add your first itinerary activity.",
		Rarity:      RarityCommon, Category: "itinerary", Points: 10,
		Condition: Condition{Type: ConditionItineraryItems, Threshold: 1},
	},
	{
		ID: "master-planner", Title: "Master Planner",
		Description: "Add 50 itinerary activities.",
		Rarity:      RarityRare, Category: "itinerary", Points: 200,
		Condition: Condition{Type: ConditionItineraryItems, Threshold: 50},
	},
	{
		ID: "week-streak", Title: "Creature of Habit",
		Description: "Stay active 7 days in a row.",
		Rarity:      RarityUncommon, Category: "streak", Points: 100,
		Condition: Condition{Type: ConditionCurrentStreak, Threshold: 7},
	},
	{
		ID: "month-streak", Title: "Unstoppable",
		Description: "Stay active 30 days in a row.",
		Rarity:      RarityLegendary, Category: "streak", Points: 500,
		Condition: Condition{Type: ConditionCurrentStreak, Threshold: 30},
	},
	{
		ID: "point-collector", Title: "Point Collector",
		Description: "Earn 1000 points.",
		Rarity:      RarityRare, Category: "points", Points: 250,
		Condition: Condition{Type: ConditionTotalPoints, Threshold: 1000},
	},
}

// ByID returns the catalog entry with the given id, or false if unknown.
func ByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
