package gamify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 15, 4, 5, 0, time.UTC) // mid-afternoon, truncation must not care
}

// ---- AddPoints / levels ----------------------------------------------------

func TestAddPoints_RecomputesLevel(t *testing.T) {
	s := domain.GamificationStats{}

	gamify.AddPoints(&s, 150)

	assert.Equal(t, 150, s.TotalPoints)
	lvl := gamify.LevelForStats(s)
	assert.Equal(t, 2, lvl.Level, "150 points falls in [100,250)")
	assert.Equal(t, "Explorer", lvl.Title)
}

func TestAddPoints_ClampsAtZero(t *testing.T) {
	s := domain.GamificationStats{TotalPoints: 30}

	gamify.AddPoints(&s, -100)

	assert.Equal(t, 0, s.TotalPoints)
}

func TestLevelFor_Boundaries(t *testing.T) {
	assert.Equal(t, 1, gamify.LevelFor(0).Level)
	assert.Equal(t, 1, gamify.LevelFor(99).Level)
	assert.Equal(t, 2, gamify.LevelFor(100).Level, "range is half-open [min,max)")
	assert.Equal(t, 6, gamify.LevelFor(2000).Level)
	assert.Equal(t, 6, gamify.LevelFor(1_000_000).Level, "top level is unbounded")
}

func TestLevels_Contiguous(t *testing.T) {
	for i := 1; i < len(gamify.Levels); i++ {
		assert.Equal(t, gamify.Levels[i-1].MaxPoints, gamify.Levels[i].MinPoints,
			"level %d must start where level %d ends", gamify.Levels[i].Level, gamify.Levels[i-1].Level)
	}
}

// ---- UpdateStreak ----------------------------------------------------------

func TestUpdateStreak_FirstActivity(t *testing.T) {
	s := domain.GamificationStats{}

	gamify.UpdateStreak(&s, day(2025, 6, 1))

	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	require.NotNil(t, s.LastActivityDate)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *s.LastActivityDate)
}

func TestUpdateStreak_SameDayIdempotent(t *testing.T) {
	s := domain.GamificationStats{}

	gamify.UpdateStreak(&s, day(2025, 6, 1))
	gamify.UpdateStreak(&s, day(2025, 6, 1).Add(4*time.Hour))

	assert.Equal(t, 1, s.CurrentStreak, "second call on the same calendar day must not change the streak")
}

func TestUpdateStreak_ConsecutiveDays(t *testing.T) {
	s := domain.GamificationStats{}

	gamify.UpdateStreak(&s, day(2025, 6, 1))
	gamify.UpdateStreak(&s, day(2025, 6, 2))
	gamify.UpdateStreak(&s, day(2025, 6, 3))

	assert.Equal(t, 3, s.CurrentStreak)
	assert.Equal(t, 3, s.LongestStreak)
}

func TestUpdateStreak_GapResets(t *testing.T) {
	s := domain.GamificationStats{}

	gamify.UpdateStreak(&s, day(2025, 6, 1))
	gamify.UpdateStreak(&s, day(2025, 6, 2))
	gamify.UpdateStreak(&s, day(2025, 6, 5)) // 3-day gap

	assert.Equal(t, 1, s.CurrentStreak, "a gap of two or more days breaks the streak")
	assert.Equal(t, 2, s.LongestStreak, "longest streak never decreases")
}

// ---- Evaluate --------------------------------------------------------------

func TestEvaluate_UnlocksAndAwardsPoints(t *testing.T) {
	s := domain.GamificationStats{BudgetEntries: 1}
	now := day(2025, 6, 1)

	newly := gamify.Evaluate(&s, now)

	require.Len(t, newly, 1)
	assert.Equal(t, "first-expense", newly[0].ID)
	assert.Equal(t, newly[0].Points, s.TotalPoints, "unlock grants its points exactly once")
	require.Len(t, s.Unlocks, 1)
	assert.Equal(t, now, s.Unlocks[0].UnlockedAt)
}

func TestEvaluate_Idempotent(t *testing.T) {
	s := domain.GamificationStats{BudgetEntries: 1, ItemsPacked: 1}

	first := gamify.Evaluate(&s, day(2025, 6, 1))
	require.NotEmpty(t, first)
	pointsAfterFirst := s.TotalPoints
	unlocksAfterFirst := len(s.Unlocks)

	second := gamify.Evaluate(&s, day(2025, 6, 2))

	assert.Empty(t, second, "unchanged counters must unlock nothing")
	assert.Equal(t, pointsAfterFirst, s.TotalPoints)
	assert.Len(t, s.Unlocks, unlocksAfterFirst)
}

func TestEvaluate_CascadesIntoPointConditions(t *testing.T) {
	// Enough counters to push the awarded points past the point-collector
	// threshold in a single evaluation.
	s := domain.GamificationStats{
		TripsCompleted: 15,
		ItemsPacked:    200,
		BudgetEntries:  100,
		ItineraryItems: 50,
		CurrentStreak:  30,
	}

	newly := gamify.Evaluate(&s, day(2025, 6, 1))

	ids := make(map[string]bool)
	for _, a := range newly {
		ids[a.ID] = true
	}
	assert.True(t, ids["point-collector"],
		"points awarded during evaluation must feed point-conditioned achievements in the same call")
	assert.Len(t, newly, len(gamify.Catalog), "every achievement should unlock")
}

// ---- Progress / Reset ------------------------------------------------------

func TestProgress(t *testing.T) {
	s := domain.GamificationStats{BudgetEntries: 1}
	gamify.Evaluate(&s, day(2025, 6, 1))

	p := gamify.Progress(s)

	assert.Equal(t, 1, p.Unlocked)
	assert.Equal(t, len(gamify.Catalog), p.Total)
	assert.InDelta(t, 100.0/float64(len(gamify.Catalog)), p.Percentage, 0.001)
}

func TestReset_ZeroesEverything(t *testing.T) {
	s := domain.GamificationStats{TotalPoints: 500, CurrentStreak: 3, BudgetEntries: 12}
	gamify.Evaluate(&s, day(2025, 6, 1))

	s = gamify.Reset()

	assert.Zero(t, s.TotalPoints)
	assert.Zero(t, s.CurrentStreak)
	assert.Empty(t, s.Unlocks)
	assert.Nil(t, s.LastActivityDate)
}

// ---- catalog sanity --------------------------------------------------------

func TestCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range gamify.Catalog {
		assert.False(t, seen[a.ID], "duplicate achievement id %q", a.ID)
		seen[a.ID] = true
		assert.Positive(t, a.Points, "achievement %q must award points", a.ID)
		assert.Positive(t, a.Condition.Threshold, "achievement %q needs a threshold", a.ID)
	}
}
