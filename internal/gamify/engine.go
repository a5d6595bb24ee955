package gamify

import (
	"time"

	"github.com/jtreml/wayfarer/backend/internal/domain"
)

// AddPoints adds amount to the running total, clamping the result at zero.
// Negative amounts are allowed (e.g. a correction) but can never push the
// total below zero.
func AddPoints(s *domain.GamificationStats, amount int) {
	s.TotalPoints += amount
	if s.TotalPoints < 0 {
		s.TotalPoints = 0
	}
}

// UpdateStreak advances the daily-activity streak for the calendar day of now.
//
//   - first ever activity: streak starts at 1
//   - same day as the last activity: no change (idempotent)
//   - exactly the next day: streak += 1
//   - gap of two or more days: streak resets to 1
//
// LongestStreak tracks the high-water mark and never decreases.
func UpdateStreak(s *domain.GamificationStats, now time.Time) {
	today := truncateDay(now)

	switch {
	case s.LastActivityDate == nil:
		s.CurrentStreak = 1
	default:
		last := truncateDay(*s.LastActivityDate)
		days := int(today.Sub(last).Hours() / 24)
		switch {
		case days == 0:
			return
		case days == 1:
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}
	}

	if s.CurrentStreak > s.LongestStreak {
		s.LongestStreak = s.CurrentStreak
	}
	s.LastActivityDate = &today
}

// Increment adds n to the named activity counter. Unknown counters are
// ignored so that persisted state from a newer version never panics an
// older binary.
func Increment(s *domain.GamificationStats, c domain.Counter, n int) {
	switch c {
	case domain.CounterTripsCompleted:
		s.TripsCompleted += n
	case domain.CounterItemsPacked:
		s.ItemsPacked += n
	case domain.CounterBudgetEntries:
		s.BudgetEntries += n
	case domain.CounterItineraryItems:
		s.ItineraryItems += n
	}
}

// Evaluate checks every catalog entry not yet unlocked against the current
// counters, records new unlocks with the given timestamp, and awards each
// newly unlocked achievement's points exactly once.
//
// Evaluation is idempotent: running it again with unchanged counters unlocks
// nothing and leaves TotalPoints untouched. Because unlocking awards points,
// a single call can cascade into point-conditioned achievements; evaluation
// loops until a pass unlocks nothing.
func Evaluate(s *domain.GamificationStats, now time.Time) []Achievement {
	unlocked := make(map[string]bool, len(s.Unlocks))
	for _, u := range s.Unlocks {
		unlocked[u.AchievementID] = true
	}

	var newly []Achievement
	for {
		progressed := false
		for _, a := range Catalog {
			if unlocked[a.ID] {
				continue
			}
			if metric(s, a.Condition.Type) < a.Condition.Threshold {
				continue
			}
			unlocked[a.ID] = true
			s.Unlocks = append(s.Unlocks, domain.Unlock{AchievementID: a.ID, UnlockedAt: now})
			AddPoints(s, a.Points)
			newly = append(newly, a)
			progressed = true
		}
		if !progressed {
			break
		}
	}
	return newly
}

// Progress returns the unlocked/total ratio over the static catalog.
func Progress(s domain.GamificationStats) domain.AchievementProgress {
	p := domain.AchievementProgress{
		Unlocked: len(s.Unlocks),
		Total:    len(Catalog),
	}
	if p.Total > 0 {
		p.Percentage = float64(p.Unlocked) / float64(p.Total) * 100
	}
	return p
}

// Reset returns a zeroed stats object. Only an explicit user action should
// reach this; it is the single exception to point monotonicity.
func Reset() domain.GamificationStats {
	return domain.GamificationStats{}
}

// metric resolves a condition type to its current value, covering both raw
// counters and derived metrics.
func metric(s *domain.GamificationStats, t ConditionType) int {
	switch t {
	case ConditionTripsCompleted:
		return s.TripsCompleted
	case ConditionItemsPacked:
		return s.ItemsPacked
	case ConditionBudgetEntries:
		return s.BudgetEntries
	case ConditionItineraryItems:
		return s.ItineraryItems
	case ConditionTotalPoints:
		return s.TotalPoints
	case ConditionCurrentStreak:
		return s.CurrentStreak
	}
	return 0
}

// truncateDay drops the time-of-day component, keeping UTC calendar-day
// granularity for streak arithmetic.
func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
