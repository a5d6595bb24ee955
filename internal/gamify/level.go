// Package gamify implements the gamification engine: the static level and
// achievement catalogs and the pure state transitions over
// domain.GamificationStats. Nothing in this package touches storage or the
// clock; callers pass "now" in, which keeps every function deterministic
// and directly testable.
package gamify

import "github.com/jtreml/wayfarer/backend/internal/domain"

// Level is one tier of the points ladder. A level covers the half-open
// point range [MinPoints, MaxPoints); the top level has MaxPoints = -1
// meaning unbounded.
type Level struct {
	Level     int    `json:"level"`
	Title     string `json:"title"`
	MinPoints int    `json:"min_points"`
	MaxPoints int    `json:"max_points"`
}

// Levels is the static ladder, ordered by MinPoints ascending.
// Ranges are contiguous: each level's MinPoints equals the previous MaxPoints.
var Levels = []Level{
	{Level: 1, Title: "Wanderer", MinPoints: 0, MaxPoints: 100},
	{Level: 2, Title: "Explorer", MinPoints: 100, MaxPoints: 250},
	{Level: 3, Title: "Adventurer", MinPoints: 250, MaxPoints: 500},
	{Level: 4, Title: "Globetrotter", MinPoints: 500, MaxPoints: 1000},
	{Level: 5, Title: "Voyager", MinPoints: 1000, MaxPoints: 2000},
	{Level: 6, Title: "Travel Legend", MinPoints: 2000, MaxPoints: -1},
}

// LevelFor returns the level whose range contains points.
// Negative input is treated as zero.
func LevelFor(points int) Level {
	if points < 0 {
		points = 0
	}
	for _, l := range Levels {
		if points >= l.MinPoints && (l.MaxPoints < 0 || points < l.MaxPoints) {
			return l
		}
	}
	return Levels[len(Levels)-1]
}

// LevelForStats is a convenience wrapper deriving the level from stats.
func LevelForStats(s domain.GamificationStats) Level {
	return LevelFor(s.TotalPoints)
}
