package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

// GamificationOverview is the read model for the gamification surface:
// raw stats plus the level and catalog progress derived from them.
type GamificationOverview struct {
	Stats    domain.GamificationStats   `json:"stats"`
	Level    gamify.Level               `json:"level"`
	Progress domain.AchievementProgress `json:"progress"`
}

// GamificationService exposes the gamification state. All derived values
// (level, progress) are computed on read; only counters and unlocks persist.
type GamificationService struct {
	stats  repo.GamificationRepo
	atomic repo.Atomic
}

// NewGamificationService constructs a GamificationService.
func NewGamificationService(stats repo.GamificationRepo, atomic repo.Atomic) *GamificationService {
	return &GamificationService{stats: stats, atomic: atomic}
}

// Get returns the current stats with derived level and progress.
func (s *GamificationService) Get(ctx context.Context) (GamificationOverview, error) {
	stats, err := s.stats.Get(ctx)
	if err != nil {
		return GamificationOverview{}, fmt.Errorf("service.GamificationService.Get: %w", err)
	}
	return GamificationOverview{
		Stats:    stats,
		Level:    gamify.LevelForStats(stats),
		Progress: gamify.Progress(stats),
	}, nil
}

// AddPoints grants (or, for negative amounts, revokes) points directly and
// re-evaluates point-conditioned achievements. The write and any resulting
// unlocks commit together.
func (s *GamificationService) AddPoints(ctx context.Context, amount int) (GamificationOverview, []gamify.Achievement, error) {
	var (
		stats  domain.GamificationStats
		newly  []gamify.Achievement
		nowUTC = time.Now().UTC()
	)
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		var err error
		stats, err = r.Gamification.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		gamify.AddPoints(&stats, amount)
		newly = gamify.Evaluate(&stats, nowUTC)
		if err := r.Gamification.Save(ctx, stats); err != nil {
			return err
		}
		return saveUnlocks(ctx, r, newly, nowUTC)
	})
	if err != nil {
		return GamificationOverview{}, nil, fmt.Errorf("service.GamificationService.AddPoints: %w", err)
	}
	return GamificationOverview{
		Stats:    stats,
		Level:    gamify.LevelForStats(stats),
		Progress: gamify.Progress(stats),
	}, newly, nil
}

// Reset returns all gamification state to zero. Explicit user action only.
// Zeroing the counters and clearing the unlock set must commit together; a
// partial reset would leave unlocks whose points can never be re-awarded.
func (s *GamificationService) Reset(ctx context.Context) error {
	err := s.atomic.Tx(ctx, func(r repo.Repos) error {
		return r.Gamification.Reset(ctx)
	})
	if err != nil {
		return fmt.Errorf("service.GamificationService.Reset: %w", err)
	}
	return nil
}

// Achievements returns the full static catalog. Handlers pair it with the
// unlock set from Get to render locked and unlocked entries.
func (s *GamificationService) Achievements() []gamify.Achievement {
	return gamify.Catalog
}

// recordActivity applies one qualifying user action to the gamification state
// inside an already-open transaction: streak update, counter increment, and
// achievement evaluation, persisted together with the triggering entity write.
// Returns the newly unlocked achievements for the caller to surface.
func recordActivity(ctx context.Context, r repo.Repos, counter domain.Counter, now time.Time) ([]gamify.Achievement, error) {
	stats, err := r.Gamification.GetForUpdate(ctx)
	if err != nil {
		return nil, err
	}

	gamify.UpdateStreak(&stats, now)
	gamify.Increment(&stats, counter, 1)
	newly := gamify.Evaluate(&stats, now)

	if err := r.Gamification.Save(ctx, stats); err != nil {
		return nil, err
	}
	if err := saveUnlocks(ctx, r, newly, now); err != nil {
		return nil, err
	}
	return newly, nil
}

func saveUnlocks(ctx context.Context, r repo.Repos, newly []gamify.Achievement, now time.Time) error {
	for _, a := range newly {
		u := domain.Unlock{AchievementID: a.ID, UnlockedAt: now}
		if err := r.Gamification.AddUnlock(ctx, u); err != nil {
			return err
		}
	}
	return nil
}
