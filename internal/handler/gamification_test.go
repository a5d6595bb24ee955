package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
	"github.com/jtreml/wayfarer/backend/internal/handler"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

// mockGamificationServicer is a test double for handler.GamificationServicer.
type mockGamificationServicer struct {
	get          func(ctx context.Context) (service.GamificationOverview, error)
	addPoints    func(ctx context.Context, amount int) (service.GamificationOverview, []gamify.Achievement, error)
	reset        func(ctx context.Context) error
	achievements func() []gamify.Achievement
}

func (m *mockGamificationServicer) Get(ctx context.Context) (service.GamificationOverview, error) {
	return m.get(ctx)
}
func (m *mockGamificationServicer) AddPoints(ctx context.Context, amount int) (service.GamificationOverview, []gamify.Achievement, error) {
	return m.addPoints(ctx, amount)
}
func (m *mockGamificationServicer) Reset(ctx context.Context) error {
	return m.reset(ctx)
}
func (m *mockGamificationServicer) Achievements() []gamify.Achievement {
	return m.achievements()
}

var _ handler.GamificationServicer = (*mockGamificationServicer)(nil)

func TestGetGamification_200(t *testing.T) {
	stats := domain.GamificationStats{TotalPoints: 120, TripsCompleted: 1}
	svc := handler.Services{Gamification: &mockGamificationServicer{
		get: func(_ context.Context) (service.GamificationOverview, error) {
			return service.GamificationOverview{
				Stats: stats,
				Level: gamify.LevelForStats(stats),
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/gamification", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp service.GamificationOverview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 120, resp.Stats.TotalPoints)
	assert.Equal(t, "Explorer", resp.Level.Title)
}

func TestGetGamificationProgress_200(t *testing.T) {
	svc := handler.Services{Gamification: &mockGamificationServicer{
		get: func(_ context.Context) (service.GamificationOverview, error) {
			return service.GamificationOverview{
				Progress: domain.AchievementProgress{Unlocked: 3, Total: 12, Percentage: 25},
			}, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/gamification/progress", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp domain.AchievementProgress
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Unlocked)
	assert.Equal(t, 12, resp.Total)
	assert.InDelta(t, 25, resp.Percentage, 0.001)
}

func TestListAchievements_200(t *testing.T) {
	svc := handler.Services{Gamification: &mockGamificationServicer{
		achievements: func() []gamify.Achievement { return gamify.Catalog },
	}}

	req := httptest.NewRequest(http.MethodGet, "/gamification/achievements", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []gamify.Achievement
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, len(gamify.Catalog))
}

func TestAddPoints_200_SurfacesUnlocks(t *testing.T) {
	unlocked := []gamify.Achievement{{ID: "point-collector", Title: "Point Collector", Points: 100}}
	svc := handler.Services{Gamification: &mockGamificationServicer{
		addPoints: func(_ context.Context, amount int) (service.GamificationOverview, []gamify.Achievement, error) {
			assert.Equal(t, 500, amount)
			return service.GamificationOverview{
				Stats: domain.GamificationStats{TotalPoints: 1100},
			}, unlocked, nil
		},
	}}

	body := jsonBody(t, map[string]any{"points": 500})

	req := httptest.NewRequest(http.MethodPost, "/gamification/points", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.AddPointsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1100, resp.Stats.TotalPoints)
	require.Len(t, resp.UnlockedAchievements, 1)
	assert.Equal(t, "point-collector", resp.UnlockedAchievements[0].ID)
}

func TestResetGamification_204(t *testing.T) {
	called := false
	svc := handler.Services{Gamification: &mockGamificationServicer{
		reset: func(_ context.Context) error { called = true; return nil },
	}}

	req := httptest.NewRequest(http.MethodPost, "/gamification/reset", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, called)
}
