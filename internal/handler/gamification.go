package handler

import (
	"context"
	"net/http"

	"github.com/jtreml/wayfarer/backend/internal/gamify"
	"github.com/jtreml/wayfarer/backend/internal/service"
)

// GamificationServicer defines the operations the gamification handlers use.
type GamificationServicer interface {
	Get(ctx context.Context) (service.GamificationOverview, error)
	AddPoints(ctx context.Context, amount int) (service.GamificationOverview, []gamify.Achievement, error)
	Reset(ctx context.Context) error
	Achievements() []gamify.Achievement
}

// AddPointsRequest is the JSON body for a manual points grant or revocation.
type AddPointsRequest struct {
	Points int `json:"points"`
}

// AddPointsResponse pairs the updated overview with any resulting unlocks.
type AddPointsResponse struct {
	service.GamificationOverview
	UnlockedAchievements []gamify.Achievement `json:"unlocked_achievements,omitempty"`
}

func (s *Server) getGamification(w http.ResponseWriter, r *http.Request) {
	overview, err := s.svc.Gamification.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) getGamificationProgress(w http.ResponseWriter, r *http.Request) {
	overview, err := s.svc.Gamification.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview.Progress)
}

func (s *Server) listAchievements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Gamification.Achievements())
}

func (s *Server) addPoints(w http.ResponseWriter, r *http.Request) {
	var req AddPointsRequest
	if !decode(w, r, &req) {
		return
	}

	overview, unlocked, err := s.svc.Gamification.AddPoints(r.Context(), req.Points)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AddPointsResponse{
		GamificationOverview: overview,
		UnlockedAchievements: unlocked,
	})
}

func (s *Server) resetGamification(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Gamification.Reset(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
