package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
)

// PackingServicer defines the operations the packing handlers use.
type PackingServicer interface {
	CreateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error)
	GetList(ctx context.Context, tripID, listID uuid.UUID) (domain.PackingList, error)
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PackingList, error)
	UpdateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error)
	DeleteList(ctx context.Context, tripID, listID uuid.UUID) error

	AddCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error)
	UpdateCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error)
	DeleteCategory(ctx context.Context, listID, catID uuid.UUID) error

	AddItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error)
	UpdateItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error)
	DeleteItem(ctx context.Context, catID, itemID uuid.UUID) error
	ToggleItemPacked(ctx context.Context, catID, itemID uuid.UUID) (domain.PackingItem, []gamify.Achievement, error)
}

// PackingListRequest is the JSON body for creating or renaming a list.
type PackingListRequest struct {
	Name string `json:"name"`
}

// PackingCategoryRequest is the JSON body for creating or renaming a category.
type PackingCategoryRequest struct {
	Name string `json:"name"`
}

// PackingItemRequest is the JSON body for creating or updating an item.
// Packed state flips only through the toggle endpoint.
type PackingItemRequest struct {
	Name        string `json:"name"`
	Quantity    int    `json:"quantity,omitempty"`
	IsEssential bool   `json:"is_essential,omitempty"`
}

// PackingToggleResponse adds the achievements packing the item unlocked.
type PackingToggleResponse struct {
	domain.PackingItem
	UnlockedAchievements []gamify.Achievement `json:"unlocked_achievements,omitempty"`
}

// ---- list handlers ---------------------------------------------------------

func (s *Server) listPackingLists(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}

	lists, err := s.svc.Packing.ListByTrip(r.Context(), tripID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) createPackingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	var req PackingListRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Packing.CreateList(r.Context(), domain.PackingList{TripID: tripID, Name: req.Name})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) getPackingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	l, err := s.svc.Packing.GetList(r.Context(), tripID, listID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) updatePackingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}
	var req PackingListRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Packing.UpdateList(r.Context(), domain.PackingList{ID: listID, TripID: tripID, Name: req.Name})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePackingList(w http.ResponseWriter, r *http.Request) {
	tripID, ok := pathID(w, r, "tripID")
	if !ok {
		return
	}
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}

	if err := s.svc.Packing.DeleteList(r.Context(), tripID, listID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- category handlers -----------------------------------------------------

func (s *Server) addPackingCategory(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}
	var req PackingCategoryRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Packing.AddCategory(r.Context(), domain.PackingCategory{ListID: listID, Name: req.Name})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updatePackingCategory(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}
	catID, ok := pathID(w, r, "catID")
	if !ok {
		return
	}
	var req PackingCategoryRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Packing.UpdateCategory(r.Context(), domain.PackingCategory{ID: catID, ListID: listID, Name: req.Name})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePackingCategory(w http.ResponseWriter, r *http.Request) {
	listID, ok := pathID(w, r, "listID")
	if !ok {
		return
	}
	catID, ok := pathID(w, r, "catID")
	if !ok {
		return
	}

	if err := s.svc.Packing.DeleteCategory(r.Context(), listID, catID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- item handlers ---------------------------------------------------------

func (s *Server) addPackingItem(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "catID")
	if !ok {
		return
	}
	var req PackingItemRequest
	if !decode(w, r, &req) {
		return
	}

	created, err := s.svc.Packing.AddItem(r.Context(), domain.PackingItem{
		CategoryID:  catID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		IsEssential: req.IsEssential,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) updatePackingItem(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "catID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}
	var req PackingItemRequest
	if !decode(w, r, &req) {
		return
	}

	updated, err := s.svc.Packing.UpdateItem(r.Context(), domain.PackingItem{
		ID:          itemID,
		CategoryID:  catID,
		Name:        req.Name,
		Quantity:    req.Quantity,
		IsEssential: req.IsEssential,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePackingItem(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "catID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	if err := s.svc.Packing.DeleteItem(r.Context(), catID, itemID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) togglePackingItem(w http.ResponseWriter, r *http.Request) {
	catID, ok := pathID(w, r, "catID")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "itemID")
	if !ok {
		return
	}

	item, unlocked, err := s.svc.Packing.ToggleItemPacked(r.Context(), catID, itemID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PackingToggleResponse{
		PackingItem:          item,
		UnlockedAchievements: unlocked,
	})
}
