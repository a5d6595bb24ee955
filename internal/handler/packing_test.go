package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/gamify"
	"github.com/jtreml/wayfarer/backend/internal/handler"
)

// mockPackingServicer is a test double for handler.PackingServicer.
type mockPackingServicer struct {
	createList func(ctx context.Context, l domain.PackingList) (domain.PackingList, error)
	getList    func(ctx context.Context, tripID, listID uuid.UUID) (domain.PackingList, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.PackingList, error)
	updateList func(ctx context.Context, l domain.PackingList) (domain.PackingList, error)
	deleteList func(ctx context.Context, tripID, listID uuid.UUID) error

	addCategory    func(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error)
	updateCategory func(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error)
	deleteCategory func(ctx context.Context, listID, catID uuid.UUID) error

	addItem          func(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error)
	updateItem       func(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error)
	deleteItem       func(ctx context.Context, catID, itemID uuid.UUID) error
	toggleItemPacked func(ctx context.Context, catID, itemID uuid.UUID) (domain.PackingItem, []gamify.Achievement, error)
}

func (m *mockPackingServicer) CreateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	return m.createList(ctx, l)
}
func (m *mockPackingServicer) GetList(ctx context.Context, tripID, listID uuid.UUID) (domain.PackingList, error) {
	return m.getList(ctx, tripID, listID)
}
func (m *mockPackingServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.PackingList, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockPackingServicer) UpdateList(ctx context.Context, l domain.PackingList) (domain.PackingList, error) {
	return m.updateList(ctx, l)
}
func (m *mockPackingServicer) DeleteList(ctx context.Context, tripID, listID uuid.UUID) error {
	return m.deleteList(ctx, tripID, listID)
}
func (m *mockPackingServicer) AddCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error) {
	return m.addCategory(ctx, c)
}
func (m *mockPackingServicer) UpdateCategory(ctx context.Context, c domain.PackingCategory) (domain.PackingCategory, error) {
	return m.updateCategory(ctx, c)
}
func (m *mockPackingServicer) DeleteCategory(ctx context.Context, listID, catID uuid.UUID) error {
	return m.deleteCategory(ctx, listID, catID)
}
func (m *mockPackingServicer) AddItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error) {
	return m.addItem(ctx, it)
}
func (m *mockPackingServicer) UpdateItem(ctx context.Context, it domain.PackingItem) (domain.PackingItem, error) {
	return m.updateItem(ctx, it)
}
func (m *mockPackingServicer) DeleteItem(ctx context.Context, catID, itemID uuid.UUID) error {
	return m.deleteItem(ctx, catID, itemID)
}
func (m *mockPackingServicer) ToggleItemPacked(ctx context.Context, catID, itemID uuid.UUID) (domain.PackingItem, []gamify.Achievement, error) {
	return m.toggleItemPacked(ctx, catID, itemID)
}

var _ handler.PackingServicer = (*mockPackingServicer)(nil)

func TestCreatePackingList_201(t *testing.T) {
	tripID := uuid.New()
	svc := handler.Services{Packing: &mockPackingServicer{
		createList: func(_ context.Context, l domain.PackingList) (domain.PackingList, error) {
			assert.Equal(t, tripID, l.TripID)
			l.ID = uuid.New()
			l.Categories = []domain.PackingCategory{}
			return l, nil
		},
	}}

	body := jsonBody(t, map[string]any{"name": "Beach gear"})

	req := httptest.NewRequest(http.MethodPost, "/trips/"+tripID.String()+"/packing-lists", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp domain.PackingList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Beach gear", resp.Name)
}

func TestTogglePackingItem_200_SurfacesUnlocks(t *testing.T) {
	tripID := uuid.New()
	listID := uuid.New()
	catID := uuid.New()
	itemID := uuid.New()
	unlocked := []gamify.Achievement{{ID: "first-pack", Title: "Checklister", Points: 10}}

	svc := handler.Services{Packing: &mockPackingServicer{
		toggleItemPacked: func(_ context.Context, gotCat, gotItem uuid.UUID) (domain.PackingItem, []gamify.Achievement, error) {
			assert.Equal(t, catID, gotCat)
			assert.Equal(t, itemID, gotItem)
			return domain.PackingItem{ID: itemID, CategoryID: catID, Name: "Sunscreen", Quantity: 1, IsPacked: true}, unlocked, nil
		},
	}}

	url := "/trips/" + tripID.String() + "/packing-lists/" + listID.String() +
		"/categories/" + catID.String() + "/items/" + itemID.String() + "/toggle-packed"
	req := httptest.NewRequest(http.MethodPost, url, nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp handler.PackingToggleResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.IsPacked)
	require.Len(t, resp.UnlockedAchievements, 1)
	assert.Equal(t, "first-pack", resp.UnlockedAchievements[0].ID)
}

func TestDeletePackingItem_204(t *testing.T) {
	tripID := uuid.New()
	listID := uuid.New()
	catID := uuid.New()
	itemID := uuid.New()

	svc := handler.Services{Packing: &mockPackingServicer{
		deleteItem: func(_ context.Context, gotCat, gotItem uuid.UUID) error {
			assert.Equal(t, catID, gotCat)
			assert.Equal(t, itemID, gotItem)
			return nil
		},
	}}

	url := "/trips/" + tripID.String() + "/packing-lists/" + listID.String() +
		"/categories/" + catID.String() + "/items/" + itemID.String()
	req := httptest.NewRequest(http.MethodDelete, url, nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
