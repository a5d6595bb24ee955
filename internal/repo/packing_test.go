package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtreml/wayfarer/backend/internal/domain"
	"github.com/jtreml/wayfarer/backend/internal/repo"
)

func TestPackingRepo_Hierarchy(t *testing.T) {
	tx := testTx(t)
	trips := repo.NewTripRepo(tx)
	packing := repo.NewPackingRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	list, err := packing.CreateList(ctx, domain.PackingList{TripID: trip.ID, Name: "Beach gear"})
	require.NoError(t, err)

	cat, err := packing.AddCategory(ctx, domain.PackingCategory{ListID: list.ID, Name: "Clothes"})
	require.NoError(t, err)
	assert.Equal(t, 0, cat.OrderIndex)

	for i, name := range []string{"T-shirts", "Swimsuit", "Hat"} {
		it, err := packing.AddItem(ctx, domain.PackingItem{CategoryID: cat.ID, Name: name, Quantity: 1})
		require.NoError(t, err)
		assert.Equal(t, i, it.OrderIndex)
	}

	got, err := packing.GetList(ctx, trip.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories, 1)
	require.Len(t, got.Categories[0].Items, 3)
	assert.Equal(t, "Swimsuit", got.Categories[0].Items[1].Name)
}

func TestPackingRepo_DeleteItem_RenumbersSiblings(t *testing.T) {
	tx := testTx(t)
	trips := repo.NewTripRepo(tx)
	packing := repo.NewPackingRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	list, err := packing.CreateList(ctx, domain.PackingList{TripID: trip.ID, Name: "Gear"})
	require.NoError(t, err)
	cat, err := packing.AddCategory(ctx, domain.PackingCategory{ListID: list.ID, Name: "Electronics"})
	require.NoError(t, err)

	var items []domain.PackingItem
	for _, name := range []string{"Charger", "Adapter", "Camera"} {
		it, err := packing.AddItem(ctx, domain.PackingItem{CategoryID: cat.ID, Name: name, Quantity: 1})
		require.NoError(t, err)
		items = append(items, it)
	}

	require.NoError(t, packing.DeleteItem(ctx, cat.ID, items[1].ID))

	got, err := packing.GetList(ctx, trip.ID, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Categories[0].Items, 2)
	assert.Equal(t, "Charger", got.Categories[0].Items[0].Name)
	assert.Equal(t, 0, got.Categories[0].Items[0].OrderIndex)
	assert.Equal(t, "Camera", got.Categories[0].Items[1].Name)
	assert.Equal(t, 1, got.Categories[0].Items[1].OrderIndex)
}

func TestPackingRepo_ToggleItemPacked(t *testing.T) {
	tx := testTx(t)
	trips := repo.NewTripRepo(tx)
	packing := repo.NewPackingRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	list, err := packing.CreateList(ctx, domain.PackingList{TripID: trip.ID, Name: "Gear"})
	require.NoError(t, err)
	cat, err := packing.AddCategory(ctx, domain.PackingCategory{ListID: list.ID, Name: "Misc"})
	require.NoError(t, err)
	item, err := packing.AddItem(ctx, domain.PackingItem{CategoryID: cat.ID, Name: "Sunscreen", Quantity: 1})
	require.NoError(t, err)
	require.False(t, item.IsPacked)

	packed, err := packing.ToggleItemPacked(ctx, cat.ID, item.ID)
	require.NoError(t, err)
	assert.True(t, packed.IsPacked)

	unpacked, err := packing.ToggleItemPacked(ctx, cat.ID, item.ID)
	require.NoError(t, err)
	assert.False(t, unpacked.IsPacked)
}
