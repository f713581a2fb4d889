package cart

import (
	"context"
	"testing"

	"maison-heritage-store/internal/model"

	"github.com/stretchr/testify/assert"
)

func product(id string, price float64) model.Product {
	return model.Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    price,
		Currency: "USD",
	}
}

func TestAddItemMergesSameProductAndSize(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)

	s.AddItem(ctx, product("p1", 100), 1, "50ml")
	s.AddItem(ctx, product("p1", 100), 2, "50ml")

	snapshot := s.Snapshot()
	assert.Len(t, snapshot.Lines, 1)
	assert.Equal(t, 3, snapshot.Lines[0].Quantity)
	assert.Equal(t, 3, snapshot.TotalItems)
	assert.Equal(t, 300.0, snapshot.TotalPrice)
}

func TestAddItemDifferentSizesAreSeparateLines(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)

	s.AddItem(ctx, product("p1", 100), 1, "50ml")
	s.AddItem(ctx, product("p1", 100), 1, "100ml")

	assert.Len(t, s.Snapshot().Lines, 2)
	assert.Equal(t, 1, s.ItemCount("p1", "50ml"))
	assert.Equal(t, 1, s.ItemCount("p1", "100ml"))
}

func TestAddItemClampsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)

	s.AddItem(ctx, product("p1", 100), 0, "")
	s.AddItem(ctx, product("p2", 50), -5, "")

	assert.Equal(t, 1, s.ItemCount("p1", ""))
	assert.Equal(t, 1, s.ItemCount("p2", ""))
}

func TestAddItemOpensDrawer(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)
	assert.False(t, s.IsOpen())

	s.AddItem(ctx, product("p1", 100), 1, "")
	assert.True(t, s.IsOpen())
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)
	s.AddItem(ctx, product("p1", 100), 2, "")

	s.RemoveItem(ctx, "p1", "")
	assert.Equal(t, 0, s.TotalItems())

	// removing an absent line is a no-op
	s.RemoveItem(ctx, "missing", "")
	assert.Equal(t, 0, s.TotalItems())
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)
	s.AddItem(ctx, product("p1", 100), 2, "")

	s.UpdateQuantity(ctx, "p1", 5, "")
	assert.Equal(t, 5, s.ItemCount("p1", ""))
	assert.Equal(t, 500.0, s.TotalPrice())
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)
	s.AddItem(ctx, product("p1", 100), 2, "")

	s.UpdateQuantity(ctx, "p1", 0, "")
	assert.Empty(t, s.Snapshot().Lines)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)
	s.AddItem(ctx, product("p1", 100), 2, "")
	s.AddItem(ctx, product("p2", 50), 1, "")

	s.Clear(ctx)

	snapshot := s.Snapshot()
	assert.Empty(t, snapshot.Lines)
	assert.Equal(t, 0, snapshot.TotalItems)
	assert.Equal(t, 0.0, snapshot.TotalPrice)
	assert.False(t, s.IsOpen())
}

func TestSnapshotPriceUsesChargedPriceNotOriginal(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)

	p := product("p1", 450)
	p.OriginalPrice = 600
	s.AddItem(ctx, p, 2, "")

	assert.Equal(t, 900.0, s.TotalPrice())
}

func TestSnapshotHashTracksContents(t *testing.T) {
	ctx := context.Background()
	s := New("owner-1", nil, nil)
	s.AddItem(ctx, product("p1", 100), 1, "")

	h1 := s.Snapshot().Hash()
	assert.Equal(t, h1, s.Snapshot().Hash(), "hash must be stable for unchanged contents")

	s.AddItem(ctx, product("p1", 100), 1, "")
	assert.NotEqual(t, h1, s.Snapshot().Hash(), "hash must change when quantity changes")
}

func TestToggleIsUIOnly(t *testing.T) {
	s := New("owner-1", nil, nil)

	s.Toggle()
	assert.True(t, s.IsOpen())
	s.Toggle()
	assert.False(t, s.IsOpen())
}
