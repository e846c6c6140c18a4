package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/testutil"
)

func TestPriceRepository_Overrides(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPriceRepository(db.DB.DB)
	ctx := context.Background()

	t.Run("Empty by default", func(t *testing.T) {
		got, err := repo.Overrides(ctx)
		if err != nil {
			t.Fatalf("Overrides() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no overrides, got %v", got)
		}
	})

	t.Run("Set and replace", func(t *testing.T) {
		if err := repo.SetPrice(ctx, nil, "picanha", 79.9); err != nil {
			t.Fatalf("SetPrice() error = %v", err)
		}
		if err := repo.SetPrice(ctx, nil, "picanha", 85); err != nil {
			t.Fatalf("SetPrice() error = %v", err)
		}

		got, err := repo.Overrides(ctx)
		if err != nil {
			t.Fatalf("Overrides() error = %v", err)
		}
		if p, ok := got.Price("picanha"); !ok || p != 85 {
			t.Errorf("expected picanha 85, got %v (%v)", p, ok)
		}
		db.AssertRowCount(t, "custom_prices", 1)
	})

	t.Run("Invalid price rejected", func(t *testing.T) {
		if err := repo.SetPrice(ctx, nil, "costela", 0); err == nil {
			t.Error("expected error for zero price")
		}
	})

	t.Run("Delete and reset", func(t *testing.T) {
		if err := repo.SetPrice(ctx, nil, "costela", 30); err != nil {
			t.Fatal(err)
		}
		if err := repo.DeletePrice(ctx, nil, "costela"); err != nil {
			t.Fatalf("DeletePrice() error = %v", err)
		}
		if err := repo.DeletePrice(ctx, nil, "costela"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second DeletePrice() error = %v, want ErrNotFound", err)
		}
		if err := repo.ResetPrices(ctx, nil); err != nil {
			t.Fatalf("ResetPrices() error = %v", err)
		}
		db.AssertRowCount(t, "custom_prices", 0)
	})
}

func TestPriceRepository_CustomItems(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPriceRepository(db.DB.DB)
	ctx := context.Background()

	// keys sort against insertion order; ties on created_at must keep
	// insertion order
	first := testutil.FixtureCustomItem(func(c *models.CustomItem) { c.Key = "custom_zz" })
	second := testutil.FixtureCustomItem(func(c *models.CustomItem) {
		c.Key = "custom_aa"
		c.Label = "Carvão de coco"
		c.Unit = models.PriceUnitPack
	})

	for _, item := range []*models.CustomItem{first, second} {
		if err := repo.CreateCustomItem(ctx, nil, item); err != nil {
			t.Fatalf("CreateCustomItem() error = %v", err)
		}
	}

	t.Run("Duplicate key rejected", func(t *testing.T) {
		if err := repo.CreateCustomItem(ctx, nil, first); err == nil {
			t.Error("expected error for duplicate key")
		}
	})

	t.Run("Invalid item rejected", func(t *testing.T) {
		bad := testutil.FixtureCustomItem(func(c *models.CustomItem) { c.Label = "x" })
		if err := repo.CreateCustomItem(ctx, nil, bad); err == nil {
			t.Error("expected validation error")
		}
	})

	t.Run("List in creation order", func(t *testing.T) {
		items, err := repo.ListCustomItems(ctx)
		if err != nil {
			t.Fatalf("ListCustomItems() error = %v", err)
		}
		if len(items) != 2 {
			t.Fatalf("expected 2 items, got %d", len(items))
		}
		if items[0].Key != first.Key || items[1].Key != second.Key {
			t.Errorf("expected %s then %s, got %s then %s", first.Key, second.Key, items[0].Key, items[1].Key)
		}
		if items[1].Unit != models.PriceUnitPack {
			t.Errorf("expected unit pacote, got %s", items[1].Unit)
		}
	})

	t.Run("Update price", func(t *testing.T) {
		if err := repo.UpdateCustomItemPrice(ctx, nil, first.Key, 22.5); err != nil {
			t.Fatalf("UpdateCustomItemPrice() error = %v", err)
		}
		if err := repo.UpdateCustomItemPrice(ctx, nil, "missing", 1); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := repo.DeleteCustomItem(ctx, nil, first.Key); err != nil {
			t.Fatalf("DeleteCustomItem() error = %v", err)
		}
		db.AssertRowCount(t, "custom_items", 1)
	})
}
