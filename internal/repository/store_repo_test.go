package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/testutil"
)

func TestStoreRepository(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewStoreRepository(db.DB.DB)
	ctx := context.Background()

	store := testutil.FixtureStore(func(s *models.Store) { s.Name = "Atacadão" })
	if err := repo.Create(ctx, nil, store); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	t.Run("Duplicate name ignoring case", func(t *testing.T) {
		dup := testutil.FixtureStore(func(s *models.Store) { s.Name = "ATACADÃO" })
		if err := repo.Create(ctx, nil, dup); !errors.Is(err, ErrDuplicateName) {
			t.Errorf("expected ErrDuplicateName, got %v", err)
		}
		exists, err := repo.ExistsByName(ctx, " atacadão ")
		if err != nil || !exists {
			t.Errorf("ExistsByName() = %v, %v", exists, err)
		}
	})

	t.Run("Get with prices", func(t *testing.T) {
		got, err := repo.GetByID(ctx, store.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if got.Prices["picanha"] != 79.9 || len(got.Prices) != 2 {
			t.Errorf("unexpected prices %v", got.Prices)
		}
	})

	t.Run("Replace prices in a transaction", func(t *testing.T) {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTx() error = %v", err)
		}
		defer tx.Rollback()

		if err := repo.SetPrices(ctx, tx, store.ID, map[string]float64{"costela": 31}); err != nil {
			t.Fatalf("SetPrices() error = %v", err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}

		got, err := repo.GetByID(ctx, store.ID)
		if err != nil {
			t.Fatalf("GetByID() error = %v", err)
		}
		if len(got.Prices) != 1 || got.Prices["costela"] != 31 {
			t.Errorf("unexpected prices %v", got.Prices)
		}

		if err := repo.SetPrices(ctx, nil, "missing", nil); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		other := testutil.FixtureStore()
		if err := repo.Create(ctx, nil, other); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		stores, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(stores) != 2 {
			t.Fatalf("expected 2 stores, got %d", len(stores))
		}
		if stores[1].Prices["cerveja"] != 3.2 {
			t.Errorf("expected cerveja 3.2, got %v", stores[1].Prices)
		}
	})

	t.Run("Delete cascades prices", func(t *testing.T) {
		if err := repo.Delete(ctx, nil, store.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.GetByID(ctx, store.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		var n int
		if err := db.QueryRow("SELECT COUNT(*) FROM store_prices WHERE store_id = ?", store.ID).Scan(&n); err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("expected prices removed, got %d", n)
		}
	})
}
