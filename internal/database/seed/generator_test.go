package seed

import (
	"context"
	"testing"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/database"
)

func TestGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewMigratedInMemory(ctx)
	if err != nil {
		t.Fatalf("NewMigratedInMemory() error = %v", err)
	}
	defer db.Close()

	cfg := DefaultConfig()
	cfg.DemoStores = true

	// twice, to check it is idempotent
	for i := 0; i < 2; i++ {
		if err := NewGenerator(db.DB, cfg).Generate(ctx); err != nil {
			t.Fatalf("Generate() run %d error = %v", i+1, err)
		}
	}

	count := func(query string) int {
		t.Helper()
		var n int
		if err := db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			t.Fatalf("%s: %v", query, err)
		}
		return n
	}

	if got := count("SELECT COUNT(*) FROM profiles WHERE preset = 1"); got != 6 {
		t.Errorf("preset profiles = %d, want 6", got)
	}
	if got := count("SELECT COUNT(*) FROM stores"); got != len(DemoStoreNames) {
		t.Errorf("stores = %d, want %d", got, len(DemoStoreNames))
	}
	want := len(DemoStoreNames) * len(calculator.Catalog())
	if got := count("SELECT COUNT(*) FROM store_prices"); got != want {
		t.Errorf("store_prices = %d, want %d", got, want)
	}
}

func TestGenerator_Jitter(t *testing.T) {
	g := NewGenerator(nil, DefaultConfig())
	for i := 0; i < 100; i++ {
		got := g.jitter(100)
		if got < 85 || got > 115 {
			t.Fatalf("jitter(100) = %v, outside ±15%%", got)
		}
	}
}
