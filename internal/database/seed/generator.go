// Package seed fills a fresh database with the preset profiles and,
// optionally, demo stores for the price comparison.
package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// Config configures the seed data generator.
type Config struct {
	DemoStores bool
	// PriceSpread is the maximum relative deviation of demo store prices
	// from the catalog price.
	PriceSpread float64
	RandomSeed  int64
}

// DefaultConfig seeds presets only.
func DefaultConfig() Config {
	return Config{
		PriceSpread: 0.15,
		RandomSeed:  2024,
	}
}

// DemoStoreNames are the stores created when DemoStores is set.
var DemoStoreNames = []string{"Atacadão", "Mercado do Bairro", "Açougue Central"}

// Generator writes seed rows in a single transaction.
type Generator struct {
	db    *sql.DB
	cfg   Config
	rng   *rand.Rand
	idGen *util.IDGenerator
}

// NewGenerator creates a new seed data generator.
func NewGenerator(db *sql.DB, cfg Config) *Generator {
	return &Generator{
		db:    db,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(cfg.RandomSeed)),
		idGen: util.NewIDGenerator(),
	}
}

// Generate upserts the preset profiles and creates demo stores that do
// not exist yet. Running it again is harmless.
func (g *Generator) Generate(ctx context.Context) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	presets, err := g.generatePresets(ctx, tx)
	if err != nil {
		return fmt.Errorf("generating presets: %w", err)
	}

	stores := 0
	if g.cfg.DemoStores {
		if stores, err = g.generateStores(ctx, tx); err != nil {
			return fmt.Errorf("generating demo stores: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	slog.Info("seed data generation complete", "presets", presets, "stores", stores)
	return nil
}

func (g *Generator) generatePresets(ctx context.Context, tx *sql.Tx) (int, error) {
	query := `
		INSERT INTO profiles (id, name, icon, description, preset, config, created_at)
		VALUES (?, ?, ?, ?, 1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			description = excluded.description,
			preset = 1,
			config = excluded.config`

	// Fixed timestamps keep the presets in their shipped order.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	presets := models.PresetProfiles()
	for i, p := range presets {
		cfg, err := json.Marshal(p.Config)
		if err != nil {
			return 0, fmt.Errorf("encoding preset %s: %w", p.ID, err)
		}
		created := base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339)
		if _, err := tx.ExecContext(ctx, query, p.ID, p.Name, p.Icon, p.Description, string(cfg), created); err != nil {
			return 0, fmt.Errorf("inserting preset %s: %w", p.ID, err)
		}
	}
	return len(presets), nil
}

func (g *Generator) generateStores(ctx context.Context, tx *sql.Tx) (int, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	created := 0

	for _, name := range DemoStoreNames {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM stores WHERE name_key = ?", strings.ToLower(name),
		).Scan(&exists)
		if err != nil {
			return 0, fmt.Errorf("checking store %s: %w", name, err)
		}
		if exists > 0 {
			slog.Debug("demo store already present", "name", name)
			continue
		}

		id := g.idGen.NewID()
		_, err = tx.ExecContext(ctx,
			"INSERT INTO stores (id, name, name_key, created_at) VALUES (?, ?, ?, ?)",
			id, name, strings.ToLower(name), now,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting store %s: %w", name, err)
		}

		for _, def := range calculator.Catalog() {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO store_prices (store_id, item_key, price) VALUES (?, ?, ?)",
				id, def.Key, g.jitter(def.PricePerUnit),
			)
			if err != nil {
				return 0, fmt.Errorf("inserting price %s/%s: %w", name, def.Key, err)
			}
		}
		created++
	}
	return created, nil
}

// jitter moves a price by up to PriceSpread in either direction, rounded
// to cents.
func (g *Generator) jitter(price float64) float64 {
	factor := 1 + (g.rng.Float64()*2-1)*g.cfg.PriceSpread
	return math.Round(price*factor*100) / 100
}
