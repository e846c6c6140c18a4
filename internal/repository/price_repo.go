package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// PriceRepository stores catalog price overrides and custom items.
type PriceRepository struct {
	db *sql.DB
}

// NewPriceRepository creates a new price repository.
func NewPriceRepository(db *sql.DB) *PriceRepository {
	return &PriceRepository{db: db}
}

// Overrides returns every catalog price override keyed by item key.
func (r *PriceRepository) Overrides(ctx context.Context) (calculator.Overrides, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT item_key, price FROM custom_prices")
	if err != nil {
		return nil, fmt.Errorf("querying prices: %w", err)
	}
	defer rows.Close()

	out := make(calculator.Overrides)
	for rows.Next() {
		var key string
		var price float64
		if err := rows.Scan(&key, &price); err != nil {
			return nil, fmt.Errorf("scanning price: %w", err)
		}
		out[key] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating prices: %w", err)
	}
	return out, nil
}

// SetPrice upserts the override for a catalog item.
func (r *PriceRepository) SetPrice(ctx context.Context, tx *sql.Tx, key string, price float64) error {
	if !calculator.IsValidPrice(price) {
		return fmt.Errorf("validation failed: invalid price %.2f", price)
	}

	query := `
		INSERT INTO custom_prices (item_key, price, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(item_key) DO UPDATE SET price = excluded.price, updated_at = excluded.updated_at`

	_, err := getExecer(r.db, tx).ExecContext(ctx, query, key, price, util.FormatStored(time.Now()))
	if err != nil {
		return fmt.Errorf("saving price: %w", err)
	}
	return nil
}

// DeletePrice removes the override for one item.
func (r *PriceRepository) DeletePrice(ctx context.Context, tx *sql.Tx, key string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM custom_prices WHERE item_key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting price: %w", err)
	}
	return requireAffected(result, "price", key)
}

// ResetPrices removes every override. Custom items are kept.
func (r *PriceRepository) ResetPrices(ctx context.Context, tx *sql.Tx) error {
	if _, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM custom_prices"); err != nil {
		return fmt.Errorf("resetting prices: %w", err)
	}
	return nil
}

// CreateCustomItem inserts a custom price list item.
func (r *PriceRepository) CreateCustomItem(ctx context.Context, tx *sql.Tx, item *models.CustomItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO custom_items (item_key, label, price, unit, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := getExecer(r.db, tx).ExecContext(ctx, query,
		item.Key,
		item.Label,
		item.Price,
		string(item.Unit),
		item.Category,
		util.FormatStored(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("inserting custom item: %w", err)
	}
	return nil
}

// UpdateCustomItemPrice changes the price of a custom item.
func (r *PriceRepository) UpdateCustomItemPrice(ctx context.Context, tx *sql.Tx, key string, price float64) error {
	if !calculator.IsValidPrice(price) {
		return fmt.Errorf("validation failed: invalid price %.2f", price)
	}
	result, err := getExecer(r.db, tx).ExecContext(ctx,
		"UPDATE custom_items SET price = ? WHERE item_key = ?", price, key)
	if err != nil {
		return fmt.Errorf("updating custom item: %w", err)
	}
	return requireAffected(result, "custom item", key)
}

// ListCustomItems returns custom items in creation order.
func (r *PriceRepository) ListCustomItems(ctx context.Context) ([]*models.CustomItem, error) {
	query := `
		SELECT item_key, label, price, unit, category
		FROM custom_items
		ORDER BY created_at, rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying custom items: %w", err)
	}
	defer rows.Close()

	var items []*models.CustomItem
	for rows.Next() {
		var item models.CustomItem
		var unit string
		if err := rows.Scan(&item.Key, &item.Label, &item.Price, &unit, &item.Category); err != nil {
			return nil, fmt.Errorf("scanning custom item: %w", err)
		}
		item.Unit = models.PriceUnit(unit)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating custom items: %w", err)
	}
	return items, nil
}

// DeleteCustomItem removes a custom item.
func (r *PriceRepository) DeleteCustomItem(ctx context.Context, tx *sql.Tx, key string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM custom_items WHERE item_key = ?", key)
	if err != nil {
		return fmt.Errorf("deleting custom item: %w", err)
	}
	return requireAffected(result, "custom item", key)
}
