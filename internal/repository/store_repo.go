package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// StoreRepository handles stores and their price tables.
type StoreRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *sql.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Create inserts a store and its prices. Names are unique ignoring case.
func (r *StoreRepository) Create(ctx context.Context, tx *sql.Tx, s *models.Store) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	exists, err := r.existsByName(ctx, getQuerier(r.db, tx), s.Name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("store %q: %w", s.Name, ErrDuplicateName)
	}

	exec := getExecer(r.db, tx)
	_, err = exec.ExecContext(ctx,
		"INSERT INTO stores (id, name, name_key, created_at) VALUES (?, ?, ?, ?)",
		s.ID, s.Name, nameKey(s.Name), util.FormatStored(s.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting store: %w", err)
	}

	return insertStorePrices(ctx, exec, s.ID, s.Prices)
}

// ExistsByName reports whether a store with this name exists, ignoring case.
func (r *StoreRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsByName(ctx, r.db, name)
}

func (r *StoreRepository) existsByName(ctx context.Context, q querier, name string) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM stores WHERE name_key = ?", nameKey(name)).Scan(&n); err != nil {
		return false, fmt.Errorf("checking store name: %w", err)
	}
	return n > 0, nil
}

// GetByID retrieves a store with its prices.
func (r *StoreRepository) GetByID(ctx context.Context, id string) (*models.Store, error) {
	var s models.Store
	var created string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM stores WHERE id = ?", id,
	).Scan(&s.ID, &s.Name, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("store", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying store: %w", err)
	}
	if s.CreatedAt, err = util.ParseStored(created); err != nil {
		return nil, err
	}

	prices, err := r.loadPrices(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Prices = prices[id]
	if s.Prices == nil {
		s.Prices = map[string]float64{}
	}
	return &s, nil
}

// List returns every store with its prices in creation order.
func (r *StoreRepository) List(ctx context.Context) ([]*models.Store, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, created_at FROM stores ORDER BY created_at, rowid")
	if err != nil {
		return nil, fmt.Errorf("querying stores: %w", err)
	}
	defer rows.Close()

	var stores []*models.Store
	for rows.Next() {
		var s models.Store
		var created string
		if err := rows.Scan(&s.ID, &s.Name, &created); err != nil {
			return nil, fmt.Errorf("scanning store: %w", err)
		}
		if s.CreatedAt, err = util.ParseStored(created); err != nil {
			return nil, err
		}
		stores = append(stores, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stores: %w", err)
	}
	rows.Close()

	prices, err := r.loadPrices(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, s := range stores {
		s.Prices = prices[s.ID]
		if s.Prices == nil {
			s.Prices = map[string]float64{}
		}
	}
	return stores, nil
}

// loadPrices returns prices grouped by store, for one store or all of them
// when storeID is empty.
func (r *StoreRepository) loadPrices(ctx context.Context, storeID string) (map[string]map[string]float64, error) {
	query := "SELECT store_id, item_key, price FROM store_prices"
	var args []any
	if storeID != "" {
		query += " WHERE store_id = ?"
		args = append(args, storeID)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying store prices: %w", err)
	}
	defer rows.Close()

	out := make(map[string]map[string]float64)
	for rows.Next() {
		var id, key string
		var price float64
		if err := rows.Scan(&id, &key, &price); err != nil {
			return nil, fmt.Errorf("scanning store price: %w", err)
		}
		if out[id] == nil {
			out[id] = make(map[string]float64)
		}
		out[id][key] = price
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating store prices: %w", err)
	}
	return out, nil
}

// SetPrices replaces the price table of a store.
func (r *StoreRepository) SetPrices(ctx context.Context, tx *sql.Tx, storeID string, prices map[string]float64) error {
	exec := getExecer(r.db, tx)

	var n int
	if err := getQuerier(r.db, tx).QueryRowContext(ctx, "SELECT COUNT(*) FROM stores WHERE id = ?", storeID).Scan(&n); err != nil {
		return fmt.Errorf("checking store: %w", err)
	}
	if n == 0 {
		return notFound("store", storeID)
	}

	if _, err := exec.ExecContext(ctx, "DELETE FROM store_prices WHERE store_id = ?", storeID); err != nil {
		return fmt.Errorf("clearing store prices: %w", err)
	}
	return insertStorePrices(ctx, exec, storeID, prices)
}

func insertStorePrices(ctx context.Context, exec execer, storeID string, prices map[string]float64) error {
	for key, price := range prices {
		if price < 0 {
			return fmt.Errorf("validation failed: negative price for %s", key)
		}
		_, err := exec.ExecContext(ctx,
			"INSERT INTO store_prices (store_id, item_key, price) VALUES (?, ?, ?)",
			storeID, key, price,
		)
		if err != nil {
			return fmt.Errorf("inserting store price %s: %w", key, err)
		}
	}
	return nil
}

// Delete removes a store and, by cascade, its prices.
func (r *StoreRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM stores WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting store: %w", err)
	}
	return requireAffected(result, "store", id)
}
