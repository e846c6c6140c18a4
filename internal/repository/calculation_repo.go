package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// CalculationRepository stores the last shopping list and which of its
// items were checked off.
type CalculationRepository struct {
	db *sql.DB
}

// NewCalculationRepository creates a new calculation repository.
func NewCalculationRepository(db *sql.DB) *CalculationRepository {
	return &CalculationRepository{db: db}
}

// SaveLast replaces the stored shopping list.
func (r *CalculationRepository) SaveLast(ctx context.Context, tx *sql.Tx, lc *models.LastCalculation) error {
	items, err := encodeJSON(lc.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO last_calculation (id, items, total_cost, calculated_at) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			items = excluded.items,
			total_cost = excluded.total_cost,
			calculated_at = excluded.calculated_at`

	_, err = getExecer(r.db, tx).ExecContext(ctx, query, items, lc.TotalCost, util.FormatStored(lc.Date))
	if err != nil {
		return fmt.Errorf("saving last calculation: %w", err)
	}
	return nil
}

// GetLast returns the stored shopping list or ErrNotFound.
func (r *CalculationRepository) GetLast(ctx context.Context) (*models.LastCalculation, error) {
	var items, date string
	lc := &models.LastCalculation{}

	err := r.db.QueryRowContext(ctx,
		"SELECT items, total_cost, calculated_at FROM last_calculation WHERE id = 1",
	).Scan(&items, &lc.TotalCost, &date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("calculation", "last")
	}
	if err != nil {
		return nil, fmt.Errorf("querying last calculation: %w", err)
	}

	if err := decodeJSON(items, &lc.Items); err != nil {
		return nil, fmt.Errorf("last calculation items: %w", err)
	}
	if lc.Date, err = util.ParseStored(date); err != nil {
		return nil, err
	}
	return lc, nil
}

// CheckedKeys returns the keys of checked items.
func (r *CalculationRepository) CheckedKeys(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT item_key FROM checklist WHERE checked = 1")
	if err != nil {
		return nil, fmt.Errorf("querying checklist: %w", err)
	}
	defer rows.Close()

	checked := make(map[string]bool)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning checklist: %w", err)
		}
		checked[key] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist: %w", err)
	}
	return checked, nil
}

// SetChecked records the purchase state of one item.
func (r *CalculationRepository) SetChecked(ctx context.Context, tx *sql.Tx, key string, checked bool) error {
	query := `
		INSERT INTO checklist (item_key, checked, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(item_key) DO UPDATE SET checked = excluded.checked, updated_at = excluded.updated_at`

	_, err := getExecer(r.db, tx).ExecContext(ctx, query, key, boolToInt(checked), util.FormatStored(time.Now()))
	if err != nil {
		return fmt.Errorf("saving checklist item: %w", err)
	}
	return nil
}

// RemoveCheck forgets the state of one item.
func (r *CalculationRepository) RemoveCheck(ctx context.Context, tx *sql.Tx, key string) error {
	if _, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM checklist WHERE item_key = ?", key); err != nil {
		return fmt.Errorf("removing checklist item: %w", err)
	}
	return nil
}

// ClearChecks unchecks every item.
func (r *CalculationRepository) ClearChecks(ctx context.Context, tx *sql.Tx) error {
	if _, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM checklist"); err != nil {
		return fmt.Errorf("clearing checklist: %w", err)
	}
	return nil
}
