package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// EventRepository handles saved event history.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, name, event_date, config, total_cost`

// Create inserts a saved event.
func (r *EventRepository) Create(ctx context.Context, tx *sql.Tx, e *models.SavedEvent) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	cfg, err := encodeJSON(e.Config)
	if err != nil {
		return err
	}

	query := `INSERT INTO saved_events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err = getExecer(r.db, tx).ExecContext(ctx, query,
		e.ID,
		e.Name,
		util.FormatStored(e.Date),
		cfg,
		e.TotalCost,
	)
	if err != nil {
		return fmt.Errorf("inserting saved event: %w", err)
	}
	return nil
}

// GetByID retrieves a saved event by ID.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.SavedEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM saved_events WHERE id = ?`
	e, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("saved event", id)
	}
	return e, err
}

// List returns saved events newest first.
func (r *EventRepository) List(ctx context.Context, page models.Pagination) (*models.EventList, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM saved_events").Scan(&total); err != nil {
		return nil, fmt.Errorf("counting saved events: %w", err)
	}

	query := `
		SELECT ` + eventColumns + `
		FROM saved_events
		ORDER BY event_date DESC, rowid DESC
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, fmt.Errorf("querying saved events: %w", err)
	}
	defer rows.Close()

	list := &models.EventList{
		Total:      total,
		Page:       max(page.Page, 1),
		TotalPages: page.TotalPages(total),
	}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		list.Events = append(list.Events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved events: %w", err)
	}
	return list, nil
}

// Delete removes one saved event.
func (r *EventRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM saved_events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting saved event: %w", err)
	}
	return requireAffected(result, "saved event", id)
}

// DeleteAll clears the history.
func (r *EventRepository) DeleteAll(ctx context.Context, tx *sql.Tx) error {
	if _, err := getExecer(r.db, tx).ExecContext(ctx, "DELETE FROM saved_events"); err != nil {
		return fmt.Errorf("clearing saved events: %w", err)
	}
	return nil
}

// Prune keeps the newest keep events and deletes the rest.
func (r *EventRepository) Prune(ctx context.Context, tx *sql.Tx, keep int) (int64, error) {
	query := `
		DELETE FROM saved_events
		WHERE id NOT IN (
			SELECT id FROM saved_events
			ORDER BY event_date DESC, rowid DESC
			LIMIT ?
		)`

	result, err := getExecer(r.db, tx).ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning saved events: %w", err)
	}
	return result.RowsAffected()
}

func scanEvent(row rowScanner) (*models.SavedEvent, error) {
	var e models.SavedEvent
	var date, cfg string

	if err := row.Scan(&e.ID, &e.Name, &date, &cfg, &e.TotalCost); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning saved event: %w", err)
	}

	if err := decodeJSON(cfg, &e.Config); err != nil {
		return nil, fmt.Errorf("saved event %s config: %w", e.ID, err)
	}
	var err error
	if e.Date, err = util.ParseStored(date); err != nil {
		return nil, err
	}
	return &e, nil
}
