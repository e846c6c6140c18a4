package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// ProfileRepository handles profile data access.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, name, icon, description, preset, config, created_at`

// Create inserts a new profile.
func (r *ProfileRepository) Create(ctx context.Context, tx *sql.Tx, p *models.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	cfg, err := encodeJSON(p.Config)
	if err != nil {
		return err
	}

	query := `INSERT INTO profiles (` + profileColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err = getExecer(r.db, tx).ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Icon,
		p.Description,
		boolToInt(p.Preset),
		cfg,
		util.FormatStored(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

// GetByID retrieves a profile by ID.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = ?`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("profile", id)
	}
	return p, err
}

// List returns presets in shipped order followed by custom profiles,
// newest first.
func (r *ProfileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY preset DESC,
			CASE WHEN preset = 1 THEN created_at END ASC,
			created_at DESC, rowid DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}
	return profiles, nil
}

// CountCustom returns how many user profiles are stored.
func (r *ProfileRepository) CountCustom(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profiles WHERE preset = 0").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting profiles: %w", err)
	}
	return n, nil
}

// Delete removes a custom profile. Presets cannot be deleted.
func (r *ProfileRepository) Delete(ctx context.Context, tx *sql.Tx, id string) error {
	result, err := getExecer(r.db, tx).ExecContext(ctx,
		"DELETE FROM profiles WHERE id = ? AND preset = 0", id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	return requireAffected(result, "profile", id)
}

// PruneCustom keeps the newest keep custom profiles and deletes the rest.
func (r *ProfileRepository) PruneCustom(ctx context.Context, tx *sql.Tx, keep int) (int64, error) {
	query := `
		DELETE FROM profiles
		WHERE preset = 0 AND id NOT IN (
			SELECT id FROM profiles WHERE preset = 0
			ORDER BY created_at DESC, rowid DESC
			LIMIT ?
		)`

	result, err := getExecer(r.db, tx).ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("pruning profiles: %w", err)
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var preset int
	var cfg, created string

	if err := row.Scan(&p.ID, &p.Name, &p.Icon, &p.Description, &preset, &cfg, &created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}

	p.Preset = preset != 0
	if err := decodeJSON(cfg, &p.Config); err != nil {
		return nil, fmt.Errorf("profile %s config: %w", p.ID, err)
	}
	var err error
	if p.CreatedAt, err = util.ParseStored(created); err != nil {
		return nil, err
	}
	return &p, nil
}
