package planner

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/churrascometro/churrascometro/internal/calculator"
	"github.com/churrascometro/churrascometro/internal/database"
	"github.com/churrascometro/churrascometro/internal/models"
	"github.com/churrascometro/churrascometro/internal/util"
)

// ListProfiles returns the presets followed by custom profiles, newest
// first.
func (s *Service) ListProfiles(ctx context.Context) ([]*models.Profile, error) {
	return s.profiles.List(ctx)
}

// GetProfile retrieves a profile by ID.
func (s *Service) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// SaveProfile stores the configuration as a custom profile. Only the
// newest MaxCustomProfiles custom profiles are kept.
func (s *Service) SaveProfile(ctx context.Context, name string, in calculator.Input) (*models.Profile, error) {
	name, err := validName(name)
	if err != nil {
		return nil, err
	}
	if err := checkInput(in); err != nil {
		return nil, err
	}
	if in.TotalParticipants() <= 0 {
		return nil, ErrNoGuests
	}

	in = normalize(in)
	p := &models.Profile{
		ID:          util.PrefixedID("custom"),
		Name:        name,
		Icon:        models.CustomProfileIcon,
		Description: models.Summary(in),
		Config:      in,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.insertProfiles(ctx, p); err != nil {
		return nil, err
	}

	slog.Info("profile saved", "profile", p.ID, "name", p.Name)
	return p, nil
}

func (s *Service) insertProfiles(ctx context.Context, profiles ...*models.Profile) error {
	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, p := range profiles {
			if err := s.profiles.Create(ctx, tx, p); err != nil {
				return err
			}
		}
		removed, err := s.profiles.PruneCustom(ctx, tx, models.MaxCustomProfiles)
		if err != nil {
			return err
		}
		if removed > 0 {
			slog.Debug("old profiles pruned", "count", removed)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving profiles: %w", err)
	}
	return nil
}

// DeleteProfile removes a custom profile.
func (s *Service) DeleteProfile(ctx context.Context, id string) error {
	if err := s.profiles.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	slog.Info("profile deleted", "profile", id)
	return nil
}

// ExportProfiles writes the custom profiles as a YAML document.
func (s *Service) ExportProfiles(ctx context.Context, w io.Writer) (int, error) {
	all, err := s.profiles.List(ctx)
	if err != nil {
		return 0, err
	}

	doc := profileDocument{Version: profileDocumentVersion}
	for _, p := range all {
		if !p.Preset {
			doc.Profiles = append(doc.Profiles, *p)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return 0, fmt.Errorf("encoding profiles: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("encoding profiles: %w", err)
	}
	return len(doc.Profiles), nil
}

// ImportProfiles reads a YAML document written by ExportProfiles. Each
// profile gets a new ID; the usual limit on custom profiles applies.
func (s *Service) ImportProfiles(ctx context.Context, r io.Reader) (int, error) {
	var doc profileDocument
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decoding profiles: %w", err)
	}
	if doc.Version != profileDocumentVersion {
		return 0, fmt.Errorf("unsupported profile document version %d", doc.Version)
	}

	now := s.clock.Now()
	var profiles []*models.Profile
	for i, p := range doc.Profiles {
		name, err := validName(p.Name)
		if err != nil {
			return 0, fmt.Errorf("profile %d: %w", i+1, err)
		}
		if err := checkInput(p.Config); err != nil {
			return 0, fmt.Errorf("profile %d: %w", i+1, err)
		}
		in := normalize(p.Config)
		// documents list newest first; keep that order
		created := now.Add(-time.Duration(i) * time.Second)
		icon := p.Icon
		if icon == "" {
			icon = models.CustomProfileIcon
		}
		profiles = append(profiles, &models.Profile{
			ID:          util.PrefixedID("custom"),
			Name:        name,
			Icon:        icon,
			Description: models.Summary(in),
			Config:      in,
			CreatedAt:   created,
		})
	}
	if len(profiles) == 0 {
		return 0, nil
	}

	if err := s.insertProfiles(ctx, profiles...); err != nil {
		return 0, err
	}
	slog.Info("profiles imported", "count", len(profiles))
	return len(profiles), nil
}
