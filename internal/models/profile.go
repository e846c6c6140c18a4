package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/churrascometro/churrascometro/internal/calculator"
)

// MaxCustomProfiles is how many user profiles are kept, newest first.
const MaxCustomProfiles = 5

// CustomProfileIcon marks profiles saved by the user.
const CustomProfileIcon = "⭐"

// Profile is a named event configuration that fills the calculator in one
// step. Presets ship with the application; custom profiles are saved by
// the user.
type Profile struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Icon        string           `json:"icon" yaml:"icon"`
	Description string           `json:"description" yaml:"description"`
	Preset      bool             `json:"preset" yaml:"preset"`
	Config      calculator.Input `json:"config" yaml:"config"`
	CreatedAt   time.Time        `json:"created_at" yaml:"created_at"`
}

// Validate checks if the profile data is valid.
func (p *Profile) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !p.Config.Duration.Valid() {
		return fmt.Errorf("invalid duration: %s", p.Config.Duration)
	}
	if err := ValidateCounts(p.Config); err != nil {
		return err
	}
	return nil
}

// ValidateCounts rejects negative guest or drinker counts.
func ValidateCounts(in calculator.Input) error {
	counts := []struct {
		name  string
		value int
	}{
		{"meat_adults", in.MeatAdults},
		{"vegetarian_adults", in.VegetarianAdults},
		{"children", in.Children},
		{"beer_drinkers", in.BeerDrinkers},
		{"soda_drinkers", in.SodaDrinkers},
	}
	for _, c := range counts {
		if c.value < 0 {
			return fmt.Errorf("%s cannot be negative", c.name)
		}
	}
	return nil
}

// Summary returns the short guest description used for custom profiles.
func Summary(in calculator.Input) string {
	return fmt.Sprintf("%d pessoas", in.TotalParticipants())
}
