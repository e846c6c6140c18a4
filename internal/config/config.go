// Package config provides configuration management for Churrascômetro.
// Configurations are loaded from TOML files with XDG-compliant paths and
// may be overridden from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/churrascometro/churrascometro/internal/calculator"
)

// Config holds the complete application configuration.
type Config struct {
	Event    EventConfig    `toml:"event"`
	Display  DisplayConfig  `toml:"display"`
	Logging  LoggingConfig  `toml:"logging"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// EventConfig holds the values the calculator starts with.
type EventConfig struct {
	MeatAdults       int                 `toml:"meat_adults"`
	VegetarianAdults int                 `toml:"vegetarian_adults"`
	Children         int                 `toml:"children"`
	BeerDrinkers     int                 `toml:"beer_drinkers"`
	SodaDrinkers     int                 `toml:"soda_drinkers"`
	Duration         calculator.Duration `toml:"duration"`
	IncludeSides     bool                `toml:"include_sides"`
	SelectedMeats    []string            `toml:"selected_meats"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	DateFormat  string      `toml:"date_format"`
	TimeFormat  string      `toml:"time_format"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeEmber    ColorScheme = "ember"
	ColorSchemeCharcoal ColorScheme = "charcoal"
	ColorSchemeMono     ColorScheme = "mono"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls SQLite database settings.
type DatabaseConfig struct {
	Path                string `toml:"path"`
	BackupIntervalHours int    `toml:"backup_interval_hours"`
	BackupRetentionDays int    `toml:"backup_retention_days"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	Mode           string `toml:"mode"`
	MetricsEnabled bool   `toml:"metrics_enabled"`
	ShutdownSecs   int    `toml:"shutdown_timeout_seconds"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Event.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("event: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the event defaults are valid.
func (e *EventConfig) Validate() error {
	var errs []error

	counts := []struct {
		name  string
		value int
	}{
		{"meat_adults", e.MeatAdults},
		{"vegetarian_adults", e.VegetarianAdults},
		{"children", e.Children},
		{"beer_drinkers", e.BeerDrinkers},
		{"soda_drinkers", e.SodaDrinkers},
	}
	for _, c := range counts {
		if c.value < 0 || c.value > calculator.MaxQuantity {
			errs = append(errs, fmt.Errorf("%s must be between 0 and %d", c.name, calculator.MaxQuantity))
		}
	}

	if e.Duration != "" && !e.Duration.Valid() {
		errs = append(errs, fmt.Errorf("invalid duration: %s", e.Duration))
	}

	for _, key := range e.SelectedMeats {
		def, ok := calculator.Lookup(key)
		if !ok || def.Category != calculator.CategoryMeat {
			errs = append(errs, fmt.Errorf("unknown meat: %s", key))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Input converts the defaults into calculator input with drinker counts
// clamped to the guest counts.
func (e *EventConfig) Input() calculator.Input {
	in := calculator.Input{
		MeatAdults:       e.MeatAdults,
		VegetarianAdults: e.VegetarianAdults,
		Children:         e.Children,
		BeerDrinkers:     e.BeerDrinkers,
		SodaDrinkers:     e.SodaDrinkers,
		Duration:         e.Duration,
		IncludeSides:     e.IncludeSides,
		SelectedMeats:    make(map[string]bool),
	}
	if !in.Duration.Valid() {
		in.Duration = calculator.DurationShort
	}
	for _, key := range calculator.MeatKeys() {
		in.SelectedMeats[key] = false
	}
	for _, key := range e.SelectedMeats {
		in.SelectedMeats[key] = true
	}
	return calculator.ClampDrinkers(in)
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validSchemes := map[ColorScheme]bool{
		ColorSchemeEmber:    true,
		ColorSchemeCharcoal: true,
		ColorSchemeMono:     true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if d.DateFormat != "" {
		if _, err := time.Parse(d.DateFormat, time.Now().Format(d.DateFormat)); err != nil {
			errs = append(errs, fmt.Errorf("invalid date_format: %w", err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	var errs []error

	if d.Path == "" {
		errs = append(errs, errors.New("path is required"))
	}

	if d.BackupIntervalHours < 0 {
		errs = append(errs, errors.New("backup_interval_hours must be non-negative"))
	}

	if d.BackupRetentionDays < 0 {
		errs = append(errs, errors.New("backup_retention_days must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	var errs []error

	if s.Addr != "" {
		if _, _, err := net.SplitHostPort(s.Addr); err != nil {
			errs = append(errs, fmt.Errorf("invalid addr: %w", err))
		}
	}

	switch s.Mode {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("invalid mode: %s", s.Mode))
	}

	if s.ShutdownSecs < 0 {
		errs = append(errs, errors.New("shutdown_timeout_seconds must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// ShutdownTimeout returns the graceful shutdown timeout.
func (s *ServerConfig) ShutdownTimeout() time.Duration {
	if s.ShutdownSecs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.ShutdownSecs) * time.Second
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Event: EventConfig{
			Duration:      calculator.DurationShort,
			IncludeSides:  true,
			SelectedMeats: []string{"picanha", "costela", "linguica", "frango"},
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeEmber,
			DateFormat:  "02/01/2006",
			TimeFormat:  "15:04",
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/churrascometro.log",
		},
		Database: DatabaseConfig{
			Path:                "churrascometro.db",
			BackupIntervalHours: 24,
			BackupRetentionDays: 14,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			Mode:           "release",
			MetricsEnabled: true,
			ShutdownSecs:   10,
		},
	}
}
