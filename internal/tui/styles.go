// Package tui provides the terminal user interface for Churrascômetro.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/churrascometro/churrascometro/internal/config"
	"github.com/churrascometro/churrascometro/internal/tui/components"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	PrimaryColor    lipgloss.Color
	SecondaryColor  lipgloss.Color
	AccentColor     lipgloss.Color
	BackgroundColor lipgloss.Color
	MutedColor      lipgloss.Color
	ErrorColor      lipgloss.Color
	WarningColor    lipgloss.Color
	SuccessColor    lipgloss.Color

	Base    lipgloss.Style
	Primary lipgloss.Style
	Accent  lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style

	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Box       lipgloss.Style
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style
	AlertErr  lipgloss.Style

	StatusDivider lipgloss.Style
}

// NewTheme creates a theme for the configured color scheme.
func NewTheme(scheme config.ColorScheme) *Theme {
	return buildTheme(PaletteFor(scheme))
}

// PaletteFor returns the component palette of a color scheme.
func PaletteFor(scheme config.ColorScheme) components.Palette {
	switch scheme {
	case config.ColorSchemeCharcoal:
		return components.Palette{
			Primary:    lipgloss.Color("#E0E0E0"),
			Secondary:  lipgloss.Color("#9E9E9E"),
			Accent:     lipgloss.Color("#FF7043"),
			Background: lipgloss.Color("#1C1C1C"),
			Muted:      lipgloss.Color("#616161"),
			Error:      lipgloss.Color("#EF5350"),
			Warning:    lipgloss.Color("#FFCA28"),
			Success:    lipgloss.Color("#66BB6A"),
		}
	case config.ColorSchemeMono:
		return components.Palette{
			Primary:    lipgloss.Color("#FFFFFF"),
			Secondary:  lipgloss.Color("#AAAAAA"),
			Accent:     lipgloss.Color("#FFFFFF"),
			Background: lipgloss.Color("#000000"),
			Muted:      lipgloss.Color("#666666"),
			Error:      lipgloss.Color("#FFFFFF"),
			Warning:    lipgloss.Color("#AAAAAA"),
			Success:    lipgloss.Color("#FFFFFF"),
		}
	default:
		return components.EmberPalette()
	}
}

func buildTheme(p components.Palette) *Theme {
	t := &Theme{
		PrimaryColor:    p.Primary,
		SecondaryColor:  p.Secondary,
		AccentColor:     p.Accent,
		BackgroundColor: p.Background,
		MutedColor:      p.Muted,
		ErrorColor:      p.Error,
		WarningColor:    p.Warning,
		SuccessColor:    p.Success,
	}

	t.Base = lipgloss.NewStyle().Foreground(p.Primary)
	t.Primary = lipgloss.NewStyle().Foreground(p.Primary)
	t.Accent = lipgloss.NewStyle().Foreground(p.Accent)
	t.Error = lipgloss.NewStyle().Foreground(p.Error)
	t.Warning = lipgloss.NewStyle().Foreground(p.Warning)
	t.Success = lipgloss.NewStyle().Foreground(p.Success)
	t.Muted = lipgloss.NewStyle().Foreground(p.Muted)

	t.Header = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(p.Secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(p.Secondary)
	t.Value = lipgloss.NewStyle().Foreground(p.Primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(0, 1)

	t.Alert = lipgloss.NewStyle().
		Foreground(p.Success).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(p.Warning).
		Bold(true)

	t.AlertErr = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.Muted).
		SetString(" │ ")

	return t
}

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Muted.Render(strings.Repeat("─", max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Accent.Render(strings.Repeat("═", max(width, 0)))
}
