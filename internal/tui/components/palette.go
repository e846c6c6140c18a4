// Package components provides reusable TUI components.
package components

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a color scheme defines.
type Palette struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Success    lipgloss.Color
}

// EmberPalette is the default scheme: glowing coals on a dark grill.
func EmberPalette() Palette {
	return Palette{
		Primary:    lipgloss.Color("#FFD8A8"),
		Secondary:  lipgloss.Color("#E8A66A"),
		Accent:     lipgloss.Color("#FF6B1A"),
		Background: lipgloss.Color("#1A0F0A"),
		Muted:      lipgloss.Color("#7A5A45"),
		Error:      lipgloss.Color("#FF4444"),
		Warning:    lipgloss.Color("#FFC93C"),
		Success:    lipgloss.Color("#7BD88F"),
	}
}

// Styles are the text styles views render with.
type Styles struct {
	Title    lipgloss.Style
	Section  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Focus    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
}

// Styles derives view styles from the palette.
func (p Palette) Styles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Section:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Label:    lipgloss.NewStyle().Foreground(p.Secondary),
		Value:    lipgloss.NewStyle().Foreground(p.Primary),
		Focus:    lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(p.Background).Background(p.Accent).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(p.Error),
		Warning:  lipgloss.NewStyle().Foreground(p.Warning),
		Success:  lipgloss.NewStyle().Foreground(p.Success),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Help:     lipgloss.NewStyle().Foreground(p.Secondary),
	}
}
