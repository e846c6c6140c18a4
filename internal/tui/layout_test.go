package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/churrascometro/churrascometro/internal/config"
)

func TestGetBreakpoint(t *testing.T) {
	tests := []struct {
		width    int
		expected LayoutBreakpoint
	}{
		{40, BreakpointNarrow},
		{59, BreakpointNarrow},
		{60, BreakpointMedium},
		{80, BreakpointMedium},
		{99, BreakpointMedium},
		{100, BreakpointWide},
		{200, BreakpointWide},
	}

	for _, tt := range tests {
		result := GetBreakpoint(tt.width)
		if result != tt.expected {
			t.Errorf("GetBreakpoint(%d) = %d, want %d", tt.width, result, tt.expected)
		}
	}
}

func TestContentWidth(t *testing.T) {
	tests := []struct {
		term, min, max, want int
	}{
		{80, 40, 120, 80},
		{30, 40, 120, 40},
		{200, 40, 120, 120},
		{200, 40, 0, 200},
	}

	for _, tt := range tests {
		if got := ContentWidth(tt.term, tt.min, tt.max); got != tt.want {
			t.Errorf("ContentWidth(%d, %d, %d) = %d, want %d", tt.term, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(40, 6); got != 34 {
		t.Errorf("ContentHeight(40, 6) = %d, want 34", got)
	}
	if got := ContentHeight(8, 6); got != 5 {
		t.Errorf("ContentHeight(8, 6) = %d, want minimum 5", got)
	}
}

func TestPanel(t *testing.T) {
	theme := NewTheme(config.ColorSchemeEmber)

	out := theme.Panel("Carnes", "picanha\ncostela", 30)
	lines := strings.Split(out, "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (border, 2 content, border), got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Carnes") {
		t.Error("expected title in the top border")
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 30 {
			t.Errorf("line %d has width %d, want 30", i, w)
		}
	}
}

func TestPanel_NoTitle(t *testing.T) {
	theme := NewTheme(config.ColorSchemeEmber)

	out := theme.Panel("", "conteúdo", 20)
	if !strings.Contains(out, "conteúdo") {
		t.Error("expected content in panel")
	}
}

func TestHeader_NarrowHidesSummary(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 50, Height: 30})

	if strings.Contains(app.renderHeader(), "pessoas") {
		t.Error("expected guest summary hidden at narrow width")
	}
}
