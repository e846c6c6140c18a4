package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func newTestTable(rows int) *Table {
	table := NewTable([]Column{
		{Title: "Item", Width: 12},
		{Title: "Preço", Width: 10, Align: lipgloss.Right},
	}, EmberPalette())
	data := make([][]string, rows)
	for i := range data {
		data[i] = []string{"Picanha", "R$ 69,90"}
	}
	table.SetRows(data)
	return table
}

func TestNewTable(t *testing.T) {
	table := NewTable([]Column{{Title: "Item", Width: 10}}, EmberPalette())

	if !table.Empty() {
		t.Error("expected new table to be empty")
	}
	if table.RowCount() != 0 {
		t.Errorf("expected 0 rows, got %d", table.RowCount())
	}
}

func TestTable_Navigation(t *testing.T) {
	table := newTestTable(5)

	if table.Selected() != 0 {
		t.Errorf("expected selected=0, got %d", table.Selected())
	}

	table.MoveDown()
	table.MoveDown()
	if table.Selected() != 2 {
		t.Errorf("expected selected=2, got %d", table.Selected())
	}

	for i := 0; i < 10; i++ {
		table.MoveDown()
	}
	if table.Selected() != 4 {
		t.Errorf("expected selection to stop at 4, got %d", table.Selected())
	}

	for i := 0; i < 10; i++ {
		table.MoveUp()
	}
	if table.Selected() != 0 {
		t.Errorf("expected selection to stop at 0, got %d", table.Selected())
	}
}

func TestTable_SetRowsKeepsSelectionInRange(t *testing.T) {
	table := newTestTable(5)
	table.Select(4)

	table.SetRows([][]string{{"Costela", "R$ 39,90"}, {"Frango", "R$ 19,90"}})
	if table.Selected() != 1 {
		t.Errorf("expected selection clamped to 1, got %d", table.Selected())
	}

	table.SetRows(nil)
	if table.Selected() != 0 {
		t.Errorf("expected selection 0 on empty table, got %d", table.Selected())
	}
}

func TestTable_SelectOutOfRange(t *testing.T) {
	table := newTestTable(3)
	table.Select(1)
	table.Select(7)
	table.Select(-1)

	if table.Selected() != 1 {
		t.Errorf("expected out of range selects ignored, got %d", table.Selected())
	}
}

func TestTable_Render(t *testing.T) {
	table := newTestTable(2)
	out := table.Render()

	for _, want := range []string{"Item", "Preço", "Picanha", "R$ 69,90"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected render to contain %q", want)
		}
	}
	if strings.Contains(out, "↕") {
		t.Error("expected no scroll indicator when all rows fit")
	}
}

func TestTable_RenderScrolls(t *testing.T) {
	table := newTestTable(20)
	table.SetVisibleRows(5)
	for i := 0; i < 7; i++ {
		table.MoveDown()
	}

	out := table.Render()
	if !strings.Contains(out, "↕ 4-8 / 20") {
		t.Errorf("expected scroll window 4-8, got:\n%s", out)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		align lipgloss.Position
		want  string
	}{
		{"pad left aligned", "abc", 6, lipgloss.Left, "abc   "},
		{"pad right aligned", "abc", 6, lipgloss.Right, "   abc"},
		{"pad centered", "ab", 6, lipgloss.Center, "  ab  "},
		{"exact", "abcdef", 6, lipgloss.Left, "abcdef"},
		{"truncate", "Linguiça toscana", 8, lipgloss.Left, "Linguiç…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fit(tt.in, tt.width, tt.align); got != tt.want {
				t.Errorf("fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}
