package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a text progress bar. A full bar is drawn in the
// success color, a partial one in the warning color.
func (s Styles) ProgressBar(value, total float64, width int) string {
	if total <= 0 {
		total = 1
	}
	ratio := min(max(value/total, 0), 1)

	barWidth := max(width-2, 4)
	filled := int(ratio * float64(barWidth))
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"

	switch {
	case ratio >= 1:
		return s.Success.Render(bar)
	case ratio > 0:
		return s.Warning.Render(bar)
	default:
		return s.Muted.Render(bar)
	}
}

// SideBySide renders two blocks next to each other, stacking them when
// they do not fit in totalWidth.
func SideBySide(left, right string, totalWidth, gap int) string {
	leftWidth := lipgloss.Width(left)
	if leftWidth+lipgloss.Width(right)+gap > totalWidth {
		return left + "\n\n" + right
	}
	spacer := strings.Repeat(" ", gap)
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(leftWidth).Render(left), spacer, right)
}

// Truncate shortens a string to maxWidth cells, adding an ellipsis.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	return fit(s, maxWidth, lipgloss.Left)
}

// PadRight pads a string to the given width with spaces.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads a string to the given width with spaces on the left.
func PadLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
