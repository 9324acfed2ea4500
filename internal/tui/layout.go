package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// LayoutBreakpoint defines terminal width thresholds for responsive layout.
type LayoutBreakpoint int

const (
	// BreakpointNarrow is for terminals under 60 columns.
	BreakpointNarrow LayoutBreakpoint = 60
	// BreakpointMedium is for terminals between 60 and 100 columns.
	BreakpointMedium LayoutBreakpoint = 100
	// BreakpointWide is for terminals of 100 columns or more. The detail
	// pane sits beside the table only at this width.
	BreakpointWide LayoutBreakpoint = 140
)

// GetBreakpoint returns the layout breakpoint for the given width.
func GetBreakpoint(width int) LayoutBreakpoint {
	switch {
	case width < int(BreakpointNarrow):
		return BreakpointNarrow
	case width < int(BreakpointMedium):
		return BreakpointMedium
	default:
		return BreakpointWide
	}
}

// ColumnSpec defines a column with proportional or fixed width.
type ColumnSpec struct {
	// MinWidth is the smallest width a weighted column is given.
	MinWidth int
	// Weight is the proportional share of remaining width.
	Weight float64
	// Fixed is a fixed width (overrides Weight if > 0).
	Fixed int
	// Priority determines drop order when the terminal is narrow (lower is dropped first).
	Priority int
}

// CalculateColumnWidths distributes available width among columns. When the
// fixed columns do not fit, the lowest-priority columns are dropped (width 0)
// until they do or a single column remains. separator is the width of the gap
// between two columns.
func CalculateColumnWidths(specs []ColumnSpec, availableWidth int, separator int) []int {
	widths := make([]int, len(specs))
	visible := make([]bool, len(specs))
	for i := range specs {
		visible[i] = true
	}

	remaining := func() (int, float64) {
		count, fixed, weight := 0, 0, 0.0
		for i, spec := range specs {
			if !visible[i] {
				continue
			}
			count++
			if spec.Fixed > 0 {
				fixed += spec.Fixed
			} else {
				weight += spec.Weight
				fixed += spec.MinWidth
			}
		}
		gaps := 0
		if count > 1 {
			gaps = (count - 1) * separator
		}
		return availableWidth - fixed - gaps - 2, weight
	}

	space, totalWeight := remaining()
	for space < 0 {
		lowest := -1
		count := 0
		for i, spec := range specs {
			if !visible[i] {
				continue
			}
			count++
			if lowest == -1 || spec.Priority < specs[lowest].Priority {
				lowest = i
			}
		}
		if count <= 1 {
			break
		}
		visible[lowest] = false
		space, totalWeight = remaining()
	}
	space = max(space, 0)

	for i, spec := range specs {
		switch {
		case !visible[i]:
			widths[i] = 0
		case spec.Fixed > 0:
			widths[i] = spec.Fixed
		case totalWeight > 0:
			widths[i] = spec.MinWidth + int(float64(space)*spec.Weight/totalWeight)
		default:
			widths[i] = spec.MinWidth
		}
	}

	return widths
}

// Panel renders a rounded box with the title set into the top border.
func (t *Theme) Panel(title, content string, width int) string {
	body := t.Box.BorderTop(false).Width(max(width-2, 1)).Render(content)

	border := lipgloss.RoundedBorder()
	label := ""
	if title != "" {
		label = " " + title + " "
	}
	label = Truncate(label, max(width-3, 0))
	fill := max(width-3-lipgloss.Width(label), 0)

	top := t.Secondary.Render(border.TopLeft+border.Top) +
		t.Accent.Bold(true).Render(label) +
		t.Secondary.Render(strings.Repeat(border.Top, fill)+border.TopRight)
	return top + "\n" + body
}

// SideBySide renders two blocks side by side, stacking them when they do
// not fit in totalWidth.
func SideBySide(left, right string, totalWidth, gap int) string {
	if lipgloss.Width(left)+lipgloss.Width(right)+gap > totalWidth {
		return left + "\n\n" + right
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), right)
}

// ShareBar renders share (0..1) as a text bar of the given width.
func (t *Theme) ShareBar(share float64, width int) string {
	share = min(max(share, 0), 1)
	barWidth := max(width-2, 4)

	filled := int(share*float64(barWidth) + 0.5)
	return t.Primary.Render("["+strings.Repeat("█", filled)) +
		t.Muted.Render(strings.Repeat("░", barWidth-filled)+"]")
}

// Truncate shortens s to fit within maxWidth, adding an ellipsis if needed.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	if maxWidth == 1 {
		return "…"
	}
	for len(runes) > 0 && lipgloss.Width(string(runes)) > maxWidth-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// ContentHeight returns the usable content height after subtracting chrome.
func ContentHeight(termHeight, chromeLines int) int {
	return max(termHeight-chromeLines, 5)
}
