// Package components provides reusable browser widgets.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column defines a table column. A column with zero width is hidden.
type Column struct {
	Title string
	Width int
	Align lipgloss.Position
}

// Table is a scrolling, paged table with a single selected row.
type Table struct {
	columns     []Column
	rows        [][]string
	selected    int
	offset      int
	visibleRows int
	focused     bool

	headerStyle   lipgloss.Style
	rowStyle      lipgloss.Style
	rowAltStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	borderStyle   lipgloss.Style

	// Pagination
	currentPage int
	totalPages  int
	totalRows   int
}

// NewTable creates a new table with the given columns.
func NewTable(columns []Column) *Table {
	return &Table{
		columns:       columns,
		rows:          [][]string{},
		visibleRows:   10,
		headerStyle:   lipgloss.NewStyle().Bold(true),
		rowStyle:      lipgloss.NewStyle(),
		rowAltStyle:   lipgloss.NewStyle().Faint(true),
		selectedStyle: lipgloss.NewStyle().Reverse(true),
		borderStyle:   lipgloss.NewStyle(),
	}
}

// SetRows replaces the table data, keeping the selection in range.
func (t *Table) SetRows(rows [][]string) {
	t.rows = rows
	t.SetSelected(t.selected)
}

// SetPagination sets pagination info shown under the rows.
func (t *Table) SetPagination(page, totalPages, totalRows int) {
	t.currentPage = page
	t.totalPages = totalPages
	t.totalRows = totalRows
}

// SetVisibleRows sets the number of visible rows.
func (t *Table) SetVisibleRows(n int) {
	if n < 1 {
		n = 1
	}
	t.visibleRows = n
	t.SetSelected(t.selected)
}

// SetColumnWidths overrides column widths, e.g. from CalculateColumnWidths.
func (t *Table) SetColumnWidths(widths []int) {
	for i := range t.columns {
		if i < len(widths) {
			t.columns[i].Width = widths[i]
		}
	}
}

// SetStyles sets the table styles.
func (t *Table) SetStyles(header, row, rowAlt, selected, border lipgloss.Style) {
	t.headerStyle = header
	t.rowStyle = row
	t.rowAltStyle = rowAlt
	t.selectedStyle = selected
	t.borderStyle = border
}

// Focus sets the table focus state.
func (t *Table) Focus(focused bool) {
	t.focused = focused
}

// Selected returns the currently selected row index.
func (t *Table) Selected() int {
	return t.selected
}

// SetSelected selects row i, clamped to the available rows.
func (t *Table) SetSelected(i int) {
	if i >= len(t.rows) {
		i = len(t.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	t.selected = i
	if t.selected < t.offset {
		t.offset = t.selected
	}
	if t.selected >= t.offset+t.visibleRows {
		t.offset = t.selected - t.visibleRows + 1
	}
}

// SelectedRow returns the currently selected row data.
func (t *Table) SelectedRow() []string {
	if t.selected >= 0 && t.selected < len(t.rows) {
		return t.rows[t.selected]
	}
	return nil
}

// MoveUp moves the selection up.
func (t *Table) MoveUp() {
	if t.selected > 0 {
		t.SetSelected(t.selected - 1)
	}
}

// MoveDown moves the selection down.
func (t *Table) MoveDown() {
	if t.selected < len(t.rows)-1 {
		t.SetSelected(t.selected + 1)
	}
}

// GoToTop goes to the first row.
func (t *Table) GoToTop() {
	t.selected = 0
	t.offset = 0
}

// GoToBottom goes to the last row.
func (t *Table) GoToBottom() {
	t.SetSelected(len(t.rows) - 1)
}

// Render renders the table.
func (t *Table) Render() string {
	var b strings.Builder

	totalWidth := 0
	for _, col := range t.columns {
		if col.Width > 0 {
			totalWidth += col.Width + 3
		}
	}

	b.WriteString(t.renderRow(t.headers(), t.headerStyle))
	b.WriteString("\n")
	b.WriteString(t.borderStyle.Render(strings.Repeat("─", totalWidth)))
	b.WriteString("\n")

	end := min(t.offset+t.visibleRows, len(t.rows))
	for i := t.offset; i < end; i++ {
		style := t.rowStyle
		switch {
		case i == t.selected && t.focused:
			style = t.selectedStyle
		case (i-t.offset)%2 == 1:
			style = t.rowAltStyle
		}

		b.WriteString(t.renderRow(t.rows[i], style))
		b.WriteString("\n")
	}

	if t.totalPages > 0 {
		b.WriteString(t.borderStyle.Render(strings.Repeat("─", totalWidth)))
		b.WriteString("\n")
		b.WriteString(t.borderStyle.Render(fmt.Sprintf("Page %d/%d | %d total", t.currentPage, t.totalPages, t.totalRows)))
	}

	return b.String()
}

func (t *Table) headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Title
	}
	return headers
}

func (t *Table) renderRow(cells []string, style lipgloss.Style) string {
	var parts []string

	for i, col := range t.columns {
		if col.Width <= 0 {
			continue
		}

		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		cell = fit(cell, col.Width)

		pad := col.Width - lipgloss.Width(cell)
		switch col.Align {
		case lipgloss.Right:
			cell = strings.Repeat(" ", pad) + cell
		case lipgloss.Center:
			left := pad / 2
			cell = strings.Repeat(" ", left) + cell + strings.Repeat(" ", pad-left)
		default:
			cell += strings.Repeat(" ", pad)
		}

		parts = append(parts, style.Render(cell))
	}

	return " " + strings.Join(parts, " │ ") + " "
}

// fit truncates s to width display cells, marking the cut with an ellipsis.
func fit(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// Empty returns true if the table has no rows.
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}
