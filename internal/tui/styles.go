// Package tui provides the interactive catalog browser.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/breadcrumb/foodseed/internal/config"
	"github.com/breadcrumb/foodseed/internal/tui/components"
)

// Theme contains all style definitions for the browser.
type Theme struct {
	PrimaryColor   lipgloss.Color
	SecondaryColor lipgloss.Color
	AccentColor    lipgloss.Color
	ErrorColor     lipgloss.Color
	WarningColor   lipgloss.Color
	SuccessColor   lipgloss.Color
	MutedColor     lipgloss.Color

	Base lipgloss.Style

	// Color styles (for direct use)
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	// Component styles
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Box       lipgloss.Style
	Selected  lipgloss.Style
	Alert     lipgloss.Style
	AlertWarn lipgloss.Style

	// Table styles
	TableHeader lipgloss.Style
	TableRow    lipgloss.Style
	TableRowAlt lipgloss.Style

	StatusDivider lipgloss.Style
}

// NewTheme creates a theme for the configured color scheme.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return newAmberTheme()
	case config.ColorSchemeWhite:
		return newWhiteTheme()
	default:
		return newBreadcrumbTheme()
	}
}

// newBreadcrumbTheme is the default wheat-and-crust palette.
func newBreadcrumbTheme() *Theme {
	return buildTheme(palette{
		primary:   "#E8C07D",
		secondary: "#B5835A",
		accent:    "#F6DDB0",
		muted:     "#7A5C3E",
		err:       "#E05D44",
		warning:   "#F2A541",
		success:   "#9BC53D",
		selectBg:  "#E8C07D",
		selectFg:  "#2B1B0E",
	})
}

func newAmberTheme() *Theme {
	return buildTheme(palette{
		primary:   "#FFAA00",
		secondary: "#AA7700",
		accent:    "#FFCC66",
		muted:     "#664400",
		err:       "#FF4444",
		warning:   "#FFFF00",
		success:   "#FFAA00",
		selectBg:  "#FFAA00",
		selectFg:  "#000000",
	})
}

func newWhiteTheme() *Theme {
	return buildTheme(palette{
		primary:   "#FFFFFF",
		secondary: "#AAAAAA",
		accent:    "#FFFFFF",
		muted:     "#666666",
		err:       "#FF4444",
		warning:   "#FFAA00",
		success:   "#00FF00",
		selectBg:  "#FFFFFF",
		selectFg:  "#000000",
	})
}

type palette struct {
	primary, secondary, accent, muted lipgloss.Color
	err, warning, success             lipgloss.Color
	selectBg, selectFg                lipgloss.Color
}

func buildTheme(p palette) *Theme {
	t := &Theme{
		PrimaryColor:   p.primary,
		SecondaryColor: p.secondary,
		AccentColor:    p.accent,
		ErrorColor:     p.err,
		WarningColor:   p.warning,
		SuccessColor:   p.success,
		MutedColor:     p.muted,
	}

	t.Base = lipgloss.NewStyle().Foreground(p.primary)

	t.Primary = lipgloss.NewStyle().Foreground(p.primary)
	t.Secondary = lipgloss.NewStyle().Foreground(p.secondary)
	t.Accent = lipgloss.NewStyle().Foreground(p.accent)
	t.Error = lipgloss.NewStyle().Foreground(p.err)
	t.Warning = lipgloss.NewStyle().Foreground(p.warning)
	t.Success = lipgloss.NewStyle().Foreground(p.success)
	t.Muted = lipgloss.NewStyle().Foreground(p.muted)

	t.Header = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true).
		Padding(0, 1)

	t.Footer = lipgloss.NewStyle().
		Foreground(p.secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(p.primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(p.secondary)
	t.Value = lipgloss.NewStyle().Foreground(p.primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.secondary).
		Padding(0, 1)

	t.Selected = lipgloss.NewStyle().
		Foreground(p.selectFg).
		Background(p.selectBg).
		Bold(true)

	t.Alert = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)

	t.AlertWarn = lipgloss.NewStyle().
		Foreground(p.warning).
		Bold(true)

	t.TableHeader = lipgloss.NewStyle().
		Foreground(p.accent).
		Bold(true)

	t.TableRow = lipgloss.NewStyle().Foreground(p.primary)
	t.TableRowAlt = lipgloss.NewStyle().Foreground(p.secondary)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(p.muted).
		SetString(" │ ")

	return t
}

// ApplyTable styles a table component with the theme.
func (t *Theme) ApplyTable(table *components.Table) {
	table.SetStyles(t.TableHeader, t.TableRow, t.TableRowAlt, t.Selected, t.Secondary)
}

// Box characters for drawing
const (
	BoxHorizontal       = "─"
	BoxDoubleHorizontal = "═"
)

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Secondary.Render(strings.Repeat(BoxHorizontal, max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat(BoxDoubleHorizontal, max(width, 0)))
}
