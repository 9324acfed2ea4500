package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/breadcrumb/foodseed/internal/catalog"
	"github.com/breadcrumb/foodseed/internal/config"
	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/services/foods"
)

// Version information (set at build time)
var Version = "dev"

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 160

// chromeLines is the height of the header, filter bar and footer.
const chromeLines = 6

// App is the catalog browser model.
type App struct {
	ctx    context.Context
	svc    *foods.Service
	config *config.Config

	list   *FoodsView
	search textinput.Model

	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool
	showDetail  bool
	showHelp    bool
	searchMode  bool

	// loadSeq identifies the latest list request; older responses are dropped.
	loadSeq int

	alerts []Alert
}

// Alert represents a status-bar message.
type Alert struct {
	Level   AlertLevel
	Message string
	Time    time.Time
}

// AlertLevel indicates the severity of an alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertWarning
)

// CatalogChangedMsg tells the browser the catalog file changed on disk.
type CatalogChangedMsg struct{}

type refreshedMsg struct {
	seq      int
	synced   *foods.SyncResult
	cuisines []string
	list     *models.FoodList
	err      error
}

type foodsLoadedMsg struct {
	seq  int
	list *models.FoodList
	err  error
}

// New creates a browser over svc, which must have a mirror attached.
func New(ctx context.Context, svc *foods.Service, cfg *config.Config) *App {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "name, cuisine or description"
	search.CharLimit = 64
	search.Cursor.SetMode(cursor.CursorStatic)

	theme := NewTheme(cfg.Display.ColorScheme)
	list := NewFoodsView(cfg.Display.PageSize)
	theme.ApplyTable(list.table)

	return &App{
		ctx:    ctx,
		svc:    svc,
		config: cfg,
		list:   list,
		search: search,
		theme:  theme,
		keys:   DefaultKeyMap(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.refresh(true)
}

// refresh optionally re-syncs the mirror from the catalog file, then reloads
// the cuisine list and the current page.
func (a *App) refresh(sync bool) tea.Cmd {
	a.loadSeq++
	seq := a.loadSeq
	filter, page := a.list.Query()

	return func() tea.Msg {
		msg := refreshedMsg{seq: seq}
		if sync {
			msg.synced, msg.err = a.svc.Sync(a.ctx)
			if msg.err != nil {
				return msg
			}
		}
		if msg.cuisines, msg.err = a.svc.Cuisines(a.ctx); msg.err != nil {
			return msg
		}
		msg.list, msg.err = a.svc.ListFoods(a.ctx, filter, page)
		return msg
	}
}

// load fetches the current page.
func (a *App) load() tea.Cmd {
	a.loadSeq++
	seq := a.loadSeq
	filter, page := a.list.Query()

	return func() tea.Msg {
		list, err := a.svc.ListFoods(a.ctx, filter, page)
		return foodsLoadedMsg{seq: seq, list: list, err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		return a, nil

	case CatalogChangedMsg:
		return a, a.refresh(true)

	case refreshedMsg:
		if msg.seq != a.loadSeq {
			return a, nil
		}
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load catalog: "+msg.err.Error())
			return a, nil
		}
		if msg.synced != nil {
			a.AddAlert(AlertInfo, fmt.Sprintf("Loaded %d foods from %s", msg.synced.Foods, msg.synced.Path))
		}
		if a.list.SetCuisines(msg.cuisines) {
			return a, a.load()
		}
		return a, a.apply(msg.list)

	case foodsLoadedMsg:
		if msg.seq != a.loadSeq {
			return a, nil
		}
		if msg.err != nil {
			a.AddAlert(AlertWarning, "Failed to load foods: "+msg.err.Error())
			return a, nil
		}
		return a, a.apply(msg.list)
	}

	if a.searchMode {
		var cmd tea.Cmd
		a.search, cmd = a.search.Update(msg)
		return a, cmd
	}

	return a, nil
}

func (a *App) apply(list *models.FoodList) tea.Cmd {
	if a.list.Apply(list) {
		return a.load()
	}
	if a.list.SelectedFood() == nil {
		a.showDetail = false
	}
	return nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit confirmation is modal
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
		}
		return a, nil
	}

	// The search box takes all input while focused
	if a.searchMode {
		return a.handleSearchKeys(msg)
	}

	if a.showHelp {
		if MatchesAny(msg, a.keys.Back, a.keys.Help) {
			a.showHelp = false
		}
		return a, nil
	}

	switch {
	case a.keys.Quit.Matches(msg):
		a.showConfirm = true
	case a.keys.Help.Matches(msg):
		a.showHelp = true
	case a.keys.Back.Matches(msg):
		a.showDetail = false
	case a.keys.Select.Matches(msg):
		a.showDetail = a.list.SelectedFood() != nil
	case a.keys.Search.Matches(msg):
		a.searchMode = true
		a.search.SetValue(a.list.Search())
		a.search.CursorEnd()
		return a, a.search.Focus()
	case a.keys.Reload.Matches(msg):
		return a, a.refresh(true)

	case a.keys.NextCuisine.Matches(msg):
		a.list.NextCuisine()
		return a, a.load()
	case a.keys.PrevCuisine.Matches(msg):
		a.list.PrevCuisine()
		return a, a.load()

	case a.keys.PageDown.Matches(msg):
		if a.list.NextPage() {
			return a, a.load()
		}
	case a.keys.PageUp.Matches(msg):
		if a.list.PrevPage() {
			return a, a.load()
		}
	case a.keys.Up.Matches(msg):
		a.list.MoveUp()
	case a.keys.Down.Matches(msg):
		a.list.MoveDown()
	case a.keys.Home.Matches(msg):
		a.list.GoToTop()
	case a.keys.End.Matches(msg):
		a.list.GoToBottom()
	}

	return a, nil
}

// handleSearchKeys handles key presses while the search box is focused.
func (a *App) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searchMode = false
		a.search.Blur()
		a.search.SetValue("")
		if a.list.Search() == "" {
			return a, nil
		}
		a.list.SetSearch("")
		return a, a.load()
	case tea.KeyEnter:
		a.searchMode = false
		a.search.Blur()
		a.list.SetSearch(a.search.Value())
		return a, a.load()
	}

	var cmd tea.Cmd
	a.search, cmd = a.search.Update(msg)
	return a, cmd
}

func (a *App) contentWidth() int {
	return min(a.width, MaxContentWidth)
}

func (a *App) showSidePane() bool {
	return GetBreakpoint(a.width) == BreakpointWide
}

// resize fits the list to the window. The table header, its separators and
// the page line take five rows.
func (a *App) resize() {
	width := a.contentWidth()
	if a.showSidePane() {
		width -= detailWidth + 2
	}
	a.list.Resize(width, ContentHeight(a.height, chromeLines+1)-5)
	a.search.Width = max(a.contentWidth()-8, 10)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Closing catalog browser...")
	}

	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderFilterBar())
	b.WriteString("\n")

	height := ContentHeight(a.height, chromeLines)
	switch {
	case a.showConfirm:
		b.WriteString(a.renderConfirmDialog(height))
	case a.showHelp:
		b.WriteString(a.frame(a.renderHelp(), height))
	default:
		b.WriteString(a.frame(a.renderCatalog(), height))
	}

	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the title bar.
func (a *App) renderHeader() string {
	title := fmt.Sprintf("FOODSEED CATALOG v%s", Version)
	info := fmt.Sprintf("%d foods | %s", a.list.Total(), a.svc.Path())
	info = Truncate(info, max(a.width-lipgloss.Width(title)-6, 0))

	spacing := max(a.width-lipgloss.Width(title)-lipgloss.Width(info)-4, 1)

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		a.theme.Header.Render(info)

	return header + "\n" + a.theme.DrawDoubleLine(a.width)
}

// renderFilterBar shows the active filters and the latest alert.
func (a *App) renderFilterBar() string {
	divider := a.theme.StatusDivider.Render()

	bar := a.theme.Label.Render("Cuisine: ") + a.theme.Value.Render("‹ "+a.list.CuisineLabel()+" ›")
	if term := a.list.Search(); term != "" {
		bar += divider + a.theme.Label.Render("Search: ") + a.theme.Value.Render(term)
	}

	if len(a.alerts) > 0 {
		alert := a.alerts[0]
		style := a.theme.Alert
		if alert.Level == AlertWarning {
			style = a.theme.AlertWarn
		}
		bar += divider + style.Render(alert.Message)
	}

	return lipgloss.NewStyle().MaxWidth(max(a.width, 1)).Render(bar)
}

// frame places content in the centered content area.
func (a *App) frame(content string, height int) string {
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(lipgloss.NewStyle().Width(a.contentWidth()).Render(content))
}

// renderCatalog renders the list with the search box and detail pane.
func (a *App) renderCatalog() string {
	var b strings.Builder

	if a.searchMode {
		b.WriteString(a.search.View())
		b.WriteString("\n\n")
	}

	list := a.list.Render(a.theme)
	food := a.list.SelectedFood()

	switch {
	case !a.showDetail || food == nil:
		b.WriteString(list)
	case a.showSidePane():
		b.WriteString(SideBySide(list, a.renderDetail(food, detailWidth), a.contentWidth(), 2))
	default:
		b.WriteString(a.renderDetail(food, min(a.contentWidth(), 60)))
	}

	return b.String()
}

// detailWidth is the width of the detail pane beside the list.
const detailWidth = 44

// renderDetail renders one food with its macro energy split.
func (a *App) renderDetail(food *models.Food, width int) string {
	label := a.theme.Label.Width(10)
	value := a.theme.Value

	var b strings.Builder
	row := func(name, v string) {
		b.WriteString(label.Render(name) + value.Render(v) + "\n")
	}

	row("ID", food.ID)
	row("Cuisine", food.Cuisine)
	row("Calories", fmt.Sprintf("%d kcal", food.Calories))

	expected := food.ExpectedCalories()
	balance := fmt.Sprintf("%+d vs %d from macros", food.Calories-expected, expected)
	if food.IsEnergyBalanced(a.config.Generator.Tolerance) {
		row("Balance", balance)
	} else {
		b.WriteString(label.Render("Balance") + a.theme.Warning.Render(balance+" (out of tolerance)") + "\n")
	}
	b.WriteString("\n")

	barWidth := max(width-30, 6)
	macros := []struct {
		name  string
		grams float64
		kcal  float64
	}{
		{"Protein", food.Protein, food.Protein * models.KcalPerGramProtein},
		{"Carbs", food.Carbs, food.Carbs * models.KcalPerGramCarbs},
		{"Fat", food.Fat, food.Fat * models.KcalPerGramFat},
	}
	for _, m := range macros {
		share := 0.0
		if expected > 0 {
			share = m.kcal / float64(expected)
		}
		b.WriteString(label.Render(m.name) +
			value.Render(fmt.Sprintf("%6sg ", grams(m.grams))) +
			a.theme.ShareBar(share, barWidth) +
			a.theme.Muted.Render(fmt.Sprintf(" %3.0f%%", share*100)) + "\n")
	}

	if food.Description != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(width-4, 10)).Render(a.theme.Base.Render(food.Description)))
		b.WriteString("\n")
	}
	if food.Image != "" {
		b.WriteString("\n")
		b.WriteString(a.theme.Muted.Render(Truncate(food.Image, max(width-4, 10))))
	}

	return a.theme.Panel(food.Name, strings.TrimRight(b.String(), "\n"), width)
}

// renderHelp renders the key reference.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	bindings := []Key{
		a.keys.Up, a.keys.Down, a.keys.PageUp, a.keys.PageDown,
		a.keys.Home, a.keys.End, a.keys.PrevCuisine, a.keys.NextCuisine,
		a.keys.Select, a.keys.Back, a.keys.Search, a.keys.Reload,
		a.keys.Help, a.keys.Quit,
	}
	for _, k := range bindings {
		line := fmt.Sprintf("    %-14s  %s", strings.Join(k.Keys, ", "), k.Help)
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("The list follows the catalog file and reloads when it changes."))
	b.WriteString("\n\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Close the catalog browser?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	style := lipgloss.NewStyle().
		Width(a.width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	return a.theme.DrawHorizontalLine(a.width) + "\n" +
		a.theme.Footer.Render(a.keys.StatusBarHelp(a.width))
}

// AddAlert adds a new alert to the display.
func (a *App) AddAlert(level AlertLevel, message string) {
	a.alerts = append([]Alert{{
		Level:   level,
		Message: message,
		Time:    time.Now(),
	}}, a.alerts...)

	// Keep only last 10 alerts
	if len(a.alerts) > 10 {
		a.alerts = a.alerts[:10]
	}
}

// WatchCatalog delivers a CatalogChangedMsg through send whenever the
// catalog file changes, until ctx is done.
func (a *App) WatchCatalog(ctx context.Context, send func(tea.Msg)) error {
	return catalog.Watch(ctx, a.svc.Path(), catalog.DefaultDebounce, func() {
		slog.Debug("catalog changed on disk", "path", a.svc.Path())
		send(CatalogChangedMsg{})
	})
}

// Run starts the browser and blocks until it exits or ctx is canceled.
func Run(ctx context.Context, svc *foods.Service, cfg *config.Config) error {
	if !svc.HasMirror() {
		return foods.ErrNoMirror
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := New(ctx, svc, cfg)
	p := tea.NewProgram(app, tea.WithAltScreen())

	var g errgroup.Group
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		return err
	})
	g.Go(func() error {
		// Without the watcher, reloads are manual (r).
		if err := app.WatchCatalog(ctx, p.Send); err != nil {
			slog.Warn("catalog watcher stopped", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		p.Quit()
		return nil
	})

	return g.Wait()
}
