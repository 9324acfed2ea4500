package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/tui/components"
)

// AllCuisines is the filter label for an unfiltered list.
const AllCuisines = "All"

var foodColumns = []struct {
	col  components.Column
	spec ColumnSpec
}{
	{components.Column{Title: "ID", Align: lipgloss.Right}, ColumnSpec{Fixed: 6, Priority: 6}},
	{components.Column{Title: "Name"}, ColumnSpec{Weight: 2, MinWidth: 12, Priority: 7}},
	{components.Column{Title: "Cuisine"}, ColumnSpec{Weight: 1, MinWidth: 9, Priority: 5}},
	{components.Column{Title: "kcal", Align: lipgloss.Right}, ColumnSpec{Fixed: 5, Priority: 4}},
	{components.Column{Title: "Protein", Align: lipgloss.Right}, ColumnSpec{Fixed: 7, Priority: 3}},
	{components.Column{Title: "Carbs", Align: lipgloss.Right}, ColumnSpec{Fixed: 6, Priority: 2}},
	{components.Column{Title: "Fat", Align: lipgloss.Right}, ColumnSpec{Fixed: 5, Priority: 2}},
	{components.Column{Title: "Δ", Align: lipgloss.Right}, ColumnSpec{Fixed: 4, Priority: 1}},
}

// FoodsView is the paged food list with its cuisine and search filters.
type FoodsView struct {
	table    *components.Table
	foods    []*models.Food
	page     models.Pagination
	filter   models.FoodFilter
	cuisines []string // cuisines[0] is AllCuisines
	cuisine  int
	total    int
	pages    int
}

// NewFoodsView creates an empty food list showing pageSize foods per page.
func NewFoodsView(pageSize int) *FoodsView {
	columns := make([]components.Column, len(foodColumns))
	for i, c := range foodColumns {
		columns[i] = c.col
	}

	page := models.Pagination{Page: 1, PageSize: pageSize}

	table := components.NewTable(columns)
	table.SetVisibleRows(page.Size())
	table.Focus(true)

	v := &FoodsView{
		table:    table,
		page:     page,
		cuisines: []string{AllCuisines},
	}
	v.Resize(120, page.Size())
	return v
}

// Query returns the filter and page to load.
func (v *FoodsView) Query() (models.FoodFilter, models.Pagination) {
	return v.filter, v.page
}

// SetCuisines replaces the cuisine choices. It reports whether the current
// cuisine filter disappeared and was reset to all cuisines.
func (v *FoodsView) SetCuisines(cuisines []string) bool {
	current := v.CuisineLabel()

	v.cuisines = append([]string{AllCuisines}, cuisines...)
	v.cuisine = 0
	for i, c := range v.cuisines {
		if c == current {
			v.cuisine = i
			return false
		}
	}

	v.filter.Cuisine = ""
	v.page.Page = 1
	return true
}

// Apply shows a loaded page. It reports whether the requested page was past
// the end, in which case the page is moved back and must be reloaded.
func (v *FoodsView) Apply(list *models.FoodList) bool {
	v.total = list.Total
	v.pages = list.TotalPages
	if list.Total > 0 && v.page.Page > list.TotalPages {
		v.page.Page = list.TotalPages
		return true
	}

	v.foods = list.Foods
	rows := make([][]string, len(list.Foods))
	for i, f := range list.Foods {
		rows[i] = []string{
			f.ID,
			f.Name,
			f.Cuisine,
			strconv.Itoa(f.Calories),
			grams(f.Protein),
			grams(f.Carbs),
			grams(f.Fat),
			strconv.Itoa(f.Calories - f.ExpectedCalories()),
		}
	}
	v.table.SetRows(rows)
	v.table.SetPagination(v.page.Page, max(list.TotalPages, 1), list.Total)
	return false
}

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NextCuisine advances the cuisine filter, wrapping back to all cuisines.
func (v *FoodsView) NextCuisine() {
	v.setCuisine((v.cuisine + 1) % len(v.cuisines))
}

// PrevCuisine moves the cuisine filter back, wrapping to the last cuisine.
func (v *FoodsView) PrevCuisine() {
	v.setCuisine((v.cuisine + len(v.cuisines) - 1) % len(v.cuisines))
}

func (v *FoodsView) setCuisine(i int) {
	v.cuisine = i
	v.filter.Cuisine = ""
	if i > 0 {
		v.filter.Cuisine = v.cuisines[i]
	}
	v.page.Page = 1
	v.table.GoToTop()
}

// CuisineLabel returns the active cuisine filter.
func (v *FoodsView) CuisineLabel() string {
	return v.cuisines[v.cuisine]
}

// SetSearch sets the search term and returns to the first page.
func (v *FoodsView) SetSearch(term string) {
	v.filter.SearchTerm = strings.TrimSpace(term)
	v.page.Page = 1
	v.table.GoToTop()
}

// Search returns the active search term.
func (v *FoodsView) Search() string {
	return v.filter.SearchTerm
}

// NextPage moves to the next page, reporting whether there was one.
func (v *FoodsView) NextPage() bool {
	if v.page.Page >= v.pages {
		return false
	}
	v.page.Page++
	v.table.GoToTop()
	return true
}

// PrevPage moves to the previous page, reporting whether there was one.
func (v *FoodsView) PrevPage() bool {
	if v.page.Page <= 1 {
		return false
	}
	v.page.Page--
	v.table.GoToTop()
	return true
}

// Page returns the current page number.
func (v *FoodsView) Page() int {
	return v.page.Page
}

// Total returns the number of foods matching the filters.
func (v *FoodsView) Total() int {
	return v.total
}

func (v *FoodsView) MoveUp()     { v.table.MoveUp() }
func (v *FoodsView) MoveDown()   { v.table.MoveDown() }
func (v *FoodsView) GoToTop()    { v.table.GoToTop() }
func (v *FoodsView) GoToBottom() { v.table.GoToBottom() }

// SelectedFood returns the highlighted food, or nil for an empty page.
func (v *FoodsView) SelectedFood() *models.Food {
	idx := v.table.Selected()
	if idx >= 0 && idx < len(v.foods) {
		return v.foods[idx]
	}
	return nil
}

// Resize fits the columns to width and the rows to height.
func (v *FoodsView) Resize(width, rows int) {
	specs := make([]ColumnSpec, len(foodColumns))
	for i, c := range foodColumns {
		specs[i] = c.spec
	}
	v.table.SetColumnWidths(CalculateColumnWidths(specs, width, 3))
	v.table.SetVisibleRows(min(rows, v.page.Size()))
}

// Render renders the list, or a placeholder when nothing matches.
func (v *FoodsView) Render(theme *Theme) string {
	if v.table.Empty() {
		msg := "No foods in the catalog."
		if v.filter.Cuisine != "" || v.filter.SearchTerm != "" {
			msg = "No foods match the current filter."
		}
		return theme.Label.Render(msg)
	}
	return v.table.Render()
}
