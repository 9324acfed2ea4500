package tui

import (
	"context"
	"fmt"
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/breadcrumb/foodseed/internal/config"
	"github.com/breadcrumb/foodseed/internal/models"
	"github.com/breadcrumb/foodseed/internal/seed"
	"github.com/breadcrumb/foodseed/internal/services/foods"
	"github.com/breadcrumb/foodseed/internal/testutil"
)

// browserCatalog returns 30 foods cycling through Thai, Italian and Greek.
// Food 4 is a Thai "Green Curry".
func browserCatalog() *models.Catalog {
	c := &models.Catalog{Cuisines: []string{"Thai", "Italian", "Greek"}}
	for i := 1; i <= 30; i++ {
		cuisine := c.Cuisines[(i-1)%3]
		c.Foods = append(c.Foods, testutil.FixtureFood(func(f *models.Food) {
			f.ID = fmt.Sprint(i)
			f.Cuisine = cuisine
			f.Name = fmt.Sprintf("%s Dish %02d", cuisine, i)
		}))
	}
	c.Foods[3].Name = "Green Curry"
	c.Foods[3].Description = "Coconut milk and basil."
	return c
}

// newTestBrowser creates an unstarted App over a mirrored copy of
// browserCatalog, ten foods per page.
func newTestBrowser(t *testing.T) (*App, string) {
	t.Helper()

	path := testutil.WriteCatalog(t, browserCatalog())
	db := testutil.NewTestDB(t)

	cfg := config.Default()
	cfg.Catalog.Path = path
	cfg.Display.PageSize = 10

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	svc := foods.NewService(path, cfg.Generator.SeedConfig(), db.DB)
	return New(ctx, svc, cfg), path
}

// newTestApp creates a ready App at 120x40 with its initial load applied.
func newTestApp(t *testing.T) *App {
	t.Helper()

	app, _ := newTestBrowser(t)
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	drain(t, app, app.Init())

	return app
}

// drain runs cmd and feeds data-loading results back into the app until no
// further loads are requested. Other commands (cursor blinks) are skipped.
func drain(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()

	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case refreshedMsg, foodsLoadedMsg:
		default:
			return
		}
		_, cmd = app.Update(msg)
	}
}

// press sends a key and applies any load it triggers.
func press(t *testing.T, app *App, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := app.Update(msg)
	drain(t, app, cmd)
}

// appendFoods adds n generated foods to the catalog file at path.
func appendFoods(t *testing.T, path string, n int) {
	t.Helper()

	cfg := seed.DefaultConfig()
	cfg.RandomSeed = 99
	if _, err := foods.NewService(path, cfg, nil).Generate(context.Background(), foods.GenerateInput{Count: n}); err != nil {
		t.Fatalf("appending foods: %v", err)
	}
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
