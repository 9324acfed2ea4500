package tui

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// waitFor is a convenience wrapper around teatest.WaitFor with a standard timeout.
func waitFor(t *testing.T, tm *teatest.TestModel, text string) {
	t.Helper()
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte(text))
	}, teatest.WithDuration(5*time.Second))
}

// These launch the real Bubble Tea program in a headless terminal, send
// keystrokes, and assert on the rendered screen.

func TestE2E_LoadsCatalogOnStartup(t *testing.T) {
	app, _ := newTestBrowser(t)
	tm := teatest.NewTestModel(t, app, teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Loaded 30 foods")
	waitFor(t, tm, "Thai Dish 01")
}

func TestE2E_FilterAndSearch(t *testing.T) {
	app, _ := newTestBrowser(t)
	tm := teatest.NewTestModel(t, app, teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Thai Dish 01")

	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	tm.Send(tea.KeyMsg{Type: tea.KeyRight})
	waitFor(t, tm, "‹ Italian ›")
	waitFor(t, tm, "Italian Dish 02")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("/")})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("dish 29")})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "Search: dish 29")
	waitFor(t, tm, "Italian Dish 29")

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	waitFor(t, tm, "from macros")
}

func TestE2E_ReloadsWhenCatalogChanges(t *testing.T) {
	app, path := newTestBrowser(t)
	tm := teatest.NewTestModel(t, app, teatest.WithInitialTermSize(120, 40))
	t.Cleanup(func() { tm.Quit() })

	waitFor(t, tm, "Loaded 30 foods")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.WatchCatalog(ctx, tm.Send) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("WatchCatalog: %v", err)
		}
	})

	appendFoods(t, path, 3)

	// The watcher may still be starting when the first write lands; keep
	// touching the file, slower than the debounce, until the reload shows.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	go func() {
		ticker := time.NewTicker(400 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = os.WriteFile(path, data, 0644)
			}
		}
	}()

	waitFor(t, tm, "Loaded 33 foods")
}

func TestE2E_QuitFlow(t *testing.T) {
	app, _ := newTestBrowser(t)
	tm := teatest.NewTestModel(t, app, teatest.WithInitialTermSize(120, 40))

	waitFor(t, tm, "Thai Dish 01")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	waitFor(t, tm, "CONFIRM EXIT")

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})

	m := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := m.(*App)
	if !ok {
		t.Fatalf("final model is %T, want *App", m)
	}
	if !final.quitting {
		t.Error("expected quitting after confirm")
	}
}
