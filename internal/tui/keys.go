package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the browser's key bindings.
type KeyMap struct {
	// Navigation
	Up       Key
	Down     Key
	PageUp   Key
	PageDown Key
	Home     Key
	End      Key

	// Cuisine filter
	PrevCuisine Key
	NextCuisine Key

	// Actions
	Select Key
	Back   Key
	Quit   Key
	Help   Key
	Search Key
	Reload Key
}

// Key represents a key binding.
type Key struct {
	Keys    []string
	Help    string
	Enabled bool
}

func bind(help string, keys ...string) Key {
	return Key{Keys: keys, Help: help, Enabled: true}
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       bind("up", "up", "k"),
		Down:     bind("down", "down", "j"),
		PageUp:   bind("prev page", "pgup", "ctrl+u"),
		PageDown: bind("next page", "pgdown", "ctrl+d"),
		Home:     bind("first row", "home", "g"),
		End:      bind("last row", "end", "G"),

		PrevCuisine: bind("prev cuisine", "left", "h"),
		NextCuisine: bind("next cuisine", "right", "l"),

		Select: bind("details", "enter"),
		Back:   bind("back", "esc"),
		Quit:   bind("quit", "q", "ctrl+c"),
		Help:   bind("help", "?", "f1"),
		Search: bind("search", "/"),
		Reload: bind("reload", "r"),
	}
}

// Matches checks if a key message matches this key binding.
func (k Key) Matches(msg tea.KeyMsg) bool {
	if !k.Enabled {
		return false
	}

	keyStr := msg.String()
	for _, key := range k.Keys {
		if keyStr == key {
			return true
		}
	}
	return false
}

// MatchesAny checks if a key message matches any of the provided key bindings.
func MatchesAny(msg tea.KeyMsg, keys ...Key) bool {
	for _, k := range keys {
		if k.Matches(msg) {
			return true
		}
	}
	return false
}

// StatusBarHelp returns the help text for the status bar, shortened for
// narrow terminals.
func (km KeyMap) StatusBarHelp(width int) string {
	if width < int(BreakpointNarrow) {
		return "←→ cuisine  / search  ? help  q quit"
	}
	return "↑↓ select  ←→ cuisine  PgUp/PgDn page  Enter details  / search  r reload  ? help  q quit"
}
