package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings for the TUI.
type KeyMap struct {
	Quit      key.Binding
	Submit    key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Select    key.Binding
	Back      key.Binding
	NewSearch key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "Enter"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑/↓", "Navigate"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↑/↓", "Navigate"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "Switch Tabs"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "Switch Tabs"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("End", "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "Select"),
		),
		Back: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Back to List"),
		),
		NewSearch: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "New Search"),
		),
	}
}

// queryHelp is the footer for query entry.
type queryHelp struct{ k KeyMap }

func (h queryHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Submit, h.k.Quit}
}

func (h queryHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

// pickerHelp is the footer for the result list.
type pickerHelp struct{ k KeyMap }

func (h pickerHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Select, h.k.NewSearch}
}

func (h pickerHelp) FullHelp() [][]key.Binding { return [][]key.Binding{h.ShortHelp()} }

// viewerHelp is the footer for the detail viewer. The scroll binding reuses
// Up with its own label.
type viewerHelp struct{ k KeyMap }

func (h viewerHelp) ShortHelp() []key.Binding {
	scroll := key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "Scroll"))
	return []key.Binding{h.k.Left, scroll, h.k.Back, h.k.NewSearch}
}

func (h viewerHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp(), {h.k.PageUp, h.k.PageDown, h.k.Top, h.k.Bottom}}
}

// newHelp returns a help model rendering "key desc | key desc".
func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = " | "
	h.Styles.ShortKey = footerStyle
	h.Styles.ShortDesc = footerStyle
	h.Styles.ShortSeparator = footerStyle
	return h
}
