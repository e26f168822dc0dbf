package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/pengelbrecht/chsearch/internal/render"
)

// Viewer layout inside the frame's content area.
const (
	// tabHeaderHeight covers the tab row and the rule under it.
	tabHeaderHeight = 2

	// paneMargin is the horizontal space reserved around wrapped text.
	paneMargin = 4

	paneIndent = 2
)

// Viewer is a tabbed, scrollable text viewer with one pane per block. Each
// tab keeps its own scroll offset.
type Viewer struct {
	title   string
	tabs    []render.Block
	lines   [][]string
	offsets []int
	active  int

	width  int
	height int

	keys KeyMap
	help help.Model
}

// NewViewer creates a viewer over blocks sized to the terminal. Content is
// wrapped to the pane width once here and again only on resize. It returns
// SignalTooSmall when the terminal cannot fit the frame.
func NewViewer(title string, tabs []render.Block, width, height int) (Viewer, Signal) {
	v := Viewer{
		title:   title,
		tabs:    tabs,
		offsets: make([]int, len(tabs)),
		keys:    DefaultKeyMap(),
		help:    newHelp(),
	}
	return v.resize(width, height)
}

// ActiveTab returns the index of the visible tab.
func (v Viewer) ActiveTab() int { return v.active }

// Offset returns the scroll offset of tab i.
func (v Viewer) Offset(i int) int { return v.offsets[i] }

// PaneHeight returns the number of visible text rows.
func (v Viewer) PaneHeight() int {
	_, ch := contentSize(v.width, v.height)
	return max(0, ch-tabHeaderHeight)
}

func (v Viewer) paneWidth() int {
	cw, _ := contentSize(v.width, v.height)
	return max(1, cw-paneMargin)
}

func (v Viewer) resize(width, height int) (Viewer, Signal) {
	v.width, v.height = width, height
	if !fits(width, height) {
		return v, signalOf(SignalTooSmall)
	}

	wrapWidth := v.paneWidth()
	v.lines = make([][]string, len(v.tabs))
	for i, tab := range v.tabs {
		v.lines[i] = wrapText(tab.Content, wrapWidth)
		v.offsets[i] = v.clamp(i, v.offsets[i])
	}
	return v, noSignal()
}

// maxOffset returns the largest valid offset for tab i.
func (v Viewer) maxOffset(i int) int {
	return max(0, len(v.lines[i])-v.PaneHeight())
}

func (v Viewer) clamp(i, offset int) int {
	return min(max(0, offset), v.maxOffset(i))
}

func (v *Viewer) scrollBy(delta int) {
	v.offsets[v.active] = v.clamp(v.active, v.offsets[v.active]+delta)
}

// switchTab moves to tab (active+delta) mod n and resets its scroll offset.
func (v *Viewer) switchTab(delta int) {
	n := len(v.tabs)
	if n == 0 {
		return
	}
	v.active = ((v.active+delta)%n + n) % n
	v.offsets[v.active] = 0
}

// Update handles a message and returns the resulting navigation signal.
func (v Viewer) Update(msg tea.Msg) (Viewer, Signal) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return v.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, signalOf(SignalExit)
		case key.Matches(msg, v.keys.NewSearch):
			return v, signalOf(SignalBackToNewSearch)
		case key.Matches(msg, v.keys.Back):
			return v, signalOf(SignalBackToList)
		case key.Matches(msg, v.keys.Left):
			v.switchTab(-1)
		case key.Matches(msg, v.keys.Right):
			v.switchTab(1)
		case len(v.tabs) == 0:
		case key.Matches(msg, v.keys.Up):
			v.scrollBy(-1)
		case key.Matches(msg, v.keys.Down):
			v.scrollBy(1)
		case key.Matches(msg, v.keys.PageUp):
			v.scrollBy(-max(1, v.PaneHeight()))
		case key.Matches(msg, v.keys.PageDown):
			v.scrollBy(max(1, v.PaneHeight()))
		case key.Matches(msg, v.keys.Top):
			v.offsets[v.active] = 0
		case key.Matches(msg, v.keys.Bottom):
			v.offsets[v.active] = v.maxOffset(v.active)
		}
	}
	return v, noSignal()
}

// View renders the framed tab bar and the active pane.
func (v Viewer) View() string {
	cw, _ := contentSize(v.width, v.height)

	var tabBar strings.Builder
	tabBar.WriteString(strings.Repeat(" ", paneIndent))
	for i, tab := range v.tabs {
		label := " " + tab.Name + " "
		if i == v.active {
			tabBar.WriteString(selectedStyle.Render(label))
		} else {
			tabBar.WriteString(inactiveTabStyle.Render(label))
		}
		tabBar.WriteString("  ")
	}

	rows := []string{
		tabBar.String(),
		" " + tabRuleStyle.Render(strings.Repeat("=", max(0, cw-2))),
	}

	if len(v.tabs) > 0 {
		vp := viewport.New(v.paneWidth(), v.PaneHeight())
		vp.SetContent(strings.Join(v.lines[v.active], "\n"))
		vp.SetYOffset(v.offsets[v.active])

		indent := strings.Repeat(" ", paneIndent)
		for _, line := range strings.Split(vp.View(), "\n") {
			rows = append(rows, indent+line)
		}
	}

	return renderFrame(v.title, strings.Join(rows, "\n"), v.help.ShortHelpView(viewerHelp{v.keys}.ShortHelp()), v.width, v.height)
}

// wrapText wraps each line of s to width at word boundaries. Leading
// indentation and blank lines are kept so formatted blocks survive.
func wrapText(s string, width int) []string {
	s = strings.TrimRight(s, "\n")
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if ansi.StringWidth(line) <= width {
			out = append(out, line)
			continue
		}
		out = append(out, strings.Split(ansi.Wrap(line, width, ""), "\n")...)
	}
	return out
}
