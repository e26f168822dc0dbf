package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// itemIndent is the left margin of list rows; rows are truncated to the
// content width minus itemIndent+1.
const itemIndent = 2

// Picker is a scrollable single-column selection view.
type Picker struct {
	title    string
	items    []string
	selected int
	offset   int

	// Terminal dimensions; the list window is the frame's content area.
	width  int
	height int

	keys KeyMap
	help help.Model
}

// NewPicker creates a picker over items sized to the terminal. It returns
// SignalTooSmall when the terminal cannot fit the frame.
func NewPicker(title string, items []string, width, height int) (Picker, Signal) {
	p := Picker{
		title: title,
		items: items,
		keys:  DefaultKeyMap(),
		help:  newHelp(),
	}
	return p.resize(width, height)
}

// Selected returns the index of the highlighted item.
func (p Picker) Selected() int { return p.selected }

// Offset returns the index of the first visible item.
func (p Picker) Offset() int { return p.offset }

// windowHeight returns the number of visible rows.
func (p Picker) windowHeight() int {
	_, h := contentSize(p.width, p.height)
	return h
}

func (p Picker) resize(width, height int) (Picker, Signal) {
	p.width, p.height = width, height
	if !fits(width, height) {
		return p, signalOf(SignalTooSmall)
	}
	p.clampOffset()
	return p, noSignal()
}

// clampOffset keeps the selection inside the window and the window inside
// the item list.
func (p *Picker) clampOffset() {
	h := p.windowHeight()
	if p.selected < p.offset {
		p.offset = p.selected
	}
	if p.selected >= p.offset+h {
		p.offset = p.selected - h + 1
	}
	if limit := max(0, len(p.items)-h); p.offset > limit {
		p.offset = limit
	}
	if p.offset < 0 {
		p.offset = 0
	}
}

// Update handles a message and returns the resulting navigation signal.
func (p Picker) Update(msg tea.Msg) (Picker, Signal) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return p.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Quit):
			return p, signalOf(SignalExit)
		case key.Matches(msg, p.keys.NewSearch):
			return p, signalOf(SignalBackToNewSearch)
		case key.Matches(msg, p.keys.Select):
			if len(p.items) > 0 {
				return p, selected(p.selected)
			}
		case key.Matches(msg, p.keys.Up):
			if p.selected > 0 {
				p.selected--
				if p.selected < p.offset {
					p.offset = p.selected
				}
			}
		case key.Matches(msg, p.keys.Down):
			if p.selected < len(p.items)-1 {
				p.selected++
				if h := p.windowHeight(); p.selected >= p.offset+h {
					p.offset = p.selected - h + 1
				}
			}
		}
	}
	return p, noSignal()
}

// View renders the framed list.
func (p Picker) View() string {
	cw, ch := contentSize(p.width, p.height)
	limit := max(0, cw-itemIndent-1)
	indent := strings.Repeat(" ", itemIndent)

	rows := make([]string, 0, ch)
	end := min(len(p.items), p.offset+ch)
	for i := p.offset; i < end; i++ {
		item := ansi.Truncate(p.items[i], limit, "")
		if i == p.selected {
			item = selectedStyle.Render(item)
		}
		rows = append(rows, indent+item)
	}

	return renderFrame(p.title, strings.Join(rows, "\n"), p.help.ShortHelpView(pickerHelp{p.keys}.ShortHelp()), p.width, p.height)
}
