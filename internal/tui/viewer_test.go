package tui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/pengelbrecht/chsearch/internal/render"
)

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i)
	}
	return strings.Join(lines, "\n")
}

// newTestViewer builds a 40x13 viewer: 8 visible rows, wrap width 34.
func newTestViewer(t *testing.T, contents ...string) Viewer {
	t.Helper()
	names := []string{render.TabProfile, render.TabFilingHistory, render.TabPSCs}
	tabs := make([]render.Block, len(contents))
	for i, c := range contents {
		tabs[i] = render.Block{Name: names[i%len(names)], Content: c}
	}
	v, sig := NewViewer("Details for 00000001", tabs, 40, 13)
	if sig.Kind != SignalNone {
		t.Fatalf("NewViewer signal = %v, want NONE", sig.Kind)
	}
	if v.PaneHeight() != 8 {
		t.Fatalf("pane height = %d, want 8", v.PaneHeight())
	}
	return v
}

func press(v Viewer, msg tea.Msg, n int) Viewer {
	for i := 0; i < n; i++ {
		v, _ = v.Update(msg)
	}
	return v
}

// -----------------------------------------------------------------------------
// Tab switching
// -----------------------------------------------------------------------------

func TestViewer_SwitchTabWraps(t *testing.T) {
	v := newTestViewer(t, "a", "b", "c")

	v = press(v, tea.KeyMsg{Type: tea.KeyLeft}, 1)
	if v.ActiveTab() != 2 {
		t.Errorf("left from first tab = %d, want 2", v.ActiveTab())
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyRight}, 1)
	if v.ActiveTab() != 0 {
		t.Errorf("right from last tab = %d, want 0", v.ActiveTab())
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyRight}, 4)
	if v.ActiveTab() != 1 {
		t.Errorf("four rights = %d, want 1", v.ActiveTab())
	}
}

func TestViewer_SwitchTabResetsDestinationOffset(t *testing.T) {
	v := newTestViewer(t, numberedLines(30), numberedLines(30), numberedLines(30))

	v = press(v, tea.KeyMsg{Type: tea.KeyDown}, 5)
	if v.Offset(0) != 5 {
		t.Fatalf("offset = %d, want 5", v.Offset(0))
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyRight}, 1)
	if v.ActiveTab() != 1 || v.Offset(1) != 0 {
		t.Errorf("tab %d offset %d, want tab 1 offset 0", v.ActiveTab(), v.Offset(1))
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyLeft}, 1)
	if v.ActiveTab() != 0 || v.Offset(0) != 0 {
		t.Errorf("returning to tab 0: offset %d, want 0", v.Offset(0))
	}
}

// -----------------------------------------------------------------------------
// Scrolling
// -----------------------------------------------------------------------------

func TestViewer_ScrollIsClamped(t *testing.T) {
	tests := []struct {
		name  string
		lines int
		want  int
	}{
		{"shorter than pane", 3, 0},
		{"exactly pane", 8, 0},
		{"one over", 9, 1},
		{"long", 50, 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViewer(t, numberedLines(tt.lines))

			v = press(v, tea.KeyMsg{Type: tea.KeyDown}, 100)
			if v.Offset(0) != tt.want {
				t.Errorf("offset after scrolling down = %d, want %d", v.Offset(0), tt.want)
			}

			v = press(v, tea.KeyMsg{Type: tea.KeyUp}, 100)
			if v.Offset(0) != 0 {
				t.Errorf("offset after scrolling up = %d, want 0", v.Offset(0))
			}
		})
	}
}

func TestViewer_PageAndJumpKeys(t *testing.T) {
	v := newTestViewer(t, numberedLines(30))

	v = press(v, tea.KeyMsg{Type: tea.KeyPgDown}, 1)
	if v.Offset(0) != 8 {
		t.Errorf("pgdown offset = %d, want 8", v.Offset(0))
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyEnd}, 1)
	if v.Offset(0) != 22 {
		t.Errorf("end offset = %d, want 22", v.Offset(0))
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyPgDown}, 1)
	if v.Offset(0) != 22 {
		t.Errorf("pgdown past end = %d, want 22", v.Offset(0))
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyPgUp}, 1)
	if v.Offset(0) != 14 {
		t.Errorf("pgup offset = %d, want 14", v.Offset(0))
	}

	v = press(v, tea.KeyMsg{Type: tea.KeyHome}, 1)
	if v.Offset(0) != 0 {
		t.Errorf("home offset = %d, want 0", v.Offset(0))
	}
}

func TestViewer_ResizeReclampsOffsets(t *testing.T) {
	v := newTestViewer(t, numberedLines(20))
	v = press(v, tea.KeyMsg{Type: tea.KeyEnd}, 1)
	if v.Offset(0) != 12 {
		t.Fatalf("offset = %d, want 12", v.Offset(0))
	}

	// Pane grows to 15 rows.
	v, sig := v.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if sig.Kind != SignalNone {
		t.Fatalf("resize signal = %v", sig.Kind)
	}
	if v.Offset(0) != 5 {
		t.Errorf("offset after grow = %d, want 5", v.Offset(0))
	}

	_, sig = v.Update(tea.WindowSizeMsg{Width: 40, Height: 5})
	if sig.Kind != SignalTooSmall {
		t.Errorf("signal = %v, want %v", sig.Kind, SignalTooSmall)
	}
}

// -----------------------------------------------------------------------------
// Signals
// -----------------------------------------------------------------------------

func TestViewer_Signals(t *testing.T) {
	v := newTestViewer(t, "a", "b", "c")

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want SignalKind
	}{
		{"back", keyRunes("b"), SignalBackToList},
		{"new search", keyRunes("q"), SignalBackToNewSearch},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, SignalExit},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, SignalNone},
		{"other rune", keyRunes("x"), SignalNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, sig := v.Update(tt.msg)
			if sig.Kind != tt.want {
				t.Errorf("signal = %v, want %v", sig.Kind, tt.want)
			}
		})
	}
}

func TestNewViewer_TooSmall(t *testing.T) {
	_, sig := NewViewer("x", []render.Block{{Name: "A", Content: "a"}}, 40, 4)
	if sig.Kind != SignalTooSmall {
		t.Errorf("signal = %v, want %v", sig.Kind, SignalTooSmall)
	}
}

// -----------------------------------------------------------------------------
// Wrapping and view
// -----------------------------------------------------------------------------

func TestWrapText(t *testing.T) {
	t.Run("keeps blank lines", func(t *testing.T) {
		got := wrapText("a\n\nb\n", 10)
		want := []string{"a", "", "b"}
		if strings.Join(got, "|") != strings.Join(want, "|") {
			t.Errorf("wrapText = %q, want %q", got, want)
		}
	})

	t.Run("keeps indentation of short lines", func(t *testing.T) {
		got := wrapText("  Desc: short", 40)
		if len(got) != 1 || got[0] != "  Desc: short" {
			t.Errorf("wrapText = %q", got)
		}
	})

	t.Run("wraps long lines within width", func(t *testing.T) {
		line := "  Desc: " + strings.Repeat("confirmation statement ", 6)
		got := wrapText(line, 20)
		if len(got) < 2 {
			t.Fatalf("expected several lines, got %q", got)
		}
		if !strings.HasPrefix(got[0], "  Desc:") {
			t.Errorf("first line lost its indent: %q", got[0])
		}
		for _, l := range got {
			if w := ansi.StringWidth(l); w > 20 {
				t.Errorf("line %q is %d wide", l, w)
			}
		}
	})
}

func TestViewer_View(t *testing.T) {
	v := newTestViewer(t, numberedLines(30), "filings", "pscs")
	v = press(v, tea.KeyMsg{Type: tea.KeyDown}, 3)

	view := v.View()
	for _, want := range []string{"Details for 00000001", render.TabProfile, render.TabFilingHistory, render.TabPSCs, "line 03", "line 10", "Scroll"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	for _, absent := range []string{"line 02", "line 11"} {
		if strings.Contains(view, absent) {
			t.Errorf("view should not contain %q:\n%s", absent, view)
		}
	}
	if got := strings.Count(view, "\n") + 1; got != 13 {
		t.Errorf("view has %d rows, want 13", got)
	}
}
