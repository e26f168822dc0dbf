package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Frame geometry. The content area is the terminal minus the left/right
// border columns, and minus the top border, bottom border and footer rows.
const (
	frameChromeWidth  = 2
	frameChromeHeight = 3

	minContentWidth  = 5
	minContentHeight = 3
)

// Color palette
var (
	frameColor    = lipgloss.Color("6")  // Cyan
	inactiveColor = lipgloss.Color("4")  // Blue
	selectedFg    = lipgloss.Color("0")  // Black
	selectedBg    = lipgloss.Color("15") // White
	footerBg      = lipgloss.Color("4")
)

var (
	frameBorder = lipgloss.RoundedBorder()

	borderStyle = lipgloss.NewStyle().Foreground(frameColor)

	// frameStyle draws the sides and bottom; the top edge carries the title
	// and is drawn by renderFrame.
	frameStyle = lipgloss.NewStyle().
			Border(frameBorder, false, true, true, true).
			BorderForeground(frameColor)

	frameTitleStyle = lipgloss.NewStyle().
			Foreground(frameColor).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(selectedBg).
			Background(footerBg)

	selectedStyle = lipgloss.NewStyle().
			Foreground(selectedFg).
			Background(selectedBg)

	inactiveTabStyle = lipgloss.NewStyle().Foreground(inactiveColor)

	tabRuleStyle = lipgloss.NewStyle().Foreground(frameColor)

	statusStyle = lipgloss.NewStyle().Bold(true)
)

// contentSize returns the usable area inside the frame.
func contentSize(width, height int) (int, int) {
	return width - frameChromeWidth, height - frameChromeHeight
}

// fits reports whether a frame with a usable content area fits the terminal.
func fits(width, height int) bool {
	w, h := contentSize(width, height)
	return w >= minContentWidth && h >= minContentHeight
}

// renderFrame draws a rounded box with the title on the top edge, the body
// clipped and padded to the content area, and the help text as a footer
// bar on the last row.
func renderFrame(title, body, footer string, width, height int) string {
	cw, ch := contentSize(width, height)
	if cw < 0 || ch < 1 {
		return ""
	}

	// ╭─ title ─────╮
	label := ""
	if title != "" {
		label = ansi.Truncate(" "+title+" ", max(0, cw-1), "")
	}
	fill := max(0, cw-1-ansi.StringWidth(label))
	top := borderStyle.Render(frameBorder.TopLeft+frameBorder.Top) +
		frameTitleStyle.Render(label) +
		borderStyle.Render(strings.Repeat(frameBorder.Top, fill)+frameBorder.TopRight)

	lines := strings.Split(body, "\n")
	rows := make([]string, ch)
	for i := range rows {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		rows[i] = padRight(ansi.Truncate(line, cw, ""), cw)
	}

	bar := footerStyle.Render(padRight(ansi.Truncate(" "+footer, width, ""), width))
	return top + "\n" + frameStyle.Render(strings.Join(rows, "\n")) + "\n" + bar
}

// renderCentered places a message in the middle of the terminal.
func renderCentered(message string, width, height int) string {
	if width <= 0 || height <= 0 {
		return message
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, statusStyle.Render(message))
}

func padRight(s string, width int) string {
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
