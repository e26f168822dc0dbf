// Package render turns registry records into the text blocks shown in the
// detail viewer. Every function is total: a nil or empty record renders a
// placeholder sentence instead of failing.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pengelbrecht/chsearch/internal/control"
	"github.com/pengelbrecht/chsearch/internal/registry"
)

// Placeholders for absent records.
const (
	NoProfile       = "No profile data found."
	NoFilingHistory = "No filing history found."
	NoPSCs          = "No Persons with Significant Control found or company is exempt."
)

// StatusChangeMarker prefixes filings that mention dormancy or activity.
const StatusChangeMarker = "*** STATUS CHANGE *** "

const (
	// barScale is the percentage represented by one bar cell.
	barScale = 10

	// rangeLabelWidth pads " (lo-up%)" so entries line up.
	rangeLabelWidth = 20

	solidCell  = "█"
	shadedCell = "▓"
	notAvail   = "N/A"
)

// Tab names, in display order.
const (
	TabProfile       = "Profile"
	TabFilingHistory = "Filing History"
	TabPSCs          = "PSCs"
)

// Block is a named block of rendered text.
type Block struct {
	Name    string
	Content string
}

// Renderer formats registry records. Colour is a property of the renderer,
// not global state; a renderer without colour emits plain text.
type Renderer struct {
	color  bool
	solid  lipgloss.Style
	shaded lipgloss.Style
	marker lipgloss.Style
}

// New creates a renderer. With color set, bar runs and status markers are
// styled; column layout is identical either way.
func New(color bool) *Renderer {
	return &Renderer{
		color:  color,
		solid:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		shaded: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		marker: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
}

// Tabs renders the three detail blocks in tab order.
func (r *Renderer) Tabs(profile *registry.CompanyProfile, filings *registry.FilingHistory, pscs *registry.PSCList) []Block {
	return []Block{
		{Name: TabProfile, Content: r.Profile(profile)},
		{Name: TabFilingHistory, Content: r.FilingHistory(filings)},
		{Name: TabPSCs, Content: r.PSCs(pscs)},
	}
}

// Profile renders the fixed-field profile block.
func (r *Renderer) Profile(profile *registry.CompanyProfile) string {
	if profile == nil {
		return NoProfile
	}

	var line1, postcode string
	if addr := profile.RegisteredOfficeAddress; addr != nil {
		line1, postcode = addr.AddressLine1, addr.PostalCode
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name:     %s\n", profile.CompanyName)
	fmt.Fprintf(&b, "Status:   %s\n", profile.CompanyStatus)
	fmt.Fprintf(&b, "Address:  %s, %s\n", line1, postcode)
	return b.String()
}

// IsStatusChange returns true if a filing description mentions dormancy or
// activity, case-insensitively.
func IsStatusChange(description string) bool {
	lower := strings.ToLower(description)
	return strings.Contains(lower, "dormant") || strings.Contains(lower, "active")
}

// FilingHistory renders one paragraph per filing, in API order.
func (r *Renderer) FilingHistory(history *registry.FilingHistory) string {
	if history == nil || len(history.Items) == 0 {
		return NoFilingHistory
	}

	var b strings.Builder
	for _, item := range history.Items {
		if IsStatusChange(item.Description) {
			b.WriteString(r.paint(r.marker, StatusChangeMarker))
		}
		fmt.Fprintf(&b, "Date: %s\n", orNA(item.Date))
		fmt.Fprintf(&b, "  Desc: %s\n", orNA(item.Description))
		fmt.Fprintf(&b, "  Type: %s\n\n", orNA(item.Type))
	}
	return b.String()
}

// PSCs renders one block per person with significant control, with voting
// and share bar charts.
func (r *Renderer) PSCs(list *registry.PSCList) string {
	if list == nil || len(list.Items) == 0 {
		return NoPSCs
	}

	var b strings.Builder
	for i := range list.Items {
		psc := &list.Items[i]
		status := "Active"
		if psc.IsCeased() {
			status = "Ceased"
		}
		ranges := control.ForPSC(psc.NaturesOfControl, psc.IsCeased())

		fmt.Fprintf(&b, "- Name:    %s\n", orNA(psc.Name))
		fmt.Fprintf(&b, "  Status:  %s\n", status)
		fmt.Fprintf(&b, "  Voting:  %s\n", r.Bar(ranges.Voting))
		fmt.Fprintf(&b, "  Shares:  %s\n", r.Bar(ranges.Shares))
		fmt.Fprintf(&b, "  Natures: %s\n\n", strings.Join(psc.NaturesOfControl, ", "))
	}
	return b.String()
}

// Bar renders a range as a solid run of ⌊lower/10⌋ cells, a shaded run of
// ⌊(upper-lower)/10⌋ cells and the numeric range padded to a fixed width.
func (r *Renderer) Bar(rng control.Range) string {
	solid, shaded := BarCells(rng)

	var b strings.Builder
	if solid > 0 {
		b.WriteString(r.paint(r.solid, strings.Repeat(solidCell, solid)))
	}
	if shaded > 0 {
		b.WriteString(r.paint(r.shaded, strings.Repeat(shadedCell, shaded)))
	}
	fmt.Fprintf(&b, "%-*s", rangeLabelWidth, fmt.Sprintf(" (%d-%d%%)", rng.Lower, rng.Upper))
	return b.String()
}

// BarCells returns the solid and shaded cell counts for a range.
func BarCells(rng control.Range) (solid, shaded int) {
	if rng.IsZero() {
		return 0, 0
	}
	if rng.Lower > 0 {
		solid = rng.Lower / barScale
	}
	if rng.Upper > rng.Lower {
		shaded = (rng.Upper - rng.Lower) / barScale
	}
	return solid, shaded
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

func orNA(s string) string {
	if s == "" {
		return notAvail
	}
	return s
}
