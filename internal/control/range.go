// Package control derives percentage ranges from PSC nature-of-control tags.
package control

import "strings"

const (
	votingRights      = "voting-rights"
	ownershipOfShares = "ownership-of-shares"
)

// Range is a percentage range. Both bounds are bucket boundaries in [0,100].
type Range struct {
	Lower int
	Upper int
}

// IsZero returns true if the range carries no control.
func (r Range) IsZero() bool {
	return r.Lower == 0 && r.Upper == 0
}

// Ranges holds the voting-rights and share-ownership ranges for one PSC.
type Ranges struct {
	Voting Range
	Shares Range
}

// bucket maps a tag phrase to the percentage range it denotes.
type bucket struct {
	phrase string
	lower  int
	upper  int
}

// buckets are scanned in this order for every tag.
var buckets = []bucket{
	{"75-to-100-percent", 75, 100},
	{"50-to-75-percent", 50, 75},
	{"25-to-50-percent", 25, 50},
	{"10-to-25-percent", 10, 25},
}

// Parse maps nature-of-control tags to voting and share ranges.
//
// Lower and upper bounds are each the maximum over all matching buckets,
// taken independently, so two tags of the same kind can yield a lower bound
// from one bucket and an upper bound from another. A tag naming voting rights
// never also counts toward shares. Unrecognised tags are ignored; no match
// yields zero ranges.
func Parse(natures []string) Ranges {
	var r Ranges
	for _, nature := range natures {
		for _, b := range buckets {
			if !strings.Contains(nature, b.phrase) {
				continue
			}
			switch {
			case strings.Contains(nature, votingRights):
				r.Voting = widen(r.Voting, b)
			case strings.Contains(nature, ownershipOfShares):
				r.Shares = widen(r.Shares, b)
			}
		}
	}
	return r
}

// ForPSC returns Parse(natures), or zero ranges when the PSC has ceased.
func ForPSC(natures []string, ceased bool) Ranges {
	if ceased {
		return Ranges{}
	}
	return Parse(natures)
}

func widen(r Range, b bucket) Range {
	if b.lower > r.Lower {
		r.Lower = b.lower
	}
	if b.upper > r.Upper {
		r.Upper = b.upper
	}
	return r
}
