// Package districts ingests congressional district data: voting records
// parsed from Cook Political Report CSV exports and the electorate
// populations derived from them.
package districts

import (
	"fmt"
	"strings"
)

// VotingRecord is one district's voting history: an identifier like
// "CA-15", the sitting incumbent, the published partisan lean, and the
// Democratic/Republican vote percentages of the last two elections.
type VotingRecord struct {
	// District is the "{state}-{number}" identifier.
	District string `json:"district"`

	// Incumbent is the sitting office holder's name.
	Incumbent string `json:"incumbent"`

	// ExpectedLean is the published partisan lean: positive leans
	// Republican, negative Democratic.
	ExpectedLean float64 `json:"expected_lean"`

	// DPct1 and RPct1 are the two-party percentages of the most recent
	// election; DPct2 and RPct2 the one before it.
	DPct1 float64 `json:"d_pct1"`
	RPct1 float64 `json:"r_pct1"`
	DPct2 float64 `json:"d_pct2"`
	RPct2 float64 `json:"r_pct2"`
}

// State returns the district identifier's state prefix.
func (r VotingRecord) State() string {
	state, _, _ := strings.Cut(r.District, "-")
	return state
}

// Lean computes the observed partisan lean from the two elections'
// percentages: positive leans Republican, negative Democratic.
func (r VotingRecord) Lean() float64 {
	l1 := 0.5 - r.DPct1/(r.DPct1+r.RPct1)
	l2 := 0.5 - r.DPct2/(r.DPct2+r.RPct2)
	return 100 * (l1 + l2) / 2
}

// Direction returns "right" for Republican-leaning districts and "left"
// otherwise.
func (r VotingRecord) Direction() string {
	if r.Lean() > 0 {
		return "right"
	}
	return "left"
}

// String returns a fixed-width summary line.
func (r VotingRecord) String() string {
	return fmt.Sprintf("%-5s %-30s %6.2f", r.District, r.Incumbent, r.Lean())
}
