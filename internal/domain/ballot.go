package domain

import (
	"slices"
	"sort"
)

// CandidateScore is one voter's real-valued preference for one candidate.
type CandidateScore struct {
	Candidate Candidate `json:"candidate"`
	Score     float64   `json:"score"`
}

// Ballot is one voter's total order over a candidate slate, ranked by
// descending score. The ranking is fixed at construction.
type Ballot struct {
	ranked []CandidateScore
}

// NewBallot ranks the given scores descending. Exactly equal scores are
// ordered by a fair coin flip per comparison (never by name or insertion
// order), so hand-crafted ties are demonstrably randomized while remaining
// reproducible from the seed.
func NewBallot(scores []CandidateScore, rng Rand) Ballot {
	ranked := slices.Clone(scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return rng.Bool()
	})
	return Ballot{ranked: ranked}
}

// Ranked returns the ballot's ranking, best first. Callers must treat the
// returned slice as read-only.
func (b Ballot) Ranked() []CandidateScore { return b.ranked }

// Choice returns the highest-ranked candidate belonging to the active set,
// or false when the set is empty or no ranked candidate is a member. A
// false return is the "no choice" outcome tallies count toward nobody.
func (b Ballot) Choice(active map[string]bool) (Candidate, bool) {
	for _, cs := range b.ranked {
		if active[cs.Candidate.Key()] {
			return cs.Candidate, true
		}
	}
	return Candidate{}, false
}

// ActiveSet builds the membership set used by Ballot.Choice, keyed by
// candidate identity.
func ActiveSet(candidates []Candidate) map[string]bool {
	active := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		active[c.Key()] = true
	}
	return active
}
