package domain

import "maps"

// Candidate is a value type: its affinity map is copied from its tag at
// construction and may diverge from the tag's defaults (toxicity
// perturbation does exactly that), but never in place; WithAffinity and
// WithName build new values. Membership identity is the (name, tag) pair
// exposed by Key, so a perturbed variant added alongside the original
// never collides with it.
type Candidate struct {
	// Name is the candidate's display name. Generators follow the
	// "{PartyInitial}-{index}" convention, with "-V" marking the
	// median/unity candidate; downstream filtering depends on it.
	Name string `json:"name"`

	// Tag is the grouping whose banner the candidate runs under.
	Tag Tag `json:"tag"`

	// Ideology is the candidate's position on the ideology axis.
	Ideology float64 `json:"ideology"`

	// Quality is a scalar bonus applied to every voter's score.
	Quality float64 `json:"quality"`

	// Incumbent marks a sitting office holder.
	Incumbent bool `json:"incumbent"`

	// Affinity is the candidate's own copy of its tag's affinity map.
	Affinity map[string]float64 `json:"affinity"`
}

// NewCandidate builds a candidate carrying a private copy of the tag's
// affinity map.
func NewCandidate(name string, tag Tag, ideology, quality float64) Candidate {
	return Candidate{
		Name:     name,
		Tag:      tag,
		Ideology: ideology,
		Quality:  quality,
		Affinity: maps.Clone(tag.Affinity),
	}
}

// Key returns the candidate's membership identity. Tallies, active sets,
// and substitution checks key on it rather than on full structural
// equality, so affinity divergence never changes membership.
func (c Candidate) Key() string { return c.Name + "/" + c.Tag.ShortName }

// AffinityFor returns the candidate's affinity toward a voter grouping,
// defaulting to zero for unknown codes.
func (c Candidate) AffinityFor(tag Tag) float64 { return c.Affinity[tag.ShortName] }

// WithAffinity returns a copy of the candidate carrying a private copy of
// the given affinity map. The receiver is unchanged.
func (c Candidate) WithAffinity(affinity map[string]float64) Candidate {
	c.Affinity = maps.Clone(affinity)
	return c
}

// WithName returns a renamed copy of the candidate. The copy keeps its own
// affinity map so later perturbation cannot reach back into the receiver.
func (c Candidate) WithName(name string) Candidate {
	c.Name = name
	c.Affinity = maps.Clone(c.Affinity)
	return c
}

// String returns the candidate's name.
func (c Candidate) String() string { return c.Name }
