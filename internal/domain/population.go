package domain

// PopulationGroup is one labeled sub-population: a Gaussian distribution
// over the ideology axis with a relative sampling weight. Groups are
// immutable; the shift and reweight operations return new values.
type PopulationGroup struct {
	// Tag identifies the grouping this sub-population belongs to.
	Tag Tag `json:"tag"`

	// Mean is the center of the group's ideology distribution.
	Mean float64 `json:"mean"`

	// Stddev is the spread of the group's ideology distribution.
	Stddev float64 `json:"stddev"`

	// Skew shifts how far toward its extreme the group leans.
	Skew float64 `json:"skew"`

	// Weight is the group's relative share of the electorate.
	Weight float64 `json:"weight"`
}

// Name returns the display name of the group's tag.
func (g PopulationGroup) Name() string { return g.Tag.Name }

// PluralName returns the plural display label of the group's tag.
func (g PopulationGroup) PluralName() string { return g.Tag.PluralName }

// Shift returns a copy of the group with its mean moved by amount.
func (g PopulationGroup) Shift(amount float64) PopulationGroup {
	g.Mean += amount
	return g
}

// ShiftOut moves a major party's mean away from the center: Republicans
// shift by +amount, Democrats by -amount, everyone else is unchanged.
func (g PopulationGroup) ShiftOut(amount float64) PopulationGroup {
	switch g.Tag.ShortName {
	case Republicans.ShortName:
		return g.Shift(amount)
	case Democrats.ShortName:
		return g.Shift(-amount)
	default:
		return g
	}
}

// Reweight returns a copy of the group with its weight rescaled.
func (g PopulationGroup) Reweight(scale float64) PopulationGroup {
	g.Weight *= scale
	return g
}

// Sample draws n voters from the group's ideology distribution:
// ideology = mean + stddev × rng.Normal().
func (g PopulationGroup) Sample(n int, rng Rand) []Voter {
	voters := make([]Voter, n)
	for i := range voters {
		voters[i] = g.RandomVoter(rng)
	}
	return voters
}

// RandomVoter draws a single voter from the group's distribution.
func (g PopulationGroup) RandomVoter(rng Rand) Voter {
	return Voter{
		Group:    g,
		Ideology: g.Mean + g.Stddev*rng.Normal(),
	}
}

// Voter is a single sampled member of the electorate. It carries no
// identity beyond its group and position on the ideology axis.
type Voter struct {
	// Group is the sub-population the voter was drawn from.
	Group PopulationGroup `json:"group"`

	// Ideology is the voter's position on the ideology axis.
	Ideology float64 `json:"ideology"`
}

// DistanceScore is the ideological component of a voter's preference:
// the negated absolute distance to the candidate.
func (v Voter) DistanceScore(c Candidate) float64 {
	d := v.Ideology - c.Ideology
	if d < 0 {
		d = -d
	}
	return -d
}

// Score computes the voter's full preference for a candidate:
// distance score, plus the candidate's affinity toward the voter's
// grouping, plus scaled perception noise, plus the candidate's quality.
func (v Voter) Score(c Candidate, cfg ElectionConfig, rng Rand) float64 {
	return v.DistanceScore(c) +
		c.AffinityFor(v.Group.Tag) +
		cfg.Uncertainty*rng.Normal() +
		c.Quality
}

// Ballot scores the full slate in order and returns the voter's ranked
// ballot. Candidates are scored in slate order so the draw sequence is
// reproducible from the seed.
func (v Voter) Ballot(candidates []Candidate, cfg ElectionConfig, rng Rand) Ballot {
	scores := make([]CandidateScore, len(candidates))
	for i, c := range candidates {
		scores[i] = CandidateScore{Candidate: c, Score: v.Score(c, cfg, rng)}
	}
	return NewBallot(scores, rng)
}
