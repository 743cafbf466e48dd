package domain

// ElectionConfig holds the per-race scoring parameters.
type ElectionConfig struct {
	// Uncertainty scales the perception noise added to every score draw.
	Uncertainty float64 `json:"uncertainty"`
}

// ElectionDefinition bundles everything one race needs: the slate, the
// electorate, the scoring configuration, and the random source whose draw
// sequence makes the race reproducible.
type ElectionDefinition struct {
	Candidates []Candidate
	Population *CombinedPopulation
	Config     ElectionConfig
	Rand       Rand
}

// Ballots builds one ranked ballot per voter over the definition's slate.
// Voters are visited in sample order and candidates scored in slate order;
// reordering either would scramble the draw sequence and break
// reproducibility.
func (d ElectionDefinition) Ballots() []Ballot {
	return d.BallotsFor(d.Population.Voters(), d.Candidates)
}

// BallotsFor builds one ranked ballot per given voter over an explicit
// slate. Primary elections use it to ballot a skewed electorate over a
// party's candidate subset.
func (d ElectionDefinition) BallotsFor(voters []Voter, candidates []Candidate) []Ballot {
	ballots := make([]Ballot, len(voters))
	for i, v := range voters {
		ballots[i] = v.Ballot(candidates, d.Config, d.Rand)
	}
	return ballots
}

// WithCandidates returns a definition for the same electorate and source
// but a different slate. Toxicity re-runs are built this way.
func (d ElectionDefinition) WithCandidates(candidates []Candidate) ElectionDefinition {
	d.Candidates = candidates
	return d
}
