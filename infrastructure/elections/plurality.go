package elections

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.Election = (*SimplePlurality)(nil)
var _ domain.ElectionResult = (*PluralityResult)(nil)

// SimplePlurality implements first-past-the-post counting: each ballot
// contributes one vote to its highest-ranked candidate and the candidate
// with the most votes wins outright, majority or not.
//
// Exact vote ties resolve toward the earlier slate position; score ties
// inside a ballot were already coin-flipped at ballot construction, so a
// vote tie here is a genuine dead heat.
type SimplePlurality struct {
	id string
}

// NewSimplePlurality creates a plurality election with the given
// identifier.
func NewSimplePlurality(id string) (*SimplePlurality, error) {
	if id == "" {
		return nil, ErrEmptyElectionID
	}
	return &SimplePlurality{id: id}, nil
}

// Name returns the unique identifier for this election instance.
func (e *SimplePlurality) Name() string { return e.id }

// Validate checks if the election is properly configured.
// Plurality carries no tunable configuration.
func (e *SimplePlurality) Validate() error {
	if e.id == "" {
		return ErrEmptyElectionID
	}
	return nil
}

// Run tallies one first-choice vote per ballot across the full slate.
func (e *SimplePlurality) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	if len(def.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	ballots := def.Ballots()
	if len(ballots) == 0 {
		return nil, ErrNoBallots
	}

	ordered, nVotes := e.Tally(def.Candidates, ballots)
	winner := ordered[0].Candidate
	return &PluralityResult{
		winner:       winner,
		ordered:      ordered,
		satisfaction: domain.SatisfactionFor(def.Population.Voters(), winner),
		nVotes:       nVotes,
	}, nil
}

// Tally counts each ballot's top choice among the given candidates and
// returns every candidate's total, votes descending, with exact ties kept
// in slate order. The second return is the number of ballots that resolved
// to a candidate.
//
// Primary stages reuse Tally directly to count party subsets over skewed
// electorates without building a full result.
func (e *SimplePlurality) Tally(
	candidates []domain.Candidate,
	ballots []domain.Ballot,
) ([]domain.CandidateResult, float64) {
	active := domain.ActiveSet(candidates)
	counts := make(map[string]float64, len(candidates))
	resolved := 0.0
	for _, b := range ballots {
		if choice, ok := b.Choice(active); ok {
			counts[choice.Key()]++
			resolved++
		}
	}

	ordered := make([]domain.CandidateResult, len(candidates))
	for i, c := range candidates {
		ordered[i] = domain.CandidateResult{Candidate: c, Votes: counts[c.Key()]}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Votes > ordered[j].Votes })
	return ordered, resolved
}

// PluralityResult is the outcome of a plurality count.
type PluralityResult struct {
	winner       domain.Candidate
	ordered      []domain.CandidateResult
	satisfaction float64
	nVotes       float64
}

// Winner returns the candidate with the most first-choice votes.
func (r *PluralityResult) Winner() domain.Candidate { return r.winner }

// OrderedResults returns every candidate's total, votes descending.
// Candidates with zero votes are included.
func (r *PluralityResult) OrderedResults() []domain.CandidateResult { return r.ordered }

// VoterSatisfaction returns the satisfaction score for the winner.
func (r *PluralityResult) VoterSatisfaction() float64 { return r.satisfaction }

// NVotes returns the number of ballots that resolved to a candidate.
func (r *PluralityResult) NVotes() float64 { return r.nVotes }

// PluralityConfig is the (empty) configuration for plurality elections.
// It exists so the registry's factory signature stays uniform.
type PluralityConfig struct{}

// DefaultPluralityConfig returns a PluralityConfig with defaults.
func DefaultPluralityConfig() PluralityConfig { return PluralityConfig{} }

// UnmarshalParameters deserializes YAML configuration parameters.
// Plurality accepts and ignores any parameters.
func (e *SimplePlurality) UnmarshalParameters(params yaml.Node) error {
	var config PluralityConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	return nil
}

// NewPluralityFromConfig creates a SimplePlurality from a configuration
// map. This is the boundary adapter for YAML/JSON configuration.
func NewPluralityFromConfig(id string, config map[string]any) (ports.Election, error) {
	return NewSimplePlurality(id)
}
