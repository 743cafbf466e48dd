package elections

import (
	"fmt"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.Election = (*HeadToHead)(nil)
var _ domain.ElectionResult = (*HeadToHeadResult)(nil)

// HeadToHead implements a pairwise (Condorcet-style) tournament: every
// unordered candidate pair is matched over the full ballot set, and the
// overall ranking orders candidates by wins descending, then by smallest
// losing margin ascending, then by name ascending. The loss-margin rule
// rewards a candidate who lost narrowly over one who lost badly.
type HeadToHead struct {
	id string
}

// NewHeadToHead creates a pairwise-tournament election with the given
// identifier.
func NewHeadToHead(id string) (*HeadToHead, error) {
	if id == "" {
		return nil, ErrEmptyElectionID
	}
	return &HeadToHead{id: id}, nil
}

// Name returns the unique identifier for this election instance.
func (e *HeadToHead) Name() string { return e.id }

// Validate checks if the election is properly configured.
func (e *HeadToHead) Validate() error {
	if e.id == "" {
		return ErrEmptyElectionID
	}
	return nil
}

// PairwiseResult is the outcome of one head-to-head matchup. The coin-flip
// flag is recorded so tie resolutions stay inspectable.
type PairwiseResult struct {
	A          domain.Candidate `json:"a"`
	B          domain.Candidate `json:"b"`
	VotesA     float64          `json:"votes_a"`
	VotesB     float64          `json:"votes_b"`
	Winner     domain.Candidate `json:"winner"`
	ByCoinFlip bool             `json:"by_coin_flip"`
}

// Margin returns the absolute vote difference of the matchup.
func (p PairwiseResult) Margin() float64 { return math.Abs(p.VotesA - p.VotesB) }

// Run matches every candidate pair over the full ballot set. All coin
// flips draw from def.Rand in pair order, keeping the tournament
// replayable from the seed.
func (e *HeadToHead) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	if len(def.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	ballots := def.Ballots()
	if len(ballots) == 0 {
		return nil, ErrNoBallots
	}

	candidates := def.Candidates
	var pairwise []PairwiseResult
	wins := make(map[string]float64, len(candidates))
	minLoss := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		minLoss[c.Key()] = math.Inf(1)
	}

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			p := matchup(candidates[i], candidates[j], ballots, def.Rand)
			pairwise = append(pairwise, p)

			loser := p.B
			if p.Winner.Key() == p.B.Key() {
				loser = p.A
			}
			wins[p.Winner.Key()]++
			if m := p.Margin(); m < minLoss[loser.Key()] {
				minLoss[loser.Key()] = m
			}
		}
	}

	ordered := make([]domain.CandidateResult, len(candidates))
	for i, c := range candidates {
		ordered[i] = domain.CandidateResult{Candidate: c, Votes: wins[c.Key()]}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Votes != ordered[j].Votes {
			return ordered[i].Votes > ordered[j].Votes
		}
		li, lj := minLoss[ordered[i].Candidate.Key()], minLoss[ordered[j].Candidate.Key()]
		if li != lj {
			return li < lj
		}
		return ordered[i].Candidate.Name < ordered[j].Candidate.Name
	})

	winner := ordered[0].Candidate
	return &HeadToHeadResult{
		winner:       winner,
		ordered:      ordered,
		pairwise:     pairwise,
		satisfaction: domain.SatisfactionFor(def.Population.Voters(), winner),
		nVotes:       float64(len(ballots)),
	}, nil
}

// matchup counts, per ballot, whichever of the two candidates ranks
// earlier. An exact tie is broken by one recorded coin flip.
func matchup(a, b domain.Candidate, ballots []domain.Ballot, rng domain.Rand) PairwiseResult {
	pair := domain.ActiveSet([]domain.Candidate{a, b})
	votesA, votesB := 0.0, 0.0
	for _, ballot := range ballots {
		choice, ok := ballot.Choice(pair)
		if !ok {
			continue
		}
		if choice.Key() == a.Key() {
			votesA++
		} else {
			votesB++
		}
	}

	p := PairwiseResult{A: a, B: b, VotesA: votesA, VotesB: votesB}
	switch {
	case votesA > votesB:
		p.Winner = a
	case votesB > votesA:
		p.Winner = b
	default:
		p.ByCoinFlip = true
		if rng.Bool() {
			p.Winner = a
		} else {
			p.Winner = b
		}
	}
	return p
}

// HeadToHeadResult is the outcome of a pairwise tournament. Vote totals in
// the ordering are matchup win counts, not ballot counts.
type HeadToHeadResult struct {
	winner       domain.Candidate
	ordered      []domain.CandidateResult
	pairwise     []PairwiseResult
	satisfaction float64
	nVotes       float64
}

// Winner returns the tournament's top-ranked candidate.
func (r *HeadToHeadResult) Winner() domain.Candidate { return r.winner }

// OrderedResults returns candidates ranked by the tournament ordering,
// with Votes carrying each candidate's matchup win count.
func (r *HeadToHeadResult) OrderedResults() []domain.CandidateResult { return r.ordered }

// VoterSatisfaction returns the satisfaction score for the winner.
func (r *HeadToHeadResult) VoterSatisfaction() float64 { return r.satisfaction }

// NVotes returns the total number of ballots cast.
func (r *HeadToHeadResult) NVotes() float64 { return r.nVotes }

// Pairwise returns every matchup in pair order.
func (r *HeadToHeadResult) Pairwise() []PairwiseResult { return r.pairwise }

// HeadToHeadConfig is the (empty) configuration for pairwise tournaments.
type HeadToHeadConfig struct{}

// DefaultHeadToHeadConfig returns a HeadToHeadConfig with defaults.
func DefaultHeadToHeadConfig() HeadToHeadConfig { return HeadToHeadConfig{} }

// UnmarshalParameters deserializes YAML configuration parameters.
// Head-to-head accepts and ignores any parameters.
func (e *HeadToHead) UnmarshalParameters(params yaml.Node) error {
	var config HeadToHeadConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	return nil
}

// NewHeadToHeadFromConfig creates a HeadToHead from a configuration map.
// This is the boundary adapter for YAML/JSON configuration.
func NewHeadToHeadFromConfig(id string, config map[string]any) (ports.Election, error) {
	return NewHeadToHead(id)
}
