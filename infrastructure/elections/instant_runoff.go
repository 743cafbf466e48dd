package elections

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.Election = (*InstantRunoff)(nil)
var _ domain.ElectionResult = (*InstantRunoffResult)(nil)

// InstantRunoff implements ranked-choice counting. Each round tallies each
// ballot's top choice among the still-active candidates; a candidate with
// a strict majority of ALL ballots cast wins immediately, otherwise the
// candidate with the fewest votes is eliminated and the ballots re-resolve.
//
// Because the majority denominator is total ballots cast rather than the
// round's resolvable ballots, heavy ballot exhaustion can make a majority
// unreachable. The terminal fallback is last-candidate-standing, and the
// result flags that case as Exhausted rather than reporting a majority win.
type InstantRunoff struct {
	id string
}

// NewInstantRunoff creates an instant-runoff election with the given
// identifier.
func NewInstantRunoff(id string) (*InstantRunoff, error) {
	if id == "" {
		return nil, ErrEmptyElectionID
	}
	return &InstantRunoff{id: id}, nil
}

// Name returns the unique identifier for this election instance.
func (e *InstantRunoff) Name() string { return e.id }

// Validate checks if the election is properly configured.
func (e *InstantRunoff) Validate() error {
	if e.id == "" {
		return ErrEmptyElectionID
	}
	return nil
}

// RoundResult is one instant-runoff round: the active candidates' tallies
// (votes descending, ties in slate order), the number of ballots that
// resolved to an active candidate, and the number that did not.
type RoundResult struct {
	Ordered  []domain.CandidateResult `json:"ordered"`
	NVotes   float64                  `json:"n_votes"`
	NoChoice float64                  `json:"no_choice"`
}

// Run executes instant-runoff rounds until a strict majority or a single
// active candidate remains. The round count is bounded by the slate size.
func (e *InstantRunoff) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	if len(def.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	ballots := def.Ballots()
	if len(ballots) == 0 {
		return nil, ErrNoBallots
	}

	total := float64(len(ballots))
	active := make([]domain.Candidate, len(def.Candidates))
	copy(active, def.Candidates)

	var rounds []RoundResult
	var winner domain.Candidate
	exhausted := false

	for {
		round := tallyRound(active, ballots)
		rounds = append(rounds, round)

		if round.Ordered[0].Votes*2 > total {
			winner = round.Ordered[0].Candidate
			break
		}
		if len(active) == 1 {
			winner = active[0]
			exhausted = round.NoChoice > 0
			break
		}

		// Eliminate the fewest-vote candidate. The round ordering is
		// stable over slate order, so a tie eliminates the tied
		// candidate latest in the slate.
		loser := round.Ordered[len(round.Ordered)-1].Candidate
		next := active[:0]
		for _, c := range active {
			if c.Key() != loser.Key() {
				next = append(next, c)
			}
		}
		active = next
	}

	return &InstantRunoffResult{
		winner:       winner,
		rounds:       rounds,
		exhausted:    exhausted,
		satisfaction: domain.SatisfactionFor(def.Population.Voters(), winner),
		nVotes:       total,
	}, nil
}

// tallyRound counts each ballot's top active choice. Every active
// candidate appears in the ordering, zero votes included.
func tallyRound(active []domain.Candidate, ballots []domain.Ballot) RoundResult {
	activeSet := domain.ActiveSet(active)
	counts := make(map[string]float64, len(active))
	resolved := 0.0
	for _, b := range ballots {
		if choice, ok := b.Choice(activeSet); ok {
			counts[choice.Key()]++
			resolved++
		}
	}

	ordered := make([]domain.CandidateResult, len(active))
	for i, c := range active {
		ordered[i] = domain.CandidateResult{Candidate: c, Votes: counts[c.Key()]}
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Votes > ordered[j].Votes })

	return RoundResult{
		Ordered:  ordered,
		NVotes:   resolved,
		NoChoice: float64(len(ballots)) - resolved,
	}
}

// InstantRunoffResult is the outcome of an instant-runoff count, retaining
// every intermediate round.
type InstantRunoffResult struct {
	winner       domain.Candidate
	rounds       []RoundResult
	exhausted    bool
	satisfaction float64
	nVotes       float64
}

// Winner returns the majority or last-standing winner.
func (r *InstantRunoffResult) Winner() domain.Candidate { return r.winner }

// OrderedResults returns the final round's tallies, votes descending.
func (r *InstantRunoffResult) OrderedResults() []domain.CandidateResult {
	return r.rounds[len(r.rounds)-1].Ordered
}

// VoterSatisfaction returns the satisfaction score for the final winner
// over the full electorate.
func (r *InstantRunoffResult) VoterSatisfaction() float64 { return r.satisfaction }

// NVotes returns the total number of ballots cast.
func (r *InstantRunoffResult) NVotes() float64 { return r.nVotes }

// Rounds returns every round in order, first to last.
func (r *InstantRunoffResult) Rounds() []RoundResult { return r.rounds }

// Exhausted reports whether the winner took the race as the last candidate
// standing while some ballots no longer resolved to any active candidate.
func (r *InstantRunoffResult) Exhausted() bool { return r.exhausted }

// InstantRunoffConfig is the (empty) configuration for instant-runoff
// elections.
type InstantRunoffConfig struct{}

// DefaultInstantRunoffConfig returns an InstantRunoffConfig with defaults.
func DefaultInstantRunoffConfig() InstantRunoffConfig { return InstantRunoffConfig{} }

// UnmarshalParameters deserializes YAML configuration parameters.
// Instant runoff accepts and ignores any parameters.
func (e *InstantRunoff) UnmarshalParameters(params yaml.Node) error {
	var config InstantRunoffConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	return nil
}

// NewInstantRunoffFromConfig creates an InstantRunoff from a configuration
// map. This is the boundary adapter for YAML/JSON configuration.
func NewInstantRunoffFromConfig(id string, config map[string]any) (ports.Election, error) {
	return NewInstantRunoff(id)
}
