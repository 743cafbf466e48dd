package application

import (
	"fmt"

	"github.com/ahrav/go-stump/internal/domain"
)

// stubRegistryElection is a minimal Election used to exercise registry
// registration paths.
type stubRegistryElection struct{ id string }

func (e *stubRegistryElection) Name() string    { return e.id }
func (e *stubRegistryElection) Validate() error { return nil }

func (e *stubRegistryElection) Run(domain.ElectionDefinition) (domain.ElectionResult, error) {
	return nil, fmt.Errorf("not implemented")
}

// stubElectionResult wraps a fixed winner.
type stubElectionResult struct{ winner domain.Candidate }

func (r stubElectionResult) Winner() domain.Candidate { return r.winner }

func (r stubElectionResult) OrderedResults() []domain.CandidateResult {
	return []domain.CandidateResult{{Candidate: r.winner, Votes: 1}}
}

func (r stubElectionResult) VoterSatisfaction() float64 { return 0 }
func (r stubElectionResult) NVotes() float64            { return 1 }

// scriptedElection returns a queued winner name per Run call and records
// every slate it was handed, letting tests steer scenario branches.
type scriptedElection struct {
	winners []string
	slates  [][]domain.Candidate
	calls   int
}

func (e *scriptedElection) Name() string    { return "scripted" }
func (e *scriptedElection) Validate() error { return nil }

func (e *scriptedElection) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	e.slates = append(e.slates, def.Candidates)
	if e.calls >= len(e.winners) {
		return nil, fmt.Errorf("scripted election exhausted after %d runs", e.calls)
	}
	name := e.winners[e.calls]
	e.calls++

	for _, c := range def.Candidates {
		if c.Name == name {
			return stubElectionResult{winner: c}, nil
		}
	}
	return nil, fmt.Errorf("scripted winner %s not in slate", name)
}
