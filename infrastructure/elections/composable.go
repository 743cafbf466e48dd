package elections

import (
	"fmt"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.Election = (*Composable)(nil)
var _ domain.ElectionResult = (*ComposableResult)(nil)

// Composable chains two election processes: the first acts as a primary
// stage whose full ordered result, not just its winner, becomes the
// general stage's slate. Any two methods compose, e.g. instant runoff to
// winnow a wide field before a head-to-head tournament.
type Composable struct {
	primary ports.Election
	general ports.Election
}

// NewComposable creates a two-stage election from the given processes.
func NewComposable(primary, general ports.Election) (*Composable, error) {
	if primary == nil || general == nil {
		return nil, fmt.Errorf("%w: composable requires both stages", domain.ErrInvalidConfiguration)
	}
	return &Composable{primary: primary, general: general}, nil
}

// Name identifies the composition by its stage names.
func (e *Composable) Name() string {
	return fmt.Sprintf("composable_%s_to_%s", e.primary.Name(), e.general.Name())
}

// Validate checks both stages.
func (e *Composable) Validate() error {
	if err := e.primary.Validate(); err != nil {
		return fmt.Errorf("primary stage: %w", err)
	}
	if err := e.general.Validate(); err != nil {
		return fmt.Errorf("general stage: %w", err)
	}
	return nil
}

// Run executes the primary stage, rebuilds the definition around the
// primary's ordered candidates, and runs the general stage over it.
func (e *Composable) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	primaryResult, err := e.primary.Run(def)
	if err != nil {
		return nil, fmt.Errorf("primary stage: %w", err)
	}

	ordered := primaryResult.OrderedResults()
	slate := make([]domain.Candidate, len(ordered))
	for i, cr := range ordered {
		slate[i] = cr.Candidate
	}

	generalResult, err := e.general.Run(def.WithCandidates(slate))
	if err != nil {
		return nil, fmt.Errorf("general stage: %w", err)
	}

	return &ComposableResult{
		primary:      primaryResult,
		general:      generalResult,
		satisfaction: domain.SatisfactionFor(def.Population.Voters(), generalResult.Winner()),
	}, nil
}

// ComposableResult is the outcome of a two-stage election. The top-level
// accessors delegate to the general stage.
type ComposableResult struct {
	primary      domain.ElectionResult
	general      domain.ElectionResult
	satisfaction float64
}

// Winner returns the general stage's winner.
func (r *ComposableResult) Winner() domain.Candidate { return r.general.Winner() }

// OrderedResults returns the general stage's ordered tallies.
func (r *ComposableResult) OrderedResults() []domain.CandidateResult {
	return r.general.OrderedResults()
}

// VoterSatisfaction returns the satisfaction score for the final winner
// over the full electorate.
func (r *ComposableResult) VoterSatisfaction() float64 { return r.satisfaction }

// NVotes returns the general stage's counted ballots.
func (r *ComposableResult) NVotes() float64 { return r.general.NVotes() }

// PrimaryStage returns the first stage's result.
func (r *ComposableResult) PrimaryStage() domain.ElectionResult { return r.primary }

// GeneralStage returns the second stage's result.
func (r *ComposableResult) GeneralStage() domain.ElectionResult { return r.general }
