package elections

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.Election = (*TopNPrimary)(nil)
var _ domain.ElectionResult = (*TopNPrimaryResult)(nil)

// TopNPrimary implements a nonpartisan winnowing primary: every voter
// votes in one shared plurality round over the full slate, and only the
// N highest-polling candidates advance. Its OrderedResults carries just
// those N entries, so composing it with any general method runs the
// general stage over a narrowed field. AdvanceCount of 2 models the
// California/Washington jungle primary.
//
// A positive primary skew shifts every major-party voter away from
// center before ballots are built, Republicans by +skew and Democrats by
// -skew; unaffiliated voters stay put.
type TopNPrimary struct {
	id      string
	config  TopNPrimaryConfig
	counter *SimplePlurality
}

// TopNPrimaryConfig defines the configuration parameters for the
// TopNPrimary election.
type TopNPrimaryConfig struct {
	// AdvanceCount is how many top candidates survive the primary.
	AdvanceCount int `yaml:"advance_count" json:"advance_count" validate:"min=1"`
	// PrimarySkew is how far each major party's voters shift away from
	// center before primary ballots are built.
	PrimarySkew float64 `yaml:"primary_skew" json:"primary_skew" validate:"min=0"`
}

// DefaultTopNPrimaryConfig returns a TopNPrimaryConfig with defaults:
// a top-two primary over an unskewed electorate.
func DefaultTopNPrimaryConfig() TopNPrimaryConfig {
	return TopNPrimaryConfig{AdvanceCount: 2, PrimarySkew: 0}
}

// NewTopNPrimary creates a top-N primary with the specified configuration.
func NewTopNPrimary(id string, config TopNPrimaryConfig) (*TopNPrimary, error) {
	if id == "" {
		return nil, ErrEmptyElectionID
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	counter, err := NewSimplePlurality(id + "_count")
	if err != nil {
		return nil, err
	}
	return &TopNPrimary{id: id, config: config, counter: counter}, nil
}

// Name returns the unique identifier for this election instance.
func (e *TopNPrimary) Name() string { return e.id }

// Validate checks if the election is properly configured.
func (e *TopNPrimary) Validate() error {
	if e.id == "" {
		return ErrEmptyElectionID
	}
	if err := validate.Struct(e.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Run counts one shared plurality round and keeps the top N candidates.
// When the slate is no larger than N the round still runs, so the
// ordering and tallies reflect the primary vote.
func (e *TopNPrimary) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	if len(def.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	voters := def.Population.Voters()
	if e.config.PrimarySkew > 0 {
		voters = skewByParty(voters, e.config.PrimarySkew)
	}
	ballots := def.BallotsFor(voters, def.Candidates)
	if len(ballots) == 0 {
		return nil, ErrNoBallots
	}

	ordered, nVotes := e.counter.Tally(def.Candidates, ballots)
	if e.config.AdvanceCount < len(ordered) {
		ordered = ordered[:e.config.AdvanceCount]
	}
	winner := ordered[0].Candidate

	return &TopNPrimaryResult{
		winner:       winner,
		advancing:    ordered,
		satisfaction: domain.SatisfactionFor(def.Population.Voters(), winner),
		nVotes:       nVotes,
	}, nil
}

// skewByParty returns a copy of the voters with each major-party voter's
// ideology shifted away from center: Republicans by +skew, Democrats by
// -skew. Voters of any other group are unchanged.
func skewByParty(voters []domain.Voter, skew float64) []domain.Voter {
	shifted := make([]domain.Voter, len(voters))
	for i, v := range voters {
		switch v.Group.Tag.ShortName {
		case domain.Republicans.ShortName:
			v.Ideology += skew
		case domain.Democrats.ShortName:
			v.Ideology -= skew
		}
		shifted[i] = v
	}
	return shifted
}

// TopNPrimaryResult is the outcome of a winnowing primary. OrderedResults
// exposes only the advancing candidates.
type TopNPrimaryResult struct {
	winner       domain.Candidate
	advancing    []domain.CandidateResult
	satisfaction float64
	nVotes       float64
}

// Winner returns the primary's highest-polling candidate.
func (r *TopNPrimaryResult) Winner() domain.Candidate { return r.winner }

// OrderedResults returns the advancing candidates' totals, votes
// descending. Eliminated candidates do not appear.
func (r *TopNPrimaryResult) OrderedResults() []domain.CandidateResult { return r.advancing }

// VoterSatisfaction returns the satisfaction score for the primary leader
// over the unskewed electorate.
func (r *TopNPrimaryResult) VoterSatisfaction() float64 { return r.satisfaction }

// NVotes returns the number of primary ballots that resolved to a
// candidate, counted before winnowing.
func (r *TopNPrimaryResult) NVotes() float64 { return r.nVotes }

// UnmarshalParameters deserializes YAML configuration parameters and
// updates the election's configuration.
func (e *TopNPrimary) UnmarshalParameters(params yaml.Node) error {
	var config TopNPrimaryConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	e.config = config
	return nil
}

// NewTopNPrimaryFromConfig creates a TopNPrimary from a configuration map.
// This is the boundary adapter for YAML/JSON configuration.
func NewTopNPrimaryFromConfig(id string, config map[string]any) (ports.Election, error) {
	cfg := DefaultTopNPrimaryConfig()
	if len(config) > 0 {
		data, err := yaml.Marshal(config)
		if err != nil {
			return nil, fmt.Errorf("marshal config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	return NewTopNPrimary(id, cfg)
}
