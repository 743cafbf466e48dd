package elections

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.Election = (*Primary)(nil)
var _ domain.ElectionResult = (*PrimaryResult)(nil)

// Primary implements a closed primary followed by a general election.
// Each major party's registered voters nominate one candidate from the
// party's slate by plurality; the general election then runs plurality
// over the two nominees plus every candidate belonging to neither major
// party, counted over the original unskewed electorate.
//
// A positive primary skew shifts each party's primary electorate away
// from center before primary ballots are built, modeling primaries being
// more ideologically extreme than the general electorate.
type Primary struct {
	id      string
	config  PrimaryConfig
	counter *SimplePlurality
}

// PrimaryConfig defines the configuration parameters for the Primary
// election.
type PrimaryConfig struct {
	// PrimarySkew is how far each party's primary electorate shifts away
	// from center: Republicans by +skew, Democrats by -skew. Zero leaves
	// primary voters at their general-election positions.
	PrimarySkew float64 `yaml:"primary_skew" json:"primary_skew" validate:"min=0"`
}

// DefaultPrimaryConfig returns a PrimaryConfig with defaults.
func DefaultPrimaryConfig() PrimaryConfig {
	return PrimaryConfig{PrimarySkew: 0}
}

// NewPrimary creates a primary election with the specified configuration.
func NewPrimary(id string, config PrimaryConfig) (*Primary, error) {
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
	return &Primary{id: id, config: config, counter: counter}, nil
}

// Name returns the unique identifier for this election instance.
func (e *Primary) Name() string { return e.id }

// Validate checks if the election is properly configured.
func (e *Primary) Validate() error {
	if e.id == "" {
		return ErrEmptyElectionID
	}
	if err := validate.Struct(e.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Run executes both party primaries and the general election. The general
// ballots are built first, then each primary's, so the draw sequence is
// fixed regardless of primary outcomes.
func (e *Primary) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	if len(def.Candidates) == 0 {
		return nil, ErrNoCandidates
	}
	generalBallots := def.Ballots()
	if len(generalBallots) == 0 {
		return nil, ErrNoBallots
	}

	demResult, demNominee, err := e.runPrimary(def, domain.Democrats)
	if err != nil {
		return nil, err
	}
	repResult, repNominee, err := e.runPrimary(def, domain.Republicans)
	if err != nil {
		return nil, err
	}

	slate := make([]domain.Candidate, 0, len(def.Candidates))
	for _, c := range def.Candidates {
		if _, major := domain.OppositionOf(c.Tag); !major {
			slate = append(slate, c)
		}
	}
	slate = append(slate, demNominee, repNominee)

	ordered, nVotes := e.counter.Tally(slate, generalBallots)
	winner := ordered[0].Candidate
	general := &PluralityResult{
		winner:       winner,
		ordered:      ordered,
		satisfaction: domain.SatisfactionFor(def.Population.Voters(), winner),
		nVotes:       nVotes,
	}

	return &PrimaryResult{
		democratic: demResult,
		republican: repResult,
		general:    general,
	}, nil
}

// runPrimary nominates one candidate for a major party: the party's
// registered voters, optionally skewed outward, vote plurality over the
// party's candidate subset.
func (e *Primary) runPrimary(
	def domain.ElectionDefinition,
	party domain.Tag,
) (*PluralityResult, domain.Candidate, error) {
	var slate []domain.Candidate
	for _, c := range def.Candidates {
		if c.Tag.ShortName == party.ShortName {
			slate = append(slate, c)
		}
	}
	if len(slate) == 0 {
		return nil, domain.Candidate{}, fmt.Errorf("%w: no %s candidates", ErrMissingMajorParty, party.Name)
	}

	var voters []domain.Voter
	for _, v := range def.Population.Voters() {
		if v.Group.Tag.ShortName == party.ShortName {
			voters = append(voters, v)
		}
	}
	if len(voters) == 0 {
		return nil, domain.Candidate{}, fmt.Errorf("%w in %s primary", ErrNoBallots, party.Name)
	}
	voters = skewOutward(voters, party, e.config.PrimarySkew)

	ballots := def.BallotsFor(voters, slate)
	ordered, nVotes := e.counter.Tally(slate, ballots)
	nominee := ordered[0].Candidate
	result := &PluralityResult{
		winner:       nominee,
		ordered:      ordered,
		satisfaction: domain.SatisfactionFor(voters, nominee),
		nVotes:       nVotes,
	}
	return result, nominee, nil
}

// skewOutward returns a copy of the voters with ideologies shifted away
// from center: Republicans by +skew, Democrats by -skew. A zero skew
// returns the input unchanged.
func skewOutward(voters []domain.Voter, party domain.Tag, skew float64) []domain.Voter {
	if skew == 0 {
		return voters
	}
	if party.ShortName == domain.Democrats.ShortName {
		skew = -skew
	}
	shifted := make([]domain.Voter, len(voters))
	for i, v := range voters {
		v.Ideology += skew
		shifted[i] = v
	}
	return shifted
}

// PrimaryResult is the composite outcome of a primary-then-general race.
// The top-level accessors all delegate to the general result.
type PrimaryResult struct {
	democratic *PluralityResult
	republican *PluralityResult
	general    *PluralityResult
}

// Winner returns the general election's winner.
func (r *PrimaryResult) Winner() domain.Candidate { return r.general.Winner() }

// OrderedResults returns the general election's ordered tallies.
func (r *PrimaryResult) OrderedResults() []domain.CandidateResult {
	return r.general.OrderedResults()
}

// VoterSatisfaction returns the general election's satisfaction score.
func (r *PrimaryResult) VoterSatisfaction() float64 { return r.general.VoterSatisfaction() }

// NVotes returns the general election's counted ballots.
func (r *PrimaryResult) NVotes() float64 { return r.general.NVotes() }

// DemocraticPrimary returns the Democratic primary's result.
func (r *PrimaryResult) DemocraticPrimary() domain.ElectionResult { return r.democratic }

// RepublicanPrimary returns the Republican primary's result.
func (r *PrimaryResult) RepublicanPrimary() domain.ElectionResult { return r.republican }

// General returns the general election's result.
func (r *PrimaryResult) General() domain.ElectionResult { return r.general }

// UnmarshalParameters deserializes YAML configuration parameters and
// updates the election's configuration.
func (e *Primary) UnmarshalParameters(params yaml.Node) error {
	var config PrimaryConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	e.config = config
	return nil
}

// NewPrimaryFromConfig creates a Primary from a configuration map.
// This is the boundary adapter for YAML/JSON configuration.
func NewPrimaryFromConfig(id string, config map[string]any) (ports.Election, error) {
	cfg := DefaultPrimaryConfig()
	if len(config) > 0 {
		data, err := yaml.Marshal(config)
		if err != nil {
			return nil, fmt.Errorf("marshal config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
	}
	return NewPrimary(id, cfg)
}
