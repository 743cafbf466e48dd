package generators

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.CandidateGenerator = (*RankGenerator)(nil)

// RankGenerator places candidates by electorate percentile rather than by
// raw ideology: it computes evenly spaced percentile ranks per party,
// adjusts them for party direction and a configurable offset, converts
// each surviving rank to an ideology through the population's percentile
// lookup, and fields the usual median candidate between the party blocks.
// Ranks pushed outside (0, 1) are dropped, so a party can field fewer
// candidates than requested.
type RankGenerator struct {
	id     string
	config RankConfig
	rng    domain.Rand
}

// RankConfig defines the configuration parameters for the RankGenerator.
type RankConfig struct {
	// NPartyCandidates is how many ranks each major party computes.
	// The spread formula divides by n-1, so at least two are required.
	NPartyCandidates int `yaml:"n_party_candidates" json:"n_party_candidates" validate:"min=2"`

	// Spread is the total percentile width each party's ranks cover.
	Spread float64 `yaml:"spread" json:"spread" validate:"min=0"`

	// Offset pushes each party's ranks away from the 0.5 midpoint.
	Offset float64 `yaml:"offset" json:"offset"`

	// IdeologyVariance scales the Gaussian noise added to each rank
	// before the percentile lookup.
	IdeologyVariance float64 `yaml:"ideology_variance" json:"ideology_variance" validate:"min=0"`

	// MedianVariance scales the jitter on the median candidate's
	// placement.
	MedianVariance float64 `yaml:"median_variance" json:"median_variance" validate:"min=0"`

	// QualityVariance scales every candidate's random quality draw.
	QualityVariance float64 `yaml:"quality_variance" json:"quality_variance" validate:"min=0"`
}

// DefaultRankConfig returns a RankConfig with defaults.
func DefaultRankConfig() RankConfig {
	return RankConfig{
		NPartyCandidates: 2,
		Spread:           0.2,
		Offset:           0.2,
		IdeologyVariance: 0.01,
		MedianVariance:   0.1,
		QualityVariance:  0.1,
	}
}

// NewRankGenerator creates a RankGenerator with the specified
// configuration and random source.
func NewRankGenerator(id string, config RankConfig, rng domain.Rand) (*RankGenerator, error) {
	if id == "" {
		return nil, ErrEmptyGeneratorID
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &RankGenerator{id: id, config: config, rng: rng}, nil
}

// Name returns the unique identifier for this generator instance.
func (g *RankGenerator) Name() string { return g.id }

// Validate checks if the generator is properly configured.
func (g *RankGenerator) Validate() error {
	if g.id == "" {
		return ErrEmptyGeneratorID
	}
	if g.rng == nil {
		return ErrNilRand
	}
	if err := validate.Struct(g.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Generate builds Republicans, then Democrats, then the median candidate,
// returning them ordered Democrats, median, Republicans.
func (g *RankGenerator) Generate(pop *domain.CombinedPopulation) ([]domain.Candidate, error) {
	reps := g.rankSlate(pop.Republicans(), pop)
	dems := g.rankSlate(pop.Democrats(), pop)
	median := medianCandidate(pop, g.config.MedianVariance, g.config.QualityVariance, g.rng)

	slate := make([]domain.Candidate, 0, len(dems)+len(reps)+1)
	slate = append(slate, dems...)
	slate = append(slate, median)
	slate = append(slate, reps...)
	return slate, nil
}

// rankSlate converts a party's percentile ranks to ideologies and names
// the candidates inside-out.
func (g *RankGenerator) rankSlate(group domain.PopulationGroup, pop *domain.CombinedPopulation) []domain.Candidate {
	ranks := g.computeRanks(group.Tag, g.config.NPartyCandidates)
	ideologies := make([]float64, len(ranks))
	for i, r := range ranks {
		ideologies[i] = pop.IdeologyForPercentile(r)
	}
	sort.Float64s(ideologies)
	return candidatesForIdeologies(ideologies, group, g.config.QualityVariance, g.rng)
}

// computeRanks spaces n ranks across the configured spread, adds noise,
// shifts them by party direction and offset, and drops ranks outside
// (0, 1).
func (g *RankGenerator) computeRanks(tag domain.Tag, n int) []float64 {
	step := g.config.Spread / float64(n-1)
	ranks := make([]float64, n)
	for i := range ranks {
		ranks[i] = float64(i)*step - g.config.Spread/2
		ranks[i] += g.config.IdeologyVariance * g.rng.Normal()
	}

	switch tag.ShortName {
	case domain.Republicans.ShortName:
		for i := range ranks {
			ranks[i] += g.config.Offset + 0.5
		}
	case domain.Democrats.ShortName:
		for i := range ranks {
			ranks[i] = 0.5 - g.config.Offset - ranks[i]
		}
	}

	valid := ranks[:0]
	for _, r := range ranks {
		if r > 0 && r < 1 {
			valid = append(valid, r)
		}
	}
	return valid
}

// UnmarshalParameters deserializes YAML configuration parameters and
// updates the generator's configuration.
func (g *RankGenerator) UnmarshalParameters(params yaml.Node) error {
	var config RankConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	g.config = config
	return nil
}

// NewRankFromConfig creates a RankGenerator from a configuration map.
func NewRankFromConfig(id string, config map[string]any, rng domain.Rand) (ports.CandidateGenerator, error) {
	cfg := DefaultRankConfig()
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}
	return NewRankGenerator(id, cfg, rng)
}
