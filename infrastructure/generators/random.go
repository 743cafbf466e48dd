package generators

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.CandidateGenerator = (*RandomGenerator)(nil)

// RandomGenerator draws candidates as literal random voters from the
// population: each candidate inherits the sampled voter's tag and
// ideology. Zero or more median candidates are appended after the random
// draws.
type RandomGenerator struct {
	id     string
	config RandomConfig
	rng    domain.Rand
}

// RandomConfig defines the configuration parameters for the
// RandomGenerator.
type RandomConfig struct {
	// NCandidates is how many random-voter candidates to draw.
	NCandidates int `yaml:"n_candidates" json:"n_candidates" validate:"min=1"`

	// NMedianCandidates is how many median candidates to append.
	NMedianCandidates int `yaml:"n_median_candidates" json:"n_median_candidates" validate:"min=0"`

	// MedianVariance scales the jitter on median candidate placements.
	MedianVariance float64 `yaml:"median_variance" json:"median_variance" validate:"min=0"`

	// QualityVariance scales every candidate's random quality draw.
	QualityVariance float64 `yaml:"quality_variance" json:"quality_variance" validate:"min=0"`
}

// DefaultRandomConfig returns a RandomConfig with defaults.
func DefaultRandomConfig() RandomConfig {
	return RandomConfig{
		NCandidates:       4,
		NMedianCandidates: 0,
		MedianVariance:    0.1,
		QualityVariance:   0.1,
	}
}

// NewRandomGenerator creates a RandomGenerator with the specified
// configuration and random source.
func NewRandomGenerator(id string, config RandomConfig, rng domain.Rand) (*RandomGenerator, error) {
	if id == "" {
		return nil, ErrEmptyGeneratorID
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &RandomGenerator{id: id, config: config, rng: rng}, nil
}

// Name returns the unique identifier for this generator instance.
func (g *RandomGenerator) Name() string { return g.id }

// Validate checks if the generator is properly configured.
func (g *RandomGenerator) Validate() error {
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

// Generate draws the random-voter candidates, named "C-0", "C-1", ...,
// then appends the configured number of median candidates.
func (g *RandomGenerator) Generate(pop *domain.CombinedPopulation) ([]domain.Candidate, error) {
	slate := make([]domain.Candidate, 0, g.config.NCandidates+g.config.NMedianCandidates)
	for i := 0; i < g.config.NCandidates; i++ {
		voter := pop.RandomVoter(g.rng)
		slate = append(slate, domain.NewCandidate(
			fmt.Sprintf("C-%d", i),
			voter.Group.Tag,
			voter.Ideology,
			g.rng.Normal()*g.config.QualityVariance,
		))
	}
	for i := 0; i < g.config.NMedianCandidates; i++ {
		slate = append(slate, medianCandidate(pop, g.config.MedianVariance, g.config.QualityVariance, g.rng))
	}
	return slate, nil
}

// UnmarshalParameters deserializes YAML configuration parameters and
// updates the generator's configuration.
func (g *RandomGenerator) UnmarshalParameters(params yaml.Node) error {
	var config RandomConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	g.config = config
	return nil
}

// NewRandomFromConfig creates a RandomGenerator from a configuration map.
func NewRandomFromConfig(id string, config map[string]any, rng domain.Rand) (ports.CandidateGenerator, error) {
	cfg := DefaultRandomConfig()
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}
	return NewRandomGenerator(id, cfg, rng)
}
