package generators

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.CandidateGenerator = (*CondorcetGenerator)(nil)

// partySwitchPoint is the ideology threshold that classifies a
// Condorcet-generated candidate: left of -0.1 runs as a Democrat, right
// of +0.1 as a Republican, the band between as an Independent.
const partySwitchPoint = 0.1

// CondorcetGenerator draws every candidate from a normal distribution
// centered on the population's median voter rather than on party means,
// classifies each by ideology threshold, and names the field by final
// ideological order from most liberal to most conservative.
type CondorcetGenerator struct {
	id     string
	config CondorcetConfig
	rng    domain.Rand
}

// CondorcetConfig defines the configuration parameters for the
// CondorcetGenerator.
type CondorcetConfig struct {
	// NCandidates is how many candidates to draw.
	NCandidates int `yaml:"n_candidates" json:"n_candidates" validate:"min=1"`

	// IdeologyVariance scales each draw's spread around the median voter.
	IdeologyVariance float64 `yaml:"ideology_variance" json:"ideology_variance" validate:"min=0"`

	// QualityVariance scales every candidate's random quality draw.
	QualityVariance float64 `yaml:"quality_variance" json:"quality_variance" validate:"min=0"`
}

// DefaultCondorcetConfig returns a CondorcetConfig with defaults.
func DefaultCondorcetConfig() CondorcetConfig {
	return CondorcetConfig{
		NCandidates:      5,
		IdeologyVariance: 0.5,
		QualityVariance:  0.1,
	}
}

// NewCondorcetGenerator creates a CondorcetGenerator with the specified
// configuration and random source.
func NewCondorcetGenerator(id string, config CondorcetConfig, rng domain.Rand) (*CondorcetGenerator, error) {
	if id == "" {
		return nil, ErrEmptyGeneratorID
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &CondorcetGenerator{id: id, config: config, rng: rng}, nil
}

// Name returns the unique identifier for this generator instance.
func (g *CondorcetGenerator) Name() string { return g.id }

// Validate checks if the generator is properly configured.
func (g *CondorcetGenerator) Validate() error {
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

// Generate draws the field around the median voter, sorts it by ideology
// ascending, and renames each candidate "{Initial}-{position}" by that
// final order.
func (g *CondorcetGenerator) Generate(pop *domain.CombinedPopulation) ([]domain.Candidate, error) {
	median := pop.MedianVoter()
	slate := make([]domain.Candidate, 0, g.config.NCandidates)
	for i := 0; i < g.config.NCandidates; i++ {
		ideology := median + g.rng.Normal()*g.config.IdeologyVariance

		var tag domain.Tag
		switch {
		case ideology < -partySwitchPoint:
			tag = domain.Democrats
		case ideology > partySwitchPoint:
			tag = domain.Republicans
		default:
			tag = domain.Independents
		}

		slate = append(slate, domain.NewCandidate(
			fmt.Sprintf("%s-%d", tag.Initial(), i+1),
			tag,
			ideology,
			g.rng.Normal()*g.config.QualityVariance,
		))
	}

	sort.SliceStable(slate, func(i, j int) bool { return slate[i].Ideology < slate[j].Ideology })
	for i := range slate {
		slate[i].Name = fmt.Sprintf("%s-%d", slate[i].Tag.Initial(), i+1)
	}
	return slate, nil
}

// UnmarshalParameters deserializes YAML configuration parameters and
// updates the generator's configuration.
func (g *CondorcetGenerator) UnmarshalParameters(params yaml.Node) error {
	var config CondorcetConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	g.config = config
	return nil
}

// NewCondorcetFromConfig creates a CondorcetGenerator from a
// configuration map.
func NewCondorcetFromConfig(id string, config map[string]any, rng domain.Rand) (ports.CandidateGenerator, error) {
	cfg := DefaultCondorcetConfig()
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}
	return NewCondorcetGenerator(id, cfg, rng)
}
