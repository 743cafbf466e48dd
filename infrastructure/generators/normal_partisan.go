package generators

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.CandidateGenerator = (*NormalPartisanGenerator)(nil)

// NormalPartisanGenerator draws each party's candidates independently
// from a normal distribution centered on that party's skewed mean, with
// no deterministic symmetric spread, plus the usual median candidate
// between the two party blocks.
type NormalPartisanGenerator struct {
	id     string
	config NormalPartisanConfig
	rng    domain.Rand
}

// NormalPartisanConfig defines the configuration parameters for the
// NormalPartisanGenerator.
type NormalPartisanConfig struct {
	// NPartisanCandidates is how many candidates each major party fields.
	NPartisanCandidates int `yaml:"n_partisan_candidates" json:"n_partisan_candidates" validate:"min=1"`

	// IdeologyVariance scales each placement's Gaussian draw around the
	// party base.
	IdeologyVariance float64 `yaml:"ideology_variance" json:"ideology_variance" validate:"min=0"`

	// MedianVariance scales the jitter on the median candidate's
	// placement.
	MedianVariance float64 `yaml:"median_variance" json:"median_variance" validate:"min=0"`

	// QualityVariance scales every candidate's random quality draw.
	QualityVariance float64 `yaml:"quality_variance" json:"quality_variance" validate:"min=0"`

	// PrimarySkew shifts each party's candidate base away from center.
	PrimarySkew float64 `yaml:"primary_skew" json:"primary_skew" validate:"min=0"`
}

// DefaultNormalPartisanConfig returns a NormalPartisanConfig with
// defaults.
func DefaultNormalPartisanConfig() NormalPartisanConfig {
	return NormalPartisanConfig{
		NPartisanCandidates: 2,
		IdeologyVariance:    0.3,
		MedianVariance:      0.1,
		QualityVariance:     0.1,
		PrimarySkew:         0,
	}
}

// NewNormalPartisanGenerator creates a NormalPartisanGenerator with the
// specified configuration and random source.
func NewNormalPartisanGenerator(id string, config NormalPartisanConfig, rng domain.Rand) (*NormalPartisanGenerator, error) {
	if id == "" {
		return nil, ErrEmptyGeneratorID
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &NormalPartisanGenerator{id: id, config: config, rng: rng}, nil
}

// Name returns the unique identifier for this generator instance.
func (g *NormalPartisanGenerator) Name() string { return g.id }

// Validate checks if the generator is properly configured.
func (g *NormalPartisanGenerator) Validate() error {
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

// Generate draws Democrats, then appends the median candidate, then draws
// Republicans. Neither party's slate is thinned here; the median
// candidate is an extra entrant.
func (g *NormalPartisanGenerator) Generate(pop *domain.CombinedPopulation) ([]domain.Candidate, error) {
	median := medianCandidate(pop, g.config.MedianVariance, g.config.QualityVariance, g.rng)

	n := g.config.NPartisanCandidates
	slate := make([]domain.Candidate, 0, 2*n+1)
	demBase := pop.Democrats().Mean - g.config.PrimarySkew
	for i := 0; i < n; i++ {
		slate = append(slate, domain.NewCandidate(
			fmt.Sprintf("D-%d", i+1),
			domain.Democrats,
			demBase+g.rng.Normal()*g.config.IdeologyVariance,
			g.rng.Normal()*g.config.QualityVariance,
		))
	}

	slate = append(slate, median)

	repBase := pop.Republicans().Mean + g.config.PrimarySkew
	for i := 0; i < n; i++ {
		slate = append(slate, domain.NewCandidate(
			fmt.Sprintf("R-%d", i+1),
			domain.Republicans,
			repBase+g.rng.Normal()*g.config.IdeologyVariance,
			g.rng.Normal()*g.config.QualityVariance,
		))
	}

	return slate, nil
}

// UnmarshalParameters deserializes YAML configuration parameters and
// updates the generator's configuration.
func (g *NormalPartisanGenerator) UnmarshalParameters(params yaml.Node) error {
	var config NormalPartisanConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	g.config = config
	return nil
}

// NewNormalPartisanFromConfig creates a NormalPartisanGenerator from a
// configuration map.
func NewNormalPartisanFromConfig(id string, config map[string]any, rng domain.Rand) (ports.CandidateGenerator, error) {
	cfg := DefaultNormalPartisanConfig()
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}
	return NewNormalPartisanGenerator(id, cfg, rng)
}
