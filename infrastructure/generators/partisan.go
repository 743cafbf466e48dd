package generators

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var _ ports.CandidateGenerator = (*PartisanGenerator)(nil)

// PartisanGenerator places each major party's candidates symmetrically
// around the party mean, pushed outward by the primary skew and jittered
// with Gaussian noise, plus one median/unity candidate at the dominant
// party and median-voter ideology. The dominant party's slate is thinned
// by one so the total field size stays at 2×n-1 with the median candidate
// standing in for the dropped partisan.
type PartisanGenerator struct {
	id     string
	config PartisanConfig
	rng    domain.Rand
}

// PartisanConfig defines the configuration parameters for the
// PartisanGenerator.
type PartisanConfig struct {
	// NPartyCandidates is how many candidates each major party fields
	// before median thinning.
	NPartyCandidates int `yaml:"n_party_candidates" json:"n_party_candidates" validate:"min=1"`

	// Spread scales how far the symmetric placements sit from the party
	// base, in units of the party's standard deviation.
	Spread float64 `yaml:"spread" json:"spread" validate:"min=0"`

	// IdeologyVariance scales the Gaussian jitter added to every
	// placement.
	IdeologyVariance float64 `yaml:"ideology_variance" json:"ideology_variance" validate:"min=0"`

	// MedianVariance scales the jitter on the median candidate's
	// placement.
	MedianVariance float64 `yaml:"median_variance" json:"median_variance" validate:"min=0"`

	// QualityVariance scales every candidate's random quality draw.
	QualityVariance float64 `yaml:"quality_variance" json:"quality_variance" validate:"min=0"`

	// PrimarySkew shifts each party's candidate base away from center,
	// modeling primary-electorate extremity.
	PrimarySkew float64 `yaml:"primary_skew" json:"primary_skew" validate:"min=0"`
}

// DefaultPartisanConfig returns a PartisanConfig with defaults.
func DefaultPartisanConfig() PartisanConfig {
	return PartisanConfig{
		NPartyCandidates: 2,
		Spread:           1.0,
		IdeologyVariance: 0.1,
		MedianVariance:   0.1,
		QualityVariance:  0.1,
		PrimarySkew:      0,
	}
}

// NewPartisanGenerator creates a PartisanGenerator with the specified
// configuration and random source.
func NewPartisanGenerator(id string, config PartisanConfig, rng domain.Rand) (*PartisanGenerator, error) {
	if id == "" {
		return nil, ErrEmptyGeneratorID
	}
	if rng == nil {
		return nil, ErrNilRand
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &PartisanGenerator{id: id, config: config, rng: rng}, nil
}

// Name returns the unique identifier for this generator instance.
func (g *PartisanGenerator) Name() string { return g.id }

// Validate checks if the generator is properly configured.
func (g *PartisanGenerator) Validate() error {
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

// Generate builds the slate: Democrats, then the median candidate, then
// Republicans, with the median's own party thinned by one.
func (g *PartisanGenerator) Generate(pop *domain.CombinedPopulation) ([]domain.Candidate, error) {
	reps := g.partisanSlate(pop.Republicans())
	dems := g.partisanSlate(pop.Democrats())
	median := medianCandidate(pop, g.config.MedianVariance, g.config.QualityVariance, g.rng)

	switch median.Tag.ShortName {
	case domain.Democrats.ShortName:
		dems = dems[1:]
	case domain.Republicans.ShortName:
		reps = reps[1:]
	default:
		return nil, fmt.Errorf("%w: got %s", ErrMedianTag, median.Tag.Name)
	}

	slate := make([]domain.Candidate, 0, len(dems)+len(reps)+1)
	slate = append(slate, dems...)
	slate = append(slate, median)
	slate = append(slate, reps...)
	return slate, nil
}

// partisanSlate places one party's candidates symmetrically around the
// skewed party base: one candidate sits at the base, two straddle it, and
// larger fields spread evenly across [base-offset, base+offset].
func (g *PartisanGenerator) partisanSlate(group domain.PopulationGroup) []domain.Candidate {
	skew := g.config.PrimarySkew
	direction := 1.0
	if group.Tag.ShortName == domain.Democrats.ShortName {
		skew = -skew
		direction = -1.0
	}
	base := group.Mean + skew
	offset := g.config.Spread * group.Stddev * direction

	n := g.config.NPartyCandidates
	var ideologies []float64
	switch {
	case n == 1:
		ideologies = []float64{base}
	case n == 2:
		ideologies = []float64{base - offset, base + offset}
	case n == 3:
		ideologies = []float64{base - offset, base, base + offset}
	default:
		step := 2 * offset / float64(n-1)
		ideologies = make([]float64, n)
		for i := range ideologies {
			ideologies[i] = base - offset + float64(i)*step
		}
	}

	candidates := make([]domain.Candidate, len(ideologies))
	for i, ideology := range ideologies {
		name := fmt.Sprintf("%s-%d", group.Tag.Initial(), i+1)
		candidates[i] = domain.NewCandidate(
			name,
			group.Tag,
			ideology+g.rng.Normal()*g.config.IdeologyVariance,
			g.rng.Normal()*g.config.QualityVariance,
		)
	}
	return candidates
}

// UnmarshalParameters deserializes YAML configuration parameters and
// updates the generator's configuration.
func (g *PartisanGenerator) UnmarshalParameters(params yaml.Node) error {
	var config PartisanConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	g.config = config
	return nil
}

// NewPartisanFromConfig creates a PartisanGenerator from a configuration
// map. This is the boundary adapter for YAML/JSON configuration.
func NewPartisanFromConfig(id string, config map[string]any, rng domain.Rand) (ports.CandidateGenerator, error) {
	cfg := DefaultPartisanConfig()
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, err
	}
	return NewPartisanGenerator(id, cfg, rng)
}

// decodeConfig round-trips a configuration map through YAML into a typed
// config struct, leaving absent keys at their default values.
func decodeConfig(config map[string]any, out any) error {
	if len(config) == 0 {
		return nil
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}
