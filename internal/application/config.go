package application

// ScenarioConfig defines the complete specification for a simulation
// scenario and serves as the primary configuration entry point: the
// electorate shape, the candidate generation strategy, the voting
// method, and optional toxicity experiments.
type ScenarioConfig struct {
	// Version specifies the configuration schema version.
	Version string `yaml:"version" validate:"required"`

	// Metadata contains descriptive information about the scenario.
	Metadata ScenarioMetadata `yaml:"metadata"`

	// Seed is the base random seed. Each district's run derives its own
	// source from this so results are replayable.
	Seed int64 `yaml:"seed"`

	// Voters is the electorate sample size per district.
	Voters int `yaml:"voters" validate:"required,min=1"`

	// Uncertainty is the perception noise applied to every voter's view
	// of every candidate.
	Uncertainty float64 `yaml:"uncertainty" validate:"min=0"`

	// Parallelism bounds how many districts are simulated concurrently.
	// Zero means one worker per CPU.
	Parallelism int `yaml:"parallelism" validate:"min=0"`

	// Population shapes how district vote shares become an electorate.
	Population PopulationConfig `yaml:"population"`

	// Generator selects and configures the candidate generation strategy.
	Generator StrategyConfig `yaml:"generator" validate:"required"`

	// Election selects and configures the voting method.
	Election StrategyConfig `yaml:"election" validate:"required"`

	// Toxicity, when present, enables toxic-tactics experiments on each
	// district's baseline result.
	Toxicity *ToxicityConfig `yaml:"toxicity"`
}

// ScenarioMetadata provides descriptive information about a scenario for
// organization and reporting.
type ScenarioMetadata struct {
	// Name is the human-readable identifier for this scenario.
	Name string `yaml:"name" validate:"max=255"`
	// Description explains the scenario's purpose.
	Description string `yaml:"description" validate:"max=1000"`
	// Tags are categorical labels for filtering and grouping.
	Tags []string `yaml:"tags" validate:"max=20,dive,min=1,max=50"`
}

// PopulationConfig shapes the ideological electorate derived from each
// district's voting record.
type PopulationConfig struct {
	// Partisanship is the distance of each major party's mean from the
	// center.
	Partisanship float64 `yaml:"partisanship" validate:"min=0"`
	// Stddev is the ideological spread within each group.
	Stddev float64 `yaml:"stddev" validate:"min=0"`
	// SkewFactor scales how far the electorate shifts toward the locally
	// dominant party.
	SkewFactor float64 `yaml:"skew_factor" validate:"min=0"`
}

// StrategyConfig selects one pluggable implementation by type selector
// plus its type-specific parameters.
type StrategyConfig struct {
	// Type is the registry selector, e.g. "partisan" or "instant_runoff".
	Type string `yaml:"type" validate:"required,min=1"`
	// Parameters contains type-specific configuration validated by the
	// selected implementation.
	Parameters map[string]any `yaml:"parameters"`
}

// DefaultScenarioConfig returns a scenario with standard knobs: a
// moderately noisy electorate of 1000 voters per district and no
// toxicity experiments.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Version:     "1.0",
		Seed:        1,
		Voters:      1000,
		Uncertainty: 0.5,
		Population: PopulationConfig{
			Partisanship: 1.0,
			Stddev:       1.0,
			SkewFactor:   0.0,
		},
		Generator: StrategyConfig{Type: "partisan"},
		Election:  StrategyConfig{Type: "plurality"},
	}
}
