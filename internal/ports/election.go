// Package ports defines the core interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"github.com/ahrav/go-stump/internal/domain"
)

// Election represents one voting method: a rule for turning an election
// definition into a single winner plus an ordered tally.
// Implementations must be deterministic given the definition's random
// source and must never mutate the definition's slate or population.
type Election interface {
	// Name returns a unique identifier for this election method.
	// The name is used for logging, reporting, and configuration.
	Name() string

	// Run executes the election over the definition's slate and electorate.
	// All randomness (perception noise, tie-break coin flips) must be drawn
	// from def.Rand so results are replayable from the seed.
	// Any errors should be returned rather than panicking.
	Run(def domain.ElectionDefinition) (domain.ElectionResult, error)

	// Validate checks if the election is properly configured and ready to
	// run. It is typically called during registry construction or before
	// execution. Return nil if validation passes, or an error describing
	// what is invalid.
	Validate() error
}

// CandidateGenerator produces a candidate slate for a given electorate.
// Implementations draw all randomness from the source they were
// constructed with.
type CandidateGenerator interface {
	// Name returns a unique identifier for this generation strategy.
	Name() string

	// Generate builds a candidate slate for the population.
	// The returned slate order is significant: downstream tallies break
	// exact ties toward earlier slate positions.
	Generate(pop *domain.CombinedPopulation) ([]domain.Candidate, error)

	// Validate checks if the generator is properly configured.
	Validate() error
}

// ElectionFactory creates an Election from a configuration map.
// The id parameter provides a unique identifier for the instance.
// The config map contains method-specific parameters.
type ElectionFactory func(id string, config map[string]any) (Election, error)

// GeneratorFactory creates a CandidateGenerator from a configuration map
// and the random source the generator will draw from.
type GeneratorFactory func(id string, config map[string]any, rng domain.Rand) (CandidateGenerator, error)

// ElectionRegistry manages the creation of elections from configuration.
// Registries enable selector-based lookup of voting methods at runtime.
type ElectionRegistry interface {
	// Register adds an election factory for the given method selector.
	// Returns an error if the selector is already registered.
	Register(method string, factory ElectionFactory) error

	// Create instantiates an election of the given method.
	// Returns an error if the method is not registered or the
	// configuration is invalid.
	Create(method, id string, config map[string]any) (Election, error)

	// ListMethods returns all registered method selectors.
	ListMethods() []string
}

// GeneratorRegistry manages the creation of candidate generators from
// configuration. The registry owns the random source handed to every
// generator it creates.
type GeneratorRegistry interface {
	// Register adds a generator factory for the given strategy selector.
	// Returns an error if the selector is already registered.
	Register(strategy string, factory GeneratorFactory) error

	// Create instantiates a generator of the given strategy.
	Create(strategy, id string, config map[string]any) (CandidateGenerator, error)

	// ListStrategies returns all registered strategy selectors.
	ListStrategies() []string
}
