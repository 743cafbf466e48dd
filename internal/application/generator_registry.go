package application

import (
	"fmt"
	"sync"

	"github.com/ahrav/go-stump/infrastructure/generators"
	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.GeneratorRegistry = (*DefaultGeneratorRegistry)(nil)

// DefaultGeneratorRegistry implements the GeneratorRegistry interface,
// providing a factory for creating candidate generators by strategy
// selector. The registry owns the random source handed to every
// generator it creates.
type DefaultGeneratorRegistry struct {
	factories map[string]ports.GeneratorFactory
	mu        sync.RWMutex
	rng       domain.Rand
}

// NewDefaultGeneratorRegistry creates a generator registry with the
// standard strategies pre-registered: partisan, normal_partisan, random,
// rank, and condorcet. Generators created through the registry draw
// from rng.
func NewDefaultGeneratorRegistry(rng domain.Rand) *DefaultGeneratorRegistry {
	registry := &DefaultGeneratorRegistry{
		factories: make(map[string]ports.GeneratorFactory),
		rng:       rng,
	}
	registry.registerBuiltinFactories()
	return registry
}

func (r *DefaultGeneratorRegistry) registerBuiltinFactories() {
	r.factories["partisan"] = generators.NewPartisanFromConfig
	r.factories["normal_partisan"] = generators.NewNormalPartisanFromConfig
	r.factories["random"] = generators.NewRandomFromConfig
	r.factories["rank"] = generators.NewRankFromConfig
	r.factories["condorcet"] = generators.NewCondorcetFromConfig
}

// Create instantiates a generator of the given strategy selector.
func (r *DefaultGeneratorRegistry) Create(
	strategy, id string, config map[string]any,
) (ports.CandidateGenerator, error) {
	r.mu.RLock()
	factory, exists := r.factories[strategy]
	rng := r.rng
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported generator type: %s", strategy)
	}
	if id == "" {
		return nil, fmt.Errorf("generator ID cannot be empty")
	}
	if config == nil {
		config = make(map[string]any)
	}

	generator, err := factory(id, config, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator %s of type %s: %w", id, strategy, err)
	}
	return generator, nil
}

// Register adds a factory for a custom generation strategy.
func (r *DefaultGeneratorRegistry) Register(
	strategy string, factory ports.GeneratorFactory,
) error {
	if strategy == "" {
		return fmt.Errorf("generator strategy cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[strategy]; exists {
		return fmt.Errorf("generator strategy already registered: %s", strategy)
	}
	r.factories[strategy] = factory
	return nil
}

// ListStrategies returns all registered strategy selectors.
func (r *DefaultGeneratorRegistry) ListStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategies := make([]string, 0, len(r.factories))
	for strategy := range r.factories {
		strategies = append(strategies, strategy)
	}
	return strategies
}

// SetRand swaps the random source used for subsequently created
// generators. Useful when each simulation worker carries its own source.
func (r *DefaultGeneratorRegistry) SetRand(rng domain.Rand) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng = rng
}
