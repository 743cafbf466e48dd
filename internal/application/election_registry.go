// Package application wires the domain and infrastructure layers together:
// it loads scenario configuration, builds elections and candidate slates
// from registries, and runs district simulations.
package application

import (
	"fmt"
	"sync"

	"github.com/ahrav/go-stump/infrastructure/elections"
	"github.com/ahrav/go-stump/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.ElectionRegistry = (*DefaultElectionRegistry)(nil)

// DefaultElectionRegistry implements the ElectionRegistry interface,
// providing a factory for creating elections by method selector.
// Built-in voting methods are pre-registered and custom methods can be
// added at runtime.
type DefaultElectionRegistry struct {
	// factories maps method selectors to their factory functions.
	factories map[string]ports.ElectionFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultElectionRegistry creates an election registry with the
// standard voting methods pre-registered: plurality, instant_runoff,
// head_to_head, primary, and composable.
func NewDefaultElectionRegistry() *DefaultElectionRegistry {
	registry := &DefaultElectionRegistry{
		factories: make(map[string]ports.ElectionFactory),
	}
	registry.registerBuiltinFactories()
	return registry
}

func (r *DefaultElectionRegistry) registerBuiltinFactories() {
	r.factories["plurality"] = elections.NewPluralityFromConfig
	r.factories["instant_runoff"] = elections.NewInstantRunoffFromConfig
	r.factories["head_to_head"] = elections.NewHeadToHeadFromConfig
	r.factories["primary"] = elections.NewPrimaryFromConfig
	r.factories["top_n"] = elections.NewTopNPrimaryFromConfig

	// The composable factory resolves its two stages through the registry,
	// so stage configs can name any registered method.
	r.factories["composable"] = func(id string, config map[string]any) (ports.Election, error) {
		return r.createComposable(id, config)
	}
}

// stageConfig describes one stage of a composable election: the method
// selector plus that method's parameters.
type stageConfig struct {
	Type       string         `yaml:"type"`
	Parameters map[string]any `yaml:"parameters"`
}

// createComposable builds a two-stage election from a config carrying
// "primary" and "general" stage descriptions.
func (r *DefaultElectionRegistry) createComposable(
	id string, config map[string]any,
) (ports.Election, error) {
	primary, err := r.createStage(id+"_primary", config, "primary")
	if err != nil {
		return nil, err
	}
	general, err := r.createStage(id+"_general", config, "general")
	if err != nil {
		return nil, err
	}
	return elections.NewComposable(primary, general)
}

func (r *DefaultElectionRegistry) createStage(
	id string, config map[string]any, stage string,
) (ports.Election, error) {
	raw, ok := config[stage]
	if !ok {
		return nil, fmt.Errorf("composable election requires a %q stage", stage)
	}

	var sc stageConfig
	switch v := raw.(type) {
	case map[string]any:
		if t, ok := v["type"].(string); ok {
			sc.Type = t
		}
		if p, ok := v["parameters"].(map[string]any); ok {
			sc.Parameters = p
		}
	default:
		return nil, fmt.Errorf("composable %q stage must be a mapping", stage)
	}
	if sc.Type == "" {
		return nil, fmt.Errorf("composable %q stage is missing a type", stage)
	}
	if sc.Type == "composable" {
		return nil, fmt.Errorf("composable stages cannot nest composable elections")
	}

	return r.Create(sc.Type, id, sc.Parameters)
}

// Create instantiates an election of the given method selector.
// It looks up the registered factory and delegates construction.
func (r *DefaultElectionRegistry) Create(
	method, id string, config map[string]any,
) (ports.Election, error) {
	r.mu.RLock()
	factory, exists := r.factories[method]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported election type: %s", method)
	}
	if id == "" {
		return nil, fmt.Errorf("election ID cannot be empty")
	}
	if config == nil {
		config = make(map[string]any)
	}

	election, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create election %s of type %s: %w", id, method, err)
	}
	return election, nil
}

// Register adds a factory for a custom election method.
func (r *DefaultElectionRegistry) Register(
	method string, factory ports.ElectionFactory,
) error {
	if method == "" {
		return fmt.Errorf("election method cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[method]; exists {
		return fmt.Errorf("election method already registered: %s", method)
	}
	r.factories[method] = factory
	return nil
}

// ListMethods returns all registered method selectors.
func (r *DefaultElectionRegistry) ListMethods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	methods := make([]string, 0, len(r.factories))
	for method := range r.factories {
		methods = append(methods, method)
	}
	return methods
}
