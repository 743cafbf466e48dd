package application

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ScenarioLoader provides YAML parsing and validation for simulation
// scenarios, transforming declarative specifications into validated
// ScenarioConfig values.
type ScenarioLoader struct {
	validator *validator.Validate
}

// NewScenarioLoader creates a scenario loader ready to parse and
// validate scenario files.
func NewScenarioLoader() *ScenarioLoader {
	return &ScenarioLoader{validator: validator.New()}
}

// LoadFromFile loads and validates a scenario from a YAML file.
func (sl *ScenarioLoader) LoadFromFile(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	return sl.Load(data)
}

// LoadFromReader loads and validates a scenario from a reader.
func (sl *ScenarioLoader) LoadFromReader(r io.Reader) (*ScenarioConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return sl.Load(data)
}

// Load parses, defaults, and validates scenario YAML. Unknown fields are
// rejected so typos surface at load time instead of silently running a
// different experiment.
func (sl *ScenarioLoader) Load(data []byte) (*ScenarioConfig, error) {
	config := DefaultScenarioConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if err := sl.validator.Struct(config); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}
	return &config, nil
}
