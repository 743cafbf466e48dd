// Package domain contains pure, dependency-free domain models and types
// for the election simulation engine.
package domain

// Rand is the deterministic random source consumed by every stochastic
// component of the engine. Two implementations constructed from the same
// seed and driven with the same call sequence must produce bit-identical
// outputs.
//
// There is no ambient process-wide generator: the source is always passed
// explicitly so an entire simulation run is replayable from one seed, and
// parallel runs can hold independently seeded streams.
type Rand interface {
	// Normal returns a standard-normal deviate.
	Normal() float64

	// Bool returns a fair coin flip.
	Bool() bool

	// Float64 returns a uniform draw in [0, 1).
	Float64() float64
}
