// Package testutils provides shared fixtures for testing the simulation
// engine: a scripted random source and canonical population builders.
package testutils

import "github.com/ahrav/go-stump/internal/domain"

var _ domain.Rand = (*ScriptedRand)(nil)

// ScriptedRand is a domain.Rand whose draws replay configured scripts.
// Each method cycles through its value list; an empty list yields the zero
// value. Use it to pin down exactly which draw a code path consumes.
type ScriptedRand struct {
	// Normals, Bools and Floats are the scripted values for the
	// corresponding draw methods.
	Normals []float64
	Bools   []bool
	Floats  []float64

	ni, bi, fi int
}

// Normal returns the next scripted normal deviate.
func (s *ScriptedRand) Normal() float64 {
	if len(s.Normals) == 0 {
		return 0
	}
	v := s.Normals[s.ni%len(s.Normals)]
	s.ni++
	return v
}

// Bool returns the next scripted coin flip.
func (s *ScriptedRand) Bool() bool {
	if len(s.Bools) == 0 {
		return false
	}
	v := s.Bools[s.bi%len(s.Bools)]
	s.bi++
	return v
}

// Float64 returns the next scripted uniform draw.
func (s *ScriptedRand) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[s.fi%len(s.Floats)]
	s.fi++
	return v
}
