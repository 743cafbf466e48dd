// Package elections provides the voting methods that implement the
// ports.Election interface for the election simulation engine.
package elections

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Common errors returned by election implementations.
var (
	// ErrNoCandidates is returned when a definition carries an empty slate.
	ErrNoCandidates = errors.New("no candidates to run")

	// ErrNoBallots is returned when a definition yields an empty electorate.
	ErrNoBallots = errors.New("no ballots to tally")

	// ErrEmptyElectionID is returned when attempting to create an election
	// with an empty identifier.
	ErrEmptyElectionID = errors.New("election id cannot be empty")

	// ErrMissingMajorParty is returned when a primary cannot find a
	// nominee slate for one of the two major parties.
	ErrMissingMajorParty = errors.New("primary requires candidates from both major parties")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()
