// Package generators provides the candidate-placement strategies that
// implement the ports.CandidateGenerator interface for the election
// simulation engine.
package generators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-stump/internal/domain"
)

// Common errors returned by generator implementations.
var (
	// ErrEmptyGeneratorID is returned when attempting to create a
	// generator with an empty identifier.
	ErrEmptyGeneratorID = errors.New("generator id cannot be empty")

	// ErrNilRand is returned when a generator is constructed without a
	// random source.
	ErrNilRand = errors.New("generator requires a random source")

	// ErrMedianTag is returned when the median candidate's tag is not a
	// major party, which breaks the partisan slate-thinning step.
	ErrMedianTag = errors.New("median candidate tag must be a major party")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// candidatesForIdeologies builds one candidate per ideology under a
// party's banner, named "{Initial}-{i+1}" in inside-out order: Democrats
// are sorted descending and Republicans ascending, so the "-1" candidate
// of each party is the one nearest the center.
func candidatesForIdeologies(
	ideologies []float64,
	party domain.PopulationGroup,
	qualityVariance float64,
	rng domain.Rand,
) []domain.Candidate {
	if party.Tag.ShortName == domain.Democrats.ShortName {
		sort.Sort(sort.Reverse(sort.Float64Slice(ideologies)))
	} else {
		sort.Float64s(ideologies)
	}

	candidates := make([]domain.Candidate, len(ideologies))
	for i, ideology := range ideologies {
		name := fmt.Sprintf("%s-%d", party.Tag.Initial(), i+1)
		candidates[i] = domain.NewCandidate(name, party.Tag, ideology, rng.Normal()*qualityVariance)
	}
	return candidates
}

// medianCandidate builds the median/unity candidate: tagged with the
// population's dominant party, placed at the sampled median voter plus
// jitter, and named "{Initial}-V". The "-V" suffix is load-bearing for
// downstream moderate-candidate filtering.
func medianCandidate(
	pop *domain.CombinedPopulation,
	medianVariance, qualityVariance float64,
	rng domain.Rand,
) domain.Candidate {
	tag := pop.DominantParty(rng)
	return domain.NewCandidate(
		tag.Initial()+"-V",
		tag,
		pop.MedianVoter()+rng.Normal()*medianVariance,
		rng.Normal()*qualityVariance,
	)
}
