package districts

import (
	"math"

	"github.com/ahrav/go-stump/internal/domain"
)

// independentWeight is the share of the electorate modeled as
// unaffiliated; the major parties split the remainder.
const independentWeight = 0.20

// minPartyWeight keeps a collapsed major party from vanishing entirely.
const minPartyWeight = 0.05

// PopulationParams shapes how a district's vote shares become an
// ideological electorate.
type PopulationParams struct {
	// Partisanship is the distance of each major party's mean from the
	// center.
	Partisanship float64 `yaml:"partisanship" validate:"min=0"`

	// Stddev is the ideological spread within each group.
	Stddev float64 `yaml:"stddev" validate:"min=0"`

	// SkewFactor scales how far the whole electorate shifts toward the
	// locally dominant party. Zero keeps every district centered.
	SkewFactor float64 `yaml:"skew_factor" validate:"min=0"`
}

// DefaultPopulationParams returns the standard electorate shape.
func DefaultPopulationParams() PopulationParams {
	return PopulationParams{
		Partisanship: 1.0,
		Stddev:       1.0,
		SkewFactor:   0.0,
	}
}

// NewPopulationFromLean builds a district electorate from a partisan
// lean, where positive leans Republican and negative Democratic.
func NewPopulationFromLean(
	lean float64,
	params PopulationParams,
	nVoters int,
	rng domain.Rand,
) *domain.CombinedPopulation {
	rPct := 0.5 + lean/200
	dPct := 0.5 - lean/200
	return NewPopulationFromPercentages(dPct, rPct, params, nVoters, rng)
}

// NewPopulationFromPercentages builds a three-group electorate from
// two-party vote shares expressed as fractions. Independents take a
// fixed share and each major party gets the remainder in proportion to
// its vote share, floored so neither disappears.
func NewPopulationFromPercentages(
	dPct, rPct float64,
	params PopulationParams,
	nVoters int,
	rng domain.Rand,
) *domain.CombinedPopulation {
	rWeight := math.Max(minPartyWeight, (1-independentWeight)*rPct)
	dWeight := math.Max(minPartyWeight, (1-independentWeight)*dPct)

	skew := (rWeight - dWeight) / 2 * params.SkewFactor * 100

	groups := []domain.PopulationGroup{
		{
			Tag:    domain.Republicans,
			Mean:   params.Partisanship + skew,
			Stddev: params.Stddev,
			Weight: rWeight * 100,
		},
		{
			Tag:    domain.Democrats,
			Mean:   -params.Partisanship + skew,
			Stddev: params.Stddev,
			Weight: dWeight * 100,
		},
		{
			Tag:    domain.Independents,
			Mean:   skew,
			Stddev: params.Stddev,
			Weight: independentWeight * 100,
		},
	}
	return domain.NewCombinedPopulation(groups, nVoters, rng)
}

// PopulationForRecord builds the electorate implied by a district's
// observed lean.
func PopulationForRecord(
	record VotingRecord,
	params PopulationParams,
	nVoters int,
	rng domain.Rand,
) *domain.CombinedPopulation {
	return NewPopulationFromLean(record.Lean(), params, nVoters, rng)
}
