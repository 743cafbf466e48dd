package testutils

import "github.com/ahrav/go-stump/internal/domain"

// SymmetricPopulation builds the canonical two-party-plus-centrists
// electorate used across engine tests: major groups at mean ±1.0 with
// stddev 0.3 and equal weight, and a centrist Independent group at 0.0
// weighted at a quarter of a major group.
func SymmetricPopulation(samples int, rng domain.Rand) *domain.CombinedPopulation {
	groups := []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Stddev: 0.3, Weight: 1.0},
		{Tag: domain.Republicans, Mean: 1.0, Stddev: 0.3, Weight: 1.0},
		{Tag: domain.Independents, Mean: 0.0, Stddev: 0.3, Weight: 0.25},
	}
	return domain.NewCombinedPopulation(groups, samples, rng)
}

// ExactPopulation builds a noise-free electorate: every group has zero
// stddev so each voter sits exactly at its group mean. Useful when a test
// needs fully predictable ballots.
func ExactPopulation(samples int, groups []domain.PopulationGroup) *domain.CombinedPopulation {
	exact := make([]domain.PopulationGroup, len(groups))
	for i, g := range groups {
		g.Stddev = 0
		exact[i] = g
	}
	return domain.NewCombinedPopulation(exact, samples, &ScriptedRand{})
}
