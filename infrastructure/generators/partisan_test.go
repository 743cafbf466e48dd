package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/testutils"
)

func TestNewPartisanGenerator(t *testing.T) {
	rng := &testutils.ScriptedRand{}

	_, err := NewPartisanGenerator("", DefaultPartisanConfig(), rng)
	assert.ErrorIs(t, err, ErrEmptyGeneratorID)

	_, err = NewPartisanGenerator("partisan", DefaultPartisanConfig(), nil)
	assert.ErrorIs(t, err, ErrNilRand)

	_, err = NewPartisanGenerator("partisan", PartisanConfig{NPartyCandidates: 0}, rng)
	assert.Error(t, err, "zero candidates per party must fail validation")

	g, err := NewPartisanGenerator("partisan", DefaultPartisanConfig(), rng)
	require.NoError(t, err)
	assert.Equal(t, "partisan", g.Name())
	assert.NoError(t, g.Validate())
}

func TestPartisanGeneratorPlacement(t *testing.T) {
	// Democrats dominate, so the median candidate runs as "D-V" and the
	// Democratic slate is thinned by one.
	pop := testutils.ExactPopulation(49, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Stddev: 0.3, Weight: 1.2},
		{Tag: domain.Republicans, Mean: 1.0, Stddev: 0.3, Weight: 1.0},
		{Tag: domain.Independents, Mean: 0.0, Stddev: 0.3, Weight: 0.25},
	})

	config := PartisanConfig{
		NPartyCandidates: 2,
		Spread:           1.0,
		IdeologyVariance: 0,
		MedianVariance:   0,
		QualityVariance:  0,
		PrimarySkew:      0.2,
	}
	g, err := NewPartisanGenerator("partisan", config, &testutils.ScriptedRand{})
	require.NoError(t, err)

	slate, err := g.Generate(pop)
	require.NoError(t, err)
	require.Len(t, slate, 4)

	// Democrats: base -1.2, offset -0.3 -> D-1 at -0.9, D-2 at -1.5;
	// D-1 is dropped in favor of the median candidate.
	assert.Equal(t, "D-2", slate[0].Name)
	assert.InDelta(t, -1.5, slate[0].Ideology, 1e-9)

	assert.Equal(t, "D-V", slate[1].Name)
	assert.True(t, domain.Democrats.Equal(slate[1].Tag))
	assert.InDelta(t, pop.MedianVoter(), slate[1].Ideology, 1e-9)

	// Republicans: base 1.2, offset 0.3.
	assert.Equal(t, "R-1", slate[2].Name)
	assert.InDelta(t, 0.9, slate[2].Ideology, 1e-9)
	assert.Equal(t, "R-2", slate[3].Name)
	assert.InDelta(t, 1.5, slate[3].Ideology, 1e-9)

	for _, c := range slate {
		assert.InDelta(t, 0, c.Quality, 1e-9)
	}
}

func TestPartisanGeneratorFieldSizes(t *testing.T) {
	pop := testutils.ExactPopulation(49, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Stddev: 0.3, Weight: 1.2},
		{Tag: domain.Republicans, Mean: 1.0, Stddev: 0.3, Weight: 1.0},
	})

	tests := []struct {
		name      string
		nPerParty int
		wantTotal int
	}{
		{name: "single candidate per party", nPerParty: 1, wantTotal: 2},
		{name: "two per party", nPerParty: 2, wantTotal: 4},
		{name: "three per party", nPerParty: 3, wantTotal: 6},
		{name: "five per party spreads evenly", nPerParty: 5, wantTotal: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultPartisanConfig()
			config.NPartyCandidates = tt.nPerParty
			g, err := NewPartisanGenerator("partisan", config, &testutils.ScriptedRand{})
			require.NoError(t, err)

			slate, err := g.Generate(pop)
			require.NoError(t, err)
			// One partisan is always replaced by the median candidate.
			assert.Len(t, slate, tt.wantTotal)
		})
	}
}

func TestPartisanGeneratorEvenSpread(t *testing.T) {
	pop := testutils.ExactPopulation(49, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Stddev: 0.3, Weight: 1.0},
		{Tag: domain.Republicans, Mean: 1.0, Stddev: 0.3, Weight: 1.2},
	})
	config := PartisanConfig{
		NPartyCandidates: 5,
		Spread:           1.0,
		IdeologyVariance: 0,
		MedianVariance:   0,
		QualityVariance:  0,
		PrimarySkew:      0,
	}
	g, err := NewPartisanGenerator("partisan", config, &testutils.ScriptedRand{})
	require.NoError(t, err)

	slate, err := g.Generate(pop)
	require.NoError(t, err)
	require.Len(t, slate, 10)

	// Republicans dominate, so their slate loses its first candidate:
	// the survivors cover (0.7, 1.3] in 0.15 steps.
	reps := slate[6:]
	want := []float64{0.85, 1.0, 1.15, 1.3}
	for i, c := range reps {
		assert.InDelta(t, want[i], c.Ideology, 1e-9)
		assert.True(t, domain.Republicans.Equal(c.Tag))
	}
}
