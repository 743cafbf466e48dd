package elections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-stump/infrastructure/rng"
	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/testutils"
)

func TestNewSimplePlurality(t *testing.T) {
	_, err := NewSimplePlurality("")
	assert.ErrorIs(t, err, ErrEmptyElectionID)

	e, err := NewSimplePlurality("plurality_test")
	require.NoError(t, err)
	assert.Equal(t, "plurality_test", e.Name())
	assert.NoError(t, e.Validate())
}

func TestSimplePluralityRun(t *testing.T) {
	// Democrats outnumber Republicans two to one; with zero noise the
	// Democratic candidate takes every Democratic ballot.
	pop := testutils.ExactPopulation(90, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Weight: 2.0},
		{Tag: domain.Republicans, Mean: 1.0, Weight: 1.0},
	})
	def := domain.ElectionDefinition{
		Candidates: []domain.Candidate{
			domain.NewCandidate("D-1", domain.Democrats, -1.0, 0),
			domain.NewCandidate("R-1", domain.Republicans, 1.0, 0),
			domain.NewCandidate("I-1", domain.Independents, 0.0, 0),
		},
		Population: pop,
		Rand:       &testutils.ScriptedRand{},
	}

	e, err := NewSimplePlurality("plurality")
	require.NoError(t, err)
	result, err := e.Run(def)
	require.NoError(t, err)

	assert.Equal(t, "D-1", result.Winner().Name)

	ordered := result.OrderedResults()
	require.Len(t, ordered, 3, "zero-vote candidates must still appear")
	assert.Equal(t, "D-1", ordered[0].Candidate.Name)
	assert.InDelta(t, 60, ordered[0].Votes, 1e-9)
	assert.Equal(t, "R-1", ordered[1].Candidate.Name)
	assert.InDelta(t, 30, ordered[1].Votes, 1e-9)
	assert.Equal(t, "I-1", ordered[2].Candidate.Name)
	assert.InDelta(t, 0, ordered[2].Votes, 1e-9)

	// Vote conservation: every ballot resolved to some candidate.
	total := 0.0
	for _, cr := range ordered {
		total += cr.Votes
	}
	assert.InDelta(t, result.NVotes(), total, 1e-9)
	assert.InDelta(t, float64(pop.NSamples()), total, 1e-9)
}

func TestSimplePluralityTieFavorsEarlierSlatePosition(t *testing.T) {
	pop := testutils.ExactPopulation(4, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Weight: 1.0},
		{Tag: domain.Republicans, Mean: 1.0, Weight: 1.0},
	})
	def := domain.ElectionDefinition{
		Candidates: []domain.Candidate{
			domain.NewCandidate("D-1", domain.Democrats, -1.0, 0),
			domain.NewCandidate("R-1", domain.Republicans, 1.0, 0),
		},
		Population: pop,
		Rand:       &testutils.ScriptedRand{},
	}

	e, err := NewSimplePlurality("plurality")
	require.NoError(t, err)
	result, err := e.Run(def)
	require.NoError(t, err)

	// A 2-2 dead heat goes to the earlier slate position.
	assert.Equal(t, "D-1", result.Winner().Name)
	assert.InDelta(t, 2, result.OrderedResults()[0].Votes, 1e-9)
	assert.InDelta(t, 2, result.OrderedResults()[1].Votes, 1e-9)
}

func TestSimplePluralityErrors(t *testing.T) {
	e, err := NewSimplePlurality("plurality")
	require.NoError(t, err)

	pop := testutils.SymmetricPopulation(45, rng.New(1))
	_, err = e.Run(domain.ElectionDefinition{Population: pop, Rand: rng.New(1)})
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestSimplePluralityDeterminism(t *testing.T) {
	slate := []domain.Candidate{
		domain.NewCandidate("D-1", domain.Democrats, -0.9, 0),
		domain.NewCandidate("R-1", domain.Republicans, 0.9, 0),
		domain.NewCandidate("I-1", domain.Independents, 0.1, 0),
	}

	run := func(seed int64) domain.ElectionResult {
		src := rng.New(seed)
		pop := testutils.SymmetricPopulation(135, src)
		e, err := NewSimplePlurality("plurality")
		require.NoError(t, err)
		result, err := e.Run(domain.ElectionDefinition{
			Candidates: slate,
			Population: pop,
			Config:     domain.ElectionConfig{Uncertainty: 0.3},
			Rand:       src,
		})
		require.NoError(t, err)
		return result
	}

	a, b := run(42), run(42)
	assert.Equal(t, a.Winner(), b.Winner())
	assert.Equal(t, a.OrderedResults(), b.OrderedResults())
	assert.Equal(t, a.VoterSatisfaction(), b.VoterSatisfaction())
}

func TestNewPluralityFromConfig(t *testing.T) {
	e, err := NewPluralityFromConfig("p1", nil)
	require.NoError(t, err)
	assert.Equal(t, "p1", e.Name())

	_, err = NewPluralityFromConfig("", nil)
	assert.ErrorIs(t, err, ErrEmptyElectionID)
}
