package elections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-stump/infrastructure/rng"
	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/testutils"
)

func TestNewHeadToHead(t *testing.T) {
	_, err := NewHeadToHead("")
	assert.ErrorIs(t, err, ErrEmptyElectionID)

	e, err := NewHeadToHead("h2h")
	require.NoError(t, err)
	assert.Equal(t, "h2h", e.Name())
	assert.NoError(t, e.Validate())
}

func TestHeadToHeadRanking(t *testing.T) {
	// Democrats 60%, Republicans 20%, centrists 20% leaning slightly
	// left. The Democrat wins both matchups, the Independent beats the
	// Republican, and the Republican loses everything.
	pop := testutils.ExactPopulation(10, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Weight: 0.6},
		{Tag: domain.Republicans, Mean: 1.0, Weight: 0.2},
		{Tag: domain.Independents, Mean: -0.1, Weight: 0.2},
	})
	def := domain.ElectionDefinition{
		Candidates: []domain.Candidate{
			domain.NewCandidate("D-1", domain.Democrats, -1.0, 0),
			domain.NewCandidate("R-1", domain.Republicans, 1.0, 0),
			domain.NewCandidate("I-1", domain.Independents, -0.2, 0),
		},
		Population: pop,
		Rand:       &testutils.ScriptedRand{},
	}

	e, err := NewHeadToHead("h2h")
	require.NoError(t, err)
	result, err := e.Run(def)
	require.NoError(t, err)

	h2h, ok := result.(*HeadToHeadResult)
	require.True(t, ok)

	assert.Equal(t, "D-1", result.Winner().Name)
	ordered := result.OrderedResults()
	require.Len(t, ordered, 3)
	assert.Equal(t, "D-1", ordered[0].Candidate.Name)
	assert.InDelta(t, 2, ordered[0].Votes, 1e-9, "votes carry matchup wins")
	assert.Equal(t, "I-1", ordered[1].Candidate.Name)
	assert.InDelta(t, 1, ordered[1].Votes, 1e-9)
	assert.Equal(t, "R-1", ordered[2].Candidate.Name)
	assert.InDelta(t, 0, ordered[2].Votes, 1e-9)

	require.Len(t, h2h.Pairwise(), 3)
	for _, p := range h2h.Pairwise() {
		assert.False(t, p.ByCoinFlip)
		assert.InDelta(t, 10, p.VotesA+p.VotesB, 1e-9)
	}
	assert.InDelta(t, 10, result.NVotes(), 1e-9)
}

func TestHeadToHeadTieBrokenByRecordedCoinFlip(t *testing.T) {
	// Two candidates at the same ideology over an evenly split
	// electorate: the matchup is a dead heat resolved by one flip.
	pop := testutils.ExactPopulation(4, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Weight: 1.0},
		{Tag: domain.Republicans, Mean: 1.0, Weight: 1.0},
	})
	slate := []domain.Candidate{
		domain.NewCandidate("A", domain.Democrats, 0.0, 0),
		domain.NewCandidate("B", domain.Republicans, 0.0, 0),
	}

	run := func(r domain.Rand) *HeadToHeadResult {
		e, err := NewHeadToHead("h2h")
		require.NoError(t, err)
		result, err := e.Run(domain.ElectionDefinition{
			Candidates: slate,
			Population: pop,
			Rand:       r,
		})
		require.NoError(t, err)
		h2h, ok := result.(*HeadToHeadResult)
		require.True(t, ok)
		return h2h
	}

	heads := run(&testutils.ScriptedRand{Bools: []bool{true}})
	require.Len(t, heads.Pairwise(), 1)
	assert.True(t, heads.Pairwise()[0].ByCoinFlip)
	assert.Equal(t, "A", heads.Winner().Name)

	tails := run(&testutils.ScriptedRand{Bools: []bool{false}})
	assert.True(t, tails.Pairwise()[0].ByCoinFlip)
	assert.Equal(t, "B", tails.Winner().Name)

	// Re-running with the same seed reproduces the same flip.
	first := run(rng.New(17))
	second := run(rng.New(17))
	assert.Equal(t, first.Winner(), second.Winner())
	assert.Equal(t, first.Pairwise(), second.Pairwise())
}

func TestMatchupCountsAndMargin(t *testing.T) {
	a := domain.NewCandidate("A", domain.Democrats, -1, 0)
	b := domain.NewCandidate("B", domain.Republicans, 1, 0)

	prefer := func(first, second domain.Candidate) domain.Ballot {
		return domain.NewBallot([]domain.CandidateScore{
			{Candidate: first, Score: 1},
			{Candidate: second, Score: 0},
		}, &testutils.ScriptedRand{})
	}
	ballots := []domain.Ballot{prefer(a, b), prefer(a, b), prefer(a, b), prefer(b, a)}

	p := matchup(a, b, ballots, &testutils.ScriptedRand{})
	assert.InDelta(t, 3, p.VotesA, 1e-9)
	assert.InDelta(t, 1, p.VotesB, 1e-9)
	assert.InDelta(t, 2, p.Margin(), 1e-9)
	assert.Equal(t, "A", p.Winner.Name)
	assert.False(t, p.ByCoinFlip)
}

func TestHeadToHeadErrors(t *testing.T) {
	e, err := NewHeadToHead("h2h")
	require.NoError(t, err)

	pop := testutils.SymmetricPopulation(45, rng.New(5))
	_, err = e.Run(domain.ElectionDefinition{Population: pop, Rand: rng.New(5)})
	assert.ErrorIs(t, err, ErrNoCandidates)
}
