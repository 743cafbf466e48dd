package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-stump/infrastructure/elections"
	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/testutils"
)

func TestNewToxicityAnalyzer(t *testing.T) {
	_, err := NewToxicityAnalyzer(ToxicityConfig{Bonus: -0.1, Penalty: -1.0})
	assert.Error(t, err, "negative bonus must fail validation")

	_, err = NewToxicityAnalyzer(ToxicityConfig{Bonus: 0.25, Penalty: 0.5})
	assert.Error(t, err, "positive penalty must fail validation")

	analyzer, err := NewToxicityAnalyzer(DefaultToxicityConfig())
	require.NoError(t, err)
	assert.NotNil(t, analyzer)
}

func TestApplyToxicTactics(t *testing.T) {
	analyzer, err := NewToxicityAnalyzer(DefaultToxicityConfig())
	require.NoError(t, err)

	t.Run("major party candidate", func(t *testing.T) {
		original := domain.NewCandidate("D-1", domain.Democrats, -1.0, 0.2)
		toxic := analyzer.ApplyToxicTactics(original)

		assert.Equal(t, "D-1-toxic", toxic.Name)
		assert.InDelta(t, 1.75, toxic.Affinity["Dem"], 1e-9, "own party gains the bonus")
		assert.InDelta(t, -1.0, toxic.Affinity["Rep"], 1e-9, "opposition takes the penalty")
		assert.InDelta(t, 0.75, toxic.Affinity["Ind"], 1e-9, "independents are untouched")

		assert.InDelta(t, original.Ideology, toxic.Ideology, 1e-9)
		assert.InDelta(t, original.Quality, toxic.Quality, 1e-9)
		assert.True(t, original.Tag.Equal(toxic.Tag))
	})

	t.Run("candidate without major opposition", func(t *testing.T) {
		original := domain.NewCandidate("I-1", domain.Independents, 0.0, 0)
		toxic := analyzer.ApplyToxicTactics(original)

		// Independents have no opposition to penalize, only a base to rally.
		assert.Equal(t, "I-1-toxic", toxic.Name)
		assert.InDelta(t, 1.0, toxic.Affinity["Ind"], 1e-9)
		assert.InDelta(t, 0.0, toxic.Affinity["Dem"], 1e-9)
		assert.InDelta(t, 0.0, toxic.Affinity["Rep"], 1e-9)
	})

	t.Run("sparse affinity map perturbs from zero", func(t *testing.T) {
		// A custom tag whose affinity omits its own code and the
		// opposition's still gets the full perturbation.
		reform := domain.Tag{Name: "Reform", ShortName: "Dem", Affinity: map[string]float64{"Ind": 0.5}}
		original := domain.Candidate{Name: "F-1", Tag: reform, Affinity: map[string]float64{"Ind": 0.5}}
		toxic := analyzer.ApplyToxicTactics(original)

		assert.InDelta(t, 0.25, toxic.Affinity["Dem"], 1e-9, "bonus applies from zero")
		assert.InDelta(t, -1.0, toxic.Affinity["Rep"], 1e-9, "penalty applies from zero")
		assert.InDelta(t, 0.5, toxic.Affinity["Ind"], 1e-9)
	})

	t.Run("nil affinity map", func(t *testing.T) {
		original := domain.Candidate{Name: "D-9", Tag: domain.Democrats}
		toxic := analyzer.ApplyToxicTactics(original)

		assert.InDelta(t, 0.25, toxic.Affinity["Dem"], 1e-9)
		assert.InDelta(t, -1.0, toxic.Affinity["Rep"], 1e-9)
	})

	t.Run("original is never mutated", func(t *testing.T) {
		original := domain.NewCandidate("R-1", domain.Republicans, 1.0, 0)
		_ = analyzer.ApplyToxicTactics(original)

		assert.Equal(t, "R-1", original.Name)
		assert.InDelta(t, 1.5, original.Affinity["Rep"], 1e-9)
		assert.InDelta(t, 0.0, original.Affinity["Dem"], 1e-9)
	})
}

func twinDefinition() domain.ElectionDefinition {
	pop := testutils.ExactPopulation(90, []domain.PopulationGroup{
		{Tag: domain.Democrats, Mean: -1.0, Weight: 2.0},
		{Tag: domain.Republicans, Mean: 1.0, Weight: 1.0},
	})
	return domain.ElectionDefinition{
		Candidates: []domain.Candidate{
			domain.NewCandidate("D-1", domain.Democrats, -1.0, 0),
			domain.NewCandidate("R-1", domain.Republicans, 1.0, 0),
		},
		Population: pop,
		Rand:       &testutils.ScriptedRand{},
	}
}

func TestTwinScenarioClassifications(t *testing.T) {
	analyzer, err := NewToxicityAnalyzer(DefaultToxicityConfig())
	require.NoError(t, err)

	tests := []struct {
		name         string
		winners      []string
		wantScenario string
		wantRuns     int
	}{
		{
			name:         "original winner holds",
			winners:      []string{"D-1", "D-1"},
			wantScenario: ScenarioFailure,
			wantRuns:     2,
		},
		{
			name:         "toxic twin displaces the winner",
			winners:      []string{"D-1", "D-1-toxic"},
			wantScenario: ScenarioSuccess,
			wantRuns:     2,
		},
		{
			name:         "seat flips and toxic twin holds it",
			winners:      []string{"D-1", "R-1", "R-1-toxic"},
			wantScenario: ScenarioSuccessFlip,
			wantRuns:     3,
		},
		{
			name:         "seat flips and clean winner survives",
			winners:      []string{"D-1", "R-1", "R-1"},
			wantScenario: ScenarioFailureFlip,
			wantRuns:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			election := &scriptedElection{winners: tt.winners}

			outcome, err := analyzer.TwinScenario(twinDefinition(), election)
			require.NoError(t, err)
			assert.Equal(t, tt.wantScenario, outcome.Scenario)
			assert.Equal(t, tt.wantRuns, election.calls)
			assert.Equal(t, "D-1", outcome.BaseWinner.Name)
			assert.Equal(t, "D-1-toxic", outcome.ToxicTwin.Name)

			// The twin election slate holds every out-party candidate,
			// then the toxic twin, then the original winner.
			twinSlate := election.slates[1]
			require.Len(t, twinSlate, 3)
			assert.Equal(t, "R-1", twinSlate[0].Name)
			assert.Equal(t, "D-1-toxic", twinSlate[1].Name)
			assert.Equal(t, "D-1", twinSlate[2].Name)

			if tt.wantRuns == 3 {
				require.NotNil(t, outcome.ThirdWinner)
				require.NotNil(t, outcome.OppositionTwin)
				assert.Equal(t, "R-1-toxic", outcome.OppositionTwin.Name)

				thirdSlate := election.slates[2]
				require.Len(t, thirdSlate, 4)
				assert.Equal(t, "D-1", thirdSlate[0].Name)
				assert.Equal(t, "D-1-toxic", thirdSlate[1].Name)
				assert.Equal(t, "R-1", thirdSlate[2].Name)
				assert.Equal(t, "R-1-toxic", thirdSlate[3].Name)
			} else {
				assert.Nil(t, outcome.ThirdWinner)
			}
		})
	}
}

func TestTwinScenarioWithPluralityElectsToxicTwin(t *testing.T) {
	analyzer, err := NewToxicityAnalyzer(DefaultToxicityConfig())
	require.NoError(t, err)

	election, err := elections.NewSimplePlurality("plurality")
	require.NoError(t, err)

	// With zero noise every Democrat prefers the twin's extra own-party
	// affinity over the identical clean candidate.
	outcome, err := analyzer.TwinScenario(twinDefinition(), election)
	require.NoError(t, err)
	assert.Equal(t, ScenarioSuccess, outcome.Scenario)
	assert.Equal(t, "D-1-toxic", outcome.NewWinner.Name)
}

func TestToxicSweep(t *testing.T) {
	analyzer, err := NewToxicityAnalyzer(DefaultToxicityConfig())
	require.NoError(t, err)

	def := twinDefinition()
	def.Candidates = append(def.Candidates, domain.NewCandidate("I-1", domain.Independents, 0.0, 0))

	t.Run("stops at first toxic win", func(t *testing.T) {
		// Baseline D-1; the winner's own twin and toxic R-1 lose;
		// toxic I-1 wins.
		election := &scriptedElection{winners: []string{"D-1", "D-1", "D-1", "I-1-toxic"}}

		outcome, err := analyzer.ToxicSweep(def, election)
		require.NoError(t, err)
		assert.True(t, outcome.ToxicSuccess)
		require.NotNil(t, outcome.SuccessfulToxic)
		assert.Equal(t, "I-1-toxic", outcome.SuccessfulToxic.Name)
		assert.Equal(t, 3, outcome.TotalCandidates)
		assert.Equal(t, 4, election.calls)

		// The baseline winner's toxic version joins as an extra entrant.
		winnerSlate := election.slates[1]
		require.Len(t, winnerSlate, 4)
		assert.Equal(t, "D-1-toxic", winnerSlate[3].Name)

		// Every other sweep run replaces exactly one candidate in place.
		loserSlate := election.slates[2]
		require.Len(t, loserSlate, 3)
		assert.Equal(t, "R-1-toxic", loserSlate[1].Name)
		assert.InDelta(t, -1.0, loserSlate[1].Affinity["Dem"], 1e-9, "R-1 went toxic")
		assert.InDelta(t, 1.5, loserSlate[0].Affinity["Dem"], 1e-9, "D-1 stayed clean")
	})

	t.Run("no toxic turn wins", func(t *testing.T) {
		election := &scriptedElection{winners: []string{"D-1", "D-1", "D-1", "D-1"}}

		outcome, err := analyzer.ToxicSweep(def, election)
		require.NoError(t, err)
		assert.False(t, outcome.ToxicSuccess)
		assert.Nil(t, outcome.SuccessfulToxic)
		assert.Equal(t, 4, election.calls, "baseline plus one run per candidate")
	})
}

func TestRejectionSweep(t *testing.T) {
	analyzer, err := NewToxicityAnalyzer(DefaultToxicityConfig())
	require.NoError(t, err)

	def := twinDefinition()

	t.Run("clean reversion retakes the race", func(t *testing.T) {
		election := &scriptedElection{winners: []string{"D-1-toxic", "D-1"}}

		outcome, err := analyzer.RejectionSweep(def, election)
		require.NoError(t, err)
		assert.Equal(t, "D-1-toxic", outcome.ToxicWinner.Name)
		assert.False(t, outcome.Robust)

		// The all-toxic baseline perturbs every candidate.
		allToxic := election.slates[0]
		assert.Equal(t, "D-1-toxic", allToxic[0].Name)
		assert.InDelta(t, 1.75, allToxic[0].Affinity["Dem"], 1e-9)
		assert.InDelta(t, 1.75, allToxic[1].Affinity["Rep"], 1e-9)

		// The rejection run reverts only the candidate under test.
		rejection := election.slates[1]
		assert.Equal(t, "D-1", rejection[0].Name)
		assert.InDelta(t, 1.5, rejection[0].Affinity["Dem"], 1e-9)
		assert.Equal(t, "R-1-toxic", rejection[1].Name)
	})

	t.Run("toxic field holds every reversion", func(t *testing.T) {
		election := &scriptedElection{winners: []string{"D-1-toxic", "D-1-toxic", "D-1-toxic"}}

		outcome, err := analyzer.RejectionSweep(def, election)
		require.NoError(t, err)
		assert.True(t, outcome.Robust)
		assert.Equal(t, 3, election.calls, "every candidate gets a reversion run")
	})
}

func TestAnalyzeDistrictAndSummary(t *testing.T) {
	analyzer, err := NewToxicityAnalyzer(DefaultToxicityConfig())
	require.NoError(t, err)

	election, err := elections.NewSimplePlurality("plurality")
	require.NoError(t, err)

	def := twinDefinition()
	result, err := analyzer.AnalyzeDistrict(def, election)
	require.NoError(t, err)

	// With zero noise the toxic twin sweeps the Democratic majority, and
	// reverting to clean tactics alone wins the all-toxic race back.
	assert.Equal(t, "D-1", result.BaseWinner.Name)
	assert.Equal(t, ScenarioSuccess, result.Twin.Scenario)
	assert.Equal(t, "D-1-toxic", result.ToxicWinner.Name)
	assert.True(t, result.ToxicSuccess)
	assert.True(t, result.NonToxicSuccess)

	// The analysis never mutates the input slate.
	assert.Equal(t, "D-1", def.Candidates[0].Name)
	assert.InDelta(t, 1.5, def.Candidates[0].Affinity["Dem"], 1e-9)
	assert.InDelta(t, 0.0, def.Candidates[0].Affinity["Rep"], 1e-9)

	summary := SummarizeToxicity([]*DistrictToxicity{
		{ToxicSuccess: true, NonToxicSuccess: false},
		{ToxicSuccess: true, NonToxicSuccess: true},
		{ToxicSuccess: false, NonToxicSuccess: false},
		nil,
	})
	assert.Equal(t, 4, summary.TotalDistricts)
	assert.Equal(t, 2, summary.ToxicChangeable)
	assert.InDelta(t, 50.0, summary.ToxicChangeablePct, 1e-9)
	assert.Equal(t, 1, summary.NonToxicChangeable)
	assert.InDelta(t, 25.0, summary.NonToxicChangeablePct, 1e-9)

	empty := SummarizeToxicity(nil)
	assert.Equal(t, 0, empty.TotalDistricts)
	assert.InDelta(t, 0.0, empty.ToxicChangeablePct, 1e-9)
}
