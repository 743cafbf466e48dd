package application

import (
	"fmt"
	"maps"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

var validate = validator.New()

// Twin scenario classifications.
const (
	// ScenarioSuccess means the toxic twin displaced the original winner.
	ScenarioSuccess = "success"
	// ScenarioFailure means the original winner beat their own toxic twin.
	ScenarioFailure = "failure"
	// ScenarioSuccessFlip means the seat flipped to the other party and
	// that party's toxic twin held it.
	ScenarioSuccessFlip = "success_flip"
	// ScenarioFailureFlip means the seat flipped to the other party and
	// the clean flip winner held off their own toxic twin.
	ScenarioFailureFlip = "failure_flip"
)

// ToxicityConfig controls how toxic tactics perturb a candidate's
// affinity: a bonus toward the candidate's own party and a penalty from
// the opposing party.
type ToxicityConfig struct {
	// Bonus is added to the candidate's own-party affinity.
	Bonus float64 `yaml:"bonus" validate:"min=0"`
	// Penalty is added to the opposing party's affinity and must be
	// non-positive.
	Penalty float64 `yaml:"penalty" validate:"max=0"`
}

// DefaultToxicityConfig returns the standard toxic tactics perturbation:
// a small base rally and a large opposition backlash.
func DefaultToxicityConfig() ToxicityConfig {
	return ToxicityConfig{Bonus: 0.25, Penalty: -1.0}
}

// ToxicityAnalyzer measures whether toxic tactics can change election
// outcomes. All scenario methods leave the input definition and its
// candidates untouched.
type ToxicityAnalyzer struct {
	config ToxicityConfig
}

// NewToxicityAnalyzer creates a toxicity analyzer with the given
// perturbation parameters.
func NewToxicityAnalyzer(config ToxicityConfig) (*ToxicityAnalyzer, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("invalid toxicity config: %w", err)
	}
	return &ToxicityAnalyzer{config: config}, nil
}

// ApplyToxicTactics returns a "-toxic" suffixed copy of the candidate:
// own-party affinity rises by the bonus and the opposing major party's
// affinity drops by the penalty. Candidates without a major opposition
// only gain the bonus.
func (a *ToxicityAnalyzer) ApplyToxicTactics(c domain.Candidate) domain.Candidate {
	affinity := maps.Clone(c.Affinity)
	if affinity == nil {
		affinity = make(map[string]float64)
	}

	// Missing affinity entries score as zero, so perturbing from zero
	// keeps the twin's scores consistent with the clean candidate's.
	affinity[c.Tag.ShortName] += a.config.Bonus
	if opposition, ok := domain.OppositionOf(c.Tag); ok {
		affinity[opposition.ShortName] += a.config.Penalty
	}
	return c.WithName(c.Name + "-toxic").WithAffinity(affinity)
}

// TwinOutcome is the result of a twin scenario: the baseline winner, the
// winner once their toxic twin entered, and the third-election outcome
// when the seat flipped parties.
type TwinOutcome struct {
	Scenario   string           `json:"scenario"`
	BaseWinner domain.Candidate `json:"base_winner"`
	NewWinner  domain.Candidate `json:"new_winner"`
	ToxicTwin  domain.Candidate `json:"toxic_twin"`

	// ThirdWinner and OppositionTwin are set only for flip scenarios.
	ThirdWinner    *domain.Candidate `json:"third_winner,omitempty"`
	OppositionTwin *domain.Candidate `json:"opposition_twin,omitempty"`
}

// TwinScenario pits the baseline winner against a toxic twin of
// themselves plus every out-party candidate. When the seat flips to the
// other party, a third election tests whether that flip winner would in
// turn survive their own toxic twin.
func (a *ToxicityAnalyzer) TwinScenario(
	def domain.ElectionDefinition, election ports.Election,
) (*TwinOutcome, error) {
	baseResult, err := election.Run(def)
	if err != nil {
		return nil, fmt.Errorf("baseline election failed: %w", err)
	}
	baseWinner := baseResult.Winner()

	toxicTwin := a.ApplyToxicTactics(baseWinner)

	slate := make([]domain.Candidate, 0, len(def.Candidates)+1)
	for _, c := range def.Candidates {
		if !c.Tag.Equal(baseWinner.Tag) {
			slate = append(slate, c)
		}
	}
	slate = append(slate, toxicTwin, baseWinner)

	twinResult, err := election.Run(def.WithCandidates(slate))
	if err != nil {
		return nil, fmt.Errorf("twin election failed: %w", err)
	}
	newWinner := twinResult.Winner()

	outcome := &TwinOutcome{
		BaseWinner: baseWinner,
		NewWinner:  newWinner,
		ToxicTwin:  toxicTwin,
	}

	switch {
	case newWinner.Name == baseWinner.Name:
		outcome.Scenario = ScenarioFailure
		return outcome, nil
	case newWinner.Name == toxicTwin.Name:
		outcome.Scenario = ScenarioSuccess
		return outcome, nil
	case !newWinner.Tag.Equal(baseWinner.Tag):
		// The seat flipped. Test whether the flip winner survives their
		// own toxic competition.
		oppositionTwin := a.ApplyToxicTactics(newWinner)
		thirdSlate := []domain.Candidate{baseWinner, toxicTwin, newWinner, oppositionTwin}

		thirdResult, err := election.Run(def.WithCandidates(thirdSlate))
		if err != nil {
			return nil, fmt.Errorf("flip election failed: %w", err)
		}
		thirdWinner := thirdResult.Winner()

		outcome.ThirdWinner = &thirdWinner
		outcome.OppositionTwin = &oppositionTwin
		if thirdWinner.Name == oppositionTwin.Name {
			outcome.Scenario = ScenarioSuccessFlip
		} else {
			outcome.Scenario = ScenarioFailureFlip
		}
		return outcome, nil
	default:
		return nil, fmt.Errorf(
			"unexpected twin outcome: base winner %s, new winner %s",
			baseWinner.Name, newWinner.Name,
		)
	}
}

// SweepOutcome reports whether any candidate could have won by going
// toxic alone.
type SweepOutcome struct {
	BaseWinner      domain.Candidate  `json:"base_winner"`
	ToxicSuccess    bool              `json:"toxic_success"`
	SuccessfulToxic *domain.Candidate `json:"successful_toxic,omitempty"`
	TotalCandidates int               `json:"total_candidates"`
}

// ToxicSweep reruns the election once per candidate with only that
// candidate's toxic version in play, stopping at the first toxic version
// that wins. The baseline winner's toxic version joins the slate as an
// extra entrant; everyone else's replaces them in place.
func (a *ToxicityAnalyzer) ToxicSweep(
	def domain.ElectionDefinition, election ports.Election,
) (*SweepOutcome, error) {
	baseResult, err := election.Run(def)
	if err != nil {
		return nil, fmt.Errorf("baseline election failed: %w", err)
	}
	baseWinner := baseResult.Winner()

	outcome := &SweepOutcome{
		BaseWinner:      baseWinner,
		TotalCandidates: len(def.Candidates),
	}

	for i, candidate := range def.Candidates {
		toxic := a.ApplyToxicTactics(candidate)

		var slate []domain.Candidate
		if candidate.Name == baseWinner.Name {
			slate = make([]domain.Candidate, len(def.Candidates), len(def.Candidates)+1)
			copy(slate, def.Candidates)
			slate = append(slate, toxic)
		} else {
			slate = make([]domain.Candidate, len(def.Candidates))
			copy(slate, def.Candidates)
			slate[i] = toxic
		}

		result, err := election.Run(def.WithCandidates(slate))
		if err != nil {
			return nil, fmt.Errorf("toxic sweep election failed: %w", err)
		}
		if result.Winner().Name == toxic.Name {
			winner := result.Winner()
			outcome.ToxicSuccess = true
			outcome.SuccessfulToxic = &winner
			break
		}
	}
	return outcome, nil
}

// RejectionOutcome reports whether an all-toxic race is robust: whether
// every candidate who reverts to clean tactics alone still loses to a
// toxic opponent.
type RejectionOutcome struct {
	ToxicWinner     domain.Candidate `json:"toxic_winner"`
	Robust          bool             `json:"robust"`
	TotalCandidates int              `json:"total_candidates"`
}

// RejectionSweep runs the election with every candidate toxic, then
// reruns once per candidate with only that candidate back to clean
// tactics. Toxicity is robust only when every rerun still produces a
// toxic winner.
func (a *ToxicityAnalyzer) RejectionSweep(
	def domain.ElectionDefinition, election ports.Election,
) (*RejectionOutcome, error) {
	toxicSlate := make([]domain.Candidate, len(def.Candidates))
	for i, c := range def.Candidates {
		toxicSlate[i] = a.ApplyToxicTactics(c)
	}

	toxicResult, err := election.Run(def.WithCandidates(toxicSlate))
	if err != nil {
		return nil, fmt.Errorf("all-toxic election failed: %w", err)
	}

	outcome := &RejectionOutcome{
		ToxicWinner:     toxicResult.Winner(),
		Robust:          true,
		TotalCandidates: len(def.Candidates),
	}

	for i, candidate := range def.Candidates {
		slate := make([]domain.Candidate, len(toxicSlate))
		copy(slate, toxicSlate)
		slate[i] = candidate

		result, err := election.Run(def.WithCandidates(slate))
		if err != nil {
			return nil, fmt.Errorf("rejection sweep election failed: %w", err)
		}
		// The reverted candidate is the only clean entrant, so a clean
		// winner means the reversion paid off.
		if result.Winner().Name == candidate.Name {
			outcome.Robust = false
			break
		}
	}
	return outcome, nil
}

// DistrictToxicity bundles every toxicity experiment for one district.
type DistrictToxicity struct {
	Twin            *TwinOutcome     `json:"twin"`
	BaseWinner      domain.Candidate `json:"base_winner"`
	ToxicWinner     domain.Candidate `json:"toxic_winner"`
	ToxicSuccess    bool             `json:"toxic_success"`
	NonToxicSuccess bool             `json:"non_toxic_success"`
}

// AnalyzeDistrict runs the twin scenario and both sweeps for one
// district's election definition.
func (a *ToxicityAnalyzer) AnalyzeDistrict(
	def domain.ElectionDefinition, election ports.Election,
) (*DistrictToxicity, error) {
	twin, err := a.TwinScenario(def, election)
	if err != nil {
		return nil, err
	}
	sweep, err := a.ToxicSweep(def, election)
	if err != nil {
		return nil, err
	}
	rejection, err := a.RejectionSweep(def, election)
	if err != nil {
		return nil, err
	}

	return &DistrictToxicity{
		Twin:            twin,
		BaseWinner:      twin.BaseWinner,
		ToxicWinner:     rejection.ToxicWinner,
		ToxicSuccess:    sweep.ToxicSuccess,
		NonToxicSuccess: !rejection.Robust,
	}, nil
}

// ToxicitySummary aggregates toxicity experiments across districts.
type ToxicitySummary struct {
	TotalDistricts        int     `json:"total_districts"`
	ToxicChangeable       int     `json:"toxic_changeable"`
	ToxicChangeablePct    float64 `json:"toxic_changeable_pct"`
	NonToxicChangeable    int     `json:"non_toxic_changeable"`
	NonToxicChangeablePct float64 `json:"non_toxic_changeable_pct"`
}

// SummarizeToxicity counts how many districts toxic tactics could flip
// and how many all-toxic districts a clean campaign could take back.
func SummarizeToxicity(results []*DistrictToxicity) ToxicitySummary {
	summary := ToxicitySummary{TotalDistricts: len(results)}
	if len(results) == 0 {
		return summary
	}

	for _, r := range results {
		if r == nil {
			continue
		}
		if r.ToxicSuccess {
			summary.ToxicChangeable++
		}
		if r.NonToxicSuccess {
			summary.NonToxicChangeable++
		}
	}
	summary.ToxicChangeablePct = float64(summary.ToxicChangeable) / float64(summary.TotalDistricts) * 100
	summary.NonToxicChangeablePct = float64(summary.NonToxicChangeable) / float64(summary.TotalDistricts) * 100
	return summary
}
