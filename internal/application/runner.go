package application

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-stump/infrastructure/districts"
	"github.com/ahrav/go-stump/infrastructure/middleware"
	"github.com/ahrav/go-stump/infrastructure/rng"
	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

// DistrictReport is one district's simulation outcome.
type DistrictReport struct {
	District          string  `json:"district"`
	State             string  `json:"state"`
	Winner            string  `json:"winner"`
	WinnerParty       string  `json:"winner_party"`
	WinnerIdeology    float64 `json:"winner_ideology"`
	VoterSatisfaction float64 `json:"voter_satisfaction"`
	NVotes            float64 `json:"n_votes"`
	Margin            float64 `json:"margin"`

	Toxicity *DistrictToxicity `json:"toxicity,omitempty"`
}

// SimulationRunner executes a scenario across districts: for each
// district it derives an electorate from the voting record, generates a
// candidate slate, and runs the configured election.
type SimulationRunner struct {
	config   *ScenarioConfig
	election ports.Election
	analyzer *ToxicityAnalyzer
}

// NewSimulationRunner builds a runner for the scenario. A non-nil
// metrics collector wraps the election with tracing and metrics.
func NewSimulationRunner(
	config *ScenarioConfig, metrics ports.MetricsCollector,
) (*SimulationRunner, error) {
	if config == nil {
		return nil, fmt.Errorf("scenario config cannot be nil")
	}

	registry := NewDefaultElectionRegistry()
	election, err := registry.Create(
		config.Election.Type, config.Election.Type, config.Election.Parameters,
	)
	if err != nil {
		return nil, err
	}
	if metrics != nil {
		election, err = middleware.NewObservedElection(election, metrics)
		if err != nil {
			return nil, err
		}
	}

	runner := &SimulationRunner{config: config, election: election}

	if config.Toxicity != nil {
		analyzer, err := NewToxicityAnalyzer(*config.Toxicity)
		if err != nil {
			return nil, err
		}
		runner.analyzer = analyzer
	}
	return runner, nil
}

// RunDistrict simulates one district. The index keys the district's
// derived seed, so a district's result is reproducible regardless of
// which worker runs it.
func (r *SimulationRunner) RunDistrict(
	record districts.VotingRecord, index int,
) (*DistrictReport, error) {
	source := rng.New(r.config.Seed + int64(index))

	params := districts.PopulationParams{
		Partisanship: r.config.Population.Partisanship,
		Stddev:       r.config.Population.Stddev,
		SkewFactor:   r.config.Population.SkewFactor,
	}
	pop := districts.PopulationForRecord(record, params, r.config.Voters, source)

	generators := NewDefaultGeneratorRegistry(source)
	generator, err := generators.Create(
		r.config.Generator.Type, record.District, r.config.Generator.Parameters,
	)
	if err != nil {
		return nil, fmt.Errorf("district %s: %w", record.District, err)
	}

	slate, err := generator.Generate(pop)
	if err != nil {
		return nil, fmt.Errorf("district %s: slate generation failed: %w", record.District, err)
	}

	def := domain.ElectionDefinition{
		Candidates: slate,
		Population: pop,
		Config:     domain.ElectionConfig{Uncertainty: r.config.Uncertainty},
		Rand:       source,
	}

	result, err := r.election.Run(def)
	if err != nil {
		return nil, fmt.Errorf("district %s: election failed: %w", record.District, err)
	}

	winner := result.Winner()
	report := &DistrictReport{
		District:          record.District,
		State:             record.State(),
		Winner:            winner.Name,
		WinnerParty:       winner.Tag.ShortName,
		WinnerIdeology:    winner.Ideology,
		VoterSatisfaction: result.VoterSatisfaction(),
		NVotes:            result.NVotes(),
		Margin:            winnerMargin(result.OrderedResults()),
	}

	if r.analyzer != nil {
		toxicity, err := r.analyzer.AnalyzeDistrict(def, r.election)
		if err != nil {
			return nil, fmt.Errorf("district %s: toxicity analysis failed: %w", record.District, err)
		}
		report.Toxicity = toxicity
	}
	return report, nil
}

// RunAll simulates every district, bounded by the scenario's
// parallelism. Reports come back in input order.
func (r *SimulationRunner) RunAll(records []districts.VotingRecord) ([]*DistrictReport, error) {
	parallelism := r.config.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	reports := make([]*DistrictReport, len(records))

	var g errgroup.Group
	g.SetLimit(parallelism)

	for i, record := range records {
		g.Go(func() error {
			report, err := r.RunDistrict(record, i)
			if err != nil {
				return err
			}
			// Each goroutine writes its own slot, so no lock is needed.
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// Summary aggregates toxicity outcomes from a batch of reports. It
// returns a zero-valued summary when the scenario ran without toxicity
// experiments.
func (r *SimulationRunner) Summary(reports []*DistrictReport) ToxicitySummary {
	results := make([]*DistrictToxicity, 0, len(reports))
	for _, report := range reports {
		if report != nil && report.Toxicity != nil {
			results = append(results, report.Toxicity)
		}
	}
	return SummarizeToxicity(results)
}

func winnerMargin(ordered []domain.CandidateResult) float64 {
	if len(ordered) < 2 {
		if len(ordered) == 1 {
			return ordered[0].Votes
		}
		return 0
	}
	return ordered[0].Votes - ordered[1].Votes
}
