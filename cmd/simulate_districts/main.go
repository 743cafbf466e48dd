package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ahrav/go-stump/infrastructure/districts"
	"github.com/ahrav/go-stump/infrastructure/middleware"
	"github.com/ahrav/go-stump/internal/application"
	"github.com/ahrav/go-stump/internal/ports"
)

// simulationOutput is the JSON document written for a full run.
type simulationOutput struct {
	Scenario application.ScenarioMetadata  `json:"scenario"`
	Election string                        `json:"election"`
	Reports  []*application.DistrictReport `json:"reports"`
	Toxicity *application.ToxicitySummary  `json:"toxicity,omitempty"`
}

func main() {
	var (
		dataPath     = flag.String("data", "", "Path to the district voting record CSV (required)")
		scenarioPath = flag.String("scenario", "", "Path to the scenario YAML; defaults apply when omitted")
		outputPath   = flag.String("output", "", "Output JSON file path; stdout when omitted")
		seed         = flag.Int64("seed", 0, "Override the scenario's random seed (0 keeps the scenario value)")
		parallelism  = flag.Int("parallelism", 0, "Override the scenario's worker count (0 keeps the scenario value)")
		state        = flag.String("state", "", "Only simulate districts in this state, e.g. CA")
		withMetrics  = flag.Bool("metrics", false, "Register Prometheus metrics and trace election runs")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("the -data flag is required")
	}

	config := loadScenario(*scenarioPath)
	if *seed != 0 {
		config.Seed = *seed
	}
	if *parallelism != 0 {
		config.Parallelism = *parallelism
	}

	records, err := districts.LoadFile(*dataPath)
	if err != nil {
		log.Fatalf("Failed to load district data: %v", err)
	}
	if *state != "" {
		records = filterByState(records, *state)
	}
	if len(records) == 0 {
		log.Fatal("No districts matched the given filters")
	}

	var metrics ports.MetricsCollector
	if *withMetrics {
		metrics = middleware.NewPrometheusMetrics()
	}

	runner, err := application.NewSimulationRunner(config, metrics)
	if err != nil {
		log.Fatalf("Failed to build simulation runner: %v", err)
	}

	reports, err := runner.RunAll(records)
	if err != nil {
		log.Fatalf("Simulation failed: %v", err)
	}

	output := simulationOutput{
		Scenario: config.Metadata,
		Election: config.Election.Type,
		Reports:  reports,
	}
	if config.Toxicity != nil {
		summary := runner.Summary(reports)
		output.Toxicity = &summary
	}

	writeOutput(output, *outputPath)
	printSummary(reports, output.Toxicity)
}

func loadScenario(path string) *application.ScenarioConfig {
	if path == "" {
		config := application.DefaultScenarioConfig()
		return &config
	}

	config, err := application.NewScenarioLoader().LoadFromFile(path)
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}
	return config
}

func filterByState(records []districts.VotingRecord, state string) []districts.VotingRecord {
	filtered := records[:0]
	for _, r := range records {
		if r.State() == state {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func writeOutput(output simulationOutput, path string) {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode results: %v", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}
	fmt.Printf("Results written to %s\n", path)
}

func printSummary(reports []*application.DistrictReport, toxicity *application.ToxicitySummary) {
	byParty := make(map[string]int)
	var satisfaction float64
	for _, r := range reports {
		byParty[r.WinnerParty]++
		satisfaction += r.VoterSatisfaction
	}

	fmt.Printf("Simulated %d districts:\n", len(reports))
	for party, seats := range byParty {
		fmt.Printf("- %s: %d seats\n", party, seats)
	}
	fmt.Printf("- Average voter satisfaction: %.3f\n", satisfaction/float64(len(reports)))

	if toxicity != nil {
		fmt.Printf("- Toxic tactics could flip %d districts (%.1f%%)\n",
			toxicity.ToxicChangeable, toxicity.ToxicChangeablePct)
		fmt.Printf("- Clean campaigns could retake %d all-toxic districts (%.1f%%)\n",
			toxicity.NonToxicChangeable, toxicity.NonToxicChangeablePct)
	}
}
