package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-stump/internal/domain"
	"github.com/ahrav/go-stump/internal/ports"
)

// tracerName identifies spans emitted by the election observer.
const tracerName = "election-runner"

// ObservedElection wraps an election with OpenTelemetry tracing and
// metrics collection. Each run produces a span carrying the method,
// slate size, and outcome, plus latency and outcome counters.
type ObservedElection struct {
	inner   ports.Election
	metrics ports.MetricsCollector
}

// NewObservedElection wraps an election for observability. A nil metrics
// collector disables metric recording but keeps tracing.
func NewObservedElection(inner ports.Election, metrics ports.MetricsCollector) (*ObservedElection, error) {
	if inner == nil {
		return nil, domain.ErrInvalidConfiguration
	}
	return &ObservedElection{inner: inner, metrics: metrics}, nil
}

// Name returns the wrapped election's name.
func (o *ObservedElection) Name() string { return o.inner.Name() }

// Validate delegates to the wrapped election.
func (o *ObservedElection) Validate() error { return o.inner.Validate() }

// Run executes the wrapped election inside a span, recording latency,
// outcome counters, and the winner's attributes.
func (o *ObservedElection) Run(def domain.ElectionDefinition) (domain.ElectionResult, error) {
	tracer := otel.Tracer(tracerName)
	_, span := tracer.Start(context.Background(), "Election.Run")
	defer span.End()

	span.SetAttributes(
		attribute.String("election.method", o.inner.Name()),
		attribute.Int("election.candidates", len(def.Candidates)),
		attribute.Int("election.voters", def.Population.NSamples()),
	)

	start := time.Now()
	result, err := o.inner.Run(def)
	elapsed := time.Since(start)

	labels := map[string]string{"method": o.inner.Name()}
	if o.metrics != nil {
		o.metrics.RecordLatency("election_run", elapsed, labels)
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if o.metrics != nil {
			failed := map[string]string{"method": o.inner.Name(), "status": "error"}
			o.metrics.RecordCounter("election_run", 1, failed)
		}
		return nil, err
	}

	winner := result.Winner()
	span.AddEvent("election.decided", trace.WithAttributes(
		attribute.String("winner.name", winner.Name),
		attribute.String("winner.party", winner.Tag.ShortName),
		attribute.Float64("winner.ideology", winner.Ideology),
		attribute.Float64("election.voter_satisfaction", result.VoterSatisfaction()),
	))
	span.SetStatus(codes.Ok, "election decided")

	if o.metrics != nil {
		o.metrics.RecordCounter("election_run", 1, labels)
		o.metrics.RecordGauge("voter_satisfaction", result.VoterSatisfaction(), labels)
	}
	return result, nil
}

// Compile-time verification that ObservedElection implements Election.
var _ ports.Election = (*ObservedElection)(nil)
