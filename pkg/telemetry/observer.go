package telemetry

import (
	"context"
	"time"

	"k8s.io/klog/v2"

	"github.com/vrpsolver/vrp/pkg/evolution"
	"github.com/vrpsolver/vrp/pkg/population"
)

var _ evolution.Observer = (*Observer)(nil)

// Observer implements evolution.Observer, fanning one generation
// notification out to structured logging, prometheus metrics, an otel
// span, and an in-memory convergence trace a caller can later hand to
// PlotConvergence.
type Observer struct {
	Logger  klog.Logger
	Metrics *Metrics
	Ctx     context.Context

	points []GenerationPoint
}

// NewObserver builds an Observer. metrics and logger may be the zero value
// of their type (a discarded logger, a nil Metrics) to disable that
// channel without special-casing call sites.
func NewObserver(ctx context.Context, logger klog.Logger, metrics *Metrics) *Observer {
	return &Observer{Logger: logger, Metrics: metrics, Ctx: ctx}
}

// OnGeneration satisfies evolution.Observer.
func (o *Observer) OnGeneration(gen int, best *population.Individual, elapsed time.Duration) {
	_, span := StartGenerationSpan(o.Ctx, gen)
	defer span.End()

	var bestFitness float64
	var unassigned, routes int
	if best != nil && len(best.Value) > 0 {
		bestFitness = best.Value[0]
		unassigned = len(best.Solution.Unassigned)
		for _, r := range best.Solution.Routes {
			if !r.IsEmpty() {
				routes++
			}
		}
	}
	// Average tracks the best individual only; OnGeneration receives no
	// whole-population handle to average across.
	avgFitness := bestFitness

	o.Logger.WithValues(
		"generation", gen,
		"bestFitness", bestFitness,
		"unassigned", unassigned,
		"routes", routes,
		"elapsed", elapsed,
	).V(1).Info("generation complete")

	if o.Metrics != nil {
		o.Metrics.Observe(gen, bestFitness, avgFitness, unassigned, routes)
	}

	o.points = append(o.points, GenerationPoint{Generation: gen, Best: bestFitness, Average: avgFitness})
}

// Points returns every recorded generation's convergence data, suitable for
// PlotConvergence.
func (o *Observer) Points() []GenerationPoint {
	return o.points
}
