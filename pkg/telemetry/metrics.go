package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the generation-level prometheus collectors the evolution
// loop updates once per generation.
type Metrics struct {
	Generation      prometheus.Gauge
	BestFitness     prometheus.Gauge
	AverageFitness  prometheus.Gauge
	UnassignedCount prometheus.Gauge
	RouteCount      prometheus.Gauge
	Generations     prometheus.Counter
	MutationsTotal  *prometheus.CounterVec
}

// NewMetrics constructs a Metrics bundle and registers it with reg. Passing
// prometheus.NewRegistry() keeps a solve run's metrics isolated from the
// default global registry, useful for running more than one solve in the
// same process (e.g. parallel benchmark comparisons).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrpsolver",
			Name:      "generation",
			Help:      "Index of the most recently completed generation.",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrpsolver",
			Name:      "best_fitness",
			Help:      "Primary objective value of the best individual found so far.",
		}),
		AverageFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrpsolver",
			Name:      "average_fitness",
			Help:      "Primary objective value averaged over the current population.",
		}),
		UnassignedCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrpsolver",
			Name:      "unassigned_jobs",
			Help:      "Number of jobs left unassigned in the best solution.",
		}),
		RouteCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrpsolver",
			Name:      "route_count",
			Help:      "Number of non-empty routes in the best solution.",
		}),
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vrpsolver",
			Name:      "generations_total",
			Help:      "Total number of generations run.",
		}),
		MutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vrpsolver",
			Name:      "mutations_total",
			Help:      "Number of ruin-and-recreate mutations applied, by operator pair.",
		}, []string{"operator"}),
	}
	reg.MustRegister(
		m.Generation,
		m.BestFitness,
		m.AverageFitness,
		m.UnassignedCount,
		m.RouteCount,
		m.Generations,
		m.MutationsTotal,
	)
	return m
}

// Observe records one generation's summary statistics.
func (m *Metrics) Observe(generation int, best, average float64, unassigned, routes int) {
	m.Generation.Set(float64(generation))
	m.BestFitness.Set(best)
	m.AverageFitness.Set(average)
	m.UnassignedCount.Set(float64(unassigned))
	m.RouteCount.Set(float64(routes))
	m.Generations.Inc()
}

// ObserveMutation records one applied ruin-and-recreate operator pair.
func (m *Metrics) ObserveMutation(operatorName string) {
	m.MutationsTotal.WithLabelValues(operatorName).Inc()
}
