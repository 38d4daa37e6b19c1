package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"k8s.io/klog/v2"

	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/objective"
	"github.com/vrpsolver/vrp/pkg/population"
	"github.com/vrpsolver/vrp/pkg/telemetry"
)

func TestMetricsObserveUpdatesGauges(t *testing.T) {
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	metrics.Observe(3, 12.5, 15.0, 2, 4)

	var gauge dto.Metric
	if err := metrics.Generation.Write(&gauge); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if gauge.GetGauge().GetValue() != 3 {
		t.Fatalf("expected generation gauge 3, got %v", gauge.GetGauge().GetValue())
	}

	var best dto.Metric
	if err := metrics.BestFitness.Write(&best); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if best.GetGauge().GetValue() != 12.5 {
		t.Fatalf("expected best fitness 12.5, got %v", best.GetGauge().GetValue())
	}
}

func TestMetricsObserveMutationIncrementsLabelledCounter(t *testing.T) {
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	metrics.ObserveMutation("random-job+cheapest")
	metrics.ObserveMutation("random-job+cheapest")

	var counter dto.Metric
	if err := metrics.MutationsTotal.WithLabelValues("random-job+cheapest").Write(&counter); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if counter.GetCounter().GetValue() != 2 {
		t.Fatalf("expected 2 mutations recorded, got %v", counter.GetCounter().GetValue())
	}
}

func TestObserverOnGenerationRecordsPointsAndToleratesNilBest(t *testing.T) {
	observer := telemetry.NewObserver(context.Background(), klog.Background(), telemetry.NewMetrics(prometheus.NewRegistry()))
	observer.OnGeneration(0, nil, time.Millisecond)

	sol := model.NewSolution(&model.Problem{})
	ind := population.NewIndividual(sol, objective.New(flatTransport{}))
	observer.OnGeneration(1, ind, time.Millisecond)

	points := observer.Points()
	if len(points) != 2 {
		t.Fatalf("expected 2 recorded generation points, got %d", len(points))
	}
	if points[0].Generation != 0 || points[1].Generation != 1 {
		t.Fatalf("unexpected generation indices: %+v", points)
	}
}

type flatTransport struct{}

func (flatTransport) Duration(model.Profile, model.Location, model.Location, float64) float64 {
	return 1
}
func (flatTransport) Distance(model.Profile, model.Location, model.Location, float64) float64 {
	return 1
}
