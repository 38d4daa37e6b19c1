package clustering_test

import (
	"math"
	"testing"

	"github.com/vrpsolver/vrp/pkg/clustering"
	"github.com/vrpsolver/vrp/pkg/util"
)

func TestKMedoidsSeparatesTwoDistantGroups(t *testing.T) {
	points := []float64{0, 1, 2, 100, 101, 102}
	dist := func(i, j int) float64 { return math.Abs(points[i] - points[j]) }
	rng := util.NewDefaultRNG(1)

	medoids, assignment := clustering.KMedoids(len(points), 2, dist, rng, 20)

	if len(medoids) != 2 {
		t.Fatalf("expected 2 medoids, got %d", len(medoids))
	}
	if assignment[0] != assignment[1] || assignment[1] != assignment[2] {
		t.Fatalf("expected the first group to share one medoid, got %v", assignment[:3])
	}
	if assignment[3] != assignment[4] || assignment[4] != assignment[5] {
		t.Fatalf("expected the second group to share one medoid, got %v", assignment[3:])
	}
	if assignment[0] == assignment[3] {
		t.Fatalf("expected the two distant groups to land on different medoids")
	}
}

func TestKMedoidsClampsKToN(t *testing.T) {
	points := []float64{0, 1}
	dist := func(i, j int) float64 { return math.Abs(points[i] - points[j]) }
	rng := util.NewDefaultRNG(1)

	medoids, assignment := clustering.KMedoids(len(points), 5, dist, rng, 5)

	if len(medoids) != len(points) {
		t.Fatalf("expected k clamped to n=%d, got %d medoids", len(points), len(medoids))
	}
	if len(assignment) != len(points) {
		t.Fatalf("expected an assignment entry per point, got %d", len(assignment))
	}
}

func TestKMedoidsReturnsEmptyForZeroK(t *testing.T) {
	dist := func(i, j int) float64 { return 0 }
	rng := util.NewDefaultRNG(1)

	medoids, assignment := clustering.KMedoids(4, 0, dist, rng, 5)

	if medoids != nil {
		t.Fatalf("expected nil medoids for k<=0, got %v", medoids)
	}
	if len(assignment) != 4 {
		t.Fatalf("expected a zero-valued assignment slice of length 4, got %d", len(assignment))
	}
}

func TestKMedoidsHandlesEmptyInput(t *testing.T) {
	dist := func(i, j int) float64 { return 0 }
	rng := util.NewDefaultRNG(1)

	medoids, assignment := clustering.KMedoids(0, 3, dist, rng, 5)

	if medoids != nil || len(assignment) != 0 {
		t.Fatalf("expected no medoids and an empty assignment for n=0, got %v %v", medoids, assignment)
	}
}
