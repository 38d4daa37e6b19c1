package tsplib_test

import (
	"strings"
	"testing"

	"github.com/vrpsolver/vrp/pkg/io/tsplib"
)

const sampleInstance = `
NAME: sample
TYPE: TSP
EDGE_WEIGHT_TYPE: EUC_2D
NODE_COORD_SECTION
1 0 0
2 10 0
3 10 10
EOF
`

func TestParseReadsNameAndNodes(t *testing.T) {
	doc, err := tsplib.Parse(strings.NewReader(sampleInstance))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Name != "sample" {
		t.Fatalf("expected name sample, got %q", doc.Name)
	}
	if len(doc.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(doc.Nodes))
	}
}

func TestParseRejectsUnsupportedEdgeWeightType(t *testing.T) {
	bad := strings.Replace(sampleInstance, "EUC_2D", "GEO", 1)
	if _, err := tsplib.Parse(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected an error for a non-EUC_2D edge weight type")
	}
}

func TestParseRejectsMissingCoordSection(t *testing.T) {
	if _, err := tsplib.Parse(strings.NewReader("NAME: empty\nEOF\n")); err == nil {
		t.Fatalf("expected an error when no NODE_COORD_SECTION rows are present")
	}
}

func TestParseProblemCreatesVehicleCountVehiclesAndRemainingJobs(t *testing.T) {
	problem, transport, err := tsplib.ParseProblem(strings.NewReader(sampleInstance), 3)
	if err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}
	if len(problem.Fleet.Vehicles) != 3 {
		t.Fatalf("expected 3 vehicles, got %d", len(problem.Fleet.Vehicles))
	}
	if len(problem.Jobs) != 2 {
		t.Fatalf("expected 2 jobs (node 2 and 3, node 1 is the depot), got %d", len(problem.Jobs))
	}
	if transport == nil {
		t.Fatalf("expected a non-nil transport oracle")
	}
}

func TestParseProblemDefaultsToOneVehicleWhenCountIsInvalid(t *testing.T) {
	problem, _, err := tsplib.ParseProblem(strings.NewReader(sampleInstance), 0)
	if err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}
	if len(problem.Fleet.Vehicles) != 1 {
		t.Fatalf("expected a non-positive vehicle count to default to 1, got %d", len(problem.Fleet.Vehicles))
	}
}
