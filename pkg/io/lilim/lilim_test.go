package lilim_test

import (
	"strings"
	"testing"

	"github.com/vrpsolver/vrp/pkg/io/lilim"
	"github.com/vrpsolver/vrp/pkg/model"
)

const samplePDInstance = `
1 200
0 40 50 0 0 1000 0 0 0
1 10 10 10 0 1000 10 0 2
2 20 20 10 0 1000 10 1 0
3 30 30 5 0 1000 10 0 0
`

func TestParseReadsHeaderAndRows(t *testing.T) {
	doc, err := lilim.Parse(strings.NewReader(samplePDInstance))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.VehicleCount != 1 || doc.Capacity != 200 {
		t.Fatalf("expected 1 vehicle of capacity 200, got %d/%d", doc.VehicleCount, doc.Capacity)
	}
	if len(doc.Rows) != 4 {
		t.Fatalf("expected 4 rows (depot + 3), got %d", len(doc.Rows))
	}
}

func TestParseProblemPairsPickupAndDeliveryIntoAMulti(t *testing.T) {
	problem, _, err := lilim.ParseProblem(strings.NewReader(samplePDInstance))
	if err != nil {
		t.Fatalf("ParseProblem: %v", err)
	}
	// row 1/2 pair into one Multi, row 3 is a plain delivery: 2 jobs total.
	if len(problem.Jobs) != 2 {
		t.Fatalf("expected 2 jobs (1 pickup/delivery pair + 1 plain delivery), got %d", len(problem.Jobs))
	}

	var sawMulti bool
	for _, job := range problem.Jobs {
		if multi, ok := job.(*model.Multi); ok {
			sawMulti = true
			if len(multi.Jobs) != 2 {
				t.Fatalf("expected the paired job to bundle exactly 2 singles, got %d", len(multi.Jobs))
			}
			orderings := multi.PermittedOrderings()
			if len(orderings) != 1 || orderings[0][0] != 0 {
				t.Fatalf("expected the pickup to be pinned before the delivery, got %v", orderings)
			}
		}
	}
	if !sawMulti {
		t.Fatalf("expected at least one paired Multi job")
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	if _, err := lilim.Parse(strings.NewReader("")); err == nil {
		t.Fatalf("expected an error for an empty document")
	}
}
