package ruin_test

import (
	"testing"

	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/ruin"
	"github.com/vrpsolver/vrp/pkg/util"
)

type linearTransport struct{}

func (linearTransport) Duration(_ model.Profile, from, to model.Location, _ float64) float64 {
	return distanceOf(from, to)
}

func (linearTransport) Distance(_ model.Profile, from, to model.Location, _ float64) float64 {
	return distanceOf(from, to)
}

func distanceOf(from, to model.Location) float64 {
	d := float64(to - from)
	if d < 0 {
		d = -d
	}
	return d
}

func mustPlace(t *testing.T, loc model.Location) model.Place {
	t.Helper()
	p, err := model.NewPlace(loc, 0, nil)
	if err != nil {
		t.Fatalf("NewPlace: %v", err)
	}
	return p
}

func mustSingle(t *testing.T, id string, loc model.Location) *model.Single {
	t.Helper()
	s, err := model.NewSingle(id, []model.Place{mustPlace(t, loc)}, nil)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	return s
}

// newContext builds a problem whose fleet has one actor per element of
// routeLocations, and seeds Solution.Routes so each actor's route already
// carries its listed jobs, in order, fully assigned. This gives ruin
// operators a concrete, known tour shape to work on without depending on
// how any particular recreate heuristic would have built it.
func newContext(t *testing.T, routeLocations [][]model.Location) *model.InsertionContext {
	t.Helper()
	start := mustPlace(t, 0)

	var jobs []model.Job
	var perRoute [][]model.Job
	next := 'a'
	for _, locs := range routeLocations {
		var routeJobs []model.Job
		for _, loc := range locs {
			single := mustSingle(t, string(next), loc)
			next++
			jobs = append(jobs, single)
			routeJobs = append(routeJobs, single)
		}
		perRoute = append(perRoute, routeJobs)
	}

	shifts := make([]model.Shift, len(routeLocations))
	for i := range shifts {
		shifts[i] = model.Shift{Start: start, End: &start}
	}
	vehicle, err := model.NewVehicle("v1", "car", shifts, nil)
	if err != nil {
		t.Fatalf("NewVehicle: %v", err)
	}
	fleet, err := model.NewFleet([]*model.Vehicle{vehicle}, nil)
	if err != nil {
		t.Fatalf("NewFleet: %v", err)
	}
	problem, err := model.NewBuilder().
		WithFleet(fleet).
		WithJobs(jobs).
		WithTransport(linearTransport{}).
		WithActivityCost(passthroughActivityCost{}).
		WithPipeline(framework.NewPipeline()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	sol := model.NewSolution(problem)
	for i, actor := range fleet.Actors {
		route := model.NewRoute(actor, 0)
		for _, job := range perRoute[i] {
			single := job.Singles()[0]
			activity := model.NewJobActivity(job, single, single.Places[0], 0)
			insertAt := len(route.Tour.Activities)
			if route.Tour.End() != nil {
				insertAt--
			}
			route.Tour.InsertAt(insertAt, activity)
			sol.MarkAssigned(job)
		}
		sol.Routes = append(sol.Routes, route)
	}
	return &model.InsertionContext{Problem: problem, Solution: sol, Random: util.NewDefaultRNG(1)}
}

type passthroughActivityCost struct{}

func (passthroughActivityCost) EstimateArrival(_ *model.Route, _ *model.Activity, departure float64) float64 {
	return departure
}

func (passthroughActivityCost) EstimateDeparture(_ *model.Route, _ *model.Activity, arrival float64) float64 {
	return arrival
}

func (passthroughActivityCost) Cost(*model.Route, *model.Activity, float64) float64 { return 0 }

func countAssigned(ctx *model.InsertionContext) int {
	n := 0
	for _, r := range ctx.Solution.Routes {
		n += len(r.Tour.JobActivities())
	}
	return n
}

func TestRandomJobRemovalWithdrawsExactlyCount(t *testing.T) {
	ctx := newContext(t, [][]model.Location{{2, 4, 6, 8}})
	op := &ruin.RandomJobRemoval{Count: 2}
	op.Run(ctx)

	if len(ctx.Solution.Unassigned) != 2 {
		t.Fatalf("expected 2 withdrawn jobs, got %d", len(ctx.Solution.Unassigned))
	}
	if countAssigned(ctx) != 2 {
		t.Fatalf("expected 2 jobs left assigned, got %d", countAssigned(ctx))
	}
}

func TestRandomJobRemovalClampsCountToAvailableJobs(t *testing.T) {
	ctx := newContext(t, [][]model.Location{{2, 4}})
	op := &ruin.RandomJobRemoval{Count: 10}
	op.Run(ctx)

	if len(ctx.Solution.Unassigned) != 2 {
		t.Fatalf("expected every job withdrawn when Count exceeds availability, got %d", len(ctx.Solution.Unassigned))
	}
}

func TestRandomJobRemovalNeverWithdrawsLockedJobs(t *testing.T) {
	ctx := newContext(t, [][]model.Location{{2, 4}})
	var locked model.Job
	for _, j := range ctx.Problem.Jobs {
		locked = j
		break
	}
	ctx.Solution.Locked[locked] = struct{}{}

	op := &ruin.RandomJobRemoval{Count: 2}
	op.Run(ctx)

	if _, stillUnassigned := ctx.Solution.Unassigned[locked]; stillUnassigned {
		t.Fatalf("expected the locked job to remain assigned")
	}
}

func TestWorstJobRemovalPrefersTheDetourWithLargestSaving(t *testing.T) {
	// Tour start(0) -> a(1) -> b(2) -> c(100) -> end(0): removing c collapses
	// b->c->end into b->end, a far larger saving than removing a or b would.
	ctx := newContext(t, [][]model.Location{{1, 2, 100}})
	op := &ruin.WorstJobRemoval{Count: 1, Transport: linearTransport{}}
	op.Run(ctx)

	if len(ctx.Solution.Unassigned) != 1 {
		t.Fatalf("expected exactly 1 job withdrawn, got %d", len(ctx.Solution.Unassigned))
	}
	var withdrawn string
	for job := range ctx.Solution.Unassigned {
		withdrawn = job.ID()
	}
	if withdrawn != "c" {
		t.Fatalf("expected the outlier job at location 100 to be withdrawn, got %q", withdrawn)
	}
}

func TestRandomRouteRemovalClearsEntireRoute(t *testing.T) {
	ctx := newContext(t, [][]model.Location{{2, 4}, {6, 8}})
	op := &ruin.RandomRouteRemoval{Count: 1}
	op.Run(ctx)

	if countAssigned(ctx) != 2 {
		t.Fatalf("expected exactly one route's 2 jobs to remain assigned, got %d", countAssigned(ctx))
	}
	if len(ctx.Solution.Unassigned) != 2 {
		t.Fatalf("expected the other route's 2 jobs withdrawn, got %d", len(ctx.Solution.Unassigned))
	}
}

func TestAdjacentStringRemovalWithdrawsAContiguousRun(t *testing.T) {
	ctx := newContext(t, [][]model.Location{{1, 2, 3, 4, 5}})
	op := &ruin.AdjacentStringRemoval{Strings: 1, MinString: 2, MaxString: 2}
	op.Run(ctx)

	if len(ctx.Solution.Unassigned) != 2 {
		t.Fatalf("expected exactly 2 jobs withdrawn, got %d", len(ctx.Solution.Unassigned))
	}
}

func TestNeighbourRemovalWithdrawsSeedAndItsNearestNeighbours(t *testing.T) {
	ctx := newContext(t, [][]model.Location{{0, 1, 50, 100}})
	op := &ruin.NeighbourRemoval{Count: 2, Transport: linearTransport{}, Profile: "car"}
	op.Run(ctx)

	if len(ctx.Solution.Unassigned) != 2 {
		t.Fatalf("expected 2 jobs withdrawn (seed + 1 neighbour), got %d", len(ctx.Solution.Unassigned))
	}
}

func TestClusterRemovalWithdrawsASpatialCluster(t *testing.T) {
	// Two tight clusters: {1,2,3} and {100,101,102}.
	ctx := newContext(t, [][]model.Location{{1, 2, 3, 100, 101, 102}})
	op := &ruin.ClusterRemoval{Transport: linearTransport{}, Profile: "car", Eps: 2, MinPoints: 1, MaxRemoved: 10}
	op.Run(ctx)

	if len(ctx.Solution.Unassigned) == 0 {
		t.Fatalf("expected at least one cluster to be withdrawn")
	}
	if len(ctx.Solution.Unassigned) == 6 {
		t.Fatalf("expected only one cluster to be withdrawn, not the entire solution")
	}
}

func TestClusterRemovalIsANoOpWhenNoJobsAreAssigned(t *testing.T) {
	ctx := newContext(t, [][]model.Location{{1, 2}})
	for _, r := range ctx.Solution.Routes {
		for _, a := range r.Tour.JobActivities() {
			ctx.Solution.MarkUnassigned(a.Job, model.UnassignedReason{})
		}
	}
	op := &ruin.ClusterRemoval{Transport: linearTransport{}, Profile: "car", Eps: 1, MinPoints: 1, MaxRemoved: 10}
	op.Run(ctx) // must not panic when assignedJobs is empty.

	if len(ctx.Solution.Unassigned) != 2 {
		t.Fatalf("expected the pre-existing unassigned jobs to be untouched, got %d", len(ctx.Solution.Unassigned))
	}
}
