package insertion_test

import (
	"testing"

	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/insertion"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/util"
)

// linearTransport treats Location as a position on a line: duration and
// distance both equal the absolute coordinate difference.
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

// passthroughActivityCost never delays an arrival or charges a cost,
// isolating the tests on the evaluator's feasibility/ordering logic.
type passthroughActivityCost struct{}

func (passthroughActivityCost) EstimateArrival(_ *model.Route, _ *model.Activity, departure float64) float64 {
	return departure
}

func (passthroughActivityCost) EstimateDeparture(_ *model.Route, _ *model.Activity, arrival float64) float64 {
	return arrival
}

func (passthroughActivityCost) Cost(*model.Route, *model.Activity, float64) float64 { return 0 }

func mustPlace(t *testing.T, loc model.Location, windows ...model.TimeWindow) model.Place {
	t.Helper()
	p, err := model.NewPlace(loc, 0, windows)
	if err != nil {
		t.Fatalf("NewPlace: %v", err)
	}
	return p
}

func mustSingle(t *testing.T, id string, places ...model.Place) *model.Single {
	t.Helper()
	s, err := model.NewSingle(id, places, nil)
	if err != nil {
		t.Fatalf("NewSingle: %v", err)
	}
	return s
}

// newTestProblem builds a problem with one vehicle offering actorCount
// shifts, so tests needing several independent actors don't need several
// distinct vehicles.
func newTestProblem(t *testing.T, actorCount int, jobs []model.Job) (*model.Problem, *model.Actor) {
	t.Helper()
	start := mustPlace(t, 0)
	shift := model.Shift{Start: start, End: &start}
	shifts := make([]model.Shift, actorCount)
	for i := range shifts {
		shifts[i] = shift
	}
	veh, err := model.NewVehicle("v1", "car", shifts, nil)
	if err != nil {
		t.Fatalf("NewVehicle: %v", err)
	}
	fleet, err := model.NewFleet([]*model.Vehicle{veh}, nil)
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
	return problem, fleet.Actors[0]
}

func TestEvaluateFindsCheapestFeasiblePosition(t *testing.T) {
	job := mustSingle(t, "job-1", mustPlace(t, 5))
	problem, actor := newTestProblem(t, 1, []model.Job{job})

	route := model.NewRoute(actor, 0)
	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	rng := util.NewDefaultRNG(1)

	result := eval.Evaluate(model.NewSolution(problem), route, job, insertion.AnyPosition, rng)
	if !result.Feasible {
		t.Fatalf("expected a feasible insertion, got code %d", result.Code)
	}
	// An empty pipeline contributes no soft cost; feasibility and placement
	// are what this asserts, not a travel-cost figure.
	if result.Cost != 0 {
		t.Fatalf("expected zero soft cost with no constraint modules registered, got %v", result.Cost)
	}
	if len(result.Activities) != 1 {
		t.Fatalf("expected 1 activity, got %d", len(result.Activities))
	}
	if result.Activities[0].Place.Location != 5 {
		t.Fatalf("expected the activity to sit at location 5, got %v", result.Activities[0].Place.Location)
	}
}

func TestEvaluateRejectsTimeWindowViolation(t *testing.T) {
	narrow := model.TimeWindow{Start: 0, End: 1}
	job := mustSingle(t, "job-1", mustPlace(t, 100, narrow))
	problem, actor := newTestProblem(t, 1, []model.Job{job})

	route := model.NewRoute(actor, 0)
	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	rng := util.NewDefaultRNG(1)

	result := eval.Evaluate(model.NewSolution(problem), route, job, insertion.AnyPosition, rng)
	if result.Feasible {
		t.Fatalf("expected the distant, narrow-window place to be infeasible")
	}
}

func TestEvaluateConcretePositionRestrictsSearch(t *testing.T) {
	job := mustSingle(t, "job-1", mustPlace(t, 5))
	problem, actor := newTestProblem(t, 1, []model.Job{job})
	route := model.NewRoute(actor, 0)
	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	rng := util.NewDefaultRNG(1)

	// Leg 0 is start->end on a single-leg route; Concrete(0) must still find it.
	result := eval.Evaluate(model.NewSolution(problem), route, job, insertion.ConcretePosition(0), rng)
	if !result.Feasible {
		t.Fatalf("expected leg 0 to be feasible")
	}
	if result.LegIndex != 0 {
		t.Fatalf("expected leg index 0, got %d", result.LegIndex)
	}
}

func TestCheapestInsertionPlacesEveryReachableJob(t *testing.T) {
	near := mustSingle(t, "near", mustPlace(t, 2))
	far := mustSingle(t, "far", mustPlace(t, 8))
	problem, _ := newTestProblem(t, 1, []model.Job{near, far})

	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	heuristic := insertion.NewCheapestInsertion(eval)
	ctx := model.NewInsertionContext(problem, util.NewDefaultRNG(1))

	heuristic.Run(ctx)

	if len(ctx.Solution.Unassigned) != 0 {
		t.Fatalf("expected every job to be placed, got %d unassigned", len(ctx.Solution.Unassigned))
	}
	if len(ctx.Solution.Routes) != 1 {
		t.Fatalf("expected a single route to carry both jobs, got %d", len(ctx.Solution.Routes))
	}
	if got := len(ctx.Solution.Routes[0].Tour.JobActivities()); got != 2 {
		t.Fatalf("expected 2 job activities in the route, got %d", got)
	}
}

func TestCheapestInsertionMarksUnreachableJobAsUnassigned(t *testing.T) {
	narrow := model.TimeWindow{Start: 0, End: 1}
	unreachable := mustSingle(t, "unreachable", mustPlace(t, 100, narrow))
	problem, _ := newTestProblem(t, 1, []model.Job{unreachable})

	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	heuristic := insertion.NewCheapestInsertion(eval)
	ctx := model.NewInsertionContext(problem, util.NewDefaultRNG(1))

	heuristic.Run(ctx)

	reason, stillUnassigned := ctx.Solution.Unassigned[unreachable]
	if !stillUnassigned {
		t.Fatalf("expected the job to remain unassigned")
	}
	if reason.Code == 0 {
		t.Fatalf("expected a non-zero infeasibility code recorded")
	}
}

func TestRegretInsertionPlacesEveryReachableJob(t *testing.T) {
	jobs := []model.Job{
		mustSingle(t, "a", mustPlace(t, 2)),
		mustSingle(t, "b", mustPlace(t, 4)),
		mustSingle(t, "c", mustPlace(t, 6)),
	}
	problem, _ := newTestProblem(t, 2, jobs)

	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	heuristic := insertion.NewRegretInsertion(eval, 2)
	ctx := model.NewInsertionContext(problem, util.NewDefaultRNG(7))

	heuristic.Run(ctx)

	if len(ctx.Solution.Unassigned) != 0 {
		t.Fatalf("expected every job to be placed, got %d unassigned", len(ctx.Solution.Unassigned))
	}
}

func TestBlinkInsertionFallsBackWhenBlinkHidesEveryRoute(t *testing.T) {
	job := mustSingle(t, "job-1", mustPlace(t, 5))
	problem, _ := newTestProblem(t, 1, []model.Job{job})

	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	heuristic := insertion.NewBlinkInsertion(eval, 1) // always blinks, forcing the retry path
	ctx := model.NewInsertionContext(problem, util.NewDefaultRNG(3))

	heuristic.Run(ctx)

	if len(ctx.Solution.Unassigned) != 0 {
		t.Fatalf("expected the retry-without-blink pass to still place the job")
	}
}

func TestPerturbationInsertionVisitsEveryJobOnce(t *testing.T) {
	jobs := []model.Job{
		mustSingle(t, "a", mustPlace(t, 1)),
		mustSingle(t, "b", mustPlace(t, 2)),
		mustSingle(t, "c", mustPlace(t, 3)),
	}
	problem, _ := newTestProblem(t, 3, jobs)

	eval := insertion.New(problem.Pipeline.(*framework.Pipeline), linearTransport{}, passthroughActivityCost{})
	heuristic := insertion.NewPerturbationInsertion(eval)
	ctx := model.NewInsertionContext(problem, util.NewDefaultRNG(9))

	heuristic.Run(ctx)

	if len(ctx.Solution.Unassigned) != 0 {
		t.Fatalf("expected every job to be placed, got %d unassigned", len(ctx.Solution.Unassigned))
	}
}
