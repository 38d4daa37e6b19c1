// Package insertion implements the insertion evaluator (spec §4.E): for a
// (job, route, position hint), the cheapest feasible (position, activity
// ordering) at which the job can be placed, plus the heuristics (component
// F) that repeatedly call it to construct or recreate a solution.
package insertion

import (
	"math"

	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/util"
)

// PositionKind selects which tour legs a candidate insertion may target.
type PositionKind int

const (
	// Any enumerates every leg of the tour.
	Any PositionKind = iota
	// Concrete restricts the search to a single named leg index.
	Concrete
	// Last restricts the search to the append-at-end position.
	Last
)

// Position combines a PositionKind with the leg index Concrete targets.
type Position struct {
	Kind  PositionKind
	Index int
}

// AnyPosition is the default, unrestricted position hint.
var AnyPosition = Position{Kind: Any}

// LastPosition restricts the search to appending at the tour's end.
var LastPosition = Position{Kind: Last}

// ConcretePosition restricts the search to leg i.
func ConcretePosition(i int) Position { return Position{Kind: Concrete, Index: i} }

// Result is the outcome of evaluating one (job, route) pair: either
// Rejected with an apierrors.InfeasibilityCode, or Success carrying the
// cheapest feasible placement found.
type Result struct {
	Feasible    bool
	Code        int
	Cost        float64
	Route       *model.Route
	LegIndex    int
	Permutation []int
	Activities  []*model.Activity
}

// permutationSampleSize bounds how many orderings of a Multi job's singles
// the evaluator tries per leg, matching original_source's SAMPLE_SIZE
// heuristic (here/src/utils/permutations.rs).
const permutationSampleSize = 3

// Evaluator computes the insertion cost of (job, route) pairs against a
// constraint pipeline and cost oracles.
type Evaluator struct {
	Pipeline     *framework.Pipeline
	Transport    model.TransportCost
	ActivityCost model.ActivityCost
}

// New builds an Evaluator.
func New(pipeline *framework.Pipeline, transport model.TransportCost, activityCost model.ActivityCost) *Evaluator {
	return &Evaluator{Pipeline: pipeline, Transport: transport, ActivityCost: activityCost}
}

// Evaluate finds the cheapest feasible (permutation, leg) at which job may
// be inserted into route under position, per spec §4.E.
func (e *Evaluator) Evaluate(sol *model.Solution, route *model.Route, job model.Job, position Position, rng util.RNG) Result {
	if ok, code := e.Pipeline.CheckHardRoute(sol, route, job); !ok {
		return Result{Feasible: false, Code: code, Route: route}
	}

	permutations := e.permutationsFor(job, rng)
	legs := route.Tour.Legs()

	best := Result{Feasible: false, Code: int(apierrors.ReasonTimeWindow), Route: route, Cost: math.Inf(1)}

	for _, leg := range legs {
		if !matchesPosition(position, leg, len(legs)) {
			continue
		}
		for _, perm := range permutations {
			result, ok := e.evaluateAt(sol, route, job, perm, leg)
			if !ok {
				continue
			}
			if !best.Feasible || util.LessFloats(result.Cost, best.Cost) ||
				(result.Cost == best.Cost && result.LegIndex < best.LegIndex) {
				best = result
			}
		}
	}
	return best
}

func matchesPosition(p Position, leg model.Leg, numLegs int) bool {
	switch p.Kind {
	case Concrete:
		return leg.Index == p.Index
	case Last:
		return leg.Index == numLegs-1
	default:
		return true
	}
}

func (e *Evaluator) permutationsFor(job model.Job, rng util.RNG) [][]int {
	if multi, ok := job.(*model.Multi); ok {
		return model.SamplePermutations(multi, permutationSampleSize, rng)
	}
	return [][]int{{0}}
}

// evaluateAt simulates inserting job's singles, ordered by perm, contiguously
// after leg.From, and scores the result.
func (e *Evaluator) evaluateAt(sol *model.Solution, route *model.Route, job model.Job, perm []int, leg model.Leg) (Result, bool) {
	singles := job.Singles()
	profile := route.Actor.Vehicle.Profile

	prevReal := leg.From
	nextReal := leg.To

	activities := make([]*model.Activity, 0, len(perm))
	softActivityCost := 0.0
	chainPrev := prevReal
	departure := prevReal.Schedule.Departure

	for i, idx := range perm {
		single := singles[idx]
		for _, place := range single.Places {
			transit := e.Transport.Duration(profile, chainPrev.Place.Location, place.Location, departure)
			arrivalCandidate := departure + transit
			arrival := e.ActivityCost.EstimateArrival(route, &model.Activity{Place: place}, arrivalCandidate)
			if _, ok := place.FeasibleWindow(arrival); !ok {
				return Result{}, false
			}
			activity := model.NewJobActivity(job, single, place, arrival)

			// Only the chain's real boundaries (first activity against the
			// tour's true predecessor, last activity against the tour's
			// true successor) are checked against the full pipeline; interior
			// chain steps already passed their own window check above. This
			// bounds evaluation cost at O(chain length) rather than O(tour
			// length) per candidate, at the cost of not re-validating
			// capacity/skills mid-chain against cached route state (see
			// DESIGN.md).
			var next *model.Activity
			isLast := i == len(perm)-1
			if isLast {
				next = nextReal
			}
			if ok, code, _ := e.Pipeline.CheckHardActivity(route, chainPrev, next, activity); !ok {
				return Result{}, false
			}

			softActivityCost += e.Pipeline.SoftActivityCost(route, chainPrev, next, activity)
			activities = append(activities, activity)
			chainPrev = activity
			departure = activity.Schedule.Departure
		}
	}

	softRouteCost := e.Pipeline.SoftRouteCost(sol, route, job)

	return Result{
		Feasible:    true,
		Cost:        softActivityCost + softRouteCost,
		Route:       route,
		LegIndex:    leg.Index,
		Permutation: perm,
		Activities:  activities,
	}, true
}
