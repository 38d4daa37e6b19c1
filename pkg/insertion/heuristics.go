package insertion

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/util"
)

// Heuristic is a recreate strategy (component F): given a working
// InsertionContext, it inserts as many of the context's unassigned,
// unlocked jobs as it can find feasible placements for, leaving the rest in
// Solution.Unassigned.
type Heuristic interface {
	Run(ctx *model.InsertionContext)
}

// candidateRoutesFor returns every existing route plus one fresh, empty
// route per actor not yet represented in the solution, so a job may open a
// new vehicle rather than being forced onto an already-used one. Fresh
// routes are only appended to ctx.Solution.Routes once a job actually lands
// on them.
func candidateRoutesFor(ctx *model.InsertionContext) []*model.Route {
	routes := make([]*model.Route, 0, len(ctx.Solution.Routes)+len(ctx.Problem.Fleet.Actors))
	used := make(map[*model.Actor]struct{}, len(ctx.Solution.Routes))
	for _, r := range ctx.Solution.Routes {
		routes = append(routes, r)
		used[r.Actor] = struct{}{}
	}
	for _, a := range ctx.Problem.Fleet.Actors {
		if _, ok := used[a]; ok {
			continue
		}
		routes = append(routes, model.NewRoute(a, earliestDeparture(a)))
	}
	return routes
}

func earliestDeparture(actor *model.Actor) float64 {
	start := actor.Shift().Start
	if t, ok := start.EarliestFeasibleArrival(0); ok {
		return t
	}
	return 0
}

// attachRoute registers route in ctx.Solution.Routes if it is not already
// present (i.e. it was a fresh candidate route that just received its first
// job).
func attachRoute(ctx *model.InsertionContext, route *model.Route) {
	for _, r := range ctx.Solution.Routes {
		if r == route {
			return
		}
	}
	ctx.Solution.Routes = append(ctx.Solution.Routes, route)
}

// applyInsertion commits result's activities into route at the found leg,
// marks job assigned, and refreshes route state.
func applyInsertion(ctx *model.InsertionContext, job model.Job, result Result) {
	route := result.Route
	attachRoute(ctx, route)
	route.Tour.InsertAt(result.LegIndex+1, result.Activities...)
	ctx.Problem.Pipeline.AcceptRouteState(route)
	ctx.Solution.MarkAssigned(job)
}

// unassignedJobs returns every job in ctx.Solution.Unassigned that is not
// locked, in a stable order (Problem.Jobs order), so heuristics are
// deterministic given a deterministic RNG stream.
func unassignedJobs(ctx *model.InsertionContext) []model.Job {
	out := make([]model.Job, 0, len(ctx.Solution.Unassigned))
	for _, job := range ctx.Problem.Jobs {
		if ctx.Solution.IsLocked(job) {
			continue
		}
		if _, ok := ctx.Solution.Unassigned[job]; ok {
			out = append(out, job)
		}
	}
	return out
}

// jobEvaluation is one job's best-known insertion across candidate routes,
// plus (for RegretInsertion) the second-best cost for computing regret.
type jobEvaluation struct {
	job          model.Job
	best         Result
	secondCost   float64
	hasSecond    bool
	failedCode   int
	anyFeasible  bool
}

func evaluateJob(e *Evaluator, ctx *model.InsertionContext, job model.Job, routes []*model.Route, blinkP float64) jobEvaluation {
	eval := jobEvaluation{job: job, failedCode: int(apierrors.ReasonUnreachable)}
	for _, route := range routes {
		if blinkP > 0 && ctx.Random.IsHit(blinkP) {
			continue
		}
		result := e.Evaluate(ctx.Solution, route, job, AnyPosition, ctx.Random.(util.RNG))
		if !result.Feasible {
			eval.failedCode = result.Code
			continue
		}
		eval.anyFeasible = true
		if !eval.best.Feasible || result.Cost < eval.best.Cost {
			if eval.best.Feasible {
				eval.secondCost = eval.best.Cost
				eval.hasSecond = true
			}
			eval.best = result
		} else if !eval.hasSecond || result.Cost < eval.secondCost {
			eval.secondCost = result.Cost
			eval.hasSecond = true
		}
	}
	return eval
}

func markUnassignable(ctx *model.InsertionContext, job model.Job, code int) {
	ctx.Solution.Unassigned[job] = model.UnassignedReason{Code: code}
}

// CheapestInsertion repeatedly inserts the feasible job with the globally
// lowest insertion cost until no unassigned, unlocked job has any feasible
// placement left.
type CheapestInsertion struct {
	Evaluator *Evaluator
}

// NewCheapestInsertion builds a CheapestInsertion heuristic.
func NewCheapestInsertion(e *Evaluator) *CheapestInsertion { return &CheapestInsertion{Evaluator: e} }

func (h *CheapestInsertion) Run(ctx *model.InsertionContext) {
	for {
		jobs := unassignedJobs(ctx)
		if len(jobs) == 0 {
			return
		}
		routes := candidateRoutesFor(ctx)

		var bestJob model.Job
		var bestResult Result
		found := false
		for _, job := range jobs {
			eval := evaluateJob(h.Evaluator, ctx, job, routes, 0)
			if !eval.anyFeasible {
				markUnassignable(ctx, job, eval.failedCode)
				continue
			}
			if !found || eval.best.Cost < bestResult.Cost {
				bestJob, bestResult, found = job, eval.best, true
			}
		}
		if !found {
			return
		}
		applyInsertion(ctx, bestJob, bestResult)
	}
}

// RegretInsertion inserts, at each step, the job whose regret — the cost
// gap between its best and second-best route — is largest, breaking ties on
// lowest best cost. This prioritises jobs that get drastically more
// expensive if their best route is taken by something else. K is stored
// but not consulted: the gap is always taken against the second-best
// route, whatever K holds.
type RegretInsertion struct {
	Evaluator *Evaluator
	K         int
}

// NewRegretInsertion builds a RegretInsertion(k) heuristic; k must be >= 2.
func NewRegretInsertion(e *Evaluator, k int) *RegretInsertion {
	if k < 2 {
		k = 2
	}
	return &RegretInsertion{Evaluator: e, K: k}
}

func (h *RegretInsertion) Run(ctx *model.InsertionContext) {
	for {
		jobs := unassignedJobs(ctx)
		if len(jobs) == 0 {
			return
		}
		routes := candidateRoutesFor(ctx)

		var bestJob model.Job
		var bestResult Result
		bestRegret := -1.0
		found := false
		for _, job := range jobs {
			eval := evaluateJob(h.Evaluator, ctx, job, routes, 0)
			if !eval.anyFeasible {
				markUnassignable(ctx, job, eval.failedCode)
				continue
			}
			regret := 0.0
			if eval.hasSecond {
				regret = eval.secondCost - eval.best.Cost
			}
			if !found || regret > bestRegret || (regret == bestRegret && eval.best.Cost < bestResult.Cost) {
				bestJob, bestResult, bestRegret, found = job, eval.best, regret, true
			}
		}
		if !found {
			return
		}
		applyInsertion(ctx, bestJob, bestResult)
	}
}

// BlinkInsertion is CheapestInsertion with a per-route "blink" probability:
// each candidate route is skipped with probability P, trading solution
// quality for speed and for escaping local optima the deterministic
// cheapest scan would always reach the same way.
type BlinkInsertion struct {
	Evaluator *Evaluator
	P         float64
}

// NewBlinkInsertion builds a BlinkInsertion(p) heuristic.
func NewBlinkInsertion(e *Evaluator, p float64) *BlinkInsertion {
	return &BlinkInsertion{Evaluator: e, P: p}
}

func (h *BlinkInsertion) Run(ctx *model.InsertionContext) {
	for {
		jobs := unassignedJobs(ctx)
		if len(jobs) == 0 {
			return
		}
		routes := candidateRoutesFor(ctx)

		var bestJob model.Job
		var bestResult Result
		found := false
		for _, job := range jobs {
			eval := evaluateJob(h.Evaluator, ctx, job, routes, h.P)
			if !eval.anyFeasible {
				// A blink may have hidden every feasible route; retry once
				// without blinking before giving up on this pass.
				eval = evaluateJob(h.Evaluator, ctx, job, routes, 0)
				if !eval.anyFeasible {
					markUnassignable(ctx, job, eval.failedCode)
					continue
				}
			}
			if !found || eval.best.Cost < bestResult.Cost {
				bestJob, bestResult, found = job, eval.best, true
			}
		}
		if !found {
			return
		}
		applyInsertion(ctx, bestJob, bestResult)
	}
}

// PerturbationInsertion inserts unassigned jobs in a single randomly
// shuffled pass, each at its cheapest feasible route, without the
// recompute-every-step global comparison the other heuristics perform. It
// trades optimality for speed, intended for the many cheap recreate calls a
// ruin/recreate inner loop makes per generation (spec §4.F).
type PerturbationInsertion struct {
	Evaluator *Evaluator
}

// NewPerturbationInsertion builds a PerturbationInsertion heuristic.
func NewPerturbationInsertion(e *Evaluator) *PerturbationInsertion {
	return &PerturbationInsertion{Evaluator: e}
}

func (h *PerturbationInsertion) Run(ctx *model.InsertionContext) {
	jobs := unassignedJobs(ctx)
	shuffled := make([]model.Job, len(jobs))
	copy(shuffled, jobs)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := ctx.Random.UniformInt(0, i)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	for _, job := range shuffled {
		routes := candidateRoutesFor(ctx)
		eval := evaluateJob(h.Evaluator, ctx, job, routes, 0)
		if !eval.anyFeasible {
			markUnassignable(ctx, job, eval.failedCode)
			continue
		}
		applyInsertion(ctx, job, eval.best)
	}
}
