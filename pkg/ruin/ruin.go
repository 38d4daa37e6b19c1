// Package ruin implements the six ruin operators of spec §4.G: each removes
// a subset of already-placed, unlocked jobs from a working solution (moving
// them back into Solution.Unassigned) so a recreate heuristic
// (pkg/insertion) can reinsert them differently. RuinAndRecreate mirrors
// the orchestration in original_source's
// vrp-core/src/solver/mutation/ruin_recreate.rs: ruin, then recreate, on a
// cloned context.
package ruin

import (
	"github.com/vrpsolver/vrp/pkg/clustering"
	"github.com/vrpsolver/vrp/pkg/model"
)

// Operator removes a subset of unlocked jobs from ctx.Solution, recording
// them back into Unassigned with UnassignedReason{} (no specific code: the
// job was not rejected, it was deliberately withdrawn).
type Operator interface {
	Run(ctx *model.InsertionContext)
}

// Recreate is the insertion.Heuristic surface ruin's orchestrator needs,
// declared locally to avoid an import cycle (pkg/insertion does not need to
// know about pkg/ruin).
type Recreate interface {
	Run(ctx *model.InsertionContext)
}

// RuinAndRecreate composes one ruin Operator with one Recreate heuristic
// into a single mutation step.
type RuinAndRecreate struct {
	Ruin     Operator
	Recreate Recreate
}

// New builds a RuinAndRecreate mutation.
func New(ruinOp Operator, recreate Recreate) *RuinAndRecreate {
	return &RuinAndRecreate{Ruin: ruinOp, Recreate: recreate}
}

// Mutate clones ctx, ruins the clone, recreates it, and returns the result,
// leaving the original untouched.
func (m *RuinAndRecreate) Mutate(ctx *model.InsertionContext) *model.InsertionContext {
	next := ctx.Clone()
	m.Ruin.Run(next)
	m.Recreate.Run(next)
	return next
}

func withdraw(ctx *model.InsertionContext, job model.Job) {
	if ctx.Solution.IsLocked(job) {
		return
	}
	ctx.Solution.MarkUnassigned(job, model.UnassignedReason{})
}

// assignedJobs returns every job currently present in some route, excluding
// locked jobs.
func assignedJobs(ctx *model.InsertionContext) []model.Job {
	var out []model.Job
	for _, route := range ctx.Solution.Routes {
		for _, a := range route.Tour.JobActivities() {
			if ctx.Solution.IsLocked(a.Job) {
				continue
			}
			out = append(out, a.Job)
		}
	}
	return out
}

func acceptRoutes(ctx *model.InsertionContext, routes []*model.Route) {
	for _, r := range routes {
		ctx.Problem.Pipeline.AcceptRouteState(r)
	}
}

// representativeLocation returns the location of a job's first place,
// standing in for the job's position for distance-based operators (spec
// §4.G names no richer notion of "job location" for jobs with several
// places).
func representativeLocation(job model.Job) model.Location {
	singles := job.Singles()
	if len(singles) == 0 || len(singles[0].Places) == 0 {
		return model.UnknownLocation
	}
	return singles[0].Places[0].Location
}

// RandomJobRemoval withdraws Count randomly chosen assigned jobs.
type RandomJobRemoval struct {
	Count int
}

func (o *RandomJobRemoval) Run(ctx *model.InsertionContext) {
	jobs := assignedJobs(ctx)
	n := o.Count
	if n > len(jobs) {
		n = len(jobs)
	}
	var touched []*model.Route
	for i := 0; i < n && len(jobs) > 0; i++ {
		idx := ctx.Random.UniformInt(0, len(jobs)-1)
		job := jobs[idx]
		jobs = append(jobs[:idx], jobs[idx+1:]...)
		if r, ok := ctx.Solution.RouteFor(job); ok {
			touched = append(touched, r)
		}
		withdraw(ctx, job)
	}
	acceptRoutes(ctx, touched)
}

// WorstJobRemoval withdraws the Count assigned jobs whose removal would
// save the most travel distance (prev->job->next collapsing to prev->next),
// the classic "worst" removal heuristic.
type WorstJobRemoval struct {
	Count     int
	Transport model.TransportCost
}

func (o *WorstJobRemoval) Run(ctx *model.InsertionContext) {
	type scored struct {
		job    model.Job
		saving float64
	}
	var candidates []scored
	for _, route := range ctx.Solution.Routes {
		profile := route.Actor.Vehicle.Profile
		acts := route.Tour.Activities
		for i := 1; i < len(acts)-1; i++ {
			act := acts[i]
			if act.IsTerminal() || ctx.Solution.IsLocked(act.Job) {
				continue
			}
			prev, next := acts[i-1], acts[i+1]
			direct := o.Transport.Distance(profile, prev.Place.Location, next.Place.Location, prev.Schedule.Departure)
			viaJob := o.Transport.Distance(profile, prev.Place.Location, act.Place.Location, prev.Schedule.Departure) +
				o.Transport.Distance(profile, act.Place.Location, next.Place.Location, act.Schedule.Departure)
			candidates = append(candidates, scored{job: act.Job, saving: viaJob - direct})
		}
	}
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[j].saving > candidates[i].saving {
				candidates[i], candidates[j] = candidates[j], candidates[i]
			}
		}
	}
	n := o.Count
	if n > len(candidates) {
		n = len(candidates)
	}
	var touched []*model.Route
	seen := make(map[model.Job]struct{})
	for i := 0; i < n; i++ {
		job := candidates[i].job
		if _, dup := seen[job]; dup {
			continue
		}
		seen[job] = struct{}{}
		if r, ok := ctx.Solution.RouteFor(job); ok {
			touched = append(touched, r)
		}
		withdraw(ctx, job)
	}
	acceptRoutes(ctx, touched)
}

// RandomRouteRemoval withdraws every job on Count randomly chosen non-empty
// routes, used to diversify when per-job operators converge on the same
// local optimum.
type RandomRouteRemoval struct {
	Count int
}

func (o *RandomRouteRemoval) Run(ctx *model.InsertionContext) {
	var nonEmpty []*model.Route
	for _, r := range ctx.Solution.Routes {
		if !r.IsEmpty() {
			nonEmpty = append(nonEmpty, r)
		}
	}
	n := o.Count
	if n > len(nonEmpty) {
		n = len(nonEmpty)
	}
	var touched []*model.Route
	for i := 0; i < n && len(nonEmpty) > 0; i++ {
		idx := ctx.Random.UniformInt(0, len(nonEmpty)-1)
		route := nonEmpty[idx]
		nonEmpty = append(nonEmpty[:idx], nonEmpty[idx+1:]...)
		for _, a := range route.Tour.JobActivities() {
			withdraw(ctx, a.Job)
		}
		touched = append(touched, route)
	}
	acceptRoutes(ctx, touched)
}

// AdjacentStringRemoval withdraws one or more contiguous runs ("strings")
// of tour-adjacent jobs, per spec §4.G, each of a random length in
// [MinString, MaxString]; this preserves more route structure than
// RandomJobRemoval, giving the recreate phase a regular-shaped gap to fill.
type AdjacentStringRemoval struct {
	Strings   int
	MinString int
	MaxString int
}

func (o *AdjacentStringRemoval) Run(ctx *model.InsertionContext) {
	var touched []*model.Route
	for s := 0; s < o.Strings; s++ {
		var nonEmpty []*model.Route
		for _, r := range ctx.Solution.Routes {
			if !r.IsEmpty() {
				nonEmpty = append(nonEmpty, r)
			}
		}
		if len(nonEmpty) == 0 {
			return
		}
		route := nonEmpty[ctx.Random.UniformInt(0, len(nonEmpty)-1)]
		jobActs := route.Tour.JobActivities()
		if len(jobActs) == 0 {
			continue
		}
		length := o.MinString
		if o.MaxString > o.MinString {
			length += ctx.Random.UniformInt(0, o.MaxString-o.MinString)
		}
		if length > len(jobActs) {
			length = len(jobActs)
		}
		start := ctx.Random.UniformInt(0, len(jobActs)-length)
		for i := start; i < start+length; i++ {
			withdraw(ctx, jobActs[i].Job)
		}
		touched = append(touched, route)
	}
	acceptRoutes(ctx, touched)
}

// ClusterRemoval withdraws all jobs in one spatial cluster, discovered by
// running DBSCAN over every assigned job's representative location (spec
// §4.G), capped at MaxRemoved jobs.
type ClusterRemoval struct {
	Transport  model.TransportCost
	Profile    model.Profile
	Eps        float64
	MinPoints  int
	MaxRemoved int
}

func (o *ClusterRemoval) Run(ctx *model.InsertionContext) {
	jobs := assignedJobs(ctx)
	if len(jobs) == 0 {
		return
	}
	dist := func(i, j int) float64 {
		return o.Transport.Distance(o.Profile, representativeLocation(jobs[i]), representativeLocation(jobs[j]), 0)
	}
	clusters := clustering.DBSCAN(len(jobs), o.Eps, o.MinPoints, dist)
	if len(clusters) == 0 {
		return
	}
	cluster := clusters[ctx.Random.UniformInt(0, len(clusters)-1)]

	var touched []*model.Route
	removed := 0
	for _, idx := range cluster {
		if o.MaxRemoved > 0 && removed >= o.MaxRemoved {
			break
		}
		job := jobs[idx]
		if r, ok := ctx.Solution.RouteFor(job); ok {
			touched = append(touched, r)
		}
		withdraw(ctx, job)
		removed++
	}
	acceptRoutes(ctx, touched)
}

// NeighbourRemoval picks a random assigned seed job and withdraws it plus
// its Count-1 spatially nearest assigned neighbours, per spec §4.G.
type NeighbourRemoval struct {
	Count     int
	Transport model.TransportCost
	Profile   model.Profile
}

func (o *NeighbourRemoval) Run(ctx *model.InsertionContext) {
	jobs := assignedJobs(ctx)
	if len(jobs) == 0 {
		return
	}
	seedIdx := ctx.Random.UniformInt(0, len(jobs)-1)
	seed := jobs[seedIdx]
	seedLoc := representativeLocation(seed)

	type distanced struct {
		job  model.Job
		dist float64
	}
	others := make([]distanced, 0, len(jobs)-1)
	for i, job := range jobs {
		if i == seedIdx {
			continue
		}
		d := o.Transport.Distance(o.Profile, seedLoc, representativeLocation(job), 0)
		others = append(others, distanced{job: job, dist: d})
	}
	for i := 0; i < len(others); i++ {
		for j := i + 1; j < len(others); j++ {
			if others[j].dist < others[i].dist {
				others[i], others[j] = others[j], others[i]
			}
		}
	}

	var touched []*model.Route
	if r, ok := ctx.Solution.RouteFor(seed); ok {
		touched = append(touched, r)
	}
	withdraw(ctx, seed)

	n := o.Count - 1
	if n > len(others) {
		n = len(others)
	}
	for i := 0; i < n; i++ {
		job := others[i].job
		if r, ok := ctx.Solution.RouteFor(job); ok {
			touched = append(touched, r)
		}
		withdraw(ctx, job)
	}
	acceptRoutes(ctx, touched)
}
