package model

// UnassignedReason attaches an infeasibility code plus per-(actor) rejection
// detail to a job that did not make it into any route (spec §7 user-visible
// failure contract).
type UnassignedReason struct {
	Code    int
	Details []RejectionDetail
}

// RejectionDetail names the actor that rejected a job and the constraint
// responsible, per spec §7.
type RejectionDetail struct {
	VehicleID  string
	ShiftIndex int
	Code       int
}

// Solution is a sequence of Routes, the set of jobs that could not be
// placed (with reasons), and the set of locked jobs that must not move
// (spec §3).
type Solution struct {
	Problem    *Problem
	Routes     []*Route
	Unassigned map[Job]UnassignedReason
	Locked     map[Job]struct{}
}

// NewSolution returns an empty solution (no routes, every job unassigned)
// over problem, matching the "all jobs unassigned" boundary case (spec §8).
func NewSolution(problem *Problem) *Solution {
	unassigned := make(map[Job]UnassignedReason, len(problem.Jobs))
	for _, j := range problem.Jobs {
		unassigned[j] = UnassignedReason{}
	}
	return &Solution{
		Problem:    problem,
		Unassigned: unassigned,
		Locked:     make(map[Job]struct{}),
	}
}

// IsLocked reports whether job must not be moved by ruin/recreate.
func (s *Solution) IsLocked(job Job) bool {
	_, ok := s.Locked[job]
	return ok
}

// RouteFor returns the route currently carrying job, and whether one exists.
func (s *Solution) RouteFor(job Job) (*Route, bool) {
	for _, r := range s.Routes {
		if r.Tour.HasJob(job) {
			return r, true
		}
	}
	return nil, false
}

// MarkUnassigned removes job from every route (if present) and records it in
// Unassigned with reason.
func (s *Solution) MarkUnassigned(job Job, reason UnassignedReason) {
	for _, r := range s.Routes {
		r.Tour.RemoveJob(job)
	}
	s.Unassigned[job] = reason
}

// MarkAssigned removes job from Unassigned once it has been placed into a
// route by the insertion evaluator.
func (s *Solution) MarkAssigned(job Job) {
	delete(s.Unassigned, job)
}

// PruneEmptyRoutes drops every route whose tour carries no job activities,
// per spec §3's "an empty route is removable" lifecycle rule.
func (s *Solution) PruneEmptyRoutes() {
	out := s.Routes[:0:0]
	for _, r := range s.Routes {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	s.Routes = out
}

// Clone deep-copies routes (each Route.Clone is independent) and shallow-
// copies the Unassigned/Locked maps' keys (Jobs are shared, identity-
// compared, immutable), giving InsertionContext structural sharing where
// safe and a deep copy where mutation requires it (spec §3 lifecycle).
func (s *Solution) Clone() *Solution {
	routes := make([]*Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.Clone()
	}
	unassigned := make(map[Job]UnassignedReason, len(s.Unassigned))
	for j, r := range s.Unassigned {
		unassigned[j] = r
	}
	locked := make(map[Job]struct{}, len(s.Locked))
	for j := range s.Locked {
		locked[j] = struct{}{}
	}
	return &Solution{Problem: s.Problem, Routes: routes, Unassigned: unassigned, Locked: locked}
}

// InsertionContext is the working solution passed through mutation: a
// random handle, the shared problem, and the mutable solution value
// (spec §3).
type InsertionContext struct {
	Problem  *Problem
	Solution *Solution
	Random   RNGHandle
}

// RNGHandle is the minimal RNG surface model needs; pkg/util.RNG satisfies
// it, kept here to avoid model depending on pkg/util's full surface.
type RNGHandle interface {
	UniformInt(min, max int) int
	UniformReal(min, max float64) float64
	IsHit(p float64) bool
}

// NewInsertionContext seeds a fresh working context with an empty solution.
func NewInsertionContext(problem *Problem, random RNGHandle) *InsertionContext {
	return &InsertionContext{Problem: problem, Solution: NewSolution(problem), Random: random}
}

// Clone returns an independent InsertionContext: the Solution is deep-
// copied (per Solution.Clone), Problem and Random handle are shared,
// matching spec §3's "cloned cheaply... deep copy where required" rule —
// the random handle itself is split by the caller when parallel forking
// needs independent streams.
func (ic *InsertionContext) Clone() *InsertionContext {
	return &InsertionContext{Problem: ic.Problem, Solution: ic.Solution.Clone(), Random: ic.Random}
}
