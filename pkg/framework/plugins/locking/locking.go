// Package locking implements the Locking constraint module from spec §4.D:
// strict/sequence/any relations over (vehicle, ordered job list). Strict
// relations forbid any intervening jobs; sequence forbids reorderings (but
// allows interleaving); any forbids reassignment to another actor only.
package locking

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// RelationType distinguishes the three locking strengths (spec §4.D).
type RelationType int

const (
	Strict RelationType = iota
	Sequence
	Any
)

// Relation pins an ordered list of jobs to a single vehicle id, with a
// strength governing how strictly the order must be respected.
type Relation struct {
	Type      RelationType
	VehicleID string
	Jobs      []model.Job
}

func (r Relation) indexOf(job model.Job) int {
	for i, j := range r.Jobs {
		if j == job {
			return i
		}
	}
	return -1
}

func (r Relation) contains(job model.Job) bool {
	return r.indexOf(job) >= 0
}

// Module is the Locking ConstraintModule.
type Module struct {
	Relations []Relation
}

// New builds the Locking module over the given relations.
func New(relations []Relation) *Module {
	return &Module{Relations: relations}
}

func (m *Module) Name() string               { return "locking" }
func (m *Module) StateKeys() []routestate.Key { return nil }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}
func (m *Module) AcceptSolution(*model.Solution)                     {}

func (m *Module) relationFor(job model.Job) (Relation, bool) {
	for _, r := range m.Relations {
		if r.contains(job) {
			return r, true
		}
	}
	return Relation{}, false
}

func (m *Module) HardRouteConstraints() []framework.HardRoute {
	return []framework.HardRoute{m.checkRoute}
}

// checkRoute enforces vehicle pinning: every relation strength forbids
// reassigning a pinned job to a different vehicle than the relation names.
func (m *Module) checkRoute(_ *model.Solution, route *model.Route, job model.Job) (bool, int) {
	rel, ok := m.relationFor(job)
	if !ok {
		return true, 0
	}
	if route.Actor.Vehicle.Id != rel.VehicleID {
		return false, int(apierrors.ReasonLocking)
	}
	return true, 0
}

func (m *Module) HardActivityConstraints() []framework.HardActivity {
	return []framework.HardActivity{m.checkActivity}
}

// checkActivity enforces ordering for Strict/Sequence relations by
// simulating the candidate's insertion and scanning the resulting job
// sequence for violations. Any relations impose no positional constraint.
// A candidate outside every relation is rejected when it would land between
// two members of a Strict relation.
func (m *Module) checkActivity(route *model.Route, prev, next, candidate *model.Activity) (bool, int, bool) {
	if candidate.Job == nil {
		return true, 0, false
	}
	rel, ok := m.relationFor(candidate.Job)
	if !ok {
		seq := simulatedJobSequence(route, prev, candidate)
		for _, r := range m.Relations {
			if r.Type != Strict {
				continue
			}
			for i := 1; i+1 < len(seq); i++ {
				if seq[i] == candidate.Job && r.contains(seq[i-1]) && r.contains(seq[i+1]) {
					return false, int(apierrors.ReasonLocking), false
				}
			}
		}
		return true, 0, false
	}
	if rel.Type == Any {
		return true, 0, false
	}

	seq := simulatedJobSequence(route, prev, candidate)
	relIdx := 0
	lastSeenAt := -1
	for pos, j := range seq {
		idx := rel.indexOf(j)
		if idx < 0 {
			if rel.Type == Strict && lastSeenAt >= 0 && relIdx < len(rel.Jobs) {
				// a foreign job appeared between two relation members.
				return false, int(apierrors.ReasonLocking), false
			}
			continue
		}
		if idx != relIdx {
			return false, int(apierrors.ReasonLocking), false
		}
		relIdx++
		lastSeenAt = pos
	}
	return true, 0, false
}

// simulatedJobSequence returns the tour's job list as it would read with
// candidate spliced in immediately after prev.
func simulatedJobSequence(route *model.Route, prev, candidate *model.Activity) []model.Job {
	jobs := make([]model.Job, 0, len(route.Tour.Activities)+1)
	for _, a := range route.Tour.Activities {
		if !a.IsTerminal() {
			jobs = append(jobs, a.Job)
		}
		if a == prev {
			jobs = append(jobs, candidate.Job)
		}
	}
	return jobs
}
