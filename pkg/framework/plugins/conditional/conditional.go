// Package conditional implements the Conditional constraint module from
// spec §4.D: jobs may be activated or deactivated based on the current
// solution state (e.g. unlock a break only if its vehicle is already used).
package conditional

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// Predicate reports whether job may be assigned to route given the current
// solution state.
type Predicate func(sol *model.Solution, route *model.Route, job model.Job) bool

// Module is the Conditional ConstraintModule; it consults a set of
// predicates keyed by job and rejects assignment when any predicate it owns
// for that job returns false.
type Module struct {
	predicates map[model.Job][]Predicate
}

// New builds an empty Conditional module.
func New() *Module {
	return &Module{predicates: make(map[model.Job][]Predicate)}
}

// Activate registers a predicate gating job's assignment.
func (m *Module) Activate(job model.Job, p Predicate) {
	m.predicates[job] = append(m.predicates[job], p)
}

// UnlockBreakWhenVehicleUsed is the canonical predicate named in spec
// §4.D: a break is only eligible once its vehicle's route already carries
// at least one non-break job activity.
func UnlockBreakWhenVehicleUsed() Predicate {
	return func(_ *model.Solution, route *model.Route, _ model.Job) bool {
		for _, a := range route.Tour.JobActivities() {
			if a.Single == nil || a.Single.Dims.GetJobType() != model.JobBreak {
				return true
			}
		}
		return false
	}
}

func (m *Module) Name() string               { return "conditional" }
func (m *Module) StateKeys() []routestate.Key { return nil }
func (m *Module) HardActivityConstraints() []framework.HardActivity { return nil }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}
func (m *Module) AcceptSolution(*model.Solution)                     {}

func (m *Module) HardRouteConstraints() []framework.HardRoute {
	return []framework.HardRoute{m.checkRoute}
}

func (m *Module) checkRoute(sol *model.Solution, route *model.Route, job model.Job) (bool, int) {
	for _, p := range m.predicates[job] {
		if !p(sol, route, job) {
			return false, int(apierrors.ReasonConditionalInactive)
		}
	}
	return true, 0
}
