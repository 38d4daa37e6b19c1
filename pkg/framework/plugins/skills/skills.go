// Package skills implements the Skills HardRoute constraint from spec §4.D:
// a job's required skill set must be a subset of its candidate vehicle's
// skill set.
package skills

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// Module is the Skills ConstraintModule. It owns no state keys: skill sets
// are static, read directly off Dimensions rather than cached.
type Module struct{}

// New builds the Skills module.
func New() *Module { return &Module{} }

func (m *Module) Name() string                                      { return "skills" }
func (m *Module) StateKeys() []routestate.Key                       { return nil }
func (m *Module) HardActivityConstraints() []framework.HardActivity { return nil }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}
func (m *Module) AcceptSolution(*model.Solution)                    {}

func (m *Module) HardRouteConstraints() []framework.HardRoute {
	return []framework.HardRoute{m.checkRoute}
}

func (m *Module) checkRoute(_ *model.Solution, route *model.Route, job model.Job) (bool, int) {
	required := job.Dimensions().GetSkills()
	if len(required) == 0 {
		return true, 0
	}
	if !route.Actor.HasSkills(required) {
		return false, int(apierrors.ReasonSkills)
	}
	return true, 0
}
