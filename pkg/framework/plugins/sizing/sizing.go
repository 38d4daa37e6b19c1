// Package sizing implements the SizingConstraintModule placeholder named in
// spec §9. SPEC_FULL.md resolves it as a SoftRoute penalty discouraging
// routes whose activity count exceeds a configured target, since nothing
// else in the core bounds route length when the objective doesn't
// otherwise penalise vehicle count growth sharply enough.
package sizing

import (
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// Module is the SizingConstraintModule.
type Module struct {
	TargetActivities int
	PenaltyPerExcess float64
}

// New builds the module with a target route size and a per-excess-activity
// penalty.
func New(targetActivities int, penaltyPerExcess float64) *Module {
	return &Module{TargetActivities: targetActivities, PenaltyPerExcess: penaltyPerExcess}
}

func (m *Module) Name() string                                      { return "sizing" }
func (m *Module) StateKeys() []routestate.Key                       { return nil }
func (m *Module) HardRouteConstraints() []framework.HardRoute       { return nil }
func (m *Module) HardActivityConstraints() []framework.HardActivity { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}
func (m *Module) AcceptSolution(*model.Solution)                     {}

func (m *Module) SoftRouteConstraints() []framework.SoftRoute {
	return []framework.SoftRoute{m.cost}
}

func (m *Module) cost(_ *model.Solution, route *model.Route, _ model.Job) float64 {
	if m.TargetActivities <= 0 {
		return 0
	}
	count := len(route.Tour.JobActivities()) + 1 // +1 for the job about to be added
	if count <= m.TargetActivities {
		return 0
	}
	return float64(count-m.TargetActivities) * m.PenaltyPerExcess
}
