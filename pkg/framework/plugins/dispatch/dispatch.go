// Package dispatch implements the Dispatch synthetic-job module from spec
// §4.D: a dispatch activity marks a mandatory check-in stop (e.g. a depot
// hand-off) injected as an ordinary Single; like breaks/reloads it is
// dropped on solution-accept if it ends up the only activity on a route.
package dispatch

import (
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// NewDispatchJob builds a synthetic Single representing a mandatory
// dispatch check-in at location, within windows.
func NewDispatchJob(id string, location model.Location, windows []model.TimeWindow, duration float64) (*model.Single, error) {
	place, err := model.NewPlace(location, duration, windows)
	if err != nil {
		return nil, err
	}
	dims := model.NewDimensions().Set(model.TagJobType, model.JobDispatch)
	return model.NewSingle(id, []model.Place{place}, dims)
}

// Module is the Dispatch ConstraintModule.
type Module struct{}

// New builds the Dispatch module.
func New() *Module { return &Module{} }

func (m *Module) Name() string                                      { return "dispatch" }
func (m *Module) StateKeys() []routestate.Key                       { return nil }
func (m *Module) HardRouteConstraints() []framework.HardRoute       { return nil }
func (m *Module) HardActivityConstraints() []framework.HardActivity { return nil }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}

// AcceptSolution drops dispatch activities from a route whose only
// activities are dispatch check-ins.
func (m *Module) AcceptSolution(sol *model.Solution) {
	for _, route := range sol.Routes {
		if !onlyDispatch(route) {
			continue
		}
		for _, a := range route.Tour.JobActivities() {
			route.Tour.RemoveJob(a.Job)
		}
	}
}

func onlyDispatch(route *model.Route) bool {
	acts := route.Tour.JobActivities()
	if len(acts) == 0 {
		return false
	}
	for _, a := range acts {
		if a.Single == nil || a.Single.Dims.GetJobType() != model.JobDispatch {
			return false
		}
	}
	return true
}
