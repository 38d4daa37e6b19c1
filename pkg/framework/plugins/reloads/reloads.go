// Package reloads implements the Reloads synthetic-job module from spec
// §4.D: a reload is a Single (JobType=JobReload, TagReloadResets=true) the
// Capacity module already resets running load at; this module only runs
// the solution-accept cleanup for reloads left on otherwise-empty routes.
package reloads

import (
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// NewReloadJob builds a synthetic Single representing a capacity reload at
// place, within windows.
func NewReloadJob(id string, location model.Location, windows []model.TimeWindow, duration float64) (*model.Single, error) {
	place, err := model.NewPlace(location, duration, windows)
	if err != nil {
		return nil, err
	}
	dims := model.NewDimensions().
		Set(model.TagJobType, model.JobReload).
		Set(model.TagReloadResets, true)
	return model.NewSingle(id, []model.Place{place}, dims)
}

// Module is the Reloads ConstraintModule.
type Module struct{}

// New builds the Reloads module.
func New() *Module { return &Module{} }

func (m *Module) Name() string                                      { return "reloads" }
func (m *Module) StateKeys() []routestate.Key                       { return nil }
func (m *Module) HardRouteConstraints() []framework.HardRoute       { return nil }
func (m *Module) HardActivityConstraints() []framework.HardActivity { return nil }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}

// AcceptSolution drops reload activities from a route whose only activities
// are reloads.
func (m *Module) AcceptSolution(sol *model.Solution) {
	for _, route := range sol.Routes {
		if !onlyReloads(route) {
			continue
		}
		for _, a := range route.Tour.JobActivities() {
			route.Tour.RemoveJob(a.Job)
		}
	}
}

func onlyReloads(route *model.Route) bool {
	acts := route.Tour.JobActivities()
	if len(acts) == 0 {
		return false
	}
	for _, a := range acts {
		if a.Single == nil || a.Single.Dims.GetJobType() != model.JobReload {
			return false
		}
	}
	return true
}
