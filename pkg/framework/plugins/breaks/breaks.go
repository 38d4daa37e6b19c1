// Package breaks implements the Breaks synthetic-job module from spec
// §4.D: a break is injected as an ordinary Single (JobType=JobBreak) that
// timing/capacity already evaluate like any other activity, plus a
// solution-accept step dropping breaks left on routes with no other work.
package breaks

import (
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// NewBreakJob builds a synthetic Single representing a shift break within
// windows, lasting duration, at an unknown (vehicle-relative) location.
func NewBreakJob(id string, windows []model.TimeWindow, duration float64) (*model.Single, error) {
	place, err := model.NewPlace(model.UnknownLocation, duration, windows)
	if err != nil {
		return nil, err
	}
	dims := model.NewDimensions().Set(model.TagJobType, model.JobBreak)
	return model.NewSingle(id, []model.Place{place}, dims)
}

// Module is the Breaks ConstraintModule. It contributes no Hard/Soft
// predicates of its own (timing/capacity already cover a break's place and
// demand); it only runs the solution-accept cleanup.
type Module struct{}

// New builds the Breaks module.
func New() *Module { return &Module{} }

func (m *Module) Name() string                                      { return "breaks" }
func (m *Module) StateKeys() []routestate.Key                       { return nil }
func (m *Module) HardRouteConstraints() []framework.HardRoute       { return nil }
func (m *Module) HardActivityConstraints() []framework.HardActivity { return nil }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}

// AcceptSolution drops every break activity from a route whose only
// activities are breaks (spec §4.D: "drops breaks/reloads on empty tours").
func (m *Module) AcceptSolution(sol *model.Solution) {
	for _, route := range sol.Routes {
		if !onlyBreaks(route) {
			continue
		}
		for _, a := range route.Tour.JobActivities() {
			route.Tour.RemoveJob(a.Job)
		}
	}
}

func onlyBreaks(route *model.Route) bool {
	acts := route.Tour.JobActivities()
	if len(acts) == 0 {
		return false
	}
	for _, a := range acts {
		if a.Single == nil || a.Single.Dims.GetJobType() != model.JobBreak {
			return false
		}
	}
	return true
}
