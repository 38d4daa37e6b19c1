// Package depots implements the Depots placeholder module named in spec
// §9: its interface is declared by the core but its internal algorithm is
// left unspecified by the source. SPEC_FULL.md resolves it as a HardRoute
// check restricting a job tagged with a depot-affinity dimension to actors
// whose shift starts at that depot.
package depots

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// PlaceID resolves a model.Location to the depot identifier callers use in
// TagDepotAffinity; the core has no concept of place names, only indices.
type PlaceID func(model.Location) string

// Module is the Depots ConstraintModule.
type Module struct {
	PlaceID PlaceID
}

// New builds the Depots module over a location-to-depot-id resolver.
func New(placeID PlaceID) *Module {
	return &Module{PlaceID: placeID}
}

func (m *Module) Name() string                                      { return "depots" }
func (m *Module) StateKeys() []routestate.Key                       { return nil }
func (m *Module) HardActivityConstraints() []framework.HardActivity { return nil }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptRoute(*model.Route)                          {}
func (m *Module) AcceptSolution(*model.Solution)                     {}

func (m *Module) HardRouteConstraints() []framework.HardRoute {
	return []framework.HardRoute{m.checkRoute}
}

func (m *Module) checkRoute(_ *model.Solution, route *model.Route, job model.Job) (bool, int) {
	affinity := job.Dimensions().GetDepotAffinity()
	if affinity == "" {
		return true, 0
	}
	if m.PlaceID == nil {
		return true, 0
	}
	shiftDepot := m.PlaceID(route.Actor.Shift().Start.Location)
	if shiftDepot != affinity {
		return false, int(apierrors.ReasonDepotAffinity)
	}
	return true, 0
}
