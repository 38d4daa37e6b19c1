// Package travellimits implements the per-actor max-distance and/or
// max-shift-duration HardRoute checks from spec §4.D.
package travellimits

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// Limits carries the per-actor caps; a zero value means "unbounded".
type Limits struct {
	MaxDistance     float64
	MaxShiftSeconds float64
}

// LimitsByVehicle resolves a Vehicle to its Limits; callers typically close
// over a map keyed by vehicle id or read from model.Dimensions.
type LimitsByVehicle func(vehicle *model.Vehicle) Limits

// Module is the travel-limits ConstraintModule.
type Module struct {
	Transport model.TransportCost
	Limits    LimitsByVehicle
}

// New builds the module over a transport oracle and a limits resolver.
func New(transport model.TransportCost, limits LimitsByVehicle) *Module {
	return &Module{Transport: transport, Limits: limits}
}

func (m *Module) Name() string               { return "travel-limits" }
func (m *Module) StateKeys() []routestate.Key { return []routestate.Key{routestate.KeyAccumulatedDistance, routestate.KeyAccumulatedDuration} }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute             { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity       { return nil }
func (m *Module) HardRouteConstraints() []framework.HardRoute             { return nil }
func (m *Module) AcceptSolution(*model.Solution)                          {}

func (m *Module) HardActivityConstraints() []framework.HardActivity {
	return []framework.HardActivity{m.checkActivity}
}

// checkActivity rejects an insertion whose cumulative distance or elapsed
// shift duration, projected through the candidate, would exceed the actor's
// configured limits.
func (m *Module) checkActivity(route *model.Route, prev, _, candidate *model.Activity) (bool, int, bool) {
	limits := m.Limits(route.Actor.Vehicle)
	if limits.MaxDistance <= 0 && limits.MaxShiftSeconds <= 0 {
		return true, 0, false
	}
	profile := route.Actor.Vehicle.Profile

	accDistance := m.accumulatedAt(route, prev, routestate.KeyAccumulatedDistance)
	accDuration := m.accumulatedAt(route, prev, routestate.KeyAccumulatedDuration)

	leg := m.Transport.Distance(profile, prev.Place.Location, candidate.Place.Location, prev.Schedule.Departure)
	accDistance += leg

	shiftStart := route.Tour.Start().Schedule.Departure
	elapsed := candidate.Schedule.Departure - shiftStart
	if elapsed > accDuration {
		accDuration = elapsed
	}

	if limits.MaxDistance > 0 && accDistance > limits.MaxDistance {
		return false, int(apierrors.ReasonTravelDistance), false
	}
	if limits.MaxShiftSeconds > 0 && accDuration > limits.MaxShiftSeconds {
		return false, int(apierrors.ReasonShiftTime), false
	}
	return true, 0, false
}

func (m *Module) accumulatedAt(route *model.Route, activity *model.Activity, key routestate.Key) float64 {
	raw, ok := route.State.Get(key)
	if !ok {
		return 0
	}
	table, ok := raw.(map[*model.Activity]float64)
	if !ok {
		return 0
	}
	return table[activity]
}

// AcceptRoute recomputes accumulated distance/duration forward over the
// tour (spec §4.C).
func (m *Module) AcceptRoute(route *model.Route) {
	profile := route.Actor.Vehicle.Profile
	distTable := make(map[*model.Activity]float64, len(route.Tour.Activities))
	durTable := make(map[*model.Activity]float64, len(route.Tour.Activities))

	acts := route.Tour.Activities
	if len(acts) == 0 {
		return
	}
	shiftStart := acts[0].Schedule.Departure
	distTable[acts[0]] = 0
	durTable[acts[0]] = 0
	for i := 1; i < len(acts); i++ {
		prev, cur := acts[i-1], acts[i]
		leg := m.Transport.Distance(profile, prev.Place.Location, cur.Place.Location, prev.Schedule.Departure)
		distTable[cur] = distTable[prev] + leg
		durTable[cur] = cur.Schedule.Departure - shiftStart
	}
	route.State.Set(routestate.KeyAccumulatedDistance, distTable)
	route.State.Set(routestate.KeyAccumulatedDuration, durTable)
}
