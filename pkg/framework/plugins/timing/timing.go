// Package timing implements the canonical Timing constraint module from
// spec §4.D: a backward-pass cache of each activity's latest feasible
// arrival, and a forward probe during insertion that rejects any candidate
// which would push a downstream activity's arrival past its cached latest.
package timing

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// latestByActivity maps an activity to the latest time service may begin
// there without violating any downstream time window; keyed by pointer
// identity rather than tour index so the cache survives the index churn an
// insertion candidate causes before it is accepted.
type latestByActivity map[*model.Activity]float64

// Module is the Timing ConstraintModule.
type Module struct {
	Transport    model.TransportCost
	ActivityCost model.ActivityCost
}

// New builds the Timing module over the given cost oracles.
func New(transport model.TransportCost, activityCost model.ActivityCost) *Module {
	return &Module{Transport: transport, ActivityCost: activityCost}
}

func (m *Module) Name() string                     { return "timing" }
func (m *Module) StateKeys() []routestate.Key       { return []routestate.Key{routestate.KeyLatestArrival} }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) AcceptSolution(*model.Solution)    {}

func (m *Module) HardRouteConstraints() []framework.HardRoute { return nil }

func (m *Module) HardActivityConstraints() []framework.HardActivity {
	return []framework.HardActivity{m.checkActivity}
}

func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }

// checkActivity rejects a candidate insertion whose own window cannot be
// met, or whose presence would push `next`'s arrival past its cached latest
// feasible arrival (spec §4.D).
func (m *Module) checkActivity(route *model.Route, prev, next, candidate *model.Activity) (bool, int, bool) {
	profile := route.Actor.Vehicle.Profile

	transitToCandidate := m.Transport.Duration(profile, prev.Place.Location, candidate.Place.Location, prev.Schedule.Departure)
	arrival := m.ActivityCost.EstimateArrival(route, candidate, prev.Schedule.Departure+transitToCandidate)
	if _, ok := candidate.Place.FeasibleWindow(arrival); !ok {
		return false, int(apierrors.ReasonTimeWindow), true
	}
	departure := m.ActivityCost.EstimateDeparture(route, candidate, arrival)

	if next == nil {
		return true, 0, false
	}

	transitToNext := m.Transport.Duration(profile, candidate.Place.Location, next.Place.Location, departure)
	arrivalAtNext := departure + transitToNext

	latest := m.latestFor(route, next)
	if arrivalAtNext > latest {
		return false, int(apierrors.ReasonTimeWindow), true
	}
	return true, 0, false
}

func (m *Module) latestFor(route *model.Route, activity *model.Activity) float64 {
	raw, ok := route.State.Get(routestate.KeyLatestArrival)
	if !ok {
		return posInf
	}
	table, ok := raw.(latestByActivity)
	if !ok {
		return posInf
	}
	if v, ok := table[activity]; ok {
		return v
	}
	return posInf
}

// AcceptRoute recomputes the latest-feasible-arrival table with one
// backward pass over the tour (spec §4.C).
func (m *Module) AcceptRoute(route *model.Route) {
	acts := route.Tour.Activities
	n := len(acts)
	table := make(latestByActivity, n)
	if n == 0 {
		route.State.Set(routestate.KeyLatestArrival, table)
		return
	}

	profile := route.Actor.Vehicle.Profile

	last := acts[n-1]
	if latest, ok := last.Place.LatestFeasibleDeparture(posInf); ok {
		table[last] = latest
	} else {
		table[last] = negInf
	}

	for i := n - 2; i >= 0; i-- {
		cur, next := acts[i], acts[i+1]
		transit := m.Transport.Duration(profile, cur.Place.Location, next.Place.Location, cur.Schedule.Departure)
		deadlineDeparture := table[next] - transit
		deadlineArrival := deadlineDeparture - cur.Place.ServiceDuration

		if latest, ok := cur.Place.LatestFeasibleDeparture(deadlineArrival); ok {
			table[cur] = latest
		} else {
			table[cur] = negInf
		}
	}

	route.State.Set(routestate.KeyLatestArrival, table)
}

const posInf = 1e18
const negInf = -1e18
