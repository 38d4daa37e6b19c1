// Package capacity implements the Capacity constraint module from spec
// §4.D: a running, per-dimension load maintained forward across the tour,
// with reload activities resetting the running total. Pickups require
// current + demand <= max_future; deliveries require current - demand >= 0.
package capacity

import (
	"github.com/vrpsolver/vrp/pkg/apierrors"
	"github.com/vrpsolver/vrp/pkg/framework"
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// loadByActivity maps an activity to the per-dimension load immediately
// after departing it, keyed by pointer identity (see timing.latestByActivity
// for why: it survives index churn during insertion evaluation).
type loadByActivity map[*model.Activity]map[string]int

// Module is the (possibly multi-dimensional) Capacity ConstraintModule.
type Module struct{}

// New builds the Capacity module.
func New() *Module { return &Module{} }

func (m *Module) Name() string               { return "capacity" }
func (m *Module) StateKeys() []routestate.Key { return []routestate.Key{routestate.KeyCurrentCapacity} }
func (m *Module) SoftRouteConstraints() []framework.SoftRoute       { return nil }
func (m *Module) SoftActivityConstraints() []framework.SoftActivity { return nil }
func (m *Module) AcceptSolution(*model.Solution)                    {}

func (m *Module) HardRouteConstraints() []framework.HardRoute {
	return []framework.HardRoute{m.checkRoute}
}

func (m *Module) HardActivityConstraints() []framework.HardActivity {
	return []framework.HardActivity{m.checkActivity}
}

// delta returns the signed per-dimension demand contribution of a job's
// single: positive for a pickup (adds load), negative for a delivery
// (removes load already aboard). Any other job type, including an untyped
// single (which reads as a service), contributes its demand as added load,
// the same as a pickup.
func delta(single *model.Single) map[string]int {
	if single == nil {
		return nil
	}
	demand := single.Dims.GetDemand()
	if len(demand) == 0 {
		return nil
	}
	switch single.Dims.GetJobType() {
	case model.JobPickup:
		return demand
	case model.JobDelivery:
		negated := make(map[string]int, len(demand))
		for k, v := range demand {
			negated[k] = -v
		}
		return negated
	default:
		return demand
	}
}

// checkRoute rejects a job outright when even its best-case placement (at
// the point of minimum running load) cannot fit any declared dimension's
// capacity, avoiding a full per-position search for an obviously oversized
// job.
func (m *Module) checkRoute(_ *model.Solution, route *model.Route, job model.Job) (bool, int) {
	capacities := route.Actor.Vehicle.Dims.GetCapacity()
	if len(capacities) == 0 {
		return true, 0
	}
	for _, single := range job.Singles() {
		d := delta(single)
		for dim, need := range d {
			if need <= 0 {
				continue
			}
			if cap, ok := capacities[dim]; ok && need > cap {
				return false, int(apierrors.ReasonCapacity)
			}
		}
	}
	return true, 0
}

// checkActivity enforces 0 <= load[dim] <= capacity[dim] for the candidate
// activity itself, projecting its load from the cached running total at
// prev (reset to zero first if candidate is tagged as a reload, per spec
// §4.D "reloads... reset capacity at marked activities"). It does not
// re-check activities downstream of candidate: a mid-tour insertion that
// raises every later activity's load is instead caught by checkRoute's
// per-job total-demand cap and by AcceptRoute's full forward recompute once
// the candidate is actually accepted into the tour.
func (m *Module) checkActivity(route *model.Route, prev, _, candidate *model.Activity) (bool, int, bool) {
	capacities := route.Actor.Vehicle.Dims.GetCapacity()
	if len(capacities) == 0 {
		return true, 0, false
	}

	running := m.loadAt(route, prev)
	running = applyDelta(running, delta(candidate.Single))
	if resets(candidate) {
		running = map[string]int{}
	}
	for dim, v := range running {
		cap, ok := capacities[dim]
		if !ok {
			continue
		}
		if v < 0 || v > cap {
			return false, int(apierrors.ReasonCapacity), false
		}
	}
	return true, 0, false
}

func resets(a *model.Activity) bool {
	if a.Single == nil {
		return false
	}
	v, _ := a.Single.Dims.Get(model.TagReloadResets)
	b, _ := v.(bool)
	return b || a.Single.Dims.GetJobType() == model.JobReload
}

func applyDelta(base map[string]int, d map[string]int) map[string]int {
	out := make(map[string]int, len(base)+len(d))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range d {
		out[k] += v
	}
	return out
}

func (m *Module) loadAt(route *model.Route, activity *model.Activity) map[string]int {
	raw, ok := route.State.Get(routestate.KeyCurrentCapacity)
	if !ok {
		return map[string]int{}
	}
	table, ok := raw.(loadByActivity)
	if !ok {
		return map[string]int{}
	}
	if v, ok := table[activity]; ok {
		return v
	}
	return map[string]int{}
}

// AcceptRoute recomputes the running load at every activity in one forward
// pass, resetting at reload activities (spec §4.C).
func (m *Module) AcceptRoute(route *model.Route) {
	table := make(loadByActivity, len(route.Tour.Activities))
	running := map[string]int{}
	for _, a := range route.Tour.Activities {
		if resets(a) {
			running = map[string]int{}
		} else {
			running = applyDelta(running, delta(a.Single))
		}
		table[a] = running
	}
	route.State.Set(routestate.KeyCurrentCapacity, table)
}
