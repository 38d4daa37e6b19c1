package framework

import "github.com/vrpsolver/vrp/pkg/model"

// Pipeline evaluates modules in registration order: any Hard violation
// short-circuits with the first reason code; Soft contributions sum
// (spec §4.D). It implements model.ConstraintPipeline so a *Problem can
// hold one without pkg/model depending on pkg/framework.
type Pipeline struct {
	modules []ConstraintModule
}

// NewPipeline builds a pipeline over modules, in the order hard/soft checks
// will be evaluated.
func NewPipeline(modules ...ConstraintModule) *Pipeline {
	return &Pipeline{modules: modules}
}

// Modules returns the registered modules in pipeline order.
func (p *Pipeline) Modules() []ConstraintModule { return p.modules }

// CheckHardRoute runs every HardRoute predicate across every module in
// order, returning the first rejection.
func (p *Pipeline) CheckHardRoute(sol *model.Solution, route *model.Route, job model.Job) (ok bool, code int) {
	for _, m := range p.modules {
		for _, c := range m.HardRouteConstraints() {
			if ok, code := c(sol, route, job); !ok {
				return false, code
			}
		}
	}
	return true, 0
}

// CheckHardActivity runs every HardActivity predicate, short-circuiting on
// the first rejection and propagating its stopRight hint.
func (p *Pipeline) CheckHardActivity(route *model.Route, prev, next, candidate *model.Activity) (ok bool, code int, stopRight bool) {
	for _, m := range p.modules {
		for _, c := range m.HardActivityConstraints() {
			if ok, code, stop := c(route, prev, next, candidate); !ok {
				return false, code, stop
			}
		}
	}
	return true, 0, false
}

// SoftRouteCost sums every SoftRoute contribution across every module.
func (p *Pipeline) SoftRouteCost(sol *model.Solution, route *model.Route, job model.Job) float64 {
	total := 0.0
	for _, m := range p.modules {
		for _, c := range m.SoftRouteConstraints() {
			total += c(sol, route, job)
		}
	}
	return total
}

// SoftActivityCost sums every SoftActivity contribution across every module.
func (p *Pipeline) SoftActivityCost(route *model.Route, prev, next, candidate *model.Activity) float64 {
	total := 0.0
	for _, m := range p.modules {
		for _, c := range m.SoftActivityConstraints() {
			total += c(route, prev, next, candidate)
		}
	}
	return total
}

// AcceptRouteState recomputes every module's owned state keys for route in
// registration order (spec §4.C); callers must invoke this after any
// structural route change before a reader observes cached state.
func (p *Pipeline) AcceptRouteState(route *model.Route) {
	for _, m := range p.modules {
		m.AcceptRoute(route)
	}
}

// AcceptSolutionState recomputes solution-level aggregates owned by any
// module (spec §4.C).
func (p *Pipeline) AcceptSolutionState(sol *model.Solution) {
	for _, m := range p.modules {
		m.AcceptSolution(sol)
	}
}
