// Package framework implements the constraint-and-objective pipeline named
// in spec §4.D: an ordered set of ConstraintModules, each contributing any
// mix of {HardRoute, HardActivity, SoftRoute, SoftActivity} predicates, plus
// the state keys it owns in the per-route routestate.Cache.
package framework

import (
	"github.com/vrpsolver/vrp/pkg/model"
	"github.com/vrpsolver/vrp/pkg/routestate"
)

// HardRoute rejects an entire (route, job) pair outright, independent of
// where in the route the job might go. Returns (true, 0) when the pair is
// acceptable, or (false, code) with a spec §7 InfeasibilityCode.
type HardRoute func(sol *model.Solution, route *model.Route, job model.Job) (ok bool, code int)

// HardActivity rejects inserting a specific activity at a specific tour
// position. stopRight, when true, tells the insertion evaluator that every
// later position in the same direction can also be pruned (e.g. a timing
// violation that can only worsen further down the tour).
type HardActivity func(route *model.Route, prev, next *model.Activity, candidate *model.Activity) (ok bool, code int, stopRight bool)

// SoftRoute returns an additive cost for assigning job to route, with no
// feasibility effect.
type SoftRoute func(sol *model.Solution, route *model.Route, job model.Job) float64

// SoftActivity returns an additive cost delta for inserting candidate
// between prev and next.
type SoftActivity func(route *model.Route, prev, next *model.Activity, candidate *model.Activity) float64

// ConstraintModule bundles any subset of the four predicate kinds and
// declares the routestate.Key values it owns, so the pipeline knows which
// keys AcceptRouteState must (re)populate. A module leaves a slice nil for
// any kind it does not implement.
type ConstraintModule interface {
	Name() string
	StateKeys() []routestate.Key
	HardRouteConstraints() []HardRoute
	HardActivityConstraints() []HardActivity
	SoftRouteConstraints() []SoftRoute
	SoftActivityConstraints() []SoftActivity
	// AcceptRoute recomputes every state key this module owns for route, in
	// one forward-and-backward pass (spec §4.C).
	AcceptRoute(route *model.Route)
	// AcceptSolution recomputes any solution-level aggregate this module
	// owns (e.g. total unassigned count). Most modules no-op here.
	AcceptSolution(sol *model.Solution)
}

// BaseModule is embeddable by concrete modules that only implement a subset
// of ConstraintModule's predicate kinds, so they need not redeclare the
// empty-slice boilerplate for the kinds they skip.
type BaseModule struct {
	ModuleName string
	Keys       []routestate.Key
}

func (b BaseModule) Name() string                           { return b.ModuleName }
func (b BaseModule) StateKeys() []routestate.Key             { return b.Keys }
func (b BaseModule) HardRouteConstraints() []HardRoute       { return nil }
func (b BaseModule) HardActivityConstraints() []HardActivity { return nil }
func (b BaseModule) SoftRouteConstraints() []SoftRoute       { return nil }
func (b BaseModule) SoftActivityConstraints() []SoftActivity { return nil }
func (b BaseModule) AcceptRoute(*model.Route)                {}
func (b BaseModule) AcceptSolution(*model.Solution)          {}
