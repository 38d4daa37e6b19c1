package model

import "github.com/vrpsolver/vrp/pkg/routestate"

// Route pairs an Actor with its Tour. The route state cache is a sibling
// field, never a back-reference from the tour (spec §9).
type Route struct {
	Actor *Actor
	Tour  *Tour
	State *routestate.Cache
}

// NewRoute builds an empty route for actor, seeded with a start activity at
// the shift's start place and departure time.
func NewRoute(actor *Actor, departure float64) *Route {
	start := NewStartActivity(actor.Shift().Start, departure)
	tour := NewTour(start)
	if end := actor.Shift().End; end != nil {
		tour.Activities = append(tour.Activities, NewEndActivity(*end, departure))
	}
	return &Route{Actor: actor, Tour: tour, State: routestate.NewCache()}
}

// IsEmpty reports whether the tour carries no job activities, meaning the
// route is removable (spec §3 lifecycle).
func (r *Route) IsEmpty() bool {
	return len(r.Tour.JobActivities()) == 0
}

// Clone deep-copies the route: a fresh Tour and a fresh state Cache, so two
// InsertionContexts can mutate their own copies independently. Actor is
// shared (identity-compared, immutable).
func (r *Route) Clone() *Route {
	return &Route{Actor: r.Actor, Tour: r.Tour.Clone(), State: r.State.Clone()}
}
