package costs

import "github.com/vrpsolver/vrp/pkg/model"

// ActivityEstimator is the default model.ActivityCost: arrival is the
// previous activity's departure plus travel time (the caller supplies the
// leg's travel time, since only it knows the previous activity), waiting is
// the gap until the place's feasible window opens, and cost weights waiting
// plus service time by the actor's rates (spec §4.B).
type ActivityEstimator struct {
	Transport model.TransportCost
}

// NewActivityEstimator builds an estimator over transport.
func NewActivityEstimator(transport model.TransportCost) *ActivityEstimator {
	return &ActivityEstimator{Transport: transport}
}

// EstimateArrival returns the feasible arrival time at activity given a raw
// (travel-time-inclusive) candidate arrival, snapping forward to the
// earliest open time window.
func (e *ActivityEstimator) EstimateArrival(_ *model.Route, activity *model.Activity, candidate float64) float64 {
	if t, ok := activity.Place.EarliestFeasibleArrival(candidate); ok {
		return t
	}
	return candidate
}

// EstimateDeparture returns arrival + service duration.
func (e *ActivityEstimator) EstimateDeparture(_ *model.Route, activity *model.Activity, arrival float64) float64 {
	return arrival + activity.Place.ServiceDuration
}

// Cost returns the waiting + service cost at activity, weighted by the
// route's actor waiting/duration rates (spec §4.B).
func (e *ActivityEstimator) Cost(route *model.Route, activity *model.Activity, arrival float64) float64 {
	waitingRate := route.Actor.Vehicle.CostPerWaiting
	durationRate := route.Actor.Vehicle.CostPerDuration

	earliest, ok := activity.Place.EarliestFeasibleArrival(arrival)
	waiting := 0.0
	if ok && arrival < earliest {
		waiting = earliest - arrival
	}
	service := activity.Place.ServiceDuration

	return waiting*waitingRate + service*durationRate
}
