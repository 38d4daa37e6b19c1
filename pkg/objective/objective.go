// Package objective implements spec §1's composite objective vector:
// unassigned-job count, vehicle count, total transport cost, and optional
// work-balance/arrival-time terms, scored over a finished model.Solution
// for the population strategies of spec §4.H to rank.
package objective

import (
	"math"

	"github.com/vrpsolver/vrp/pkg/model"
)

// Term computes one optional extra component appended after the three
// mandatory ones (spec §1: "optional work-balance or arrival-time terms").
type Term interface {
	Name() string
	Value(sol *model.Solution) float64
}

// Composite is the model.Objective implementation every solver run uses:
// Fitness()[0] is the unassigned-job count, [1] the vehicle (non-empty
// route) count, [2] total transport cost, and any configured Extra terms
// follow in declaration order.
type Composite struct {
	Transport model.TransportCost
	Extra     []Term
}

// New builds a Composite scoring solutions against transport, with zero or
// more additional terms.
func New(transport model.TransportCost, extra ...Term) *Composite {
	return &Composite{Transport: transport, Extra: extra}
}

// Fitness implements model.Objective.
func (c *Composite) Fitness(sol *model.Solution) []float64 {
	out := make([]float64, 3+len(c.Extra))
	out[0] = float64(len(sol.Unassigned))
	out[1] = float64(vehicleCount(sol))
	out[2] = c.totalCost(sol)
	for i, term := range c.Extra {
		out[3+i] = term.Value(sol)
	}
	return out
}

func vehicleCount(sol *model.Solution) int {
	n := 0
	for _, r := range sol.Routes {
		if !r.IsEmpty() {
			n++
		}
	}
	return n
}

// totalCost sums every route's fixed cost plus per-leg distance/duration
// cost plus each activity's waiting/service cost, matching the teacher's
// ActivityCost.Cost contract (pkg/costs.ActivityEstimator) rather than
// recomputing schedules: the solution's activities already carry their
// settled Schedule, so this walks legs once.
func (c *Composite) totalCost(sol *model.Solution) float64 {
	total := 0.0
	for _, route := range sol.Routes {
		if route.IsEmpty() {
			continue
		}
		total += route.Actor.Vehicle.FixedCost
		acts := route.Tour.Activities
		profile := route.Actor.Vehicle.Profile
		distRate := route.Actor.Vehicle.CostPerDistance
		durRate := route.Actor.Vehicle.CostPerDuration
		waitRate := route.Actor.Vehicle.CostPerWaiting
		for i := 0; i+1 < len(acts); i++ {
			from, to := acts[i], acts[i+1]
			travelDuration := c.Transport.Duration(profile, from.Place.Location, to.Place.Location, from.Schedule.Departure)
			total += c.Transport.Distance(profile, from.Place.Location, to.Place.Location, from.Schedule.Departure) * distRate
			total += travelDuration * durRate

			// to.Schedule.Arrival is already snapped forward to the place's
			// feasible window (costs.ActivityEstimator.EstimateArrival); the
			// gap between that and the raw travel-only candidate is waiting.
			candidate := from.Schedule.Departure + travelDuration
			if waiting := to.Schedule.Arrival - candidate; waiting > 0 {
				total += waiting * waitRate
			}
		}
		for _, a := range acts {
			if a.IsTerminal() {
				continue
			}
			total += a.Place.ServiceDuration * durRate
		}
	}
	return total
}

// BalanceTerm scores the spread of per-route travel duration across the
// fleet (spec §1's optional "work-balance" term): the standard deviation
// of each non-empty route's summed leg travel durations (service and
// waiting time are not counted), penalising an uneven workload
// distribution.
type BalanceTerm struct {
	Transport model.TransportCost
}

func (BalanceTerm) Name() string { return "balance" }

func (t BalanceTerm) Value(sol *model.Solution) float64 {
	var durations []float64
	for _, route := range sol.Routes {
		if route.IsEmpty() {
			continue
		}
		acts := route.Tour.Activities
		d := 0.0
		for i := 0; i+1 < len(acts); i++ {
			from, to := acts[i], acts[i+1]
			d += t.Transport.Duration(route.Actor.Vehicle.Profile, from.Place.Location, to.Place.Location, from.Schedule.Departure)
		}
		durations = append(durations, d)
	}
	if len(durations) < 2 {
		return 0
	}
	mean := 0.0
	for _, d := range durations {
		mean += d
	}
	mean /= float64(len(durations))
	variance := 0.0
	for _, d := range durations {
		variance += (d - mean) * (d - mean)
	}
	variance /= float64(len(durations))
	return math.Sqrt(variance)
}

// ArrivalTerm scores the sum of every job activity's arrival time (spec
// §1's optional "arrival-time" term), penalising later completion.
type ArrivalTerm struct{}

func (ArrivalTerm) Name() string { return "arrival" }

func (ArrivalTerm) Value(sol *model.Solution) float64 {
	total := 0.0
	for _, route := range sol.Routes {
		for _, a := range route.Tour.JobActivities() {
			total += a.Schedule.Arrival
		}
	}
	return total
}

var _ model.Objective = (*Composite)(nil)
