package model

import "fmt"

// Location indexes into a TransportCost profile's coordinate/matrix space.
// UnknownLocation marks a synthetic place (injected break, reload, dispatch)
// that has no physical coordinate; the UnknownLocationFallback transport
// backend resolves queries against it to zero duration/distance.
type Location int

// UnknownLocation is the sentinel used by synthetic activities.
const UnknownLocation Location = -1

// TimeWindow is a closed interval [Start, End] during which service may
// begin at a place.
type TimeWindow struct {
	Start float64
	End   float64
}

// Contains reports whether t lies within the window.
func (w TimeWindow) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Place is one location a Single job (or a terminal activity) visits: an
// optional coordinate, a service duration, a non-empty set of alternative
// time windows, and named dimensions (capacity deltas, skills, ...).
type Place struct {
	Location        Location
	ServiceDuration  float64
	TimeWindows      []TimeWindow
	Dimensions       Dimensions
}

// NewPlace constructs a Place, enforcing the "at least one time window"
// invariant from spec §4.A; a place with no explicit window gets an
// unrestricted one.
func NewPlace(location Location, serviceDuration float64, windows []TimeWindow) (Place, error) {
	if serviceDuration < 0 {
		return Place{}, fmt.Errorf("model: negative service duration %v", serviceDuration)
	}
	if len(windows) == 0 {
		windows = []TimeWindow{{Start: 0, End: maxFloat}}
	}
	return Place{
		Location:        location,
		ServiceDuration: serviceDuration,
		TimeWindows:     windows,
		Dimensions:      NewDimensions(),
	}, nil
}

// FeasibleWindow returns the first time window that contains candidate
// arrival t, and whether one was found.
func (p Place) FeasibleWindow(t float64) (TimeWindow, bool) {
	for _, w := range p.TimeWindows {
		if w.Contains(t) {
			return w, true
		}
	}
	return TimeWindow{}, false
}

// EarliestFeasibleArrival returns the smallest t' >= t at which service may
// begin at p, honouring whichever time window is soonest reachable, and
// whether any window can still be reached at all.
func (p Place) EarliestFeasibleArrival(t float64) (float64, bool) {
	best := maxFloat
	found := false
	for _, w := range p.TimeWindows {
		if t <= w.End {
			start := t
			if start < w.Start {
				start = w.Start
			}
			if start < best {
				best = start
				found = true
			}
		}
	}
	return best, found
}

// LatestFeasibleDeparture returns the largest time by which service must
// begin at p in order to respect some window, given an upstream deadline.
func (p Place) LatestFeasibleDeparture(deadline float64) (float64, bool) {
	best := -maxFloat
	found := false
	for _, w := range p.TimeWindows {
		if w.Start <= deadline {
			end := deadline
			if end > w.End {
				end = w.End
			}
			if end > best {
				best = end
				found = true
			}
		}
	}
	return best, found
}

const maxFloat = 1e18
