package model

// Schedule is the computed arrival/departure pair for an Activity.
type Schedule struct {
	Arrival   float64
	Departure float64
}

// Activity is one visit at one place: service, break, reload, or a start/end
// terminal. An activity carrying no Job is a terminal activity.
type Activity struct {
	Place    Place
	Schedule Schedule
	Job      Job     // nil for terminal (start/end) activities
	Single   *Single // which Single of a Multi this activity realises, nil for a plain Single job
}

// IsTerminal reports whether the activity is a route start/end marker.
func (a *Activity) IsTerminal() bool {
	return a.Job == nil
}

// NewStartActivity builds the terminal activity beginning a tour.
func NewStartActivity(place Place, departure float64) *Activity {
	return &Activity{Place: place, Schedule: Schedule{Arrival: departure, Departure: departure}}
}

// NewEndActivity builds the terminal activity ending a tour.
func NewEndActivity(place Place, arrival float64) *Activity {
	return &Activity{Place: place, Schedule: Schedule{Arrival: arrival, Departure: arrival}}
}

// NewJobActivity builds an activity realising one Single of job at place,
// with departure = arrival + service duration, per spec §3's Tour invariant.
func NewJobActivity(job Job, single *Single, place Place, arrival float64) *Activity {
	return &Activity{
		Place:    place,
		Schedule: Schedule{Arrival: arrival, Departure: arrival + place.ServiceDuration},
		Job:      job,
		Single:   single,
	}
}
