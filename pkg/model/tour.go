package model

// Tour is an ordered sequence of Activities, beginning with a start activity
// and optionally ending with an end activity (spec §3).
type Tour struct {
	Activities []*Activity
}

// NewTour builds a tour with just a start activity.
func NewTour(start *Activity) *Tour {
	return &Tour{Activities: []*Activity{start}}
}

// Start returns the tour's first (start) activity.
func (t *Tour) Start() *Activity {
	if len(t.Activities) == 0 {
		return nil
	}
	return t.Activities[0]
}

// End returns the tour's terminal end activity, or nil if none is present.
func (t *Tour) End() *Activity {
	if n := len(t.Activities); n > 1 && t.Activities[n-1].IsTerminal() {
		return t.Activities[n-1]
	}
	return nil
}

// JobActivities returns every non-terminal activity, in tour order.
func (t *Tour) JobActivities() []*Activity {
	out := make([]*Activity, 0, len(t.Activities))
	for _, a := range t.Activities {
		if !a.IsTerminal() {
			out = append(out, a)
		}
	}
	return out
}

// HasJob reports whether job already has an activity present in the tour.
func (t *Tour) HasJob(job Job) bool {
	for _, a := range t.Activities {
		if a.Job == job {
			return true
		}
	}
	return false
}

// Legs yields every consecutive (from, to) pair of activities, excluding a
// trailing end activity only as the "to" of the final real leg — i.e. it
// enumerates every position an insertion could target.
func (t *Tour) Legs() []Leg {
	legs := make([]Leg, 0, len(t.Activities))
	for i := 0; i+1 < len(t.Activities); i++ {
		legs = append(legs, Leg{Index: i, From: t.Activities[i], To: t.Activities[i+1]})
	}
	if n := len(t.Activities); n > 0 {
		last := t.Activities[n-1]
		if !last.IsTerminal() || t.End() == nil {
			legs = append(legs, Leg{Index: n - 1, From: last, To: nil})
		}
	}
	return legs
}

// Leg is one (from, to) adjacency in a tour; To is nil when From is the
// last activity and the tour has no end terminal (an "append" position).
type Leg struct {
	Index    int
	From, To *Activity
}

// InsertAt inserts activities starting at position idx (0-based, counting
// from the start activity), shifting the remainder right. idx must be >= 1
// (never insert before the start activity).
func (t *Tour) InsertAt(idx int, activities ...*Activity) {
	if idx < 1 {
		idx = 1
	}
	if idx > len(t.Activities) {
		idx = len(t.Activities)
	}
	tail := append([]*Activity{}, t.Activities[idx:]...)
	t.Activities = append(t.Activities[:idx], append(append([]*Activity{}, activities...), tail...)...)
}

// RemoveJob removes every activity belonging to job, returning how many were
// removed.
func (t *Tour) RemoveJob(job Job) int {
	out := t.Activities[:0:0]
	removed := 0
	for _, a := range t.Activities {
		if a.Job == job {
			removed++
			continue
		}
		out = append(out, a)
	}
	t.Activities = out
	return removed
}

// Clone returns a deep copy of the tour's activity slice (activities
// themselves are treated as value-like and copied by pointer-to-fresh-struct,
// since InsertionContext forking must not let two tours share a mutable
// Activity).
func (t *Tour) Clone() *Tour {
	out := make([]*Activity, len(t.Activities))
	for i, a := range t.Activities {
		cp := *a
		out[i] = &cp
	}
	return &Tour{Activities: out}
}
