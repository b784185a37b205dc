package domain

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// NewServiceWindow returns the occupied window of a service starting at the
// given time: [start, start+2h).
func NewServiceWindow(start time.Time) Window {
	return Window{
		Start: start,
		End:   start.Add(ServiceDurationMinutes * time.Minute),
	}
}

// NewBufferWindow returns the four-hour availability window around a slot
// start: [start-2h, start+2h). The buffer reserves travel and preparation
// time between consecutive jobs for the same person, which makes the
// availability test deliberately stricter than the plain occupied-window
// overlap used for preemption.
func NewBufferWindow(start time.Time) Window {
	return Window{
		Start: start.Add(-BufferMinutes * time.Minute),
		End:   start.Add(BufferMinutes * time.Minute),
	}
}

// Overlaps reports whether two half-open windows intersect:
// a.Start < b.End && b.Start < a.End. Touching boundaries do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// ContainsInclusive reports whether the point lies within the closed bounds
// [Start, End]. Unlike Overlaps, both boundaries count. This is the test
// used by the manual override: a booking starting exactly at Start or End
// is still displaced.
func (w Window) ContainsInclusive(point time.Time) bool {
	return !point.Before(w.Start) && !point.After(w.End)
}
