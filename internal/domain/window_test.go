package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/pkg/types"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func TestServiceWindow(t *testing.T) {
	w := NewServiceWindow(at(10, 0))

	assert.Equal(t, at(10, 0), w.Start)
	assert.Equal(t, at(12, 0), w.End)
}

func TestBufferWindow(t *testing.T) {
	w := NewBufferWindow(at(10, 0))

	assert.Equal(t, at(8, 0), w.Start)
	assert.Equal(t, at(12, 0), w.End)
}

func TestWindowOverlapsHalfOpen(t *testing.T) {
	base := NewServiceWindow(at(10, 0)) // [10:00, 12:00)

	// Partial overlap on both sides.
	assert.True(t, base.Overlaps(NewServiceWindow(at(11, 0))))
	assert.True(t, base.Overlaps(NewServiceWindow(at(9, 0))))

	// Identical windows overlap.
	assert.True(t, base.Overlaps(NewServiceWindow(at(10, 0))))

	// Touching boundaries do not overlap under the half-open test.
	assert.False(t, base.Overlaps(NewServiceWindow(at(12, 0))))
	assert.False(t, base.Overlaps(NewServiceWindow(at(8, 0))))

	// Disjoint windows.
	assert.False(t, base.Overlaps(NewServiceWindow(at(14, 0))))
}

func TestBufferedVsUnbufferedAsymmetry(t *testing.T) {
	// A job at 13:00 does not collide with a job at 10:00 under the plain
	// occupied-window test, but the buffered availability test still
	// excludes the staff member: too close to travel between jobs.
	occupied := NewServiceWindow(at(10, 0)) // [10:00, 12:00)
	buffered := NewBufferWindow(at(13, 0))  // [11:00, 15:00)
	plain := NewServiceWindow(at(13, 0))    // [13:00, 15:00)

	assert.True(t, buffered.Overlaps(occupied))
	assert.False(t, plain.Overlaps(occupied))
}

func TestContainsInclusive(t *testing.T) {
	w := Window{Start: at(8, 0), End: at(12, 0)}

	assert.True(t, w.ContainsInclusive(at(8, 0)), "lower bound inclusive")
	assert.True(t, w.ContainsInclusive(at(12, 0)), "upper bound inclusive")
	assert.True(t, w.ContainsInclusive(at(10, 30)))
	assert.False(t, w.ContainsInclusive(at(12, 1)))
	assert.False(t, w.ContainsInclusive(at(7, 59)))
}

func TestBookingServiceWindow(t *testing.T) {
	b := Booking{
		ServiceDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
	}

	w, err := b.ServiceWindow()
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), w.Start)
	assert.Equal(t, at(12, 0), w.End)
}

func TestBookingStateHelpers(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).IsQueued())
	assert.True(t, (&Booking{Status: StatusWaiting}).IsQueued())
	assert.False(t, (&Booking{Status: StatusAssigned}).IsQueued())

	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeDeleted())
	assert.True(t, (&Booking{Status: StatusAssigned}).CanBeDeleted())

	assert.True(t, (&Booking{Status: StatusWaiting}).CanBeClaimed())
	assert.False(t, (&Booking{Status: StatusAssigned}).CanBeClaimed())
}
