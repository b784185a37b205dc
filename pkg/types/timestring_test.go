package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("9:30am")
	assert.Error(t, err)
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	end, err := ts.AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("12:00"), end)

	wrapped, err := TimeString("23:30").AddMinutes(120)
	require.NoError(t, err)
	assert.Equal(t, TimeString("01:30"), wrapped)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("12:00").IsAfter("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
}

func TestTimeStringAt(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	dt, err := TimeString("10:30").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), dt)
}
