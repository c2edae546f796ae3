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

	for _, invalid := range []string{"9:30:00", "25:00", "09:61", "morning", ""} {
		_, err := NewTimeStringFromString(invalid)
		require.ErrorIs(t, err, ErrInvalidTimeFormat, "value %q", invalid)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	shifted, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:30"), shifted)
}

func TestTimeString_AddMinutes_CrossesMidnight(t *testing.T) {
	_, err := TimeString("23:30").AddMinutes(60)
	require.Error(t, err)
}

func TestTimeString_Ordering(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
}

func TestTimeString_OnDate(t *testing.T) {
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	moment, err := TimeString("14:45").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 15, 14, 45, 0, 0, time.UTC), moment)
}
