package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func interval(startHour, endHour int) Interval {
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	return Interval{
		Start: day.Add(time.Duration(startHour) * time.Hour),
		End:   day.Add(time.Duration(endHour) * time.Hour),
	}
}

func TestInterval_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "identical intervals overlap",
			a:    interval(10, 11),
			b:    interval(10, 11),
			want: true,
		},
		{
			name: "partial overlap",
			a:    interval(10, 12),
			b:    interval(11, 13),
			want: true,
		},
		{
			name: "containment overlaps",
			a:    interval(9, 18),
			b:    interval(12, 13),
			want: true,
		},
		{
			name: "touching endpoints do not overlap",
			a:    interval(10, 11),
			b:    interval(11, 12),
			want: false,
		},
		{
			name: "touching endpoints reversed do not overlap",
			a:    interval(11, 12),
			b:    interval(10, 11),
			want: false,
		},
		{
			name: "disjoint intervals do not overlap",
			a:    interval(9, 10),
			b:    interval(14, 15),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestInterval_IsValid(t *testing.T) {
	assert.True(t, interval(10, 11).IsValid())
	assert.False(t, interval(11, 10).IsValid())
	assert.False(t, interval(10, 10).IsValid())
}

func TestSlot_StatusHelpers(t *testing.T) {
	free := &Slot{Status: SlotStatusFree}
	booked := &Slot{Status: SlotStatusBooked}

	assert.True(t, free.IsFree())
	assert.False(t, free.IsBooked())
	assert.True(t, booked.IsBooked())
	assert.False(t, booked.IsFree())
}
