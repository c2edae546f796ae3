package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_EffectiveStatus(t *testing.T) {
	endsAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status BookingStatus
		now    time.Time
		want   BookingStatus
	}{
		{
			name:   "scheduled before session end stays scheduled",
			status: StatusScheduled,
			now:    endsAt.Add(-time.Hour),
			want:   StatusScheduled,
		},
		{
			name:   "scheduled after session end derives completed",
			status: StatusScheduled,
			now:    endsAt.Add(time.Minute),
			want:   StatusCompleted,
		},
		{
			name:   "scheduled exactly at session end derives completed",
			status: StatusScheduled,
			now:    endsAt,
			want:   StatusCompleted,
		},
		{
			name:   "explicit completed wins before session end",
			status: StatusCompleted,
			now:    endsAt.Add(-time.Hour),
			want:   StatusCompleted,
		},
		{
			name:   "cancelled is never overridden",
			status: StatusCancelled,
			now:    endsAt.Add(time.Hour),
			want:   StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.status, EndsAt: endsAt}
			assert.Equal(t, tt.want, b.EffectiveStatus(tt.now))
		})
	}
}

func TestBooking_ChatWindowExpiry(t *testing.T) {
	endsAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{EndsAt: endsAt, ChatWindowDays: 3}

	assert.Equal(t, time.Date(2026, 6, 4, 10, 0, 0, 0, time.UTC), b.ChatWindowExpiry())
}

func TestBooking_ChatWindowExpiry_ZeroDays(t *testing.T) {
	endsAt := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	b := &Booking{EndsAt: endsAt, ChatWindowDays: 0}

	// Нулевое окно закрывает чат сразу после конца сессии
	assert.Equal(t, endsAt, b.ChatWindowExpiry())
}

func TestBooking_LifecycleHelpers(t *testing.T) {
	scheduled := &Booking{Status: StatusScheduled}
	completed := &Booking{Status: StatusCompleted}
	cancelled := &Booking{Status: StatusCancelled}

	assert.True(t, scheduled.CanBeCancelled())
	assert.True(t, scheduled.CanBeRescheduled())
	assert.True(t, scheduled.IsActive())

	assert.False(t, completed.CanBeCancelled())
	assert.False(t, completed.CanBeRescheduled())
	assert.True(t, completed.IsActive())

	assert.False(t, cancelled.CanBeCancelled())
	assert.False(t, cancelled.CanBeRescheduled())
	assert.False(t, cancelled.IsActive())
}

func TestBooking_HasNotes(t *testing.T) {
	notes := "doc://notes/42"
	empty := ""

	assert.True(t, (&Booking{NotesRef: &notes}).HasNotes())
	assert.False(t, (&Booking{NotesRef: &empty}).HasNotes())
	assert.False(t, (&Booking{}).HasNotes())
}
