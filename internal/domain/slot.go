package domain

import "time"

// SlotStatus represents the state of a bookable slot
type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

// Slot represents a fixed-duration bookable time interval owned by one mentor.
// Slots are created in batches by a generation request and are the only
// entities whose free/booked state the booking flow mutates.
type Slot struct {
	ID       int64
	MentorID int64
	PlanID   int64
	StartsAt time.Time
	EndsAt   time.Time
	Status   SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFree returns true if the slot can be reserved
func (s *Slot) IsFree() bool {
	return s.Status == SlotStatusFree
}

// IsBooked returns true if the slot is held by an active booking
func (s *Slot) IsBooked() bool {
	return s.Status == SlotStatusBooked
}

// Interval returns the slot's time interval
func (s *Slot) Interval() Interval {
	return Interval{Start: s.StartsAt, End: s.EndsAt}
}

// Interval is a half-open time range [Start, End)
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid returns true if the interval has positive length
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Duration returns the interval length
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two intervals share a non-empty intersection.
// Touching endpoints (one interval ending exactly where another starts)
// do not count as overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// SlotsFilter filters slot listing queries
type SlotsFilter struct {
	MentorID int64       // Required
	Date     *time.Time  // Optional: only slots starting on this calendar date (UTC)
	Status   *SlotStatus // Optional: only free or only booked slots
}
