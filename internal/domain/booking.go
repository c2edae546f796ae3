package domain

import "time"

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	StatusScheduled BookingStatus = "scheduled"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking,
// independent of the session lifecycle
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a client's reservation of one slot.
// Session times and the chat window are copied from the slot and its plan at
// booking time and stay immutable afterwards (reschedule rewrites them as a
// single unit). Bookings are never deleted - they are the audit trail.
type Booking struct {
	ID        int64
	Reference string // External reference code (uuid), used in notification payloads
	SlotID    int64
	MentorID  int64
	ClientID  int64

	Status        BookingStatus
	PaymentStatus PaymentStatus

	StartsAt       time.Time
	EndsAt         time.Time
	ChatWindowDays int

	// Optional attachments
	MeetingLink  *string
	NotesRef     *string
	ChatThreadID *string

	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusScheduled
}

// CanBeRescheduled returns true if the booking can be moved to another slot
func (b *Booking) CanBeRescheduled() bool {
	return b.Status == StatusScheduled
}

// EffectiveStatus returns the booking status as observed at the given moment.
// An explicitly stored completed/cancelled status always wins; a scheduled
// booking whose session end has passed reports completed without a write.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status != StatusScheduled {
		return b.Status
	}
	if !now.Before(b.EndsAt) {
		return StatusCompleted
	}
	return StatusScheduled
}

// IsSessionOver returns true if the session end time has passed
func (b *Booking) IsSessionOver(now time.Time) bool {
	return !now.Before(b.EndsAt)
}

// ChatWindowExpiry returns the instant the post-session chat window closes
func (b *Booking) ChatWindowExpiry() time.Time {
	return b.EndsAt.Add(time.Duration(b.ChatWindowDays) * 24 * time.Hour)
}

// HasNotes returns true if session notes are attached to the booking.
// Note access never expires - it is gated only by the notes existing.
func (b *Booking) HasNotes() bool {
	return b.NotesRef != nil && *b.NotesRef != ""
}

// MentorBookingsFilter фильтр для получения бронирований ментора
type MentorBookingsFilter struct {
	MentorID         int64          // Обязательный параметр
	StartDate        *time.Time     // Начало периода (опционально)
	EndDate          *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые бронирования
}
