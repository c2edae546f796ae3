package notifyservice

import "time"

// Event тип события для NotifyService
type Event string

const (
	EventBookingCreated     Event = "booking_created"
	EventBookingCancelled   Event = "booking_cancelled"
	EventBookingRescheduled Event = "booking_rescheduled"
	EventMeetingLinkAdded   Event = "meeting_link_added"
)

// Payload данные события
type Payload struct {
	BookingID        int64      `json:"booking_id"`
	BookingReference string     `json:"booking_reference"`
	MentorID         int64      `json:"mentor_id"`
	ClientID         int64      `json:"client_id"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           time.Time  `json:"ends_at"`
	OldStartsAt      *time.Time `json:"old_starts_at,omitempty"` // Для booking_rescheduled
	MeetingLink      *string    `json:"meeting_link,omitempty"`  // Для meeting_link_added
}

// notifyRequest тело запроса к NotifyService
type notifyRequest struct {
	Event   string  `json:"event"`
	Payload Payload `json:"payload"`
}
