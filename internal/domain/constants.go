package domain

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours

	MinChatWindowDays = 0
	MaxChatWindowDays = 90

	MaxPlanTitleLength          = 200
	MaxCancellationReasonLength = 500
	MaxMeetingLinkLength        = 500
)

// Default configuration values
const (
	DefaultChatWindowDays = 3
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveBookingStatuses список статусов, при которых бронирование удерживает слот
var ActiveBookingStatuses = []BookingStatus{
	StatusScheduled,
	StatusCompleted,
}
