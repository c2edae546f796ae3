package attach_meeting_link

import (
	"context"

	"github.com/m04kA/MMP-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	AttachMeetingLink(ctx context.Context, bookingID int64, req *models.AttachMeetingLinkRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
