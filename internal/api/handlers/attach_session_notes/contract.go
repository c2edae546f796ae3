package attach_session_notes

import (
	"context"

	"github.com/m04kA/MMP-SchedulingService/internal/service/bookings/models"
)

type BookingService interface {
	AttachNotes(ctx context.Context, bookingID int64, req *models.AttachNotesRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
