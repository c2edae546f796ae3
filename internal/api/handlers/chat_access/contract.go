package chat_access

import (
	"context"

	"github.com/m04kA/MMP-SchedulingService/internal/service/access/models"
)

type AccessService interface {
	GetChatAccess(ctx context.Context, bookingID int64) (*models.ChatAccessResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
