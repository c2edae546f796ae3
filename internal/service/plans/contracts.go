package plans

import (
	"context"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/mentorservice"
)

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
	GetByMentorID(ctx context.Context, mentorID int64, onlyActive bool) ([]*domain.Plan, error)
	Update(ctx context.Context, plan *domain.Plan) error
}

// MentorServiceClient интерфейс клиента для MentorService
type MentorServiceClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*mentorservice.Mentor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
