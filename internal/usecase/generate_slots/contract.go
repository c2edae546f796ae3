package generate_slots

import (
	"context"
	"time"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	"github.com/m04kA/MMP-SchedulingService/internal/integrations/mentorservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByMentorWithFilter(ctx context.Context, filter domain.SlotsFilter) ([]*domain.Slot, error)
	CreateBatch(ctx context.Context, mentorID, planID int64, intervals []domain.Interval) ([]*domain.Slot, error)
}

// PlanRepository интерфейс репозитория планов
type PlanRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Plan, error)
}

// MentorServiceClient интерфейс клиента для MentorService
type MentorServiceClient interface {
	GetMentor(ctx context.Context, mentorID int64) (*mentorservice.Mentor, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}
