package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/booking"
	"github.com/m04kA/MMP-SchedulingService/internal/service/access/models"
)

// Service шлюз пост-сессионных доступов
// Чисто производное чтение: собственного состояния не хранит, всё
// вычисляется из времени конца сессии и окна чата бронирования
type Service struct {
	bookingRepo  BookingRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступов
func NewService(bookingRepo BookingRepository, logger Logger) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetChatAccess вычисляет состояние чата и заметок для бронирования
// Чат открыт пока now < конец сессии + окно в днях; для отменённых
// бронирований чат закрыт. Доступ к заметкам не истекает - он определяется
// только наличием прикреплённой записи
func (s *Service) GetChatAccess(ctx context.Context, bookingID int64) (*models.ChatAccessResponse, error) {
	s.logger.Info("GetChatAccess: checking access for booking id=%d", bookingID)

	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetChatAccess: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetChatAccess: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: GetChatAccess - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	expiry := booking.ChatWindowExpiry()

	resp := &models.ChatAccessResponse{
		BookingID:      booking.ID,
		Status:         string(booking.EffectiveStatus(now)),
		ChatOpen:       booking.IsActive() && now.Before(expiry),
		ChatExpiresAt:  expiry.Format(time.RFC3339),
		NotesAvailable: booking.IsActive() && booking.HasNotes(),
	}

	if resp.ChatOpen {
		days, hours := remainingBreakdown(expiry.Sub(now))
		resp.RemainingDays = &days
		resp.RemainingHours = &hours
	}

	s.logger.Info("GetChatAccess: booking id=%d chatOpen=%v notesAvailable=%v",
		bookingID, resp.ChatOpen, resp.NotesAvailable)
	return resp, nil
}

// remainingBreakdown раскладывает остаток окна на дни и часы для отображения
func remainingBreakdown(remaining time.Duration) (days int, hours int) {
	if remaining < 0 {
		return 0, 0
	}

	days = int(remaining / (24 * time.Hour))
	hours = int((remaining % (24 * time.Hour)) / time.Hour)
	return days, hours
}
