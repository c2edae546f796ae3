package slots

import (
	"context"
	"errors"
	"fmt"

	slotRepo "github.com/m04kA/MMP-SchedulingService/internal/infra/storage/slot"
	"github.com/m04kA/MMP-SchedulingService/internal/service/slots/models"
)

// Service сервис для работы со слотами
type Service struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// List получает слоты ментора с фильтрацией по дате и статусу
// Публичный метод - клиенты просматривают доступность перед бронированием
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("List: fetching slots for mentor=%d, date=%v, status=%v", req.MentorID, req.Date, req.Status)

	if req.MentorID <= 0 {
		return nil, fmt.Errorf("%w: mentorID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	slots, err := s.slotRepo.GetByMentorWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for mentor=%d: %v", req.MentorID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d slots for mentor=%d", len(slots), req.MentorID)
	return models.FromDomainSlotList(slots), nil
}

// Delete удаляет свободный слот ментора
// Занятый слот удалить нельзя - сначала отменяется бронирование.
// Доступно только владельцу слота
func (s *Service) Delete(ctx context.Context, req *models.DeleteSlotRequest) error {
	s.logger.Info("Delete: deleting slot id=%d by user=%d", req.SlotID, req.UserID)

	slot, err := s.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%d not found", req.SlotID)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", req.SlotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if slot.MentorID != req.UserID {
		s.logger.Warn("Delete: access denied for user=%d to slot id=%d", req.UserID, req.SlotID)
		return ErrAccessDenied
	}

	if err := s.slotRepo.Delete(ctx, req.SlotID); err != nil {
		switch {
		case errors.Is(err, slotRepo.ErrSlotNotFound):
			s.logger.Warn("Delete: slot id=%d not found during deletion", req.SlotID)
			return ErrSlotNotFound
		case errors.Is(err, slotRepo.ErrSlotBooked):
			s.logger.Warn("Delete: slot id=%d is booked, cannot delete", req.SlotID)
			return ErrSlotBooked
		default:
			s.logger.Error("Delete: repository error for slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Delete: successfully deleted slot id=%d", req.SlotID)
	return nil
}
