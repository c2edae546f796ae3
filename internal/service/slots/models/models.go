package models

import (
	"errors"
	"time"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе слота
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Request модели

// ListSlotsRequest запрос на получение слотов ментора
type ListSlotsRequest struct {
	MentorID int64      `json:"mentorId"`
	Date     *time.Time `json:"date,omitempty"`   // Фильтр по дате (опционально)
	Status   *string    `json:"status,omitempty"` // free | booked (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListSlotsRequest) ToDomainFilter() (domain.SlotsFilter, error) {
	filter := domain.SlotsFilter{
		MentorID: r.MentorID,
		Date:     r.Date,
	}

	if r.Status != nil {
		status, err := ToDomainSlotStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// DeleteSlotRequest запрос на удаление слота
type DeleteSlotRequest struct {
	SlotID int64 `json:"slotId"`
	UserID int64 `json:"userId"`
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID       int64  `json:"id"`
	MentorID int64  `json:"mentorId"`
	PlanID   int64  `json:"planId"`
	StartsAt string `json:"startsAt"` // ISO 8601
	EndsAt   string `json:"endsAt"`   // ISO 8601
	Status   string `json:"status"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// Методы конвертации

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		ID:       s.ID,
		MentorID: s.MentorID,
		PlanID:   s.PlanID,
		StartsAt: s.StartsAt.Format(time.RFC3339),
		EndsAt:   s.EndsAt.Format(time.RFC3339),
		Status:   string(s.Status),
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	if slots == nil {
		return &SlotListResponse{
			Slots: []SlotResponse{},
		}
	}

	resp := &SlotListResponse{
		Slots: make([]SlotResponse, len(slots)),
	}

	for i, slot := range slots {
		if slotResp := FromDomainSlot(slot); slotResp != nil {
			resp.Slots[i] = *slotResp
		}
	}

	return resp
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus с валидацией
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(status)

	switch s {
	case domain.SlotStatusFree, domain.SlotStatusBooked:
		return s, nil
	}

	return "", ErrInvalidStatus
}
