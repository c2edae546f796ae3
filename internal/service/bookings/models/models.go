package models

import (
	"errors"
	"time"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidPaymentStatus возвращается при некорректном платёжном статусе
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статусов бронирования
// Оба поля опциональны, но хотя бы одно должно быть указано
type UpdateStatusRequest struct {
	UserID        int64   `json:"userId"`
	Status        *string `json:"status,omitempty"`        // Только "completed"
	PaymentStatus *string `json:"paymentStatus,omitempty"` // pending | paid | refunded
}

// AttachMeetingLinkRequest запрос на прикрепление ссылки на встречу
type AttachMeetingLinkRequest struct {
	UserID      int64  `json:"userId"`
	MeetingLink string `json:"meetingLink"`
}

// AttachNotesRequest запрос на прикрепление заметок сессии
type AttachNotesRequest struct {
	UserID   int64  `json:"userId"`
	NotesRef string `json:"notesRef"`
}

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetMentorBookingsRequest запрос на получение бронирований ментора
type GetMentorBookingsRequest struct {
	MentorID         int64      `json:"mentorId"`
	UserID           int64      `json:"userId"`
	StartDate        *time.Time `json:"startDate,omitempty"`        // Начало периода (опционально)
	EndDate          *time.Time `json:"endDate,omitempty"`          // Конец периода (опционально)
	Status           *string    `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool       `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetMentorBookingsRequest) ToDomainFilter() (domain.MentorBookingsFilter, error) {
	filter := domain.MentorBookingsFilter{
		MentorID:         r.MentorID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64  `json:"id"`
	Reference      string `json:"reference"`
	SlotID         int64  `json:"slotId"`
	MentorID       int64  `json:"mentorId"`
	ClientID       int64  `json:"clientId"`
	Status         string `json:"status"` // Эффективный статус на момент запроса
	PaymentStatus  string `json:"paymentStatus"`
	StartsAt       string `json:"startsAt"` // ISO 8601
	EndsAt         string `json:"endsAt"`   // ISO 8601
	ChatWindowDays int    `json:"chatWindowDays"`

	MeetingLink *string `json:"meetingLink,omitempty"`
	NotesRef    *string `json:"notesRef,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
	CompletedAt        *string `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
// Статус в ответе - эффективный: scheduled с прошедшим концом сессии
// отдаётся как completed
func FromDomainBooking(b *domain.Booking, now time.Time) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		SlotID:             b.SlotID,
		MentorID:           b.MentorID,
		ClientID:           b.ClientID,
		Status:             string(b.EffectiveStatus(now)),
		PaymentStatus:      string(b.PaymentStatus),
		StartsAt:           b.StartsAt.Format(time.RFC3339),
		EndsAt:             b.EndsAt.Format(time.RFC3339),
		ChatWindowDays:     b.ChatWindowDays,
		MeetingLink:        b.MeetingLink,
		NotesRef:           b.NotesRef,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	if b.CompletedAt != nil {
		completedStr := b.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, now time.Time) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, now); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusScheduled, domain.StatusCompleted, domain.StatusCancelled:
		return s, nil
	}

	return "", ErrInvalidStatus
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus с валидацией
func ToDomainPaymentStatus(status string) (domain.PaymentStatus, error) {
	s := domain.PaymentStatus(status)

	switch s {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentRefunded:
		return s, nil
	}

	return "", ErrInvalidPaymentStatus
}
