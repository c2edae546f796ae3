package create_booking

import (
	"time"

	createBooking "github.com/m04kA/MMP-SchedulingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	SlotID int64 `json:"slotId"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64  `json:"id"`
	Reference      string `json:"reference"`
	SlotID         int64  `json:"slotId"`
	MentorID       int64  `json:"mentorId"`
	ClientID       int64  `json:"clientId"`
	Status         string `json:"status"`
	PaymentStatus  string `json:"paymentStatus"`
	StartsAt       string `json:"startsAt"` // ISO 8601
	EndsAt         string `json:"endsAt"`   // ISO 8601
	ChatWindowDays int    `json:"chatWindowDays"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) *createBooking.Request {
	return &createBooking.Request{
		ClientID: clientID,
		SlotID:   r.SlotID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		Reference:      resp.Reference,
		SlotID:         resp.SlotID,
		MentorID:       resp.MentorID,
		ClientID:       resp.ClientID,
		Status:         resp.Status,
		PaymentStatus:  resp.PaymentStatus,
		StartsAt:       resp.StartsAt.Format(time.RFC3339),
		EndsAt:         resp.EndsAt.Format(time.RFC3339),
		ChatWindowDays: resp.ChatWindowDays,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
