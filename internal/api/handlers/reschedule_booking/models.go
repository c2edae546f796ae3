package reschedule_booking

import (
	"time"

	rescheduleBooking "github.com/m04kA/MMP-SchedulingService/internal/usecase/reschedule_booking"
)

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	NewSlotID int64 `json:"newSlotId"`
}

// RescheduleBookingResponse HTTP response model
type RescheduleBookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	SlotID        int64  `json:"slotId"`
	MentorID      int64  `json:"mentorId"`
	ClientID      int64  `json:"clientId"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	StartsAt      string `json:"startsAt"` // ISO 8601
	EndsAt        string `json:"endsAt"`   // ISO 8601
	OldSlotID     int64  `json:"oldSlotId"`
	OldStartsAt   string `json:"oldStartsAt"` // ISO 8601
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleBooking.Response) *RescheduleBookingResponse {
	return &RescheduleBookingResponse{
		ID:            resp.ID,
		Reference:     resp.Reference,
		SlotID:        resp.SlotID,
		MentorID:      resp.MentorID,
		ClientID:      resp.ClientID,
		Status:        resp.Status,
		PaymentStatus: resp.PaymentStatus,
		StartsAt:      resp.StartsAt.Format(time.RFC3339),
		EndsAt:        resp.EndsAt.Format(time.RFC3339),
		OldSlotID:     resp.OldSlotID,
		OldStartsAt:   resp.OldStartsAt.Format(time.RFC3339),
	}
}
