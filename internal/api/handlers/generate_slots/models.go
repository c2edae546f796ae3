package generate_slots

import (
	"time"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
	generateSlots "github.com/m04kA/MMP-SchedulingService/internal/usecase/generate_slots"
	"github.com/m04kA/MMP-SchedulingService/pkg/types"
)

// GenerateSlotsRequest HTTP request model
type GenerateSlotsRequest struct {
	PlanID    int64  `json:"planId"`
	Date      string `json:"date"`      // "2026-09-15"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "18:00"
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	MentorID int64          `json:"mentorId"`
	PlanID   int64          `json:"planId"`
	Date     string         `json:"date"`
	Created  int            `json:"created"`
	Skipped  int            `json:"skipped"`
	Slots    []SlotResponse `json:"slots"`
}

// SlotResponse созданный слот
type SlotResponse struct {
	ID       int64  `json:"id"`
	StartsAt string `json:"startsAt"` // ISO 8601
	EndsAt   string `json:"endsAt"`   // ISO 8601
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateSlotsRequest) ToUseCaseRequest(mentorID int64) (*generateSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &generateSlots.Request{
		MentorID:  mentorID,
		PlanID:    r.PlanID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			ID:       slot.ID,
			StartsAt: slot.StartsAt.Format(time.RFC3339),
			EndsAt:   slot.EndsAt.Format(time.RFC3339),
		}
	}

	return &GenerateSlotsResponse{
		MentorID: resp.MentorID,
		PlanID:   resp.PlanID,
		Date:     resp.Date.Format(domain.DateFormat),
		Created:  resp.Created,
		Skipped:  resp.Skipped,
		Slots:    slots,
	}
}
