package models

import (
	"time"

	"github.com/m04kA/MMP-SchedulingService/internal/domain"
)

// Request модели

// CreatePlanRequest запрос на создание плана
type CreatePlanRequest struct {
	MentorID        int64   `json:"mentorId"`
	UserID          int64   `json:"userId"`
	Title           string  `json:"title"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	ChatWindowDays  *int    `json:"chatWindowDays,omitempty"` // По умолчанию domain.DefaultChatWindowDays
}

// UpdatePlanRequest запрос на обновление плана
// Длительность не меняется - для другой длительности создаётся новый план,
// иначе ранее созданные слоты перестали бы соответствовать плану
type UpdatePlanRequest struct {
	PlanID         int64    `json:"planId"`
	UserID         int64    `json:"userId"`
	Title          *string  `json:"title,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	ChatWindowDays *int     `json:"chatWindowDays,omitempty"`
	IsActive       *bool    `json:"isActive,omitempty"`
}

// ListPlansRequest запрос на получение планов ментора
type ListPlansRequest struct {
	MentorID   int64 `json:"mentorId"`
	OnlyActive bool  `json:"onlyActive,omitempty"`
}

// Response модели

// PlanResponse ответ с данными плана
type PlanResponse struct {
	ID              int64   `json:"id"`
	MentorID        int64   `json:"mentorId"`
	Title           string  `json:"title"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	ChatWindowDays  int     `json:"chatWindowDays"`
	IsActive        bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanListResponse ответ со списком планов
type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
}

// Методы конвертации

// FromDomainPlan конвертирует domain модель в DTO
func FromDomainPlan(p *domain.Plan) *PlanResponse {
	if p == nil {
		return nil
	}

	return &PlanResponse{
		ID:              p.ID,
		MentorID:        p.MentorID,
		Title:           p.Title,
		DurationMinutes: p.DurationMinutes,
		Price:           p.Price,
		ChatWindowDays:  p.ChatWindowDays,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// FromDomainPlanList конвертирует список domain моделей в DTO
func FromDomainPlanList(plans []*domain.Plan) *PlanListResponse {
	if plans == nil {
		return &PlanListResponse{
			Plans: []PlanResponse{},
		}
	}

	resp := &PlanListResponse{
		Plans: make([]PlanResponse, len(plans)),
	}

	for i, plan := range plans {
		if planResp := FromDomainPlan(plan); planResp != nil {
			resp.Plans[i] = *planResp
		}
	}

	return resp
}
