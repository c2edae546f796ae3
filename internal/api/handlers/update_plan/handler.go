package update_plan

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/MMP-SchedulingService/internal/api/middleware"
	"github.com/m04kA/MMP-SchedulingService/internal/service/plans"
	"github.com/m04kA/MMP-SchedulingService/internal/service/plans/models"
)

const (
	msgInvalidPlanID      = "некорректный ID плана"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "план не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	service PlanService
	logger  Logger
}

func NewHandler(service PlanService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/plans/{planId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	planID, err := strconv.ParseInt(vars["planId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /plans/{id} - Invalid plan ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPlanID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /plans/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdatePlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /plans/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), &models.UpdatePlanRequest{
		PlanID:         planID,
		UserID:         userID,
		Title:          req.Title,
		Price:          req.Price,
		ChatWindowDays: req.ChatWindowDays,
		IsActive:       req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrPlanNotFound):
			h.logger.Warn("PATCH /plans/{id} - Plan not found: plan_id=%d", planID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, plans.ErrAccessDenied):
			h.logger.Warn("PATCH /plans/{id} - Access denied: plan_id=%d, user_id=%d", planID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("PATCH /plans/{id} - Invalid input: plan_id=%d, error=%v", planID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /plans/{id} - Failed to update plan: plan_id=%d, error=%v", planID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /plans/{id} - Plan updated: plan_id=%d, user_id=%d", planID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
