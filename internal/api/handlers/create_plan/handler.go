package create_plan

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
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMentorNotFound     = "ментор не найден"
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

// Handle POST /api/v1/mentors/{mentorId}/plans
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/plans - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /mentors/{id}/plans - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreatePlanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /mentors/{id}/plans - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreatePlanRequest{
		MentorID:        mentorID,
		UserID:          userID,
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		ChatWindowDays:  req.ChatWindowDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrMentorNotFound):
			h.logger.Warn("POST /mentors/{id}/plans - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, plans.ErrAccessDenied):
			h.logger.Warn("POST /mentors/{id}/plans - Access denied: mentor_id=%d, user_id=%d", mentorID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("POST /mentors/{id}/plans - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /mentors/{id}/plans - Failed to create plan: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /mentors/{id}/plans - Plan created: plan_id=%d, mentor_id=%d", result.ID, mentorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
