package get_mentor_plans

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/MMP-SchedulingService/internal/service/plans"
	"github.com/m04kA/MMP-SchedulingService/internal/service/plans/models"
)

const (
	msgInvalidMentorID = "некорректный ID ментора"
	msgInvalidInput    = "некорректные входные данные"
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

// Handle GET /api/v1/mentors/{mentorId}/plans?onlyActive=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /mentors/{id}/plans - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	req := &models.ListPlansRequest{
		MentorID:   mentorID,
		OnlyActive: r.URL.Query().Get("onlyActive") == "true",
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, plans.ErrInvalidInput):
			h.logger.Warn("GET /mentors/{id}/plans - Invalid input: mentor_id=%d", mentorID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /mentors/{id}/plans - Failed to list plans: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /mentors/{id}/plans - Plans retrieved: mentor_id=%d, count=%d", mentorID, len(result.Plans))
	handlers.RespondJSON(w, http.StatusOK, result)
}
