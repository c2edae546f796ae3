package generate_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/MMP-SchedulingService/internal/api/middleware"
	generateSlots "github.com/m04kA/MMP-SchedulingService/internal/usecase/generate_slots"
)

const (
	msgInvalidMentorID    = "некорректный ID ментора"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgMentorNotFound     = "ментор не найден"
	msgPlanNotFound       = "план не найден"
	msgPlanInactive       = "план деактивирован"
	msgInvalidTimeRange   = "начало рабочего окна должно быть раньше конца"
	msgDateInPast         = "дата генерации в прошлом"
	msgAllSlotsConflict   = "все слоты пересекаются с существующими"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/mentors/{mentorId}/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mentorID, err := strconv.ParseInt(vars["mentorId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/slots - Invalid mentor ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMentorID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /mentors/{id}/slots - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Генерировать слоты может только сам ментор
	if userID != mentorID {
		h.logger.Warn("POST /mentors/{id}/slots - Access denied: user_id=%d, mentor_id=%d", userID, mentorID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /mentors/{id}/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(mentorID)
	if err != nil {
		h.logger.Warn("POST /mentors/{id}/slots - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrMentorNotFound):
			h.logger.Warn("POST /mentors/{id}/slots - Mentor not found: mentor_id=%d", mentorID)
			handlers.RespondNotFound(w, msgMentorNotFound)

		case errors.Is(err, generateSlots.ErrPlanNotFound):
			h.logger.Warn("POST /mentors/{id}/slots - Plan not found: mentor_id=%d, plan_id=%d", mentorID, req.PlanID)
			handlers.RespondNotFound(w, msgPlanNotFound)

		case errors.Is(err, generateSlots.ErrPlanInactive):
			h.logger.Warn("POST /mentors/{id}/slots - Plan inactive: plan_id=%d", req.PlanID)
			handlers.RespondBadRequest(w, msgPlanInactive)

		case errors.Is(err, generateSlots.ErrInvalidTimeRange):
			h.logger.Warn("POST /mentors/{id}/slots - Invalid time range: mentor_id=%d", mentorID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, generateSlots.ErrInvalidDuration):
			h.logger.Warn("POST /mentors/{id}/slots - Invalid duration: plan_id=%d", req.PlanID)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, generateSlots.ErrDateInPast):
			h.logger.Warn("POST /mentors/{id}/slots - Date in past: mentor_id=%d, date=%s", mentorID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, generateSlots.ErrAllSlotsConflict):
			h.logger.Warn("POST /mentors/{id}/slots - All slots conflict: mentor_id=%d, date=%s", mentorID, req.Date)
			handlers.RespondError(w, http.StatusConflict, msgAllSlotsConflict)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /mentors/{id}/slots - Invalid input: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /mentors/{id}/slots - Failed to generate slots: mentor_id=%d, error=%v", mentorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /mentors/{id}/slots - Slots generated: mentor_id=%d, created=%d, skipped=%d",
		mentorID, result.Created, result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
