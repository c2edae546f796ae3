package chat_access

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/MMP-SchedulingService/internal/api/handlers"
	"github.com/m04kA/MMP-SchedulingService/internal/service/access"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование не найдено"
)

type Handler struct {
	service AccessService
	logger  Logger
}

func NewHandler(service AccessService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}/chat-access
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/chat-access - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	result, err := h.service.GetChatAccess(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/chat-access - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, access.ErrInvalidInput):
			h.logger.Warn("GET /bookings/{id}/chat-access - Invalid input: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgInvalidBookingID)

		default:
			h.logger.Error("GET /bookings/{id}/chat-access - Failed to get access: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/chat-access - Access computed: booking_id=%d, chat_open=%v",
		bookingID, result.ChatOpen)
	handlers.RespondJSON(w, http.StatusOK, result)
}
