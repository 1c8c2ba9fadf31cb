package get_event_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	bookingsService "event-slot-service/internal/service/bookings"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgInvalidQuery   = "некорректные параметры запроса"
	msgEventNotFound  = "событие не найдено"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{eventId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /events/{eventId}/bookings - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	req, err := parseQuery(eventID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /events/{eventId}/bookings - Invalid query: event_id=%d, error=%v", eventID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.GetByEvent(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrEventNotFound):
			h.logger.Warn("GET /events/{eventId}/bookings - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		default:
			h.logger.Error("GET /events/{eventId}/bookings - Failed: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
