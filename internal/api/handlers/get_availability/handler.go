package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	getAvailability "event-slot-service/internal/usecase/get_availability"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgInvalidQuery   = "некорректные параметры запроса"
	msgEventNotFound  = "событие не найдено"
	msgUnknownDevice  = "устройство не относится к событию"
	msgUnknownDate    = "дата не относится к событию"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/events/{eventId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /events/{eventId}/availability - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	req, err := parseQuery(eventID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /events/{eventId}/availability - Invalid query: event_id=%d, error=%v", eventID, err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrEventNotFound):
			h.logger.Warn("GET /events/{eventId}/availability - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, getAvailability.ErrUnknownDevice):
			h.logger.Warn("GET /events/{eventId}/availability - Unknown device: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgUnknownDevice)

		case errors.Is(err, getAvailability.ErrUnknownDate):
			h.logger.Warn("GET /events/{eventId}/availability - Unknown date: event_id=%d", eventID)
			handlers.RespondBadRequest(w, msgUnknownDate)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /events/{eventId}/availability - Invalid input: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidQuery)

		default:
			h.logger.Error("GET /events/{eventId}/availability - Failed: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
