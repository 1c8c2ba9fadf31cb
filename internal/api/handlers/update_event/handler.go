package update_event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	eventsService "event-slot-service/internal/service/events"
	"event-slot-service/internal/service/events/models"
)

const (
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgEventNotFound      = "событие не найдено"
	msgDeviceNotFound     = "одно из устройств не найдено"
	msgInvalidDates       = "некорректный список дат: нужен хотя бы один день без дубликатов, формат YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные события"
)

type Handler struct {
	service EventService
	logger  Logger
}

func NewHandler(service EventService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/events/{eventId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /events/{eventId} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req models.UpdateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /events/{eventId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), eventID, &req)
	if err != nil {
		switch {
		case errors.Is(err, eventsService.ErrEventNotFound):
			h.logger.Warn("PUT /events/{eventId} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		case errors.Is(err, eventsService.ErrDeviceNotFound):
			h.logger.Warn("PUT /events/{eventId} - Device not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, eventsService.ErrInvalidDates):
			h.logger.Warn("PUT /events/{eventId} - Invalid dates: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, eventsService.ErrInvalidInput):
			h.logger.Warn("PUT /events/{eventId} - Invalid input: event_id=%d, error=%v", eventID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /events/{eventId} - Failed to update event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /events/{eventId} - Event updated: event_id=%d", eventID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
