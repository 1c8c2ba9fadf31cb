package set_event_enabled

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	eventsService "event-slot-service/internal/service/events"
)

const (
	msgInvalidEventID     = "некорректный ID события"
	msgInvalidRequestBody = "некорректное тело запроса: поле enabled обязательно"
	msgEventNotFound      = "событие не найдено"
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

// Handle PATCH /api/v1/events/{eventId}/enabled
// Переключает гейт приема новых заявок, не трогая остальные поля события
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /events/{eventId}/enabled - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	var req Request
	if err := handlers.DecodeJSON(r, &req); err != nil || req.Enabled == nil {
		h.logger.Warn("PATCH /events/{eventId}/enabled - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetEnabled(r.Context(), eventID, *req.Enabled); err != nil {
		switch {
		case errors.Is(err, eventsService.ErrEventNotFound):
			h.logger.Warn("PATCH /events/{eventId}/enabled - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		default:
			h.logger.Error("PATCH /events/{eventId}/enabled - Failed to set enabled: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /events/{eventId}/enabled - Event gate set: event_id=%d, enabled=%t", eventID, *req.Enabled)
	handlers.RespondNoContent(w)
}
