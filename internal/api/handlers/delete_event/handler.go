package delete_event

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	eventsService "event-slot-service/internal/service/events"
)

const (
	msgInvalidEventID = "некорректный ID события"
	msgEventNotFound  = "событие не найдено"
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

// Handle DELETE /api/v1/events/{eventId}
// Удаляет событие вместе со всеми его бронированиями
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /events/{eventId} - Invalid event ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return
	}

	if err := h.service.Delete(r.Context(), eventID); err != nil {
		switch {
		case errors.Is(err, eventsService.ErrEventNotFound):
			h.logger.Warn("DELETE /events/{eventId} - Event not found: event_id=%d", eventID)
			handlers.RespondNotFound(w, msgEventNotFound)

		default:
			h.logger.Error("DELETE /events/{eventId} - Failed to delete event: event_id=%d, error=%v", eventID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /events/{eventId} - Event deleted: event_id=%d", eventID)
	handlers.RespondNoContent(w)
}
