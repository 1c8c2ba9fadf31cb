package create_event

import (
	"errors"
	"net/http"

	"event-slot-service/internal/api/handlers"
	eventsService "event-slot-service/internal/service/events"
	"event-slot-service/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDates       = "некорректный список дат: нужен хотя бы один день без дубликатов, формат YYYY-MM-DD"
	msgInvalidTimeWindow  = "некорректное окно времени, ожидается HH:MM"
	msgInvalidDuration    = "некорректная длительность слота"
	msgEmptySlotGrid      = "окно времени и длительность не дают ни одного слота"
	msgDeviceNotFound     = "одно из устройств не найдено"
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

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, eventsService.ErrInvalidDates):
			h.logger.Warn("POST /events - Invalid dates: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDates)

		case errors.Is(err, eventsService.ErrInvalidTimeWindow):
			h.logger.Warn("POST /events - Invalid time window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeWindow)

		case errors.Is(err, eventsService.ErrInvalidDuration):
			h.logger.Warn("POST /events - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, eventsService.ErrEmptySlotGrid):
			h.logger.Warn("POST /events - Empty slot grid: %v", err)
			handlers.RespondBadRequest(w, msgEmptySlotGrid)

		case errors.Is(err, eventsService.ErrDeviceNotFound):
			h.logger.Warn("POST /events - Device not found: %v", err)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, eventsService.ErrInvalidInput):
			h.logger.Warn("POST /events - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /events - Failed to create event: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event created: event_id=%d, slots=%d", result.ID, len(result.AvailableSlots))
	handlers.RespondJSON(w, http.StatusCreated, result)
}
