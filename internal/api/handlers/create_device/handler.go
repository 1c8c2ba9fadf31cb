package create_device

import (
	"errors"
	"net/http"

	"event-slot-service/internal/api/handlers"
	devicesService "event-slot-service/internal/service/devices"
	"event-slot-service/internal/service/devices/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные устройства"
)

type Handler struct {
	service DeviceService
	logger  Logger
}

func NewHandler(service DeviceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/devices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDeviceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /devices - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, devicesService.ErrInvalidInput):
			h.logger.Warn("POST /devices - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /devices - Failed to create device: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /devices - Device created: device_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
