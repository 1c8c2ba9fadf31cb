package update_device

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	devicesService "event-slot-service/internal/service/devices"
	"event-slot-service/internal/service/devices/models"
)

const (
	msgInvalidDeviceID    = "некорректный ID устройства"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgDeviceNotFound     = "устройство не найдено"
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

// Handle PUT /api/v1/devices/{deviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID, err := strconv.ParseInt(mux.Vars(r)["deviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /devices/{deviceId} - Invalid device ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeviceID)
		return
	}

	var req models.UpdateDeviceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /devices/{deviceId} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), deviceID, &req)
	if err != nil {
		switch {
		case errors.Is(err, devicesService.ErrDeviceNotFound):
			h.logger.Warn("PUT /devices/{deviceId} - Device not found: device_id=%d", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, devicesService.ErrInvalidInput):
			h.logger.Warn("PUT /devices/{deviceId} - Invalid input: device_id=%d, error=%v", deviceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PUT /devices/{deviceId} - Failed to update device: device_id=%d, error=%v", deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /devices/{deviceId} - Device updated: device_id=%d", deviceID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
