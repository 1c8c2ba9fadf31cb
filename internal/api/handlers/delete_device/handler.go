package delete_device

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"event-slot-service/internal/api/handlers"
	devicesService "event-slot-service/internal/service/devices"
)

const (
	msgInvalidDeviceID = "некорректный ID устройства"
	msgDeviceNotFound  = "устройство не найдено"
	msgDeviceInUse     = "у устройства есть предстоящие бронирования"
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

// Handle DELETE /api/v1/devices/{deviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deviceID, err := strconv.ParseInt(mux.Vars(r)["deviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /devices/{deviceId} - Invalid device ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDeviceID)
		return
	}

	if err := h.service.Delete(r.Context(), deviceID); err != nil {
		switch {
		case errors.Is(err, devicesService.ErrDeviceNotFound):
			h.logger.Warn("DELETE /devices/{deviceId} - Device not found: device_id=%d", deviceID)
			handlers.RespondNotFound(w, msgDeviceNotFound)

		case errors.Is(err, devicesService.ErrDeviceInUse):
			h.logger.Warn("DELETE /devices/{deviceId} - Device in use: device_id=%d", deviceID)
			handlers.RespondError(w, http.StatusConflict, msgDeviceInUse)

		default:
			h.logger.Error("DELETE /devices/{deviceId} - Failed to delete device: device_id=%d, error=%v", deviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /devices/{deviceId} - Device deleted: device_id=%d", deviceID)
	handlers.RespondNoContent(w)
}
