package list_devices

import (
	"net/http"

	"event-slot-service/internal/api/handlers"
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

// Handle GET /api/v1/devices
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /devices - Failed to list devices: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
