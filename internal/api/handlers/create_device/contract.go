package create_device

import (
	"context"

	"event-slot-service/internal/service/devices/models"
)

type DeviceService interface {
	Create(ctx context.Context, req *models.CreateDeviceRequest) (*models.DeviceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
