package update_device

import (
	"context"

	"event-slot-service/internal/service/devices/models"
)

type DeviceService interface {
	Update(ctx context.Context, id int64, req *models.UpdateDeviceRequest) (*models.DeviceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
