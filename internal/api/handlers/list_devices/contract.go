package list_devices

import (
	"context"

	"event-slot-service/internal/service/devices/models"
)

type DeviceService interface {
	List(ctx context.Context) (*models.DeviceListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
