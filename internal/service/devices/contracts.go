package devices

import (
	"context"
	"time"

	"event-slot-service/internal/domain"
	"event-slot-service/pkg/types"
)

// DeviceRepository интерфейс репозитория устройств
type DeviceRepository interface {
	Create(ctx context.Context, device *domain.Device) (*domain.Device, error)
	GetByID(ctx context.Context, id int64) (*domain.Device, error)
	List(ctx context.Context) ([]*domain.Device, error)
	Update(ctx context.Context, device *domain.Device) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
// (нужен для защиты от удаления устройства с будущими бронированиями)
type BookingRepository interface {
	CountByDeviceFrom(ctx context.Context, deviceID int64, from types.DateString) (int, error)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
