package bookings

import (
	"context"

	"event-slot-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByEventWithFilter(ctx context.Context, filter domain.EventBookingsFilter) ([]*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// DeviceRepository интерфейс репозитория устройств
type DeviceRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Device, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
