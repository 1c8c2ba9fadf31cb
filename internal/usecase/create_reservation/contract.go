package create_reservation

import (
	"context"

	"event-slot-service/internal/domain"
	"event-slot-service/internal/integrations/notifier"
	"event-slot-service/pkg/types"
)

// EventRepository интерфейс репозитория событий
type EventRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
}

// DeviceRepository интерфейс репозитория устройств
type DeviceRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Device, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	FindByCell(ctx context.Context, eventID, deviceID int64, date types.DateString, slot types.TimeString) (*domain.Booking, error)
	FindByContactAtMoment(ctx context.Context, eventID int64, date types.DateString, slot types.TimeString, email, phone string) (*domain.Booking, error)
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	SendConfirmation(ctx context.Context, msg *notifier.ConfirmationMessage) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
