package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"event-slot-service/pkg/types"
)

// Booking represents one committed (device, date, slot) cell of an event.
// Бронирование либо существует и занимает ячейку, либо удалено — статусов
// нет: отмена физически удаляет запись, и ячейка сразу снова свободна.
type Booking struct {
	ID       int64
	EventID  int64
	DeviceID int64
	Date     types.DateString
	SlotTime types.TimeString

	// Контактные поля посетителя (email/phone нормализованы при создании)
	Name  string
	Email string
	Phone string
	Note  *string

	// ConfirmationCode общий для всех бронирований одной заявки
	ConfirmationCode uuid.UUID

	CreatedAt time.Time
}

// EventBookingsFilter фильтр выборки бронирований события
type EventBookingsFilter struct {
	EventID  int64             // обязательный
	DeviceID *int64            // опционально: только одно устройство
	Date     *types.DateString // опционально: только одна дата
	SlotTime *types.TimeString // опционально: только один слот
}

// NormalizeEmail приводит email к каноничному виду для сравнения
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizePhone приводит телефон к каноничному виду для сравнения
func NormalizePhone(phone string) string {
	return strings.TrimSpace(phone)
}
