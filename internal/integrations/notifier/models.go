package notifier

import (
	"event-slot-service/pkg/types"
)

// BookingLine одна строка подтверждения: устройство + дата + слот
type BookingLine struct {
	DeviceID   int64            `json:"device_id"`
	DeviceName string           `json:"device_name"`
	Date       types.DateString `json:"date"`
	SlotTime   types.TimeString `json:"slot_time"`
}

// ConfirmationMessage подтверждение заявки посетителю
type ConfirmationMessage struct {
	EventTitle          string        `json:"event_title"`
	Name                string        `json:"name"`
	Email               string        `json:"email"`
	Phone               string        `json:"phone"`
	ConfirmationCode    string        `json:"confirmation_code"`
	SlotDurationMinutes int           `json:"slot_duration_minutes"`
	Bookings            []BookingLine `json:"bookings"`

	// Calendar заполняется клиентом перед отправкой: ICS вложение
	// со всеми слотами заявки
	Calendar string `json:"calendar,omitempty"`
}

// DigestMessage ежедневная сводка организатору по завтрашним бронированиям
type DigestMessage struct {
	Date     types.DateString `json:"date"`
	Total    int              `json:"total"`
	Sections []DigestSection  `json:"sections"`
}

// DigestSection сводка по одному событию
type DigestSection struct {
	EventID    int64         `json:"event_id"`
	EventTitle string        `json:"event_title"`
	Bookings   []BookingLine `json:"bookings"`
}
