package domain

import (
	"time"

	"event-slot-service/pkg/types"
)

// Event represents a published multi-date, multi-device event.
//
// AvailableSlots выводится один раз при создании из диапазона start/end и
// длительности слота и дальше хранится как есть — при редактировании события
// сетка не пересчитывается, чтобы существующие бронирования не теряли свои
// метки слотов.
type Event struct {
	ID                  int64
	Title               string
	Description         *string
	EventDates          []types.DateString // упорядоченный набор дат, без дубликатов
	SlotDurationMinutes int
	AvailableSlots      []types.TimeString // строго возрастающая сетка, без дубликатов
	DeviceIDs           []int64            // устройства, привязанные к событию (в порядке привязки)
	Enabled             bool               // гейт на новые бронирования

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDate returns true if date is one of the event dates
func (e *Event) HasDate(date types.DateString) bool {
	for _, d := range e.EventDates {
		if d == date {
			return true
		}
	}
	return false
}

// HasSlot returns true if slot belongs to the event's slot grid
func (e *Event) HasSlot(slot types.TimeString) bool {
	for _, s := range e.AvailableSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// HasDevice returns true if the device is attached to the event
func (e *Event) HasDevice(deviceID int64) bool {
	for _, id := range e.DeviceIDs {
		if id == deviceID {
			return true
		}
	}
	return false
}
