package get_availability

import (
	"event-slot-service/pkg/types"
)

// SelectedSlot уже выбранная в текущей заявке ячейка (еще не закоммиченная).
// Передается фронтендом, чтобы скрыть из выдачи слоты, на которые посетитель
// уже записался на других устройствах в тот же момент.
type SelectedSlot struct {
	DeviceID int64            `json:"deviceId"`
	Date     types.DateString `json:"date"`
	SlotTime types.TimeString `json:"slotTime"`
}

// Request запрос доступности события.
// DeviceID и Date опциональны и сужают выдачу.
type Request struct {
	EventID  int64             `json:"eventId"`
	DeviceID *int64            `json:"deviceId,omitempty"`
	Date     *types.DateString `json:"date,omitempty"`
	Selected []SelectedSlot    `json:"selected,omitempty"`
}

// DeviceSlots свободные слоты одного устройства на дату
type DeviceSlots struct {
	DeviceID   int64    `json:"deviceId"`
	DeviceName string   `json:"deviceName"`
	FreeSlots  []string `json:"freeSlots"`
}

// DateAvailability доступность всех устройств события на одну дату
type DateAvailability struct {
	Date    string        `json:"date"`
	Devices []DeviceSlots `json:"devices"`
}

// Response проекция доступности события
type Response struct {
	EventID             int64              `json:"eventId"`
	Title               string             `json:"title"`
	Enabled             bool               `json:"enabled"`
	SlotDurationMinutes int                `json:"slotDurationMinutes"`
	Dates               []DateAvailability `json:"dates"`

	// FeasibleDates даты, на которые каждое устройство события имеет
	// хотя бы один свободный слот
	FeasibleDates []string `json:"feasibleDates"`
}
