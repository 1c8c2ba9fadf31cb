// Package availability — чистая проекция занятости события.
//
// Проектор строится из ОДНОЙ выборки всех бронирований события (выборка
// по слоту не масштабируется и запрещена как антипаттерн) и дальше отвечает
// на все вопросы о свободных слотах и датах в памяти. Побочных эффектов нет:
// проектор безопасно пересчитывать при каждом изменении набора бронирований
// или по интервалу обновления дашборда.
package availability

import (
	"event-slot-service/internal/domain"
	"event-slot-service/pkg/types"
)

// Projector индекс занятости: дата -> устройство -> множество занятых слотов
type Projector struct {
	event *domain.Event
	taken map[types.DateString]map[int64]map[types.TimeString]struct{}
}

// NewProjector строит индекс занятости по снапшоту бронирований события.
// Бронирования чужих событий игнорируются.
func NewProjector(event *domain.Event, bookings []*domain.Booking) *Projector {
	taken := make(map[types.DateString]map[int64]map[types.TimeString]struct{})

	for _, b := range bookings {
		if b.EventID != event.ID {
			continue
		}

		byDevice, ok := taken[b.Date]
		if !ok {
			byDevice = make(map[int64]map[types.TimeString]struct{})
			taken[b.Date] = byDevice
		}

		slots, ok := byDevice[b.DeviceID]
		if !ok {
			slots = make(map[types.TimeString]struct{})
			byDevice[b.DeviceID] = slots
		}

		slots[b.SlotTime] = struct{}{}
	}

	return &Projector{event: event, taken: taken}
}

// TakenSlots возвращает занятые слоты устройства на дату
// (в порядке сетки события)
func (p *Projector) TakenSlots(date types.DateString, deviceID int64) []types.TimeString {
	takenSet := p.takenSet(date, deviceID)

	slots := make([]types.TimeString, 0, len(takenSet))
	for _, slot := range p.event.AvailableSlots {
		if _, ok := takenSet[slot]; ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// FreeSlots возвращает свободные слоты устройства на дату:
// сетка события минус занятое множество. Если на дату или устройство еще
// никто не записался — возвращается полная сетка.
func (p *Projector) FreeSlots(date types.DateString, deviceID int64) []types.TimeString {
	takenSet := p.takenSet(date, deviceID)

	slots := make([]types.TimeString, 0, len(p.event.AvailableSlots))
	for _, slot := range p.event.AvailableSlots {
		if _, ok := takenSet[slot]; !ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// FreeDates возвращает даты события, на которые у устройства есть хотя бы
// один свободный слот
func (p *Projector) FreeDates(deviceID int64) []types.DateString {
	dates := make([]types.DateString, 0, len(p.event.EventDates))
	for _, date := range p.event.EventDates {
		if p.hasFreeSlot(date, deviceID) {
			dates = append(dates, date)
		}
	}
	return dates
}

// FreeDatesForAllDevices возвращает даты, на которые КАЖДОЕ из устройств
// имеет хотя бы один свободный слот. Общий слот на всех не гарантируется —
// устройства бронируются на независимые слоты одной заявкой.
func (p *Projector) FreeDatesForAllDevices(deviceIDs []int64) []types.DateString {
	dates := make([]types.DateString, 0, len(p.event.EventDates))

	for _, date := range p.event.EventDates {
		feasible := true
		for _, deviceID := range deviceIDs {
			if !p.hasFreeSlot(date, deviceID) {
				feasible = false
				break
			}
		}
		if feasible {
			dates = append(dates, date)
		}
	}

	return dates
}

// FreeSlotsExcluding возвращает свободные слоты устройства на дату за вычетом
// слотов, уже выбранных в текущей (незакоммиченной) заявке для ДРУГИХ
// устройств на ту же дату: один посетитель не может быть в двух местах
// одновременно. Это UX-ограничение на стороне выбора; на коммите действуют
// только store-проверки.
func (p *Projector) FreeSlotsExcluding(date types.DateString, deviceID int64, otherSelections []domain.SlotSelection) []types.TimeString {
	excluded := make(map[types.TimeString]struct{})
	for _, sel := range otherSelections {
		if sel.DeviceID == deviceID {
			continue
		}
		if sel.Date == date {
			excluded[sel.SlotTime] = struct{}{}
		}
	}

	free := p.FreeSlots(date, deviceID)
	if len(excluded) == 0 {
		return free
	}

	slots := make([]types.TimeString, 0, len(free))
	for _, slot := range free {
		if _, ok := excluded[slot]; !ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

// takenSet возвращает занятое множество для пары (дата, устройство)
func (p *Projector) takenSet(date types.DateString, deviceID int64) map[types.TimeString]struct{} {
	byDevice, ok := p.taken[date]
	if !ok {
		return nil
	}
	return byDevice[deviceID]
}

// hasFreeSlot быстрая проверка "есть хотя бы один свободный слот"
func (p *Projector) hasFreeSlot(date types.DateString, deviceID int64) bool {
	takenSet := p.takenSet(date, deviceID)
	return len(takenSet) < len(p.event.AvailableSlots)
}
