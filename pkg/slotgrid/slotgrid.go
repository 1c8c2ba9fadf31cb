// Package slotgrid генерирует сетку временных слотов события.
//
// Сетка строится один раз при создании события из диапазона start/end и
// длительности слота, после чего хранится вместе с событием — при отдаче
// доступности она не пересчитывается.
package slotgrid

import (
	"iter"

	"event-slot-service/pkg/types"
)

// Sequence возвращает ленивую конечную последовательность меток слотов
// start, start+duration, start+2*duration, ... строго меньше end.
//
// Последовательность можно обходить повторно (restartable). Для
// duration <= 0 или start >= end последовательность пуста — это не ошибка,
// флоу создания события показывает предупреждение валидации.
func Sequence(start, end types.TimeString, durationMinutes int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if durationMinutes <= 0 || !start.IsBefore(end) {
			return
		}

		startMin, err := start.MinutesFromMidnight()
		if err != nil {
			return
		}
		endMin, err := end.MinutesFromMidnight()
		if err != nil {
			return
		}

		for m := startMin; m < endMin; m += durationMinutes {
			slot, err := types.TimeString("00:00").AddMinutes(m)
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// Generate материализует последовательность слотов в слайс.
// Используется при создании события для сохранения сетки в хранилище.
func Generate(start, end types.TimeString, durationMinutes int) []types.TimeString {
	slots := make([]types.TimeString, 0, Count(start, end, durationMinutes))
	for slot := range Sequence(start, end, durationMinutes) {
		slots = append(slots, slot)
	}
	return slots
}

// Count возвращает длину сетки по замкнутой формуле ceil((end-start)/duration)
func Count(start, end types.TimeString, durationMinutes int) int {
	if durationMinutes <= 0 || !start.IsBefore(end) {
		return 0
	}

	startMin, err := start.MinutesFromMidnight()
	if err != nil {
		return 0
	}
	endMin, err := end.MinutesFromMidnight()
	if err != nil {
		return 0
	}

	return (endMin - startMin + durationMinutes - 1) / durationMinutes
}
