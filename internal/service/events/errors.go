package events

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("event not found")

	// ErrDeviceNotFound возвращается, когда одно из устройств события не найдено
	ErrDeviceNotFound = errors.New("device not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDates возвращается при пустом списке дат или дубликатах
	ErrInvalidDates = errors.New("invalid event dates")

	// ErrInvalidTimeWindow возвращается при некорректном окне времени
	ErrInvalidTimeWindow = errors.New("invalid time window")

	// ErrInvalidDuration возвращается при недопустимой длительности слота
	ErrInvalidDuration = errors.New("invalid slot duration")

	// ErrEmptySlotGrid возвращается, когда окно времени и длительность
	// не дают ни одного слота
	ErrEmptySlotGrid = errors.New("time window produces no slots")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
