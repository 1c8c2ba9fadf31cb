package get_availability

import "errors"

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("get_availability: event not found")

	// ErrUnknownDevice возвращается, когда устройство не входит в событие
	ErrUnknownDevice = errors.New("get_availability: device does not belong to the event")

	// ErrUnknownDate возвращается, когда дата не входит в событие
	ErrUnknownDate = errors.New("get_availability: date is not an event date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
