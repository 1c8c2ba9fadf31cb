package devices

import "errors"

var (
	// ErrDeviceNotFound возвращается, когда устройство не найдено
	ErrDeviceNotFound = errors.New("device not found")

	// ErrDeviceInUse возвращается при попытке удалить устройство
	// с предстоящими бронированиями
	ErrDeviceInUse = errors.New("device has upcoming bookings")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
