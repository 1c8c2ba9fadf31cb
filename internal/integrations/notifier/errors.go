package notifier

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("notifier client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("notifier client: invalid response")

	// ErrBuildCalendar возвращается при ошибке сборки ICS вложения
	ErrBuildCalendar = errors.New("notifier client: failed to build calendar")
)
