package create_reservation

import (
	"errors"
	"fmt"

	"event-slot-service/pkg/types"
)

var (
	// ErrEventNotFound возвращается, когда событие не найдено
	ErrEventNotFound = errors.New("create_reservation: event not found")

	// ErrEventDisabled возвращается, когда прием бронирований по событию выключен
	ErrEventDisabled = errors.New("create_reservation: event is disabled")

	// ErrIncompleteSelection возвращается, когда заявка не полностью заполнена
	ErrIncompleteSelection = errors.New("create_reservation: reservation is incomplete")

	// ErrInvalidSelection возвращается, когда выбранная ячейка не принадлежит
	// сетке события (чужая дата, чужой слот)
	ErrInvalidSelection = errors.New("create_reservation: selection is outside the event grid")

	// ErrUnknownDevice возвращается, когда устройство не входит в событие
	ErrUnknownDevice = errors.New("create_reservation: device does not belong to the event")

	// ErrSlotAlreadyBooked возвращается, когда ячейка уже занята
	ErrSlotAlreadyBooked = errors.New("create_reservation: slot is already booked")

	// ErrDuplicatePersonAtSlot возвращается, когда посетитель уже записан
	// на этот момент времени по другому бронированию
	ErrDuplicatePersonAtSlot = errors.New("create_reservation: person already booked at this slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)

// SlotConflictError ошибка занятой ячейки с координатами конфликта
type SlotConflictError struct {
	DeviceID int64
	Date     types.DateString
	SlotTime types.TimeString
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("create_reservation: slot %s %s on device %d is already booked",
		e.Date, e.SlotTime, e.DeviceID)
}

// Unwrap позволяет errors.Is(err, ErrSlotAlreadyBooked)
func (e *SlotConflictError) Unwrap() error {
	return ErrSlotAlreadyBooked
}

// DuplicatePersonError ошибка повторной записи посетителя на момент времени
type DuplicatePersonError struct {
	Date                types.DateString
	SlotTime            types.TimeString
	ConflictingDeviceID int64
}

func (e *DuplicatePersonError) Error() string {
	return fmt.Sprintf("create_reservation: person already booked at %s %s on device %d",
		e.Date, e.SlotTime, e.ConflictingDeviceID)
}

// Unwrap позволяет errors.Is(err, ErrDuplicatePersonAtSlot)
func (e *DuplicatePersonError) Unwrap() error {
	return ErrDuplicatePersonAtSlot
}
