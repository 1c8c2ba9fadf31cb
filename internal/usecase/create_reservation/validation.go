package create_reservation

import (
	"fmt"
	"strings"

	"event-slot-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventID <= 0 {
		return fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}

	if req.Name == "" || len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}

	if req.Phone == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}

	if req.Note != nil && len(*req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must be at most %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if len(req.Selections) > domain.MaxSelectionsPerReservation {
		return fmt.Errorf("%w: at most %d selections per reservation",
			ErrInvalidInput, domain.MaxSelectionsPerReservation)
	}

	for _, sel := range req.Selections {
		if err := sel.Date.Validate(); err != nil {
			return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
		}
		if err := sel.SlotTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid slot time format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}

// validateSelections проверяет, что каждый выбор принадлежит сетке события:
// устройство входит в событие, дата из списка дат, слот из сохраненной сетки
func validateSelections(event *domain.Event, selections []domain.SlotSelection) error {
	for _, sel := range selections {
		if !event.HasDevice(sel.DeviceID) {
			return fmt.Errorf("%w: device id=%d", ErrUnknownDevice, sel.DeviceID)
		}
		if !event.HasDate(sel.Date) {
			return fmt.Errorf("%w: date %s is not an event date", ErrInvalidSelection, sel.Date)
		}
		if !event.HasSlot(sel.SlotTime) {
			return fmt.Errorf("%w: slot %s is not in the event grid", ErrInvalidSelection, sel.SlotTime)
		}
	}

	return nil
}
