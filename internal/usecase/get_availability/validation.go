package get_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.EventID <= 0 {
		return fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}

	if req.DeviceID != nil && *req.DeviceID <= 0 {
		return fmt.Errorf("%w: deviceID must be positive", ErrInvalidInput)
	}

	if req.Date != nil {
		if err := req.Date.Validate(); err != nil {
			return fmt.Errorf("%w: invalid date format: %v", ErrInvalidInput, err)
		}
	}

	for _, sel := range req.Selected {
		if err := sel.Date.Validate(); err != nil {
			return fmt.Errorf("%w: invalid selected date format: %v", ErrInvalidInput, err)
		}
		if err := sel.SlotTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid selected slot format: %v", ErrInvalidInput, err)
		}
	}

	return nil
}
