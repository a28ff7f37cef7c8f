package get_available_slots

import "fmt"

// validateRequest проверяет корректность входных данных
func (uc *UseCase) validateRequest(req Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
