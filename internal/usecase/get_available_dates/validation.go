package get_available_dates

import "fmt"

// validateRequest проверяет корректность входных данных
func (uc *UseCase) validateRequest(req Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.Month.IsZero() {
		return fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	return nil
}
