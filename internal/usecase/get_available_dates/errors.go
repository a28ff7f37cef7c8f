package get_available_dates

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input data")
	// ErrServiceNotFound тип консультации не найден
	ErrServiceNotFound = errors.New("consultation type not found")
	// ErrServiceInactive тип консультации отключен
	ErrServiceInactive = errors.New("consultation type is inactive")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
