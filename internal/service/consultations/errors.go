package consultations

import "errors"

var (
	// ErrConsultationNotFound возвращается, когда тип консультации не найден
	ErrConsultationNotFound = errors.New("consultation type not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
