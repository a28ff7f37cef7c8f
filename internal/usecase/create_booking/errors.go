package create_booking

import "errors"

var (
	// ErrInvalidInput невалидные входные данные
	ErrInvalidInput = errors.New("invalid input data")
	// ErrServiceNotFound тип консультации не найден
	ErrServiceNotFound = errors.New("consultation type not found")
	// ErrServiceInactive тип консультации отключен
	ErrServiceInactive = errors.New("consultation type is inactive")
	// ErrInvalidTimeSlot запрошенное время не является валидным слотом расписания
	ErrInvalidTimeSlot = errors.New("requested time is not a valid slot")
	// ErrSlotNotAvailable слот уже занят другим бронированием
	ErrSlotNotAvailable = errors.New("slot is no longer available")
	// ErrInternal внутренняя ошибка
	ErrInternal = errors.New("internal error")
)
