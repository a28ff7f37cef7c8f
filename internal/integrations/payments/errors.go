package payments

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("payments client: invalid response")

	// ErrServiceDegraded возвращается при недоступности платежного сервиса.
	// Бронирование остается со статусом оплаты unpaid - оплату можно
	// инициировать позже.
	ErrServiceDegraded = errors.New("payments unavailable: graceful degradation applied")
)
