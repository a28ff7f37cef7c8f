package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/payments"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	ListForDate(ctx context.Context, date time.Time, serviceID *int64) ([]*domain.AvailabilityRule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByDateWithFilter внутри транзакции блокирует строки дня (FOR UPDATE)
	GetByDateWithFilter(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
}

// ConsultationRepository интерфейс репозитория типов консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ConsultationType, error)
}

// TransactionManager управляет сериализуемыми транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotsCache интерфейс кэша слотов (может быть nil - кэш опционален).
// Инвалидация по дате: календарь общий, новое бронирование занимает
// окно в выдаче всех услуг на эту дату.
type SlotsCache interface {
	InvalidateDate(ctx context.Context, date string) error
}

// Notifier отправляет событие о созданном бронировании (может быть nil)
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, event *notifier.BookingCreatedEvent) error
}

// PaymentsClient создает платежное намерение (может быть nil)
type PaymentsClient interface {
	CreateIntent(ctx context.Context, req *payments.PaymentIntentRequest) (*payments.PaymentIntent, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
