package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	// ListForRange получает правила-кандидаты для диапазона дат с учетом услуги
	ListForRange(ctx context.Context, from, to time.Time, serviceID *int64) ([]*domain.AvailabilityRule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDateRange(ctx context.Context, from, to time.Time, serviceID *int64) ([]*domain.Booking, error)
}

// ConsultationRepository интерфейс репозитория типов консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ConsultationType, error)
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
