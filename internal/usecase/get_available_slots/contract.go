package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

// RuleRepository интерфейс репозитория правил расписания
type RuleRepository interface {
	// ListForDate получает правила-кандидаты для даты с учетом услуги
	ListForDate(ctx context.Context, date time.Time, serviceID *int64) ([]*domain.AvailabilityRule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByDateWithFilter получает бронирования на конкретную дату
	GetByDateWithFilter(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
}

// ConsultationRepository интерфейс репозитория типов консультаций
type ConsultationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ConsultationType, error)
}

// SlotsCache интерфейс кэша ответов со слотами (может быть nil - кэш опционален)
type SlotsCache interface {
	Get(ctx context.Context, serviceID int64, date string) ([]byte, error)
	Set(ctx context.Context, serviceID int64, date string, data []byte) error
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
