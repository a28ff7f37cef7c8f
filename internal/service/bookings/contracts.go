package bookings

import (
	"context"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByReference(ctx context.Context, ref string) (*domain.Booking, error)
	GetByDateWithFilter(ctx context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// SlotsCache интерфейс кэша слотов (может быть nil - кэш опционален).
// Отмена освобождает окно в выдаче всех услуг, поэтому инвалидация по дате.
type SlotsCache interface {
	InvalidateDate(ctx context.Context, date string) error
}

// Notifier отправляет событие об отмене бронирования (может быть nil)
type Notifier interface {
	NotifyBookingCancelled(ctx context.Context, event *notifier.BookingCancelledEvent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
