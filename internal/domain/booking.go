package domain

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a customer booking of a consultation type
type Booking struct {
	ID              int64
	Reference       string // public customer-facing token, e.g. "BKX7Q2M9RT"
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int // frozen at creation time, survives later service edits
	Status          BookingStatus
	PaymentStatus   PaymentStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesCalendar returns true if the booking blocks calendar time.
// Cancelled and no-show bookings never block new slots.
func (b *Booking) OccupiesCalendar() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusCompleted
}

// IsTerminal returns true if no further status transitions are allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted ||
		b.Status == StatusCancelled ||
		b.Status == StatusNoShow
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanTransitionTo reports whether the booking may move to the given status.
// Allowed transitions: pending -> confirmed -> completed, and
// pending|confirmed -> cancelled|no_show. Terminal states accept nothing.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}

	switch next {
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusCompleted:
		return b.Status == StatusConfirmed
	case StatusCancelled, StatusNoShow:
		return b.Status == StatusPending || b.Status == StatusConfirmed
	default:
		return false
	}
}

// DayBookingsFilter фильтр для выборки бронирований
type DayBookingsFilter struct {
	Date            time.Time      // Обязательный параметр - календарная дата
	ServiceID       *int64         // Фильтр по услуге (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные и no-show бронирования
}
