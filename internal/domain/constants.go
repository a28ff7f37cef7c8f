package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
)

// Business validation constants
const (
	MinDurationMinutes          = 5
	MaxDurationMinutes          = 480 // 8 hours
	MaxBufferMinutes            = 240
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxCustomerNameLength       = 150
	MaxCustomerEmailLength      = 254
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// InactiveStatuses список статусов, не занимающих время в календаре.
// Используется при фильтрации бронирований для подсчёта доступных слотов.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusNoShow,
}

// OccupyingStatuses список статусов, занимающих время в календаре
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}

// ValidBookingStatuses все допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
