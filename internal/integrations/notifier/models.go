package notifier

// BookingCreatedEvent событие создания бронирования.
// Сервис уведомлений сам решает, какие каналы задействовать
// (email клиенту, оповещение персонала).
type BookingCreatedEvent struct {
	BookingID     int64   `json:"booking_id"`
	Reference     string  `json:"reference"`
	ServiceName   string  `json:"service_name"`
	BookingDate   string  `json:"booking_date"` // YYYY-MM-DD
	StartTime     string  `json:"start_time"`   // HH:MM
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	Price         float64 `json:"price"`
}

// BookingCancelledEvent событие отмены бронирования
type BookingCancelledEvent struct {
	BookingID     int64  `json:"booking_id"`
	Reference     string `json:"reference"`
	ServiceName   string `json:"service_name"`
	BookingDate   string `json:"booking_date"`
	StartTime     string `json:"start_time"`
	CustomerEmail string `json:"customer_email"`
	Reason        string `json:"reason,omitempty"`
}
