package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request запрос на создание бронирования
type Request struct {
	ServiceID     int64
	Date          time.Time
	StartTime     types.TimeString
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Notes         *string
}

// Response созданное бронирование
type Response struct {
	ID              int64            `json:"id"`
	Reference       string           `json:"reference"`
	ServiceID       int64            `json:"service_id"`
	ServiceName     string           `json:"service_name"`
	Date            string           `json:"date"`
	StartTime       types.TimeString `json:"start_time"`
	EndTime         types.TimeString `json:"end_time"`
	DurationMinutes int              `json:"duration_minutes"`
	Status          string           `json:"status"`
	PaymentStatus   string           `json:"payment_status"`
	Price           float64          `json:"price"`
	CheckoutURL     *string          `json:"checkout_url,omitempty"`
}
