package get_available_dates

import "time"

// Request запрос на получение дат с доступными слотами за месяц
type Request struct {
	ServiceID int64
	Month     time.Time // первый день запрашиваемого месяца
}

// Response ответ со списком дат, на которые есть хотя бы один свободный слот
type Response struct {
	ServiceID int64    `json:"service_id"`
	Month     string   `json:"month"`
	Dates     []string `json:"dates"`
}
