package get_available_dates

import (
	getAvailableDates "github.com/m04kA/SMC-ConsultationService/internal/usecase/get_available_dates"
)

// AvailableDatesResponse HTTP response model
type AvailableDatesResponse struct {
	ServiceID int64    `json:"serviceId"`
	Month     string   `json:"month"`
	Dates     []string `json:"dates"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableDates.Response) *AvailableDatesResponse {
	return &AvailableDatesResponse{
		ServiceID: resp.ServiceID,
		Month:     resp.Month,
		Dates:     resp.Dates,
	}
}
