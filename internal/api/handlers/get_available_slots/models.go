package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-ConsultationService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID       int64       `json:"serviceId"`
	Date            string      `json:"date"`
	DurationMinutes int         `json:"durationMinutes"`
	Slots           []SlotModel `json:"slots"`
}

// SlotModel доступный слот времени
type SlotModel struct {
	StartTime string `json:"startTime"` // "10:00"
	EndTime   string `json:"endTime"`   // "11:00"
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotModel, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotModel{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		})
	}

	return &AvailableSlotsResponse{
		ServiceID:       resp.ServiceID,
		Date:            resp.Date,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
