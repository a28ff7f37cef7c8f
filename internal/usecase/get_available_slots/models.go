package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Request запрос на получение доступных слотов
type Request struct {
	ServiceID int64
	Date      time.Time
}

// Response ответ со списком доступных слотов
type Response struct {
	ServiceID       int64       `json:"service_id"`
	Date            string      `json:"date"`
	DurationMinutes int         `json:"duration_minutes"`
	Slots           []SlotModel `json:"slots"`
}

// SlotModel доступный слот времени
type SlotModel struct {
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
}
