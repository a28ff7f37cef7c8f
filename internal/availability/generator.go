package availability

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// GenerateSlots разворачивает открытые интервалы в список слотов-кандидатов
// без проверки занятости.
//
// Слоты выравниваются по началу интервала, не по границам часа: интервал,
// начинающийся в 09:05, даёт слот 09:05, а не 09:00 или 09:30. Слот
// попадает в результат, только если целиком помещается в интервал
// (start + duration <= end). Шаг генерации slotIntervalMinutes - глобальная
// настройка, передаваемая явно.
//
// Интервалы должны быть дизъюнктными и упорядоченными (гарантия
// ResolveOpenIntervals), поэтому слоты выходят в хронологическом порядке.
func GenerateSlots(intervals []Interval, durationMinutes, slotIntervalMinutes int) []domain.Slot {
	slots := []domain.Slot{}

	if durationMinutes <= 0 || slotIntervalMinutes <= 0 {
		return slots
	}

	for _, iv := range intervals {
		for t := iv.Start; t+durationMinutes <= iv.End; t += slotIntervalMinutes {
			start, err := types.NewTimeStringFromMinutes(t)
			if err != nil {
				continue
			}
			end, err := types.NewTimeStringFromMinutes(t + durationMinutes)
			if err != nil {
				continue
			}
			slots = append(slots, domain.Slot{
				StartTime: start,
				EndTime:   end,
				Available: true,
			})
		}
	}

	return slots
}
