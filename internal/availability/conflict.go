package availability

import (
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// OccupiedWindow возвращает занимаемое окно слота: интервал слота,
// расширенный буферами до и после, обрезанный по границам суток.
func OccupiedWindow(start types.TimeString, durationMinutes, bufferBefore, bufferAfter int) Interval {
	startMin := start.Minutes()
	return Interval{
		Start: startMin - bufferBefore,
		End:   startMin + durationMinutes + bufferAfter,
	}.clamp()
}

// IsSlotFree проверяет, что слот не конфликтует ни с одним активным
// бронированием того же дня.
//
// Занимаемое окно кандидата расширяется его буферами; окно существующего
// бронирования - это [start, start+duration) с длительностью, зафиксированной
// при создании. Буферы применяются только к кандидату, не к историческим
// бронированиям. Пересечение проверяется строго: слот, начинающийся ровно
// в момент окончания другого бронирования, конфликтом не считается.
//
// Эта же проверка - авторитетный гейт при создании бронирования: между
// выдачей списка слотов и отправкой формы могло появиться новое
// бронирование, поэтому создание перепроверяет занятость заново.
func IsSlotFree(
	start types.TimeString,
	durationMinutes, bufferBefore, bufferAfter int,
	bookings []*domain.Booking,
) bool {
	window := OccupiedWindow(start, durationMinutes, bufferBefore, bufferAfter)

	for _, booking := range bookings {
		// Отмененные и no-show бронирования время не занимают
		if !booking.OccupiesCalendar() {
			continue
		}

		bookingWindow := Interval{
			Start: booking.StartTime.Minutes(),
			End:   booking.StartTime.Minutes() + booking.DurationMinutes,
		}.clamp()

		if window.Overlaps(bookingWindow) {
			return false
		}
	}

	return true
}

// FilterAvailable убирает из списка кандидатов слоты, конфликтующие с
// существующими бронированиями
func FilterAvailable(
	slots []domain.Slot,
	durationMinutes, bufferBefore, bufferAfter int,
	bookings []*domain.Booking,
) []domain.Slot {
	available := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if IsSlotFree(slot.StartTime, durationMinutes, bufferBefore, bufferAfter, bookings) {
			available = append(available, slot)
		}
	}
	return available
}
