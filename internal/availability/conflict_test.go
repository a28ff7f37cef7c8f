package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
)

func booking(t *testing.T, start string, durationMinutes int, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		StartTime:       ts(t, start),
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

func TestIsSlotFree_NoBookings(t *testing.T) {
	assert.True(t, IsSlotFree(ts(t, "10:00"), 60, 0, 0, nil))
}

func TestIsSlotFree_OverlapDetected(t *testing.T) {
	bookings := []*domain.Booking{booking(t, "10:00", 60, domain.StatusConfirmed)}

	assert.False(t, IsSlotFree(ts(t, "10:00"), 60, 0, 0, bookings), "identical window")
	assert.False(t, IsSlotFree(ts(t, "09:30"), 60, 0, 0, bookings), "overlaps booking start")
	assert.False(t, IsSlotFree(ts(t, "10:30"), 60, 0, 0, bookings), "overlaps booking end")
	assert.False(t, IsSlotFree(ts(t, "09:00"), 180, 0, 0, bookings), "fully spans booking")
	assert.False(t, IsSlotFree(ts(t, "10:15"), 30, 0, 0, bookings), "contained in booking")
}

func TestIsSlotFree_BoundaryAdjacentNotConflicting(t *testing.T) {
	// Полуинтервалы: слот, начинающийся ровно в момент окончания
	// бронирования (и наоборот), конфликтом не является
	bookings := []*domain.Booking{booking(t, "10:00", 60, domain.StatusConfirmed)}

	assert.True(t, IsSlotFree(ts(t, "11:00"), 60, 0, 0, bookings))
	assert.True(t, IsSlotFree(ts(t, "09:00"), 60, 0, 0, bookings))
}

func TestIsSlotFree_CancelledAndNoShowIgnored(t *testing.T) {
	bookings := []*domain.Booking{
		booking(t, "10:00", 60, domain.StatusCancelled),
		booking(t, "10:00", 60, domain.StatusNoShow),
	}

	assert.True(t, IsSlotFree(ts(t, "10:00"), 60, 0, 0, bookings))
}

func TestIsSlotFree_BuffersExpandCandidateWindow(t *testing.T) {
	bookings := []*domain.Booking{booking(t, "10:00", 60, domain.StatusConfirmed)}

	// Без буфера 11:00 свободен, с буфером до - упирается в бронирование
	assert.True(t, IsSlotFree(ts(t, "11:00"), 60, 0, 0, bookings))
	assert.False(t, IsSlotFree(ts(t, "11:00"), 60, 15, 0, bookings))

	// Буфер после: слот 08:45-09:45 с буфером 30 достает до 10:15
	assert.True(t, IsSlotFree(ts(t, "08:45"), 60, 0, 0, bookings))
	assert.False(t, IsSlotFree(ts(t, "08:45"), 60, 0, 30, bookings))
}

func TestIsSlotFree_BuffersNotAppliedToExistingBookings(t *testing.T) {
	// Буферы применяются только к кандидату: у исторического бронирования
	// окно - ровно его длительность
	bookings := []*domain.Booking{booking(t, "10:00", 60, domain.StatusConfirmed)}

	assert.True(t, IsSlotFree(ts(t, "11:00"), 30, 0, 0, bookings))
}

func TestIsSlotFree_WindowClampedToDay(t *testing.T) {
	// Буфер, выходящий за полночь, обрезается, а не ломает проверку
	bookings := []*domain.Booking{booking(t, "00:30", 30, domain.StatusConfirmed)}

	assert.False(t, IsSlotFree(ts(t, "00:00"), 120, 60, 0, bookings))
	assert.True(t, IsSlotFree(ts(t, "01:00"), 60, 0, 0, bookings))
}

func TestOverlaps_Symmetric(t *testing.T) {
	// Проверка пересечения не зависит от порядка аргументов
	cases := []struct {
		a, b Interval
	}{
		{Interval{Start: 600, End: 660}, Interval{Start: 630, End: 690}},
		{Interval{Start: 600, End: 660}, Interval{Start: 660, End: 720}},
		{Interval{Start: 600, End: 660}, Interval{Start: 540, End: 720}},
		{Interval{Start: 600, End: 660}, Interval{Start: 615, End: 645}},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.a.Overlaps(tc.b), tc.b.Overlaps(tc.a),
			"overlap must be symmetric for %+v and %+v", tc.a, tc.b)
	}
}

func TestFilterAvailable_SpecScenario(t *testing.T) {
	// Окно 09:00-12:00, длительность 60, шаг 30, подтвержденное
	// бронирование 10:00-11:00 → остаются 09:00, 09:30 и 11:00
	// (11:00 начинается ровно в момент окончания бронирования)
	intervals := []Interval{{Start: 9 * 60, End: 12 * 60}}
	slots := GenerateSlots(intervals, 60, 30)
	bookings := []*domain.Booking{booking(t, "10:00", 60, domain.StatusConfirmed)}

	available := FilterAvailable(slots, 60, 0, 0, bookings)

	starts := make([]string, len(available))
	for i, s := range available {
		starts[i] = s.StartTime.String()
	}
	assert.Equal(t, []string{"09:00", "09:30", "11:00"}, starts)
}

func TestFilterAvailable_CancellationFreesSlot(t *testing.T) {
	intervals := []Interval{{Start: 9 * 60, End: 12 * 60}}
	slots := GenerateSlots(intervals, 60, 30)

	confirmed := booking(t, "10:00", 60, domain.StatusConfirmed)
	withBooking := FilterAvailable(slots, 60, 0, 0, []*domain.Booking{confirmed})
	require.Len(t, withBooking, 3)

	// После отмены слот снова доступен
	confirmed.Status = domain.StatusCancelled
	afterCancel := FilterAvailable(slots, 60, 0, 0, []*domain.Booking{confirmed})
	assert.Len(t, afterCancel, 5)
}

func TestOccupiedWindow(t *testing.T) {
	window := OccupiedWindow(ts(t, "10:00"), 60, 15, 10)
	assert.Equal(t, Interval{Start: 585, End: 670}, window)

	// Обрезка по началу суток
	clamped := OccupiedWindow(ts(t, "00:10"), 30, 60, 0)
	assert.Equal(t, 0, clamped.Start)
}
