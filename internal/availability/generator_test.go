package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlots_SpecScenario(t *testing.T) {
	// Окно 09:00-12:00, длительность 60, шаг 30:
	// слоты 09:00..11:00, слот 11:30 не помещается (закончился бы в 12:30)
	intervals := []Interval{{Start: 9 * 60, End: 12 * 60}}

	slots := GenerateSlots(intervals, 60, 30)

	starts := make([]string, len(slots))
	for i, s := range slots {
		starts[i] = s.StartTime.String()
	}
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, starts)
}

func TestGenerateSlots_NoSlotExtendsPastInterval(t *testing.T) {
	intervals := []Interval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 14 * 60, End: 15*60 + 45},
	}

	slots := GenerateSlots(intervals, 45, 15)
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		end := slot.StartTime.Minutes() + 45
		inInterval := false
		for _, iv := range intervals {
			if slot.StartTime.Minutes() >= iv.Start && end <= iv.End {
				inInterval = true
			}
		}
		assert.True(t, inInterval, "slot %s must fit its governing interval", slot.StartTime)
	}
}

func TestGenerateSlots_AlignedToIntervalStart(t *testing.T) {
	// Интервал с 09:05 даёт слот в 09:05, не выравнивается по часам
	intervals := []Interval{{Start: 9*60 + 5, End: 10*60 + 5}}

	slots := GenerateSlots(intervals, 30, 30)

	require.Len(t, slots, 2)
	assert.Equal(t, "09:05", slots[0].StartTime.String())
	assert.Equal(t, "09:35", slots[1].StartTime.String())
}

func TestGenerateSlots_DurationLongerThanInterval(t *testing.T) {
	intervals := []Interval{{Start: 9 * 60, End: 9*60 + 30}}

	slots := GenerateSlots(intervals, 60, 30)
	assert.Empty(t, slots)
}

func TestGenerateSlots_EmptyIntervals(t *testing.T) {
	assert.Empty(t, GenerateSlots(nil, 60, 30))
	assert.Empty(t, GenerateSlots([]Interval{}, 60, 30))
}

func TestGenerateSlots_ChronologicalAcrossIntervals(t *testing.T) {
	intervals := []Interval{
		{Start: 9 * 60, End: 10 * 60},
		{Start: 14 * 60, End: 15 * 60},
	}

	slots := GenerateSlots(intervals, 30, 30)
	require.Len(t, slots, 4)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartTime.IsBefore(slots[i].StartTime),
			"slots must be chronological: %s before %s", slots[i-1].StartTime, slots[i].StartTime)
	}
}

func TestGenerateSlots_InvalidParameters(t *testing.T) {
	intervals := []Interval{{Start: 9 * 60, End: 12 * 60}}

	assert.Empty(t, GenerateSlots(intervals, 0, 30))
	assert.Empty(t, GenerateSlots(intervals, 60, 0))
	assert.Empty(t, GenerateSlots(intervals, -30, 30))
}

func TestGenerateSlots_EndTimeDerived(t *testing.T) {
	intervals := []Interval{{Start: 10 * 60, End: 11 * 60}}

	slots := GenerateSlots(intervals, 45, 30)
	require.Len(t, slots, 1)
	assert.Equal(t, "10:00", slots[0].StartTime.String())
	assert.Equal(t, "10:45", slots[0].EndTime.String())
	assert.Equal(t, 45, slots[0].Duration())
}
