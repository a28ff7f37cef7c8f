package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Понедельник
var monday = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	parsed, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return parsed
}

func weeklyRule(t *testing.T, day int, start, end string, available bool, priority int) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		RuleType:    domain.RuleWeekly,
		DayOfWeek:   ptr.Ptr(day),
		StartTime:   ts(t, start),
		EndTime:     ts(t, end),
		IsAvailable: available,
		Priority:    priority,
	}
}

func overrideRule(t *testing.T, date time.Time, start, end string, available bool, priority int) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		RuleType:     domain.RuleDateOverride,
		SpecificDate: ptr.Ptr(date),
		StartTime:    ts(t, start),
		EndTime:      ts(t, end),
		IsAvailable:  available,
		Priority:     priority,
	}
}

func blockRule(t *testing.T, date time.Time, start, end string) *domain.AvailabilityRule {
	t.Helper()
	return &domain.AvailabilityRule{
		RuleType:     domain.RuleBlock,
		SpecificDate: ptr.Ptr(date),
		StartTime:    ts(t, start),
		EndTime:      ts(t, end),
	}
}

func TestResolveOpenIntervals_NoRules(t *testing.T) {
	// Дата без единого применимого правила закрыта, а не открыта по умолчанию
	open := ResolveOpenIntervals(nil, monday, 1)
	assert.Empty(t, open)
}

func TestResolveOpenIntervals_WeeklyMatchesWeekday(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "12:00", true, 0), // понедельник
		weeklyRule(t, 2, "14:00", "18:00", true, 0), // вторник - не должен попасть
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, []Interval{{Start: 9 * 60, End: 12 * 60}}, open)
}

func TestResolveOpenIntervals_ServiceFilter(t *testing.T) {
	forOther := weeklyRule(t, 1, "09:00", "12:00", true, 0)
	forOther.ServiceID = ptr.Ptr(int64(99))

	forAll := weeklyRule(t, 1, "14:00", "16:00", true, 0)

	open := ResolveOpenIntervals([]*domain.AvailabilityRule{forOther, forAll}, monday, 1)
	assert.Equal(t, []Interval{{Start: 14 * 60, End: 16 * 60}}, open)
}

func TestResolveOpenIntervals_MergesOverlappingAvailable(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "12:00", true, 0),
		weeklyRule(t, 1, "11:00", "14:00", true, 0),
		weeklyRule(t, 1, "16:00", "18:00", true, 0),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, []Interval{
		{Start: 9 * 60, End: 14 * 60},
		{Start: 16 * 60, End: 18 * 60},
	}, open)
}

func TestResolveOpenIntervals_OverrideReplacesWeekly(t *testing.T) {
	// Override на дату полностью замещает weekly правила, они не сливаются
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "18:00", true, 0),
		overrideRule(t, monday, "10:00", "13:00", true, 0),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, []Interval{{Start: 10 * 60, End: 13 * 60}}, open)
}

func TestResolveOpenIntervals_ClosedOverrideClosesOpenMonday(t *testing.T) {
	// Обычно открытый понедельник закрыт через override с isAvailable=false
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "12:00", true, 0),
		overrideRule(t, monday, "00:00", "23:59", false, 0),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Empty(t, open)
}

func TestResolveOpenIntervals_ServiceOverrideBeatsGeneralOverride(t *testing.T) {
	general := overrideRule(t, monday, "09:00", "18:00", true, 0)

	specific := overrideRule(t, monday, "14:00", "16:00", true, 0)
	specific.ServiceID = ptr.Ptr(int64(1))

	open := ResolveOpenIntervals([]*domain.AvailabilityRule{general, specific}, monday, 1)
	assert.Equal(t, []Interval{{Start: 14 * 60, End: 16 * 60}}, open)

	// Для другой услуги действует общий override
	openOther := ResolveOpenIntervals([]*domain.AvailabilityRule{general, specific}, monday, 2)
	assert.Equal(t, []Interval{{Start: 9 * 60, End: 18 * 60}}, openOther)
}

func TestResolveOpenIntervals_HigherPriorityWins(t *testing.T) {
	// Закрытие с большим приоритетом вырезает окно из открытого интервала
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "18:00", true, 0),
		weeklyRule(t, 1, "12:00", "13:00", false, 10),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, []Interval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 13 * 60, End: 18 * 60},
	}, open)
}

func TestResolveOpenIntervals_EqualPriorityClosedWins(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "12:00", true, 5),
		weeklyRule(t, 1, "10:00", "11:00", false, 5),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, []Interval{
		{Start: 9 * 60, End: 10 * 60},
		{Start: 11 * 60, End: 12 * 60},
	}, open)
}

func TestResolveOpenIntervals_BlockAlwaysWins(t *testing.T) {
	// Block полностью накрывает weekly интервал - день пуст,
	// приоритеты не играют роли
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "12:00", true, 100),
		blockRule(t, monday, "08:00", "13:00"),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Empty(t, open)
}

func TestResolveOpenIntervals_BlockSplitsInterval(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "18:00", true, 0),
		blockRule(t, monday, "12:00", "13:00"),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, []Interval{
		{Start: 9 * 60, End: 12 * 60},
		{Start: 13 * 60, End: 18 * 60},
	}, open)
}

func TestResolveOpenIntervals_BlockAppliesOverOverride(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		overrideRule(t, monday, "09:00", "18:00", true, 0),
		blockRule(t, monday, "09:00", "10:30"),
	}

	open := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, []Interval{{Start: 630, End: 18 * 60}}, open)
}

func TestResolveOpenIntervals_InvalidRuleIgnored(t *testing.T) {
	// startTime >= endTime нарушает инвариант - правило не учитывается
	broken := weeklyRule(t, 1, "12:00", "09:00", true, 0)

	open := ResolveOpenIntervals([]*domain.AvailabilityRule{broken}, monday, 1)
	assert.Empty(t, open)
}

func TestResolveOpenIntervals_Idempotent(t *testing.T) {
	rules := []*domain.AvailabilityRule{
		weeklyRule(t, 1, "09:00", "18:00", true, 0),
		weeklyRule(t, 1, "12:00", "13:00", false, 1),
		blockRule(t, monday, "16:00", "17:00"),
	}

	first := ResolveOpenIntervals(rules, monday, 1)
	second := ResolveOpenIntervals(rules, monday, 1)
	assert.Equal(t, first, second)
}
