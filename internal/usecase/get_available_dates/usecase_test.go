package get_available_dates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

type fakeRuleRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeRuleRepo) ListForRange(_ context.Context, _, _ time.Time, _ *int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByDateRange(_ context.Context, _, _ time.Time, _ *int64) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeConsultationRepo struct {
	service *domain.ConsultationType
}

func (f *fakeConsultationRepo) GetByID(_ context.Context, _ int64) (*domain.ConsultationType, error) {
	return f.service, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(v string) types.TimeString {
	return types.TimeString(v)
}

// November 2025: Saturdays are 1, 8, 15, 22, 29
var (
	november = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	fakeNow  = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
)

func defaultService() *domain.ConsultationType {
	return &domain.ConsultationType{
		ID:              1,
		Name:            "Initial consultation",
		DurationMinutes: 60,
		Status:          domain.ConsultationActive,
	}
}

func weeklyRule(day time.Weekday, start, end string) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		RuleType:    domain.RuleWeekly,
		DayOfWeek:   ptr.Ptr(int(day)),
		StartTime:   ts(start),
		EndTime:     ts(end),
		IsAvailable: true,
	}
}

func blockRule(date time.Time, start, end string) *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		RuleType:     domain.RuleBlock,
		SpecificDate: ptr.Ptr(date),
		StartTime:    ts(start),
		EndTime:      ts(end),
	}
}

func newTestUseCase(rules []*domain.AvailabilityRule, bookings []*domain.Booking) *UseCase {
	uc := NewUseCase(
		&fakeRuleRepo{rules: rules},
		&fakeBookingRepo{bookings: bookings},
		&fakeConsultationRepo{service: defaultService()},
		nopLogger{},
		30,
	)
	uc.timeProvider = &fixedTimeProvider{now: fakeNow}
	return uc
}

func TestExecute_NoRules_ReturnsNoDates(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Month: november})

	require.NoError(t, err)
	assert.Empty(t, resp.Dates)
	assert.Equal(t, "2025-11", resp.Month)
}

func TestExecute_WeeklySaturdays(t *testing.T) {
	uc := newTestUseCase([]*domain.AvailabilityRule{weeklyRule(time.Saturday, "10:00", "14:00")}, nil)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Month: november})

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-11-01", "2025-11-08", "2025-11-15", "2025-11-22", "2025-11-29"}, resp.Dates)
}

func TestExecute_FullyBookedDayExcluded(t *testing.T) {
	// Суббота 1 ноября полностью занята одним длинным бронированием
	booked := &domain.Booking{
		BookingDate:     time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		StartTime:       ts("10:00"),
		DurationMinutes: 240,
		Status:          domain.StatusConfirmed,
	}
	uc := newTestUseCase([]*domain.AvailabilityRule{weeklyRule(time.Saturday, "10:00", "14:00")}, []*domain.Booking{booked})

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Month: november})

	require.NoError(t, err)
	assert.NotContains(t, resp.Dates, "2025-11-01")
	assert.Contains(t, resp.Dates, "2025-11-08")
}

func TestExecute_FullDayBlockExcludesDate(t *testing.T) {
	block := blockRule(time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC), "00:00", "23:59")
	uc := newTestUseCase([]*domain.AvailabilityRule{weeklyRule(time.Saturday, "10:00", "14:00"), block}, nil)

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Month: november})

	require.NoError(t, err)
	assert.NotContains(t, resp.Dates, "2025-11-08")
	assert.Contains(t, resp.Dates, "2025-11-01")
}

func TestExecute_PastDaysExcluded(t *testing.T) {
	uc := newTestUseCase([]*domain.AvailabilityRule{weeklyRule(time.Saturday, "10:00", "14:00")}, nil)
	// Часы показывают 10 ноября: первые две субботы уже в прошлом
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), Request{ServiceID: 1, Month: november})

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-11-15", "2025-11-22", "2025-11-29"}, resp.Dates)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), Request{ServiceID: 0, Month: november})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ServiceInactive(t *testing.T) {
	service := defaultService()
	service.Status = domain.ConsultationInactive
	uc := NewUseCase(
		&fakeRuleRepo{},
		&fakeBookingRepo{},
		&fakeConsultationRepo{service: service},
		nopLogger{},
		30,
	)
	uc.timeProvider = &fixedTimeProvider{now: fakeNow}

	_, err := uc.Execute(context.Background(), Request{ServiceID: 1, Month: november})

	assert.ErrorIs(t, err, ErrServiceInactive)
}
