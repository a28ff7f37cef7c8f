package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/pkg/ptr"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

type fakeRuleRepo struct {
	rules []*domain.AvailabilityRule
}

func (f *fakeRuleRepo) ListForDate(_ context.Context, _ time.Time, _ *int64) ([]*domain.AvailabilityRule, error) {
	return f.rules, nil
}

// fakeBookingRepo потокобезопасное in-memory хранилище бронирований
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	nextID   int64
}

func (f *fakeBookingRepo) GetByDateWithFilter(_ context.Context, filter domain.DayBookingsFilter) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]*domain.Booking, 0, len(f.bookings))
	for _, b := range f.bookings {
		if b.BookingDate.Equal(filter.Date) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	f.bookings = append(f.bookings, &stored)
	return &stored, nil
}

func (f *fakeBookingRepo) UpdatePaymentStatus(_ context.Context, id int64, status domain.PaymentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			b.PaymentStatus = status
		}
	}
	return nil
}

type fakeConsultationRepo struct {
	service *domain.ConsultationType
}

func (f *fakeConsultationRepo) GetByID(_ context.Context, _ int64) (*domain.ConsultationType, error) {
	return f.service, nil
}

// serializedTxManager эмулирует сериализуемые транзакции глобальной
// блокировкой: конкурирующие вызовы выполняются строго по очереди
type serializedTxManager struct {
	mu sync.Mutex
}

func (m *serializedTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (f *fixedTimeProvider) Now() time.Time {
	return f.now
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []*notifier.BookingCreatedEvent
}

func (n *recordingNotifier) NotifyBookingCreated(_ context.Context, event *notifier.BookingCreatedEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func ts(v string) types.TimeString {
	return types.TimeString(v)
}

var (
	monday  = time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	fakeNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
)

func defaultService() *domain.ConsultationType {
	return &domain.ConsultationType{
		ID:              1,
		Name:            "Initial consultation",
		DurationMinutes: 60,
		Price:           50,
		Status:          domain.ConsultationActive,
	}
}

func mondayRules() []*domain.AvailabilityRule {
	return []*domain.AvailabilityRule{{
		RuleType:    domain.RuleWeekly,
		DayOfWeek:   ptr.Ptr(int(time.Monday)),
		StartTime:   ts("09:00"),
		EndTime:     ts("12:00"),
		IsAvailable: true,
	}}
}

func newTestUseCase(rules []*domain.AvailabilityRule, repo *fakeBookingRepo, service *domain.ConsultationType) *UseCase {
	uc := NewUseCase(
		&fakeRuleRepo{rules: rules},
		repo,
		&fakeConsultationRepo{service: service},
		&serializedTxManager{},
		nil,
		nil,
		nil,
		nopLogger{},
		30,
		"EUR",
	)
	uc.timeProvider = &fixedTimeProvider{now: fakeNow}
	return uc
}

func validRequest() Request {
	return Request{
		ServiceID:     1,
		Date:          monday,
		StartTime:     ts("10:00"),
		CustomerName:  "Jane Roe",
		CustomerEmail: "jane@example.com",
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(mondayRules(), repo, defaultService())

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.Equal(t, ts("10:00"), resp.StartTime)
	assert.Equal(t, ts("11:00"), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Initial consultation", resp.ServiceName)
	assert.Equal(t, 50.0, resp.Price)
	assert.True(t, len(resp.Reference) > 2 && resp.Reference[:2] == "BK")
	require.Len(t, repo.bookings, 1)
}

func TestExecute_SlotTaken_ReturnsSlotNotAvailable(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(mondayRules(), repo, defaultService())

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_ConcurrentRequests_ExactlyOneSucceeds(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(mondayRules(), repo, defaultService())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	var succeeded, conflicted int
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrSlotNotAvailable):
			conflicted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, conflicted)
	assert.Len(t, repo.bookings, 1)
}

func TestExecute_AdjacentSlotsBothSucceed(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(mondayRules(), repo, defaultService())

	first := validRequest()
	first.StartTime = ts("09:00")
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	second := validRequest()
	second.StartTime = ts("10:00")
	_, err = uc.Execute(context.Background(), second)
	require.NoError(t, err)

	assert.Len(t, repo.bookings, 2)
}

func TestExecute_MisalignedTime_ReturnsInvalidTimeSlot(t *testing.T) {
	uc := newTestUseCase(mondayRules(), &fakeBookingRepo{}, defaultService())

	req := validRequest()
	req.StartTime = ts("10:15")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_ClosedDay_ReturnsInvalidTimeSlot(t *testing.T) {
	uc := newTestUseCase(mondayRules(), &fakeBookingRepo{}, defaultService())

	req := validRequest()
	req.Date = monday.AddDate(0, 0, 1) // вторник, правил нет

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_SlotExtendingPastClose_ReturnsInvalidTimeSlot(t *testing.T) {
	uc := newTestUseCase(mondayRules(), &fakeBookingRepo{}, defaultService())

	req := validRequest()
	req.StartTime = ts("11:30") // 60 минут не влезают до 12:00

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDate_Rejected(t *testing.T) {
	uc := newTestUseCase(mondayRules(), &fakeBookingRepo{}, defaultService())
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2025, 11, 10, 9, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc := newTestUseCase(mondayRules(), &fakeBookingRepo{}, defaultService())

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.CustomerName = "" }},
		{"missing email", func(r *Request) { r.CustomerEmail = "" }},
		{"malformed email", func(r *Request) { r.CustomerEmail = "not-an-email" }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"bad time format", func(r *Request) { r.StartTime = ts("25:99") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_BuffersBlockNeighbouringSlots(t *testing.T) {
	service := defaultService()
	service.BufferBeforeMinutes = 30

	repo := &fakeBookingRepo{}
	uc := newTestUseCase(mondayRules(), repo, service)

	first := validRequest()
	first.StartTime = ts("09:00")
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Окно кандидата 10:00 с буфером до начала задевает бронирование 09:00-10:00
	second := validRequest()
	second.StartTime = ts("10:00")
	_, err = uc.Execute(context.Background(), second)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	third := validRequest()
	third.StartTime = ts("10:30")
	_, err = uc.Execute(context.Background(), third)
	require.NoError(t, err)
}

func TestExecute_NotifierReceivesEvent(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(mondayRules(), repo, defaultService())
	rec := &recordingNotifier{}
	uc.notifier = rec

	resp, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	require.Len(t, rec.events, 1)
	assert.Equal(t, resp.Reference, rec.events[0].Reference)
	assert.Equal(t, "2025-11-03", rec.events[0].BookingDate)
}

type sharedFakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte // ключ "serviceID:date"
}

func newSharedFakeCache() *sharedFakeCache {
	return &sharedFakeCache{entries: map[string][]byte{}}
}

func (c *sharedFakeCache) put(serviceID int64, date string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[fmt.Sprintf("%d:%s", serviceID, date)] = data
}

func (c *sharedFakeCache) InvalidateDate(_ context.Context, date string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasSuffix(key, ":"+date) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Календарь общий: бронирование услуги 1 занимает окно и в выдаче услуги 2,
// поэтому инвалидация должна снести закэшированные ответы всех услуг на дату
func TestExecute_InvalidatesAllServicesForDate(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(mondayRules(), repo, defaultService())

	cache := newSharedFakeCache()
	cache.put(2, "2025-11-03", []byte(`{"slots":["10:00"]}`))
	cache.put(2, "2025-11-04", []byte(`{"slots":["10:00"]}`))
	uc.cache = cache

	_, err := uc.Execute(context.Background(), validRequest())

	require.NoError(t, err)
	_, stale := cache.entries["2:2025-11-03"]
	assert.False(t, stale, "ответ другой услуги на дату бронирования должен быть сброшен")
	_, kept := cache.entries["2:2025-11-04"]
	assert.True(t, kept, "другие даты инвалидация не затрагивает")
}

// Вставка с повторной генерацией номера проверяется на уровне
// зарезервированного окна: существующее бронирование с буфером не
// должно получить соседа даже при точном совпадении границ окна
func TestOccupiedWindow_MatchesConflictCheck(t *testing.T) {
	window := availability.OccupiedWindow(ts("10:00"), 60, 15, 15)

	assert.Equal(t, 9*60+45, window.Start)
	assert.Equal(t, 11*60+15, window.End)
}
