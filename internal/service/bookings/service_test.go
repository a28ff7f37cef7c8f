package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
)

type fakeRepo struct {
	byRef     map[string]*domain.Booking
	byID      map[int64]*domain.Booking
	cancelled map[int64]string
	statuses  map[int64]domain.BookingStatus
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	r := &fakeRepo{
		byRef:     map[string]*domain.Booking{},
		byID:      map[int64]*domain.Booking{},
		cancelled: map[int64]string{},
		statuses:  map[int64]domain.BookingStatus{},
	}
	for _, b := range bookings {
		r.byRef[b.Reference] = b
		r.byID[b.ID] = b
	}
	return r
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if b, ok := r.byID[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeRepo) GetByReference(_ context.Context, ref string) (*domain.Booking, error) {
	if b, ok := r.byRef[ref]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeRepo) GetByDateWithFilter(_ context.Context, _ domain.DayBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0, len(r.byID))
	for _, b := range r.byID {
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) error {
	if b, ok := r.byID[id]; ok {
		b.Status = status
		r.statuses[id] = status
		return nil
	}
	return bookingRepo.ErrBookingNotFound
}

func (r *fakeRepo) Cancel(_ context.Context, id int64, reason string) error {
	if b, ok := r.byID[id]; ok {
		b.Status = domain.StatusCancelled
		r.cancelled[id] = reason
		return nil
	}
	return bookingRepo.ErrBookingNotFound
}

type recordingCache struct {
	invalidatedDates []string
}

func (c *recordingCache) InvalidateDate(_ context.Context, date string) error {
	c.invalidatedDates = append(c.invalidatedDates, date)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:              1,
		Reference:       "BKX7Q2M9RT",
		ServiceID:       2,
		BookingDate:     time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		CustomerName:    "Jane Roe",
		CustomerEmail:   "jane@example.com",
		ServiceName:     "Initial consultation",
	}
}

func TestGetByReference(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking()), nil, nil, nopLogger{})

	resp, err := svc.GetByReference(context.Background(), "BKX7Q2M9RT", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "BKX7Q2M9RT", resp.Reference)
	assert.Equal(t, "11:00", resp.EndTime)
}

func TestGetByReference_EmailCaseInsensitive(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking()), nil, nil, nopLogger{})

	_, err := svc.GetByReference(context.Background(), "BKX7Q2M9RT", "JANE@Example.COM")
	assert.NoError(t, err)
}

func TestGetByReference_WrongEmail(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking()), nil, nil, nopLogger{})

	_, err := svc.GetByReference(context.Background(), "BKX7Q2M9RT", "other@example.com")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByReference_NotFound(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil, nopLogger{})

	_, err := svc.GetByReference(context.Background(), "BKAAAAAAAA", "jane@example.com")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := NewService(repo, nil, nil, nopLogger{})

	resp, err := svc.Cancel(context.Background(), "BKX7Q2M9RT", &models.CancelBookingRequest{
		Email:  "jane@example.com",
		Reason: "передумала",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, "передумала", repo.cancelled[1])
}

// Отмена освобождает окно для всех услуг, кэш сбрасывается по дате
func TestCancel_InvalidatesDateCache(t *testing.T) {
	cache := &recordingCache{}
	svc := NewService(newFakeRepo(testBooking()), cache, nil, nopLogger{})

	_, err := svc.Cancel(context.Background(), "BKX7Q2M9RT", &models.CancelBookingRequest{Email: "jane@example.com"})

	require.NoError(t, err)
	assert.Equal(t, []string{"2025-11-03"}, cache.invalidatedDates)
}

func TestCancel_CompletedRejected(t *testing.T) {
	b := testBooking()
	b.Status = domain.StatusCompleted
	svc := NewService(newFakeRepo(b), nil, nil, nopLogger{})

	_, err := svc.Cancel(context.Background(), "BKX7Q2M9RT", &models.CancelBookingRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	repo := newFakeRepo(testBooking())
	svc := NewService(repo, nil, nil, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.statuses[1])
}

func TestUpdateStatus_InvalidTransition(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking()), nil, nil, nopLogger{})

	// pending -> completed запрещен, статус completed достижим только из confirmed
	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking()), nil, nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
