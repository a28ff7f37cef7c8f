package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/internal/service/bookings/models"
)

// Service сервис для работы с существующими бронированиями
type Service struct {
	bookingRepo BookingRepository
	cache       SlotsCache
	notifier    Notifier
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	cache SlotsCache,
	notifierClient Notifier,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		cache:       cache,
		notifier:    notifierClient,
		logger:      logger,
	}
}

// GetByReference получает бронирование по публичному номеру.
// Клиент подтверждает владение бронированием своим email.
func (s *Service) GetByReference(ctx context.Context, ref, email string) (*models.BookingResponse, error) {
	booking, err := s.fetchByReference(ctx, "GetByReference", ref)
	if err != nil {
		return nil, err
	}

	if !emailMatches(booking, email) {
		s.logger.Warn("GetByReference: email mismatch for booking %s", ref)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование по номеру.
// Отменить можно только pending и confirmed бронирования.
func (s *Service) Cancel(ctx context.Context, ref string, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	booking, err := s.fetchByReference(ctx, "Cancel", ref)
	if err != nil {
		return nil, err
	}

	if !emailMatches(booking, req.Email) {
		s.logger.Warn("Cancel: email mismatch for booking %s", ref)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking %s in status %s cannot be cancelled", ref, booking.Status)
		return nil, fmt.Errorf("%w: status %s", ErrCannotCancel, booking.Status)
	}

	if err := s.bookingRepo.Cancel(ctx, booking.ID, req.Reason); err != nil {
		s.logger.Error("Cancel: repository error for booking %s: %v", ref, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking %s cancelled", ref)

	// Перечитываем бронирование, чтобы вернуть актуальные статус и дату отмены
	updated, err := s.bookingRepo.GetByID(ctx, booking.ID)
	if err != nil {
		updated = booking
	}

	s.afterCancel(ctx, updated, req.Reason)

	return models.FromDomainBooking(updated), nil
}

// UpdateStatus переводит бронирование в новый статус (операция персонала).
// Допустимость перехода проверяется машиной состояний бронирования.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%d", booking.Status, status, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status %s", id, status)

	// Отмена освобождает слот: инвалидируем кэш на дату бронирования
	if status == domain.StatusCancelled || status == domain.StatusNoShow {
		s.invalidateCache(ctx, booking)
	}

	booking.Status = status
	return models.FromDomainBooking(booking), nil
}

// ListForDate получает бронирования на дату с фильтрацией (операция персонала)
func (s *Service) ListForDate(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForDate: invalid status filter=%v", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByDateWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForDate: repository error for date %s: %v", req.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ListForDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForDate: fetched %d bookings for date %s", len(bookings), req.Date.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}

func (s *Service) fetchByReference(ctx context.Context, op, ref string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByReference(ctx, strings.ToUpper(strings.TrimSpace(ref)))
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking %s not found", op, ref)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking %s: %v", op, ref, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// afterCancel инвалидирует кэш слотов и отправляет событие об отмене
func (s *Service) afterCancel(ctx context.Context, booking *domain.Booking, reason string) {
	s.invalidateCache(ctx, booking)

	if s.notifier == nil {
		return
	}

	event := &notifier.BookingCancelledEvent{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		ServiceName:   booking.ServiceName,
		BookingDate:   booking.BookingDate.Format(domain.DateFormat),
		StartTime:     booking.StartTime.String(),
		CustomerEmail: booking.CustomerEmail,
		Reason:        reason,
	}
	if err := s.notifier.NotifyBookingCancelled(ctx, event); err != nil {
		s.logger.Warn("Cancel: failed to send notification for booking %s: %v", booking.Reference, err)
	}
}

func (s *Service) invalidateCache(ctx context.Context, booking *domain.Booking) {
	if s.cache == nil {
		return
	}
	dateStr := booking.BookingDate.Format(domain.DateFormat)
	if err := s.cache.InvalidateDate(ctx, dateStr); err != nil {
		s.logger.Warn("failed to invalidate slots cache for date %s: %v", dateStr, err)
	}
}

// emailMatches сравнивает email без учета регистра
func emailMatches(booking *domain.Booking, email string) bool {
	return strings.EqualFold(strings.TrimSpace(email), booking.CustomerEmail)
}
