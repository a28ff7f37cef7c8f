package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ConsultationService/internal/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	bookingstorage "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/booking"
	consultationstorage "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ConsultationService/internal/integrations/payments"
	"github.com/m04kA/SMC-ConsultationService/pkg/reference"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// Количество попыток сгенерировать уникальный номер бронирования
const maxReferenceAttempts = 5

// UseCase создание бронирования с защитой от двойного бронирования.
// Проверка занятости и вставка выполняются в одной сериализуемой
// транзакции: из двух одновременных запросов на один слот успешным
// будет ровно один.
type UseCase struct {
	ruleRepo         RuleRepository
	bookingRepo      BookingRepository
	consultationRepo ConsultationRepository
	txManager        TransactionManager
	cache            SlotsCache
	notifier         Notifier
	paymentsClient   PaymentsClient
	timeProvider     TimeProvider
	logger           Logger

	slotIntervalMinutes int
	currency            string
}

func NewUseCase(
	ruleRepo RuleRepository,
	bookingRepo BookingRepository,
	consultationRepo ConsultationRepository,
	txManager TransactionManager,
	cache SlotsCache,
	notifierClient Notifier,
	paymentsClient PaymentsClient,
	logger Logger,
	slotIntervalMinutes int,
	currency string,
) *UseCase {
	return &UseCase{
		ruleRepo:            ruleRepo,
		bookingRepo:         bookingRepo,
		consultationRepo:    consultationRepo,
		txManager:           txManager,
		cache:               cache,
		notifier:            notifierClient,
		paymentsClient:      paymentsClient,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		slotIntervalMinutes: slotIntervalMinutes,
		currency:            currency,
	}
}

// Execute создает бронирование на запрошенный слот
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Дата должна быть в будущем (или сегодня с еще не прошедшим временем)
	if err := uc.checkDateNotPast(req); err != nil {
		return nil, err
	}

	// 3. Получаем тип консультации и проверяем, что он активен
	service, err := uc.consultationRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, consultationstorage.ErrConsultationNotFound) {
			return nil, fmt.Errorf("%w: service_id %d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("CreateBooking: failed to get consultation type %d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !service.IsActive() {
		return nil, fmt.Errorf("%w: service_id %d", ErrServiceInactive, req.ServiceID)
	}

	// 4. Резервируем слот в сериализуемой транзакции
	var created *domain.Booking
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := uc.reserveSlot(txCtx, req, service)
		if err != nil {
			return err
		}
		created = booking
		return nil
	})
	if txErr != nil {
		if errors.Is(txErr, ErrInvalidTimeSlot) || errors.Is(txErr, ErrSlotNotAvailable) {
			return nil, txErr
		}
		uc.logger.Error("CreateBooking: transaction failed for service %d date %s: %v",
			req.ServiceID, req.Date.Format(domain.DateFormat), txErr)
		return nil, fmt.Errorf("%w: %v", ErrInternal, txErr)
	}

	uc.logger.Info("CreateBooking: booking %s created for service %d on %s %s",
		created.Reference, created.ServiceID, created.BookingDate.Format(domain.DateFormat), created.StartTime)

	// 5. Пост-обработка вне транзакции: кэш, уведомления, оплата.
	// Бронирование уже создано, ошибки здесь не фатальны.
	checkoutURL := uc.afterCreate(ctx, created)

	endTime, _ := created.StartTime.AddMinutes(created.DurationMinutes)

	return &Response{
		ID:              created.ID,
		Reference:       created.Reference,
		ServiceID:       created.ServiceID,
		ServiceName:     created.ServiceName,
		Date:            created.BookingDate.Format(domain.DateFormat),
		StartTime:       created.StartTime,
		EndTime:         endTime,
		DurationMinutes: created.DurationMinutes,
		Status:          string(created.Status),
		PaymentStatus:   string(created.PaymentStatus),
		Price:           created.ServicePrice,
		CheckoutURL:     checkoutURL,
	}, nil
}

// reserveSlot выполняется внутри транзакции: перепроверяет расписание и
// занятость под блокировкой и вставляет бронирование
func (uc *UseCase) reserveSlot(ctx context.Context, req Request, service *domain.ConsultationType) (*domain.Booking, error) {
	// 4.1. Запрошенное время должно быть одним из слотов-кандидатов
	rules, err := uc.ruleRepo.ListForDate(ctx, req.Date, &req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	open := availability.ResolveOpenIntervals(rules, req.Date, req.ServiceID)
	candidates := availability.GenerateSlots(open, service.DurationMinutes, uc.slotIntervalMinutes)

	if !slotExists(candidates, req.StartTime) {
		return nil, fmt.Errorf("%w: %s on %s", ErrInvalidTimeSlot, req.StartTime, req.Date.Format(domain.DateFormat))
	}

	// 4.2. Берем бронирования дня под блокировкой и перепроверяем занятость
	bookings, err := uc.bookingRepo.GetByDateWithFilter(ctx, domain.DayBookingsFilter{Date: req.Date})
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	if !availability.IsSlotFree(req.StartTime, service.DurationMinutes, service.BufferBeforeMinutes, service.BufferAfterMinutes, bookings) {
		return nil, fmt.Errorf("%w: %s on %s", ErrSlotNotAvailable, req.StartTime, req.Date.Format(domain.DateFormat))
	}

	// 4.3. Вставляем бронирование; при коллизии номера генерируем новый
	booking := &domain.Booking{
		ServiceID:       req.ServiceID,
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: service.DurationMinutes,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentUnpaid,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		Notes:           req.Notes,
		ServiceName:     service.Name,
		ServicePrice:    service.Price,
	}

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		ref, err := reference.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate booking reference: %w", err)
		}
		booking.Reference = ref

		created, err := uc.bookingRepo.Create(ctx, booking)
		if err == nil {
			return created, nil
		}
		if errors.Is(err, bookingstorage.ErrDuplicateReference) {
			continue
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return nil, fmt.Errorf("failed to generate unique booking reference after %d attempts", maxReferenceAttempts)
}

// checkDateNotPast отклоняет бронирования на прошедшие дату и время
func (uc *UseCase) checkDateNotPast(req Request) error {
	now := uc.timeProvider.Now()
	today := now.Format(domain.DateFormat)
	target := req.Date.Format(domain.DateFormat)

	if target < today {
		return fmt.Errorf("%w: date %s is in the past", ErrInvalidInput, target)
	}
	if target == today && req.StartTime.Minutes() <= types.NewTimeString(now).Minutes() {
		return fmt.Errorf("%w: start_time %s has already passed", ErrInvalidInput, req.StartTime)
	}
	return nil
}

// afterCreate инвалидирует кэш слотов и запускает интеграции.
// Возвращает ссылку на оплату, если платежный сервис ее выдал.
func (uc *UseCase) afterCreate(ctx context.Context, booking *domain.Booking) *string {
	dateStr := booking.BookingDate.Format(domain.DateFormat)

	if uc.cache != nil {
		if err := uc.cache.InvalidateDate(ctx, dateStr); err != nil {
			uc.logger.Warn("CreateBooking: failed to invalidate slots cache for date %s: %v",
				dateStr, err)
		}
	}

	if uc.notifier != nil {
		event := &notifier.BookingCreatedEvent{
			BookingID:     booking.ID,
			Reference:     booking.Reference,
			ServiceName:   booking.ServiceName,
			BookingDate:   dateStr,
			StartTime:     booking.StartTime.String(),
			CustomerName:  booking.CustomerName,
			CustomerEmail: booking.CustomerEmail,
			Price:         booking.ServicePrice,
		}
		if err := uc.notifier.NotifyBookingCreated(ctx, event); err != nil {
			uc.logger.Warn("CreateBooking: failed to send notification for booking %s: %v", booking.Reference, err)
		}
	}

	if uc.paymentsClient == nil || booking.ServicePrice <= 0 {
		return nil
	}

	intent, err := uc.paymentsClient.CreateIntent(ctx, &payments.PaymentIntentRequest{
		BookingReference: booking.Reference,
		Amount:           booking.ServicePrice,
		Currency:         uc.currency,
		CustomerEmail:    booking.CustomerEmail,
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to create payment intent for booking %s: %v", booking.Reference, err)
		return nil
	}

	if err := uc.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentPending); err != nil {
		uc.logger.Warn("CreateBooking: failed to update payment status for booking %s: %v", booking.Reference, err)
	}
	booking.PaymentStatus = domain.PaymentPending

	return &intent.CheckoutURL
}

// slotExists проверяет, что запрошенное время совпадает с одним из кандидатов
func slotExists(candidates []domain.Slot, start types.TimeString) bool {
	for _, s := range candidates {
		if s.StartTime == start {
			return true
		}
	}
	return false
}
