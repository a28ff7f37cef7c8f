package get_available_dates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	storage "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// UseCase получение дат месяца, на которые есть хотя бы один свободный слот
type UseCase struct {
	ruleRepo         RuleRepository
	bookingRepo      BookingRepository
	consultationRepo ConsultationRepository
	timeProvider     TimeProvider
	logger           Logger

	slotIntervalMinutes int
}

func NewUseCase(
	ruleRepo RuleRepository,
	bookingRepo BookingRepository,
	consultationRepo ConsultationRepository,
	logger Logger,
	slotIntervalMinutes int,
) *UseCase {
	return &UseCase{
		ruleRepo:            ruleRepo,
		bookingRepo:         bookingRepo,
		consultationRepo:    consultationRepo,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		slotIntervalMinutes: slotIntervalMinutes,
	}
}

// Execute возвращает даты месяца, доступные для записи на тип консультации.
// Правила и бронирования за весь месяц загружаются двумя запросами,
// дальше расчет по дням идет в памяти.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	// 2. Получаем тип консультации и проверяем, что он активен
	service, err := uc.consultationRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, storage.ErrConsultationNotFound) {
			return nil, fmt.Errorf("%w: service_id %d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("GetAvailableDates: failed to get consultation type %d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !service.IsActive() {
		return nil, fmt.Errorf("%w: service_id %d", ErrServiceInactive, req.ServiceID)
	}

	// 3. Границы месяца: [первый день, первый день следующего месяца)
	monthStart := time.Date(req.Month.Year(), req.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).AddDate(0, 0, -1)

	// 4. Загружаем правила и бронирования на весь месяц
	rules, err := uc.ruleRepo.ListForRange(ctx, monthStart, monthEnd, &req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to list rules for month %s: %v", monthStart.Format(domain.MonthFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	bookings, err := uc.bookingRepo.GetByDateRange(ctx, monthStart, monthEnd, nil)
	if err != nil {
		uc.logger.Error("GetAvailableDates: failed to get bookings for month %s: %v", monthStart.Format(domain.MonthFormat), err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Группируем бронирования по датам
	bookingsByDate := make(map[string][]*domain.Booking, len(bookings))
	for _, b := range bookings {
		key := b.BookingDate.Format(domain.DateFormat)
		bookingsByDate[key] = append(bookingsByDate[key], b)
	}

	now := uc.timeProvider.Now()
	today := now.Format(domain.DateFormat)
	nowMinutes := types.NewTimeString(now).Minutes()

	// 6. Считаем доступность по каждому дню месяца
	dates := make([]string, 0)
	for day := monthStart; !day.After(monthEnd); day = day.AddDate(0, 0, 1) {
		dayStr := day.Format(domain.DateFormat)

		// Прошедшие дни пропускаем сразу
		if dayStr < today {
			continue
		}

		open := availability.ResolveOpenIntervals(rules, day, req.ServiceID)
		if len(open) == 0 {
			continue
		}

		candidates := availability.GenerateSlots(open, service.DurationMinutes, uc.slotIntervalMinutes)
		free := availability.FilterAvailable(candidates, service.DurationMinutes, service.BufferBeforeMinutes, service.BufferAfterMinutes, bookingsByDate[dayStr])

		if uc.hasBookableSlot(free, dayStr == today, nowMinutes) {
			dates = append(dates, dayStr)
		}
	}

	return &Response{
		ServiceID: req.ServiceID,
		Month:     monthStart.Format(domain.MonthFormat),
		Dates:     dates,
	}, nil
}

// hasBookableSlot проверяет, остался ли хотя бы один слот; для сегодняшнего
// дня слоты с прошедшим временем начала не учитываются
func (uc *UseCase) hasBookableSlot(slots []domain.Slot, isToday bool, nowMinutes int) bool {
	for _, s := range slots {
		if isToday && s.StartTime.Minutes() <= nowMinutes {
			continue
		}
		return true
	}
	return false
}
