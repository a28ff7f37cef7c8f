package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ConsultationService/internal/availability"
	"github.com/m04kA/SMC-ConsultationService/internal/domain"
	storage "github.com/m04kA/SMC-ConsultationService/internal/infra/storage/consultation"
	"github.com/m04kA/SMC-ConsultationService/pkg/types"
)

// UseCase получение доступных слотов для записи на дату
type UseCase struct {
	ruleRepo         RuleRepository
	bookingRepo      BookingRepository
	consultationRepo ConsultationRepository
	cache            SlotsCache
	timeProvider     TimeProvider
	logger           Logger

	slotIntervalMinutes int
}

func NewUseCase(
	ruleRepo RuleRepository,
	bookingRepo BookingRepository,
	consultationRepo ConsultationRepository,
	cache SlotsCache,
	logger Logger,
	slotIntervalMinutes int,
) *UseCase {
	return &UseCase{
		ruleRepo:            ruleRepo,
		bookingRepo:         bookingRepo,
		consultationRepo:    consultationRepo,
		cache:               cache,
		timeProvider:        &RealTimeProvider{},
		logger:              logger,
		slotIntervalMinutes: slotIntervalMinutes,
	}
}

// Execute возвращает доступные слоты для типа консультации на указанную дату
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := uc.validateRequest(req); err != nil {
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)

	// 2. Проверяем кэш (только если кэш сконфигурирован)
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, req.ServiceID, dateStr); err == nil {
			var resp Response
			if err := json.Unmarshal(data, &resp); err == nil {
				return &resp, nil
			}
			uc.logger.Warn("GetAvailableSlots: failed to decode cached slots for service %d date %s", req.ServiceID, dateStr)
		}
	}

	// 3. Получаем тип консультации и проверяем, что он активен
	service, err := uc.consultationRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, storage.ErrConsultationNotFound) {
			return nil, fmt.Errorf("%w: service_id %d", ErrServiceNotFound, req.ServiceID)
		}
		uc.logger.Error("GetAvailableSlots: failed to get consultation type %d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if !service.IsActive() {
		return nil, fmt.Errorf("%w: service_id %d", ErrServiceInactive, req.ServiceID)
	}

	// 4. Собираем правила расписания, применимые к дате
	rules, err := uc.ruleRepo.ListForDate(ctx, req.Date, &req.ServiceID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list rules for date %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Резолвим правила в открытые интервалы и генерируем слоты-кандидаты
	open := availability.ResolveOpenIntervals(rules, req.Date, req.ServiceID)
	candidates := availability.GenerateSlots(open, service.DurationMinutes, uc.slotIntervalMinutes)

	// 6. Получаем бронирования на дату: календарь общий, фильтр по услуге не применяем
	bookings, err := uc.bookingRepo.GetByDateWithFilter(ctx, domain.DayBookingsFilter{Date: req.Date})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for date %s: %v", dateStr, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 7. Отбрасываем занятые слоты с учетом буферов услуги
	free := availability.FilterAvailable(candidates, service.DurationMinutes, service.BufferBeforeMinutes, service.BufferAfterMinutes, bookings)

	// 8. Для сегодняшней даты скрываем слоты, начало которых уже прошло
	free = uc.dropPastSlots(req.Date, free)

	resp := &Response{
		ServiceID:       req.ServiceID,
		Date:            dateStr,
		DurationMinutes: service.DurationMinutes,
		Slots:           make([]SlotModel, 0, len(free)),
	}
	for _, s := range free {
		resp.Slots = append(resp.Slots, SlotModel{StartTime: s.StartTime, EndTime: s.EndTime})
	}

	// 9. Кладем результат в кэш (ошибки кэша не фатальны)
	if uc.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := uc.cache.Set(ctx, req.ServiceID, dateStr, data); err != nil {
				uc.logger.Warn("GetAvailableSlots: failed to cache slots for service %d date %s: %v", req.ServiceID, dateStr, err)
			}
		}
	}

	return resp, nil
}

// dropPastSlots убирает слоты, которые уже недоступны по текущему времени.
// Для прошедших дат возвращает пустой список, для будущих - список без изменений.
func (uc *UseCase) dropPastSlots(date time.Time, slots []domain.Slot) []domain.Slot {
	now := uc.timeProvider.Now()
	today := now.Format(domain.DateFormat)
	target := date.Format(domain.DateFormat)

	if target < today {
		return nil
	}
	if target > today {
		return slots
	}

	nowMinutes := types.NewTimeString(now).Minutes()
	result := make([]domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.StartTime.Minutes() > nowMinutes {
			result = append(result, s)
		}
	}
	return result
}
