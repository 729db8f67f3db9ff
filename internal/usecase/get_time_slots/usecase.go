package get_time_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// UseCase use case генерации временных слотов с доступностью
// Строго read-only: блокировок не берет и терпит слегка устаревшие счетчики —
// авторитетная проверка выполняется Capacity Enforcer'ом при создании записи
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	closureRepo     ClosureRepository
	cache           SlotCache
	params          Params
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil — тогда выдача всегда считается заново
func NewUseCase(
	serviceRepository ServiceRepository,
	scheduleRepository ScheduleRepository,
	reservationRepository ReservationRepository,
	closureRepository ClosureRepository,
	cache SlotCache,
	params Params,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepository,
		scheduleRepo:    scheduleRepository,
		reservationRepo: reservationRepository,
		closureRepo:     closureRepository,
		cache:           cache,
		params:          params.withDefaults(),
		logger:          logger,
	}
}

// Execute выполняет use case получения слотов на дату для услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetTimeSlots: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("GetTimeSlots: service=%s, date=%s", req.ServiceCode, dateStr)

	// 2. Пробуем кеш (краткоживущий, best-effort)
	if uc.cache != nil {
		var cached Response
		if err := uc.cache.Get(ctx, dateStr, req.ServiceCode, &cached); err == nil {
			uc.logger.Info("GetTimeSlots: cache hit for service=%s, date=%s", req.ServiceCode, dateStr)
			return &cached, nil
		}
	}

	// 3. Получаем услугу из справочника
	svc, err := uc.serviceRepo.GetByCode(ctx, req.ServiceCode)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetTimeSlots: service code=%s not found", req.ServiceCode)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetTimeSlots: failed to get service code=%s: %v", req.ServiceCode, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsActive {
		uc.logger.Warn("GetTimeSlots: service code=%s is inactive", req.ServiceCode)
		return nil, ErrServiceInactive
	}

	// 4. Действующие правила операционных часов на день недели
	// Правило для конкретной услуги имеет приоритет над общим, независимо по периодам
	day := domain.DayOfWeekFromDate(req.Date)
	rules, err := uc.scheduleRepo.GetEffectiveRulesForDay(ctx, day, svc.ID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			uc.logger.Info("GetTimeSlots: no operating hours for service=%s on %s", req.ServiceCode, dateStr)
			return nil, ErrNoOperatingHours
		}
		uc.logger.Error("GetTimeSlots: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating rules: %v", ErrInternal, err)
	}

	// 5. Активные записи услуги на дату (только pending/confirmed)
	reservations, err := uc.reservationRepo.ListWithFilter(ctx, domain.ReservationsFilter{
		ServiceID:     ptr.Ptr(svc.ID),
		Date:          ptr.Ptr(req.Date),
		OnlyCountable: true,
	})
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 6. Активные закрытия на дату
	closures, err := uc.closureRepo.ListActiveByDate(ctx, req.Date)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to get closures: %v", err)
		return nil, fmt.Errorf("%w: failed to get closures: %v", ErrInternal, err)
	}

	// 7. Генерируем слоты
	slots, err := buildSlots(rules, svc, reservations, closures, uc.params)
	if err != nil {
		uc.logger.Error("GetTimeSlots: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	response := &Response{
		Date:        req.Date,
		ServiceCode: req.ServiceCode,
		ServiceName: svc.Name,
		Slots:       slots,
	}

	// 8. Кладем в кеш (ошибки кеша не фатальны)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, dateStr, req.ServiceCode, response); err != nil {
			uc.logger.Warn("GetTimeSlots: failed to cache slots: %v", err)
		}
	}

	uc.logger.Info("GetTimeSlots: generated %d slots for service=%s, date=%s", len(slots), req.ServiceCode, dateStr)
	return response, nil
}
