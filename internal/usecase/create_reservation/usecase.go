package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	limitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/limit"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// Исходы допуска для метрик
const (
	outcomeAdmitted   = "admitted"
	outcomeSlotFull   = "slot_full"
	outcomeDailyLimit = "daily_limit"
	outcomeClosed     = "closed"
	outcomeTimeout    = "timeout"
	outcomeNoLimit    = "limit_not_configured"
)

// Коды ошибок PostgreSQL, трактуемые как таймаут допуска
const (
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgSerializationFailure = "40001"
)

// UseCase use case создания записи на прием — Capacity Enforcer
//
// Единственная точка, через которую запись может быть сохранена. Проверка и вставка
// выполняются в одной сериализуемой транзакции: строка дневного лимита услуги
// блокируется SELECT ... FOR UPDATE, что полностью упорядочивает решения о допуске
// для одной услуги. Отказ и успешная вставка не могут произойти для одной и той же
// единицы вместимости
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	limitRepo       LimitRepository
	closureRepo     ClosureRepository
	txManager       TransactionManager
	cache           SlotCache
	metrics         AdmissionMetrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// cache и metrics могут быть nil
func NewUseCase(
	serviceRepository ServiceRepository,
	scheduleRepository ScheduleRepository,
	reservationRepository ReservationRepository,
	limitRepository LimitRepository,
	closureRepository ClosureRepository,
	txManager TransactionManager,
	cache SlotCache,
	metrics AdmissionMetrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepository,
		scheduleRepo:    scheduleRepository,
		reservationRepo: reservationRepository,
		limitRepo:       limitRepository,
		closureRepo:     closureRepository,
		txManager:       txManager,
		cache:           cache,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	dateStr := req.PreferredDate.Format(domain.DateFormat)
	uc.logger.Info("CreateReservation: service=%s, date=%s, time=%s",
		req.ServiceCode, dateStr, req.TimeSlotStart)

	// 2. Получаем услугу из справочника (вне транзакции: справочник медленно меняется)
	svc, err := uc.serviceRepo.GetByCode(ctx, req.ServiceCode)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateReservation: service code=%s not found", req.ServiceCode)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get service code=%s: %v", req.ServiceCode, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsActive {
		uc.logger.Warn("CreateReservation: service code=%s is inactive", req.ServiceCode)
		return nil, ErrServiceInactive
	}

	var result *domain.Reservation

	// 3. Допуск и вставка в одной сериализуемой транзакции
	txErr := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		return uc.admitAndCreate(txCtx, req, svc, &result)
	})

	if txErr != nil {
		if isAdmissionTimeout(txErr) {
			uc.logger.Warn("CreateReservation: admission timed out for service=%s, date=%s: %v",
				req.ServiceCode, dateStr, txErr)
			uc.incAdmission(outcomeTimeout)
			return nil, ErrAdmissionTimeout
		}
		return nil, txErr
	}

	uc.logger.Info("CreateReservation: reservation id=%d created for service=%s, date=%s, slot=%s-%s",
		result.ID, req.ServiceCode, dateStr, result.TimeSlotStart, result.TimeSlotEnd)
	uc.incAdmission(outcomeAdmitted)

	// 4. Сбрасываем кеш слотов (best-effort: короткий TTL скроет промах)
	if uc.cache != nil {
		if err := uc.cache.InvalidateService(ctx, dateStr, req.ServiceCode); err != nil {
			uc.logger.Warn("CreateReservation: failed to invalidate slot cache: %v", err)
		}
	}

	return &Response{
		ID:                       result.ID,
		PatientName:              result.PatientName,
		Phone:                    result.Phone,
		ServiceID:                result.ServiceID,
		ServiceCode:              svc.Code,
		ServiceName:              svc.Name,
		PreferredDate:            result.PreferredDate,
		Period:                   result.Period,
		TimeSlotStart:            result.TimeSlotStart,
		TimeSlotEnd:              result.TimeSlotEnd,
		EstimatedDurationMinutes: result.EstimatedDurationMinutes,
		Status:                   result.Status,
		CreatedAt:                result.CreatedAt,
		UpdatedAt:                result.UpdatedAt,
	}, nil
}

// admitAndCreate выполняет проверки допуска и вставку внутри транзакции
func (uc *UseCase) admitAndCreate(txCtx context.Context, req *Request, svc *domain.Service, result **domain.Reservation) error {
	dateStr := req.PreferredDate.Format(domain.DateFormat)

	// 3.1. Блокируем строку дневного лимита услуги (SELECT ... FOR UPDATE)
	// Конкурирующие допуски этой услуги ждут здесь до конца транзакции;
	// другие услуги не блокируются
	lim, err := uc.limitRepo.GetByServiceIDForUpdate(txCtx, svc.ID)
	if err != nil {
		if errors.Is(err, limitRepo.ErrLimitNotFound) {
			uc.logger.Warn("CreateReservation: no daily limit configured for service=%s", req.ServiceCode)
			uc.incAdmission(outcomeNoLimit)
			return ErrLimitNotConfigured
		}
		uc.logger.Error("CreateReservation: failed to lock limit row: %v", err)
		return fmt.Errorf("%w: failed to lock limit row: %v", ErrInternal, err)
	}
	if !lim.IsActive {
		uc.logger.Warn("CreateReservation: daily limit for service=%s is inactive", req.ServiceCode)
		uc.incAdmission(outcomeNoLimit)
		return ErrLimitNotConfigured
	}

	// 3.2. Дневной лимит: количество pending/confirmed записей услуги на дату
	dailyCount, err := uc.reservationRepo.CountCountableByDateAndService(txCtx, req.PreferredDate, svc.ID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to count daily reservations: %v", err)
		return fmt.Errorf("%w: failed to count daily reservations: %v", ErrInternal, err)
	}
	if dailyCount >= lim.DailyLimit {
		uc.logger.Warn("CreateReservation: daily limit reached for service=%s, date=%s: %d/%d",
			req.ServiceCode, dateStr, dailyCount, lim.DailyLimit)
		uc.incAdmission(outcomeDailyLimit)
		return fmt.Errorf("%w: %d/%d", ErrDailyLimitReached, dailyCount, lim.DailyLimit)
	}

	// 3.3. Действующие правила дня и валидность запрошенного кандидата
	day := domain.DayOfWeekFromDate(req.PreferredDate)
	rules, err := uc.scheduleRepo.GetEffectiveRulesForDay(txCtx, day, svc.ID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			uc.logger.Warn("CreateReservation: no operating hours for service=%s on %s", req.ServiceCode, dateStr)
			return ErrNoOperatingHours
		}
		uc.logger.Error("CreateReservation: failed to get rules: %v", err)
		return fmt.Errorf("%w: failed to get operating rules: %v", ErrInternal, err)
	}

	totalMinutes := svc.TotalMinutes()
	rule, err := findCandidateRule(rules, req, totalMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: invalid time slot %s for service=%s: %v",
			req.TimeSlotStart, req.ServiceCode, err)
		return err
	}

	// Инвариант: конец слота = начало + процедура + буфер
	slotEnd, err := req.TimeSlotStart.AddMinutes(totalMinutes)
	if err != nil {
		return fmt.Errorf("%w: failed to compute slot end: %v", ErrInternal, err)
	}

	// 3.4. Административные закрытия: закрытие всегда побеждает числовую доступность
	closures, err := uc.closureRepo.ListActiveByDate(txCtx, req.PreferredDate)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get closures: %v", err)
		return fmt.Errorf("%w: failed to get closures: %v", ErrInternal, err)
	}
	for _, c := range closures {
		if c.AppliesTo(rule.Period, req.TimeSlotStart, slotEnd, svc.ID) {
			uc.logger.Warn("CreateReservation: slot %s is manually closed (closure id=%d)", req.TimeSlotStart, c.ID)
			uc.incAdmission(outcomeClosed)
			return ErrSlotClosed
		}
	}

	// 3.5. Послотовая вместимость: пересечения с активными записями услуги
	// Выборка внутри транзакции добавляет FOR UPDATE на строки записей этой даты
	existing, err := uc.reservationRepo.ListWithFilter(txCtx, domain.ReservationsFilter{
		ServiceID:     ptr.Ptr(svc.ID),
		Date:          ptr.Ptr(req.PreferredDate),
		OnlyCountable: true,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get existing reservations: %v", err)
		return fmt.Errorf("%w: failed to get existing reservations: %v", ErrInternal, err)
	}

	overlapping := 0
	for _, res := range existing {
		if res.Overlaps(req.TimeSlotStart, slotEnd) {
			overlapping++
		}
	}
	if overlapping >= rule.MaxConcurrent {
		uc.logger.Warn("CreateReservation: slot %s full for service=%s: %d/%d",
			req.TimeSlotStart, req.ServiceCode, overlapping, rule.MaxConcurrent)
		uc.incAdmission(outcomeSlotFull)
		return fmt.Errorf("%w: %d/%d", ErrSlotFull, overlapping, rule.MaxConcurrent)
	}

	// 3.6. Вставка в той же транзакции
	created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
		PatientName:              req.PatientName,
		Phone:                    req.Phone,
		ServiceID:                svc.ID,
		PreferredDate:            req.PreferredDate,
		Period:                   rule.Period,
		TimeSlotStart:            req.TimeSlotStart,
		TimeSlotEnd:              slotEnd,
		EstimatedDurationMinutes: svc.DurationMinutes,
		Status:                   domain.StatusPending,
		AdminNotes:               req.AdminNotes,
	})
	if err != nil {
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	*result = created
	return nil
}

func (uc *UseCase) incAdmission(outcome string) {
	if uc.metrics != nil {
		uc.metrics.IncAdmission(outcome)
	}
}

// isAdmissionTimeout классифицирует ошибку как таймаут допуска:
// истекший контекст, исчерпанные повторы сериализации либо таймаут блокировки PostgreSQL
func isAdmissionTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgLockNotAvailable, pgQueryCanceled, pgSerializationFailure:
			return true
		}
	}

	return false
}
