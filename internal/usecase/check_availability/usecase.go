package check_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	limitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/limit"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
)

// UseCase use case консультативной проверки дневной доступности услуги
// Блокировок не берет и терпит слегка устаревшие счетчики — эта проверка
// предназначена для UI и НИКОГДА не используется как гейт допуска
type UseCase struct {
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	reservationRepo ReservationRepository
	limitRepo       LimitRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepository ServiceRepository,
	scheduleRepository ScheduleRepository,
	reservationRepository ReservationRepository,
	limitRepository LimitRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepository,
		scheduleRepo:    scheduleRepository,
		reservationRepo: reservationRepository,
		limitRepo:       limitRepository,
		logger:          logger,
	}
}

// Execute выполняет консультативную проверку доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceCode == "" {
		return nil, fmt.Errorf("%w: serviceCode is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	dateStr := req.Date.Format(domain.DateFormat)
	uc.logger.Info("CheckAvailability: service=%s, date=%s", req.ServiceCode, dateStr)

	svc, err := uc.serviceRepo.GetByCode(ctx, req.ServiceCode)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CheckAvailability: service code=%s not found", req.ServiceCode)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CheckAvailability: failed to get service code=%s: %v", req.ServiceCode, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	// Клиника закрыта в этот день — отдельный исход, не "мест нет"
	day := domain.DayOfWeekFromDate(req.Date)
	if _, err := uc.scheduleRepo.GetEffectiveRulesForDay(ctx, day, svc.ID); err != nil {
		if errors.Is(err, scheduleRepo.ErrRuleNotFound) {
			uc.logger.Info("CheckAvailability: no operating hours for service=%s on %s", req.ServiceCode, dateStr)
			return nil, ErrNoOperatingHours
		}
		uc.logger.Error("CheckAvailability: failed to get rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get operating rules: %v", ErrInternal, err)
	}

	// Лимит читается без блокировки: проверка консультативная
	lim, err := uc.limitRepo.GetByServiceID(ctx, svc.ID)
	if err != nil {
		if errors.Is(err, limitRepo.ErrLimitNotFound) {
			uc.logger.Warn("CheckAvailability: no daily limit configured for service=%s", req.ServiceCode)
			return &Response{Available: false, Configured: false, Level: LevelFull}, nil
		}
		uc.logger.Error("CheckAvailability: failed to get limit: %v", err)
		return nil, fmt.Errorf("%w: failed to get limit: %v", ErrInternal, err)
	}
	if !lim.IsActive {
		return &Response{Available: false, Configured: false, Level: LevelFull}, nil
	}

	count, err := uc.reservationRepo.CountCountableByDateAndService(ctx, req.Date, svc.ID)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to count reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to count reservations: %v", ErrInternal, err)
	}

	remaining := lim.DailyLimit - count
	if remaining < 0 {
		remaining = 0
	}

	level := LevelAvailable
	switch {
	case remaining == 0:
		level = LevelFull
	case count >= lim.SoftThreshold():
		// Мягкий порог производный: хранится только жесткий dailyLimit
		level = LevelLimited
	}

	uc.logger.Info("CheckAvailability: service=%s, date=%s: %d/%d (%s)",
		req.ServiceCode, dateStr, count, lim.DailyLimit, level)

	return &Response{
		Available:    remaining > 0,
		Configured:   true,
		Remaining:    remaining,
		CurrentCount: count,
		Limit:        lim.DailyLimit,
		Level:        level,
	}, nil
}
