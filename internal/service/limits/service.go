package limits

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	limitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/limit"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/limits/models"
)

// Service сервис конфигурации дневных лимитов
// Изменение лимита действует со следующей проверки допуска без шага инвалидации:
// Enforcer всегда перечитывает строку лимита под блокировкой
type Service struct {
	limitRepo   LimitRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса лимитов
func NewService(limitRepo LimitRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		limitRepo:   limitRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// List возвращает все настроенные лимиты
func (s *Service) List(ctx context.Context) (*models.LimitListResponse, error) {
	s.logger.Info("List: fetching all service limits")

	limits, err := s.limitRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLimitList(limits), nil
}

// GetByServiceCode возвращает лимит услуги по ее коду
func (s *Service) GetByServiceCode(ctx context.Context, serviceCode string) (*models.LimitResponse, error) {
	s.logger.Info("GetByServiceCode: fetching limit for service=%s", serviceCode)

	svc, err := s.resolveService(ctx, serviceCode)
	if err != nil {
		return nil, err
	}

	lim, err := s.limitRepo.GetByServiceID(ctx, svc.ID)
	if err != nil {
		if errors.Is(err, limitRepo.ErrLimitNotFound) {
			s.logger.Warn("GetByServiceCode: no limit configured for service=%s", serviceCode)
			return nil, ErrLimitNotFound
		}
		s.logger.Error("GetByServiceCode: repository error for service=%s: %v", serviceCode, err)
		return nil, fmt.Errorf("%w: GetByServiceCode - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainLimit(lim), nil
}

// Upsert создает или обновляет дневной лимит услуги
func (s *Service) Upsert(ctx context.Context, serviceCode string, req *models.UpsertLimitRequest) (*models.LimitResponse, error) {
	s.logger.Info("Upsert: setting limit for service=%s: dailyLimit=%d by %s",
		serviceCode, req.DailyLimit, req.UpdatedBy)

	if err := s.validateLimitData(req); err != nil {
		s.logger.Warn("Upsert: validation failed for service=%s: %v", serviceCode, err)
		return nil, err
	}

	svc, err := s.resolveService(ctx, serviceCode)
	if err != nil {
		return nil, err
	}

	updated, err := s.limitRepo.Upsert(ctx, req.ToDomainLimit(svc.ID))
	if err != nil {
		s.logger.Error("Upsert: repository error for service=%s: %v", serviceCode, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully set limit id=%d for service=%s", updated.ID, serviceCode)
	return models.FromDomainLimit(updated), nil
}

// resolveService находит услугу по коду
func (s *Service) resolveService(ctx context.Context, serviceCode string) (*domain.Service, error) {
	if serviceCode == "" {
		return nil, fmt.Errorf("%w: serviceCode is required", ErrInvalidInput)
	}

	svc, err := s.serviceRepo.GetByCode(ctx, serviceCode)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("resolveService: service code=%s not found", serviceCode)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("resolveService: failed to get service code=%s: %v", serviceCode, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	return svc, nil
}

// validateLimitData валидирует параметры лимита
func (s *Service) validateLimitData(req *models.UpsertLimitRequest) error {
	if req.DailyLimit < domain.MinDailyLimit || req.DailyLimit > domain.MaxDailyLimit {
		return fmt.Errorf("%w: dailyLimit must be between %d and %d",
			ErrInvalidInput, domain.MinDailyLimit, domain.MaxDailyLimit)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	if req.UpdatedBy == "" {
		return fmt.Errorf("%w: updatedBy is required", ErrInvalidInput)
	}
	return nil
}
