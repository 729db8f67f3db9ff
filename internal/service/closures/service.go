package closures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	closureRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/closure"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/closures/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Service сервис ручных закрытий слотов
// Закрытие никогда не затрагивает существующие записи: оно влияет только на
// будущую выдачу доступности. Закрытия не удаляются, только деактивируются
type Service struct {
	closureRepo ClosureRepository
	serviceRepo ServiceRepository
	slotCache   SlotCache
	logger      Logger
}

// NewService создает новый экземпляр сервиса закрытий
func NewService(
	closureRepo ClosureRepository,
	serviceRepo ServiceRepository,
	slotCache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		closureRepo: closureRepo,
		serviceRepo: serviceRepo,
		slotCache:   slotCache,
		logger:      logger,
	}
}

// Create применяет закрытие слота
// Конфликты с существующими записями проверяются отдельным информационным
// запросом check-conflict и НЕ блокируют закрытие: решение остается за персоналом
func (s *Service) Create(ctx context.Context, req *models.CreateClosureRequest) (*models.ClosureResponse, error) {
	s.logger.Info("Create: closing slot date=%s, period=%s, start=%s by %s",
		req.ClosureDate.Format(domain.DateFormat), req.Period, req.TimeSlotStart, req.CreatedBy)

	start, end, err := s.validateClosureData(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	var serviceID *int64
	if req.ServiceCode != nil {
		svc, err := s.serviceRepo.GetByCode(ctx, *req.ServiceCode)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				s.logger.Warn("Create: service code=%s not found", *req.ServiceCode)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Create: failed to get service code=%s: %v", *req.ServiceCode, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		serviceID = &svc.ID
	}

	closure := models.ToDomainClosure(req, start, end, serviceID)
	created, err := s.closureRepo.Create(ctx, closure)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, created.ClosureDate)

	s.logger.Info("Create: successfully created closure id=%d", created.ID)
	resp := models.FromDomainClosure(created)
	resp.ServiceCode = req.ServiceCode
	return resp, nil
}

// Remove снимает закрытие (is_active = false), возвращая слот в выдачу доступности
// Идемпотентно: повторное снятие уже неактивного закрытия — no-op, не ошибка
func (s *Service) Remove(ctx context.Context, id int64) error {
	s.logger.Info("Remove: deactivating closure id=%d", id)

	closure, err := s.closureRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, closureRepo.ErrClosureNotFound) {
			s.logger.Warn("Remove: closure id=%d not found", id)
			return ErrClosureNotFound
		}
		s.logger.Error("Remove: repository error for closure id=%d: %v", id, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	if err := s.closureRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, closureRepo.ErrClosureNotFound) {
			return ErrClosureNotFound
		}
		s.logger.Error("Remove: failed to deactivate closure id=%d: %v", id, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	s.invalidateCache(ctx, closure.ClosureDate)

	s.logger.Info("Remove: successfully deactivated closure id=%d", id)
	return nil
}

// ListByDate возвращает активные закрытия на дату
func (s *Service) ListByDate(ctx context.Context, date time.Time) (*models.ClosureListResponse, error) {
	s.logger.Info("ListByDate: fetching closures for date=%s", date.Format(domain.DateFormat))

	closures, err := s.closureRepo.ListActiveByDate(ctx, date)
	if err != nil {
		s.logger.Error("ListByDate: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainClosureList(closures)
	s.resolveServiceCodes(ctx, resp)
	return resp, nil
}

// resolveServiceCodes подставляет коды услуг для закрытий с областью действия
// по услуге; ошибки справочника не фатальны, код просто остается пустым
func (s *Service) resolveServiceCodes(ctx context.Context, resp *models.ClosureListResponse) {
	codes := make(map[int64]string)
	for i := range resp.Closures {
		c := &resp.Closures[i]
		if c.ServiceID == nil {
			continue
		}
		code, ok := codes[*c.ServiceID]
		if !ok {
			svc, err := s.serviceRepo.GetByID(ctx, *c.ServiceID)
			if err != nil {
				s.logger.Warn("resolveServiceCodes: failed to get service id=%d: %v", *c.ServiceID, err)
				continue
			}
			code = svc.Code
			codes[*c.ServiceID] = code
		}
		c.ServiceCode = &code
	}
}

// validateClosureData валидирует и разбирает поля запроса на закрытие
func (s *Service) validateClosureData(req *models.CreateClosureRequest) (types.TimeString, *types.TimeString, error) {
	if req.ClosureDate.IsZero() {
		return "", nil, fmt.Errorf("%w: closureDate is required", ErrInvalidInput)
	}
	if !domain.Period(req.Period).IsValid() {
		return "", nil, fmt.Errorf("%w: period must be one of: morning, afternoon", ErrInvalidInput)
	}
	if req.Reason == "" {
		return "", nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxReasonLength {
		return "", nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxReasonLength)
	}
	if req.CreatedBy == "" {
		return "", nil, fmt.Errorf("%w: createdBy is required", ErrInvalidInput)
	}

	start, err := types.NewTimeStringFromString(req.TimeSlotStart)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid timeSlotStart: %v", ErrInvalidInput, err)
	}

	var end *types.TimeString
	if req.TimeSlotEnd != nil {
		e, err := types.NewTimeStringFromString(*req.TimeSlotEnd)
		if err != nil {
			return "", nil, fmt.Errorf("%w: invalid timeSlotEnd: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(e) {
			return "", nil, fmt.Errorf("%w: timeSlotEnd must be after timeSlotStart", ErrInvalidInput)
		}
		end = &e
	}

	return start, end, nil
}

// invalidateCache сбрасывает кеш слотов на дату; ошибки кеша не фатальны
func (s *Service) invalidateCache(ctx context.Context, date time.Time) {
	if s.slotCache == nil {
		return
	}
	if err := s.slotCache.InvalidateDate(ctx, date.Format(domain.DateFormat)); err != nil {
		s.logger.Warn("invalidateCache: failed to invalidate slot cache for date=%s: %v",
			date.Format(domain.DateFormat), err)
	}
}
