package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис чтения записей и смены их статусов
// Создание записей идет через Capacity Enforcer (usecase create_reservation),
// здесь только персональная работа с уже существующими записями
type Service struct {
	reservationRepo ReservationRepository
	serviceRepo     ServiceRepository
	slotCache       SlotCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	serviceRepo ServiceRepository,
	slotCache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		slotCache:       slotCache,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// List возвращает записи на день, опционально по услуге и периоду
// Используется персоналом для просмотра дня и для UI проверки конфликтов закрытий
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReservationListResponse, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	filter := domain.ReservationsFilter{Date: &req.Date}

	if req.ServiceCode != nil {
		svc, err := s.serviceRepo.GetByCode(ctx, *req.ServiceCode)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				s.logger.Warn("List: service code=%s not found", *req.ServiceCode)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("List: failed to get service code=%s: %v", *req.ServiceCode, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		filter.ServiceID = &svc.ID
	}

	if req.Period != nil {
		period := domain.Period(*req.Period)
		if !period.IsValid() {
			return nil, fmt.Errorf("%w: period must be one of: morning, afternoon", ErrInvalidInput)
		}
		filter.Period = &period
	}

	s.logger.Info("List: fetching reservations for date=%s", req.Date.Format(domain.DateFormat))

	reservations, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит запись в новый статус с проверкой допустимости перехода
// pending → confirmed | cancelled | rejected; confirmed → completed | cancelled | no_show.
// Конечные статусы неизменяемы. Отмена — смена статуса, строка записи не удаляется
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d -> status=%s", id, req.Status)

	nextStatus := domain.ReservationStatus(req.Status)
	if !isKnownStatus(nextStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	if req.AdminNotes != nil && len(*req.AdminNotes) > domain.MaxNotesLength {
		return nil, fmt.Errorf("%w: adminNotes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !res.CanTransitionTo(nextStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for reservation id=%d",
			res.Status, nextStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, res.Status, nextStatus)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, nextStatus, req.AdminNotes); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: failed to update reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Переход из countable статуса освобождает вместимость слота
	if res.CountsTowardCapacity() {
		s.invalidateCache(ctx, res)
	}

	updated, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-fetch reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: reservation id=%d is now %s", id, updated.Status)
	return models.FromDomainReservation(updated), nil
}

// invalidateCache сбрасывает кеш слотов на дату записи; ошибки кеша не фатальны
func (s *Service) invalidateCache(ctx context.Context, res *domain.Reservation) {
	if s.slotCache == nil {
		return
	}
	date := res.PreferredDate.Format(domain.DateFormat)
	if err := s.slotCache.InvalidateDate(ctx, date); err != nil {
		s.logger.Warn("invalidateCache: failed to invalidate slot cache for date=%s: %v", date, err)
	}
}

func isKnownStatus(status domain.ReservationStatus) bool {
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCancelled, domain.StatusNoShow, domain.StatusRejected:
		return true
	default:
		return false
	}
}
