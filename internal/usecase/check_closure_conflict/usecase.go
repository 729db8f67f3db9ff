package check_closure_conflict

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// UseCase use case проверки конфликтов перед ручным закрытием слота
type UseCase struct {
	serviceRepo     ServiceRepository
	reservationRepo ReservationRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepository ServiceRepository, reservationRepository ReservationRepository, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo:     serviceRepository,
		reservationRepo: reservationRepository,
		logger:          logger,
	}
}

// Execute возвращает список pending/confirmed записей, попадающих под закрытие
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	period := domain.Period(req.Period)
	start, err := types.NewTimeStringFromString(req.TimeSlotStart)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timeSlotStart: %v", ErrInvalidInput, err)
	}

	var end *types.TimeString
	if req.TimeSlotEnd != nil {
		e, err := types.NewTimeStringFromString(*req.TimeSlotEnd)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timeSlotEnd: %v", ErrInvalidInput, err)
		}
		if !start.IsBefore(e) {
			return nil, fmt.Errorf("%w: timeSlotEnd must be after timeSlotStart", ErrInvalidInput)
		}
		end = &e
	}

	var serviceID *int64
	if req.ServiceCode != nil {
		svc, err := uc.serviceRepo.GetByCode(ctx, *req.ServiceCode)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("CheckClosureConflict: failed to get service code=%s: %v", *req.ServiceCode, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		serviceID = &svc.ID
	}

	reservations, err := uc.reservationRepo.ListWithFilter(ctx, domain.ReservationsFilter{
		ServiceID:     serviceID,
		Date:          &req.Date,
		Period:        &period,
		OnlyCountable: true,
	})
	if err != nil {
		uc.logger.Error("CheckClosureConflict: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	conflicts := make([]Conflict, 0)
	for _, res := range reservations {
		if !res.CountsTowardCapacity() {
			continue
		}
		if !closureHits(res, start, end) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			ReservationID: res.ID,
			PatientName:   res.PatientName,
			TimeSlotStart: res.TimeSlotStart,
			TimeSlotEnd:   res.TimeSlotEnd,
			Status:        string(res.Status),
		})
	}

	uc.logger.Info("CheckClosureConflict: date=%s, period=%s, start=%s: %d conflict(s)",
		req.Date.Format(domain.DateFormat), req.Period, start, len(conflicts))

	return &Response{
		HasConflict:   len(conflicts) > 0,
		ConflictCount: len(conflicts),
		Conflicts:     conflicts,
	}, nil
}

// closureHits проверяет попадание записи под закрытие
// Точечное закрытие (end == nil) задевает записи, чей интервал содержит start;
// диапазонное — записи, пересекающие полуоткрытый интервал [start, end)
func closureHits(res *domain.Reservation, start types.TimeString, end *types.TimeString) bool {
	if end == nil {
		return !start.IsBefore(res.TimeSlotStart) && start.IsBefore(res.TimeSlotEnd)
	}
	return res.Overlaps(start, *end)
}

func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if !domain.Period(req.Period).IsValid() {
		return fmt.Errorf("%w: period must be one of: morning, afternoon", ErrInvalidInput)
	}
	if req.TimeSlotStart == "" {
		return fmt.Errorf("%w: timeSlotStart is required", ErrInvalidInput)
	}
	return nil
}
