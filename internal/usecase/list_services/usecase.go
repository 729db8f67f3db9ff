package list_services

import (
	"context"
	"fmt"
)

// UseCase use case выдачи активного каталога услуг для витрины бронирования
// Каталог ведется административным инструментарием и здесь read-only
type UseCase struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepository ServiceRepository, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo: serviceRepository,
		logger:      logger,
	}
}

// Execute возвращает активные услуги в порядке отображения
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	services, err := uc.serviceRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("ListServices: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	resp := &Response{Services: make([]ServiceInfo, 0, len(services))}
	for _, svc := range services {
		resp.Services = append(resp.Services, ServiceInfo{
			ID:              svc.ID,
			Code:            svc.Code,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			BufferMinutes:   svc.BufferMinutes,
			TotalMinutes:    svc.TotalMinutes(),
			DisplayOrder:    svc.DisplayOrder,
		})
	}

	return resp, nil
}
