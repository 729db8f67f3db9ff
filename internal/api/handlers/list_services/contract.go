package list_services

import (
	"context"

	listServices "github.com/m04kA/SMC-ReservationService/internal/usecase/list_services"
)

type ListServicesUseCase interface {
	Execute(ctx context.Context) (*listServices.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
