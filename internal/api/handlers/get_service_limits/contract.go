package get_service_limits

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/limits/models"
)

type LimitService interface {
	List(ctx context.Context) (*models.LimitListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
