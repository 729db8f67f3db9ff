package update_service_limit

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/limits/models"
)

type LimitService interface {
	Upsert(ctx context.Context, serviceCode string, req *models.UpsertLimitRequest) (*models.LimitResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
