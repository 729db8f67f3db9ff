package list_closures

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/service/closures/models"
)

type ClosureService interface {
	ListByDate(ctx context.Context, date time.Time) (*models.ClosureListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
