package limits

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// LimitRepository интерфейс репозитория дневных лимитов
type LimitRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) (*domain.ServiceReservationLimit, error)
	List(ctx context.Context) ([]*domain.ServiceReservationLimit, error)
	Upsert(ctx context.Context, l *domain.ServiceReservationLimit) (*domain.ServiceReservationLimit, error)
}

// ServiceRepository интерфейс репозитория справочника услуг
type ServiceRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
