package check_closure_conflict

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ServiceRepository интерфейс репозитория справочника услуг
type ServiceRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Service, error)
}

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
