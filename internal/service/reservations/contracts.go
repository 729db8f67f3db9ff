package reservations

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminNotes *string) error
}

// ServiceRepository интерфейс репозитория справочника услуг
type ServiceRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Service, error)
}

// SlotCache инвалидация кеша слотов при смене статуса (опционален, nil = без кеша)
type SlotCache interface {
	InvalidateDate(ctx context.Context, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
