package closures

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ClosureRepository интерфейс репозитория ручных закрытий
type ClosureRepository interface {
	Create(ctx context.Context, c *domain.ManualClosure) (*domain.ManualClosure, error)
	GetByID(ctx context.Context, id int64) (*domain.ManualClosure, error)
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.ManualClosure, error)
	Deactivate(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория справочника услуг
type ServiceRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotCache инвалидация кеша слотов после изменения закрытий (опционален, nil = без кеша)
type SlotCache interface {
	InvalidateDate(ctx context.Context, date string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
