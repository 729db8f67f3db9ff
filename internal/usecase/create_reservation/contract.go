package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// ServiceRepository интерфейс репозитория справочника услуг
type ServiceRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория правил операционных часов
type ScheduleRepository interface {
	GetEffectiveRulesForDay(ctx context.Context, day domain.DayOfWeek, serviceID int64) ([]*domain.OperatingSlotRule, error)
}

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	CountCountableByDateAndService(ctx context.Context, date time.Time, serviceID int64) (int, error)
}

// LimitRepository интерфейс репозитория дневных лимитов
type LimitRepository interface {
	GetByServiceIDForUpdate(ctx context.Context, serviceID int64) (*domain.ServiceReservationLimit, error)
}

// ClosureRepository интерфейс репозитория ручных закрытий
type ClosureRepository interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.ManualClosure, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotCache инвалидация кеша слотов после успешного создания (опционален, nil = без кеша)
type SlotCache interface {
	InvalidateService(ctx context.Context, date, serviceCode string) error
}

// AdmissionMetrics счетчик решений о допуске (опционален, nil = без метрик)
type AdmissionMetrics interface {
	IncAdmission(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
