package check_availability

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
	CountCountableByDateAndService(ctx context.Context, date time.Time, serviceID int64) (int, error)
}

// LimitRepository интерфейс репозитория дневных лимитов (чтение без блокировки)
type LimitRepository interface {
	GetByServiceID(ctx context.Context, serviceID int64) (*domain.ServiceReservationLimit, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
