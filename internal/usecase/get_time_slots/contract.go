package get_time_slots

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
	ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
}

// ClosureRepository интерфейс репозитория ручных закрытий
type ClosureRepository interface {
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.ManualClosure, error)
}

// SlotCache короткоживущий кеш выдачи слотов (опционален, nil = без кеша)
type SlotCache interface {
	Get(ctx context.Context, date, serviceCode string, dest interface{}) error
	Set(ctx context.Context, date, serviceCode string, payload interface{}) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
