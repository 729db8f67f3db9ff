package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Period именованная часть операционного дня со своими часами и правилом вместимости
type Period string

const (
	PeriodMorning   Period = "morning"
	PeriodAfternoon Period = "afternoon"
)

// Periods порядок периодов в течение дня
var Periods = []Period{PeriodMorning, PeriodAfternoon}

// IsValid проверяет, что период один из известных
func (p Period) IsValid() bool {
	return p == PeriodMorning || p == PeriodAfternoon
}

// DayOfWeek день недели, 0 = понедельник ... 6 = воскресенье
type DayOfWeek int

const (
	Monday DayOfWeek = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// DayOfWeekFromDate возвращает день недели для даты
func DayOfWeekFromDate(date time.Time) DayOfWeek {
	// time.Weekday начинает неделю с воскресенья, переводим к понедельнику
	return DayOfWeek((int(date.Weekday()) + 6) % 7)
}

// OperatingSlotRule правило операционных часов клиники
// Для комбинации (день, период, услуга) действует не больше одного правила:
// правило с конкретной услугой (ServiceID != nil) имеет приоритет над общим (ServiceID == nil)
type OperatingSlotRule struct {
	ID                  int64
	DayOfWeek           DayOfWeek
	Period              Period
	StartTime           types.TimeString // локальное время клиники, без таймзоны
	EndTime             types.TimeString
	SlotIntervalMinutes int    // шаг генерации кандидатов
	MaxConcurrent       int    // потолок одновременных записей на один слот
	ServiceID           *int64 // nil = правило для всех услуг
	IsActive            bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsServiceSpecific возвращает true, если правило задано для конкретной услуги
func (r *OperatingSlotRule) IsServiceSpecific() bool {
	return r.ServiceID != nil
}
