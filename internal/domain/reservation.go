package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus статус записи на прием
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
	StatusRejected  ReservationStatus = "rejected"
)

// Reservation запись пациента на прием
// Записи никогда не удаляются физически: отмена — это смена статуса, а не удаление строки
type Reservation struct {
	ID            int64
	PatientName   string
	Phone         string
	ServiceID     int64
	PreferredDate time.Time // дата приема (без времени)
	Period        Period

	// Интервал занятости слота [TimeSlotStart, TimeSlotEnd)
	// Инвариант: TimeSlotEnd = TimeSlotStart + durationMinutes + bufferMinutes услуги
	TimeSlotStart types.TimeString
	TimeSlotEnd   types.TimeString

	EstimatedDurationMinutes int
	Status                   ReservationStatus
	AdminNotes               *string
	StatusChangedAt          *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// CountsTowardCapacity возвращает true, если запись занимает вместимость
// Только pending и confirmed учитываются в подсчете занятости слотов и дневного лимита
func (r *Reservation) CountsTowardCapacity() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal возвращает true, если статус конечный и переходы из него запрещены
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCompleted ||
		r.Status == StatusCancelled ||
		r.Status == StatusNoShow ||
		r.Status == StatusRejected
}

// CanTransitionTo проверяет допустимость перехода статуса
// pending → confirmed | cancelled | rejected
// confirmed → completed | cancelled | no_show
// Конечные статусы неизменяемы
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	switch r.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled || next == StatusRejected
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled || next == StatusNoShow
	default:
		return false
	}
}

// Overlaps проверяет пересечение интервала записи с полуоткрытым интервалом [start, end)
// Пересечение строгое: граничащие интервалы (конец одного = начало другого) не пересекаются
func (r *Reservation) Overlaps(start, end types.TimeString) bool {
	return r.TimeSlotStart.IsBefore(end) && start.IsBefore(r.TimeSlotEnd)
}

// ReservationsFilter фильтр для выборки записей
type ReservationsFilter struct {
	ServiceID     *int64             // nil = все услуги
	Date          *time.Time         // конкретная дата
	Period        *Period            // nil = оба периода
	Status        *ReservationStatus // nil = без фильтра по статусу
	OnlyCountable bool               // только pending/confirmed (занимающие вместимость)
}
