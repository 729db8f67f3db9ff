package check_closure_conflict

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request запрос проверки конфликтов перед закрытием слота
type Request struct {
	Date          time.Time
	Period        string
	TimeSlotStart string
	// TimeSlotEnd опционален: nil означает точечное закрытие одного начала слота
	TimeSlotEnd *string
	// ServiceCode опционален: nil означает проверку по всем услугам, делящим слот
	ServiceCode *string
}

// Conflict запись, попадающая под предполагаемое закрытие
type Conflict struct {
	ReservationID int64            `json:"reservationId"`
	PatientName   string           `json:"patientName"`
	TimeSlotStart types.TimeString `json:"timeSlotStart"`
	TimeSlotEnd   types.TimeString `json:"timeSlotEnd"`
	Status        string           `json:"status"`
}

// Response отчет проверки конфликтов
// Конфликты информационные: закрытие не блокируется, решение остается за персоналом
type Response struct {
	HasConflict   bool       `json:"hasConflict"`
	ConflictCount int        `json:"conflictCount"`
	Conflicts     []Conflict `json:"conflicts"`
}
