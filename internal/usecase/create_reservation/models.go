package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	PatientName   string
	Phone         string
	ServiceCode   string
	PreferredDate time.Time        // дата приема (без времени)
	TimeSlotStart types.TimeString // время начала слота, например "14:00"
	AdminNotes    *string
}

// Response модель ответа с созданной записью
type Response struct {
	ID                       int64
	PatientName              string
	Phone                    string
	ServiceID                int64
	ServiceCode              string
	ServiceName              string
	PreferredDate            time.Time
	Period                   domain.Period
	TimeSlotStart            types.TimeString
	TimeSlotEnd              types.TimeString
	EstimatedDurationMinutes int
	Status                   domain.ReservationStatus
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
