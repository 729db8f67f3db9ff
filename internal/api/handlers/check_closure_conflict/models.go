package check_closure_conflict

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkClosureConflict "github.com/m04kA/SMC-ReservationService/internal/usecase/check_closure_conflict"
)

// CheckConflictRequest HTTP request model
type CheckConflictRequest struct {
	Date          string  `json:"date"` // "2026-09-02"
	Period        string  `json:"period"`
	TimeSlotStart string  `json:"timeSlotStart"`
	TimeSlotEnd   *string `json:"timeSlotEnd,omitempty"`
	ServiceCode   *string `json:"serviceCode,omitempty"`
}

// ConflictResponse запись, попадающая под предполагаемое закрытие
type ConflictResponse struct {
	ReservationID int64  `json:"reservationId"`
	PatientName   string `json:"patientName"`
	TimeSlotStart string `json:"timeSlotStart"`
	TimeSlotEnd   string `json:"timeSlotEnd"`
	Status        string `json:"status"`
}

// CheckConflictResponse HTTP response model
type CheckConflictResponse struct {
	HasConflict    bool               `json:"hasConflict"`
	ConflictCount  int                `json:"conflictCount"`
	Conflicts      []ConflictResponse `json:"conflicts"`
	Recommendation string             `json:"recommendation"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckConflictRequest) ToUseCaseRequest() (*checkClosureConflict.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &checkClosureConflict.Request{
		Date:          date,
		Period:        r.Period,
		TimeSlotStart: r.TimeSlotStart,
		TimeSlotEnd:   r.TimeSlotEnd,
		ServiceCode:   r.ServiceCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkClosureConflict.Response) *CheckConflictResponse {
	out := &CheckConflictResponse{
		HasConflict:   resp.HasConflict,
		ConflictCount: resp.ConflictCount,
		Conflicts:     make([]ConflictResponse, 0, len(resp.Conflicts)),
	}

	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictResponse{
			ReservationID: c.ReservationID,
			PatientName:   c.PatientName,
			TimeSlotStart: c.TimeSlotStart.String(),
			TimeSlotEnd:   c.TimeSlotEnd.String(),
			Status:        c.Status,
		})
	}

	if resp.HasConflict {
		out.Recommendation = msgRecommendContact
	} else {
		out.Recommendation = msgRecommendSafe
	}

	return out
}
