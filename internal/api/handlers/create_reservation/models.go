package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	PatientName   string  `json:"patientName"`
	Phone         string  `json:"phone"`
	ServiceCode   string  `json:"serviceCode"`
	PreferredDate string  `json:"preferredDate"` // "2026-09-02"
	TimeSlotStart string  `json:"timeSlotStart"` // "14:00"
	AdminNotes    *string `json:"adminNotes,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID                       int64  `json:"id"`
	PatientName              string `json:"patientName"`
	Phone                    string `json:"phone"`
	ServiceID                int64  `json:"serviceId"`
	ServiceCode              string `json:"serviceCode"`
	ServiceName              string `json:"serviceName"`
	PreferredDate            string `json:"preferredDate"`
	Period                   string `json:"period"`
	TimeSlotStart            string `json:"timeSlotStart"`
	TimeSlotEnd              string `json:"timeSlotEnd"`
	EstimatedDurationMinutes int    `json:"estimatedDurationMinutes"`
	Status                   string `json:"status"`
	CreatedAt                string `json:"createdAt"`
	UpdatedAt                string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	preferredDate, err := time.Parse(domain.DateFormat, r.PreferredDate)
	if err != nil {
		return nil, err
	}

	slotStart, err := types.NewTimeStringFromString(r.TimeSlotStart)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		PatientName:   r.PatientName,
		Phone:         r.Phone,
		ServiceCode:   r.ServiceCode,
		PreferredDate: preferredDate,
		TimeSlotStart: slotStart,
		AdminNotes:    r.AdminNotes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:                       resp.ID,
		PatientName:              resp.PatientName,
		Phone:                    resp.Phone,
		ServiceID:                resp.ServiceID,
		ServiceCode:              resp.ServiceCode,
		ServiceName:              resp.ServiceName,
		PreferredDate:            resp.PreferredDate.Format(domain.DateFormat),
		Period:                   string(resp.Period),
		TimeSlotStart:            resp.TimeSlotStart.String(),
		TimeSlotEnd:              resp.TimeSlotEnd.String(),
		EstimatedDurationMinutes: resp.EstimatedDurationMinutes,
		Status:                   string(resp.Status),
		CreatedAt:                resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                resp.UpdatedAt.Format(time.RFC3339),
	}
}
