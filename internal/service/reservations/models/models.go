package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

// ListRequest параметры выборки записей на день
type ListRequest struct {
	Date        time.Time
	ServiceCode *string // nil = все услуги
	Period      *string // nil = оба периода
}

// Response модели

// ReservationResponse ответ с данными записи
type ReservationResponse struct {
	ID                       int64   `json:"id"`
	PatientName              string  `json:"patientName"`
	Phone                    string  `json:"phone"`
	ServiceID                int64   `json:"serviceId"`
	PreferredDate            string  `json:"preferredDate"`
	Period                   string  `json:"period"`
	TimeSlotStart            string  `json:"timeSlotStart"`
	TimeSlotEnd              string  `json:"timeSlotEnd"`
	EstimatedDurationMinutes int     `json:"estimatedDurationMinutes"`
	Status                   string  `json:"status"`
	AdminNotes               *string `json:"adminNotes,omitempty"`
	StatusChangedAt          *string `json:"statusChangedAt,omitempty"`
	CreatedAt                string  `json:"createdAt"`
	UpdatedAt                string  `json:"updatedAt"`
}

// ReservationListResponse ответ со списком записей
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                       r.ID,
		PatientName:              r.PatientName,
		Phone:                    r.Phone,
		ServiceID:                r.ServiceID,
		PreferredDate:            r.PreferredDate.Format(domain.DateFormat),
		Period:                   string(r.Period),
		TimeSlotStart:            r.TimeSlotStart.String(),
		TimeSlotEnd:              r.TimeSlotEnd.String(),
		EstimatedDurationMinutes: r.EstimatedDurationMinutes,
		Status:                   string(r.Status),
		AdminNotes:               r.AdminNotes,
		CreatedAt:                r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:                r.UpdatedAt.Format(time.RFC3339),
	}
	if r.StatusChangedAt != nil {
		changed := r.StatusChangedAt.Format(time.RFC3339)
		resp.StatusChangedAt = &changed
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		if resResp := FromDomainReservation(r); resResp != nil {
			resp.Reservations = append(resp.Reservations, *resResp)
		}
	}

	return resp
}
