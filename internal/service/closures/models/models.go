package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модели

// CreateClosureRequest запрос на закрытие слота
type CreateClosureRequest struct {
	ClosureDate   time.Time `json:"-"`
	Period        string    `json:"period"`
	TimeSlotStart string    `json:"timeSlotStart"`
	TimeSlotEnd   *string   `json:"timeSlotEnd,omitempty"` // nil = закрыт один слот
	ServiceCode   *string   `json:"serviceCode,omitempty"` // nil = слот закрыт для всех услуг
	Reason        string    `json:"reason"`
	CreatedBy     string    `json:"-"`
}

// Response модели

// ClosureResponse ответ с данными закрытия
type ClosureResponse struct {
	ID            int64   `json:"id"`
	ClosureDate   string  `json:"closureDate"`
	Period        string  `json:"period"`
	TimeSlotStart string  `json:"timeSlotStart"`
	TimeSlotEnd   *string `json:"timeSlotEnd,omitempty"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	ServiceCode   *string `json:"serviceCode,omitempty"`
	Reason        string  `json:"reason"`
	CreatedBy     string  `json:"createdBy"`
	IsActive      bool    `json:"isActive"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ClosureListResponse ответ со списком закрытий
type ClosureListResponse struct {
	Closures []ClosureResponse `json:"closures"`
}

// Методы конвертации

// FromDomainClosure конвертирует domain модель в DTO
func FromDomainClosure(c *domain.ManualClosure) *ClosureResponse {
	if c == nil {
		return nil
	}

	resp := &ClosureResponse{
		ID:            c.ID,
		ClosureDate:   c.ClosureDate.Format(domain.DateFormat),
		Period:        string(c.Period),
		TimeSlotStart: c.TimeSlotStart.String(),
		ServiceID:     c.ServiceID,
		Reason:        c.Reason,
		CreatedBy:     c.CreatedBy,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     c.UpdatedAt.Format(time.RFC3339),
	}
	if c.TimeSlotEnd != nil {
		end := c.TimeSlotEnd.String()
		resp.TimeSlotEnd = &end
	}

	return resp
}

// FromDomainClosureList конвертирует список domain моделей в DTO
func FromDomainClosureList(closures []*domain.ManualClosure) *ClosureListResponse {
	resp := &ClosureListResponse{
		Closures: make([]ClosureResponse, 0, len(closures)),
	}

	for _, c := range closures {
		if closureResp := FromDomainClosure(c); closureResp != nil {
			resp.Closures = append(resp.Closures, *closureResp)
		}
	}

	return resp
}

// ToDomainClosure конвертирует CreateClosureRequest в domain модель
// Времена должны быть предварительно разобраны сервисом
func ToDomainClosure(r *CreateClosureRequest, start types.TimeString, end *types.TimeString, serviceID *int64) *domain.ManualClosure {
	return &domain.ManualClosure{
		ClosureDate:   r.ClosureDate,
		Period:        domain.Period(r.Period),
		TimeSlotStart: start,
		TimeSlotEnd:   end,
		ServiceID:     serviceID,
		Reason:        r.Reason,
		CreatedBy:     r.CreatedBy,
		IsActive:      true,
	}
}
