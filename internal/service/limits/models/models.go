package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// UpsertLimitRequest запрос на создание или обновление дневного лимита услуги
type UpsertLimitRequest struct {
	DailyLimit int     `json:"dailyLimit"`
	IsActive   *bool   `json:"isActive,omitempty"` // nil = true
	Reason     *string `json:"reason,omitempty"`
	UpdatedBy  string  `json:"-"`
}

// Response модели

// LimitResponse ответ с данными дневного лимита
type LimitResponse struct {
	ID            int64   `json:"id"`
	ServiceID     int64   `json:"serviceId"`
	DailyLimit    int     `json:"dailyLimit"`
	SoftThreshold int     `json:"softThreshold"`
	IsActive      bool    `json:"isActive"`
	Reason        *string `json:"reason,omitempty"`
	UpdatedBy     *string `json:"updatedBy,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// LimitListResponse ответ со списком лимитов
type LimitListResponse struct {
	Limits []LimitResponse `json:"limits"`
}

// Методы конвертации

// FromDomainLimit конвертирует domain модель в DTO
func FromDomainLimit(l *domain.ServiceReservationLimit) *LimitResponse {
	if l == nil {
		return nil
	}

	return &LimitResponse{
		ID:            l.ID,
		ServiceID:     l.ServiceID,
		DailyLimit:    l.DailyLimit,
		SoftThreshold: l.SoftThreshold(),
		IsActive:      l.IsActive,
		Reason:        l.Reason,
		UpdatedBy:     l.UpdatedBy,
		CreatedAt:     l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     l.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainLimitList конвертирует список domain моделей в DTO
func FromDomainLimitList(limits []*domain.ServiceReservationLimit) *LimitListResponse {
	resp := &LimitListResponse{
		Limits: make([]LimitResponse, 0, len(limits)),
	}

	for _, l := range limits {
		if limitResp := FromDomainLimit(l); limitResp != nil {
			resp.Limits = append(resp.Limits, *limitResp)
		}
	}

	return resp
}

// ToDomainLimit конвертирует UpsertLimitRequest в domain модель
func (r *UpsertLimitRequest) ToDomainLimit(serviceID int64) *domain.ServiceReservationLimit {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	updatedBy := r.UpdatedBy

	return &domain.ServiceReservationLimit{
		ServiceID:  serviceID,
		DailyLimit: r.DailyLimit,
		IsActive:   isActive,
		Reason:     r.Reason,
		UpdatedBy:  &updatedBy,
	}
}
