package check_availability

import (
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

// AvailabilityResponse HTTP response model консультативной проверки доступности
type AvailabilityResponse struct {
	Available    bool   `json:"available"`
	Remaining    int    `json:"remaining"`
	CurrentCount int    `json:"currentCount"`
	Limit        int    `json:"limit"`
	Level        string `json:"level"`
	Message      string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Available:    resp.Available,
		Remaining:    resp.Remaining,
		CurrentCount: resp.CurrentCount,
		Limit:        resp.Limit,
		Level:        resp.Level,
	}

	switch {
	case !resp.Configured:
		out.Level = checkAvailability.LevelFull
		out.Message = msgNotConfigured
	case resp.Level == checkAvailability.LevelFull:
		out.Message = msgDayFull
	case resp.Level == checkAvailability.LevelLimited:
		out.Message = msgDayLimited
	default:
		out.Message = msgDayAvailable
	}

	return out
}
