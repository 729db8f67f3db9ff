package get_time_slots

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getTimeSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_time_slots"
)

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	Date        string         `json:"date"`
	ServiceCode string         `json:"serviceCode"`
	ServiceName string         `json:"serviceName"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse слот с рассчитанной доступностью
type SlotResponse struct {
	Time            string  `json:"time"`
	Period          string  `json:"period"`
	Available       bool    `json:"available"`
	CurrentBookings int     `json:"currentBookings"`
	MaxCapacity     int     `json:"maxCapacity"`
	Remaining       int     `json:"remaining"`
	Status          string  `json:"status"`
	IsManualClosed  bool    `json:"isManualClosed"`
	ClosureReason   *string `json:"closureReason,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeSlots.Response) *TimeSlotsResponse {
	out := &TimeSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		ServiceCode: resp.ServiceCode,
		ServiceName: resp.ServiceName,
		Slots:       make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, s := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Time:            s.Time.String(),
			Period:          string(s.Period),
			Available:       s.Available,
			CurrentBookings: s.CurrentBookings,
			MaxCapacity:     s.MaxCapacity,
			Remaining:       s.Remaining,
			Status:          string(s.Status),
			IsManualClosed:  s.IsManualClosed,
			ClosureReason:   s.ClosureReason,
		})
	}

	return out
}
