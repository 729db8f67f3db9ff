package get_time_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	Date        time.Time // дата (без времени)
	ServiceCode string    // стабильный код услуги
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time `json:"date"`
	ServiceCode string    `json:"serviceCode"`
	ServiceName string    `json:"serviceName"`
	Slots       []Slot    `json:"slots"`
}

// Slot временной слот с рассчитанной доступностью
type Slot struct {
	Time            types.TimeString  `json:"time"`
	Period          domain.Period     `json:"period"`
	Available       bool              `json:"available"`
	CurrentBookings int               `json:"currentBookings"`
	MaxCapacity     int               `json:"maxCapacity"`
	Remaining       int               `json:"remaining"`
	Status          domain.SlotStatus `json:"status"`
	IsManualClosed  bool              `json:"isManualClosed"`
	ClosureReason   *string           `json:"closureReason,omitempty"`
}

// Params настройки генератора слотов
type Params struct {
	// LimitedThresholdPercent процент остатка, ниже которого слот помечается "limited"
	LimitedThresholdPercent int
	// LimitedAbsoluteSpots абсолютный остаток, ниже или равный которому слот помечается "limited"
	LimitedAbsoluteSpots int
}

// withDefaults возвращает параметры с заполненными значениями по умолчанию
func (p Params) withDefaults() Params {
	if p.LimitedThresholdPercent <= 0 {
		p.LimitedThresholdPercent = domain.DefaultLimitedThresholdPercent
	}
	if p.LimitedAbsoluteSpots <= 0 {
		p.LimitedAbsoluteSpots = domain.DefaultLimitedAbsoluteSpots
	}
	return p
}
