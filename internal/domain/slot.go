package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// SlotStatus статус временного слота для выдачи доступности
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotLimited   SlotStatus = "limited"
	SlotFull      SlotStatus = "full"
)

// TimeSlot временной слот с рассчитанной доступностью
type TimeSlot struct {
	Time            types.TimeString
	Period          Period
	Available       bool
	CurrentBookings int
	MaxCapacity     int
	Remaining       int
	Status          SlotStatus
	IsManualClosed  bool
	ClosureReason   *string
}

// IsFull возвращает true, если свободных мест не осталось
func (s *TimeSlot) IsFull() bool {
	return s.Remaining <= 0
}

// BucketStatus вычисляет статус слота по остатку мест
// full — мест нет; limited — остаток ≤ thresholdPercent% вместимости или ≤ absoluteSpots;
// иначе available
func BucketStatus(remaining, capacity, thresholdPercent, absoluteSpots int) SlotStatus {
	if remaining <= 0 {
		return SlotFull
	}
	if remaining*100 <= capacity*thresholdPercent || remaining <= absoluteSpots {
		return SlotLimited
	}
	return SlotAvailable
}
