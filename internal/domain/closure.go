package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ManualClosure административное закрытие слота
// Закрытие скрывает слот из будущей выдачи доступности и НИКОГДА не затрагивает
// существующие записи: закрытие и отмена — независимые состояния.
// Закрытия не удаляются, только деактивируются (аудиторский след)
type ManualClosure struct {
	ID            int64
	ClosureDate   time.Time
	Period        Period
	TimeSlotStart types.TimeString
	TimeSlotEnd   *types.TimeString // nil = закрыт один слот, иначе диапазон
	ServiceID     *int64            // nil = слот закрыт для всех услуг
	Reason        string
	CreatedBy     string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// AppliesTo проверяет, накрывает ли закрытие слот [slotStart, slotEnd) услуги serviceID
func (c *ManualClosure) AppliesTo(period Period, slotStart, slotEnd types.TimeString, serviceID int64) bool {
	if !c.IsActive || c.Period != period {
		return false
	}
	if c.ServiceID != nil && *c.ServiceID != serviceID {
		return false
	}

	// Закрытие без конца действует ровно на слот с совпадающим началом
	if c.TimeSlotEnd == nil {
		return c.TimeSlotStart == slotStart
	}

	// Диапазонное закрытие: пересечение полуоткрытых интервалов
	return c.TimeSlotStart.IsBefore(slotEnd) && slotStart.IsBefore(*c.TimeSlotEnd)
}
