package get_time_slots

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// buildSlots строит список слотов по действующим правилам дня
// Правила обрабатываются в порядке периодов, кандидаты — по шагу slot_interval_minutes.
// Кандидат, не помещающийся целиком в окно периода (с учетом процедура+буфер), отбрасывается
func buildSlots(
	rules []*domain.OperatingSlotRule,
	svc *domain.Service,
	reservations []*domain.Reservation,
	closures []*domain.ManualClosure,
	params Params,
) ([]Slot, error) {
	params = params.withDefaults()
	slots := make([]Slot, 0)

	for _, rule := range rules {
		ruleSlots, err := buildSlotsForRule(rule, svc, reservations, closures, params)
		if err != nil {
			return nil, err
		}
		slots = append(slots, ruleSlots...)
	}

	return slots, nil
}

func buildSlotsForRule(
	rule *domain.OperatingSlotRule,
	svc *domain.Service,
	reservations []*domain.Reservation,
	closures []*domain.ManualClosure,
	params Params,
) ([]Slot, error) {
	totalMinutes := svc.TotalMinutes()
	slots := make([]Slot, 0)

	current := rule.StartTime
	for current.IsBefore(rule.EndTime) {
		slotEnd, err := current.AddMinutes(totalMinutes)
		if err != nil {
			// Услуга не помещается до конца суток
			break
		}

		// Процедура должна целиком помещаться в окно периода
		if slotEnd.IsAfter(rule.EndTime) {
			break
		}

		slots = append(slots, makeSlot(rule, svc, current, slotEnd, reservations, closures, params))

		current, err = current.AddMinutes(rule.SlotIntervalMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

func makeSlot(
	rule *domain.OperatingSlotRule,
	svc *domain.Service,
	start, end types.TimeString,
	reservations []*domain.Reservation,
	closures []*domain.ManualClosure,
	params Params,
) Slot {
	current := countOverlappingReservations(reservations, start, end)

	remaining := rule.MaxConcurrent - current
	if remaining < 0 {
		remaining = 0
	}

	closed, closureReason := matchClosure(closures, rule.Period, start, end, svc.ID)

	return Slot{
		Time:            start,
		Period:          rule.Period,
		Available:       remaining > 0 && !closed,
		CurrentBookings: current,
		MaxCapacity:     rule.MaxConcurrent,
		Remaining:       remaining,
		Status:          domain.BucketStatus(remaining, rule.MaxConcurrent, params.LimitedThresholdPercent, params.LimitedAbsoluteSpots),
		IsManualClosed:  closed,
		ClosureReason:   closureReason,
	}
}

// countOverlappingReservations подсчитывает записи, пересекающиеся со слотом [start, end)
// Интервалы полуоткрытые: граничащие записи (конец одной = начало слота) не пересекаются.
// Учитываются только записи, занимающие вместимость (pending/confirmed) — фильтр выборки
// дублируется здесь защитой CountsTowardCapacity
func countOverlappingReservations(reservations []*domain.Reservation, start, end types.TimeString) int {
	count := 0
	for _, res := range reservations {
		if !res.CountsTowardCapacity() {
			continue
		}
		if res.Overlaps(start, end) {
			count++
		}
	}
	return count
}

// matchClosure ищет активное закрытие, накрывающее слот
// Закрытие всегда побеждает числовую доступность: слот с остатком мест,
// но с активным закрытием недоступен
func matchClosure(closures []*domain.ManualClosure, period domain.Period, start, end types.TimeString, serviceID int64) (bool, *string) {
	for _, c := range closures {
		if c.AppliesTo(period, start, end, serviceID) {
			reason := c.Reason
			return true, &reason
		}
	}
	return false, nil
}
