package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestReservation_CountsTowardCapacity(t *testing.T) {
	countable := map[ReservationStatus]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCompleted: false,
		StatusCancelled: false,
		StatusNoShow:    false,
		StatusRejected:  false,
	}

	for status, want := range countable {
		r := &Reservation{Status: status}
		assert.Equal(t, want, r.CountsTowardCapacity(), "status %s", status)
	}
}

func TestReservation_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusNoShow, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusConfirmed, StatusRejected, false},
		{StatusConfirmed, StatusPending, false},
		// Конечные статусы неизменяемы
		{StatusCompleted, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusNoShow, StatusCancelled, false},
		{StatusRejected, StatusPending, false},
	}

	for _, tt := range tests {
		r := &Reservation{Status: tt.from}
		assert.Equal(t, tt.allowed, r.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestReservation_Overlaps(t *testing.T) {
	r := &Reservation{
		TimeSlotStart: types.TimeString("10:00"),
		TimeSlotEnd:   types.TimeString("10:50"),
	}

	// Пересечение внутри интервала
	assert.True(t, r.Overlaps("10:30", "11:20"))
	assert.True(t, r.Overlaps("09:30", "10:20"))
	assert.True(t, r.Overlaps("10:00", "10:50"))
	assert.True(t, r.Overlaps("09:00", "12:00"))

	// Полуоткрытые интервалы: граничащие не пересекаются
	assert.False(t, r.Overlaps("10:50", "11:40"))
	assert.False(t, r.Overlaps("09:10", "10:00"))

	assert.False(t, r.Overlaps("11:00", "11:50"))
}

func TestReservation_IsTerminal(t *testing.T) {
	for _, status := range TerminalStatuses {
		r := &Reservation{Status: status}
		assert.True(t, r.IsTerminal(), "status %s", status)
	}
	for _, status := range CountableStatuses {
		r := &Reservation{Status: status}
		assert.False(t, r.IsTerminal(), "status %s", status)
	}
}
