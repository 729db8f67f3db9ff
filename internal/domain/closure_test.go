package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestManualClosure_AppliesTo_PointClosure(t *testing.T) {
	// Закрытие без конца действует ровно на слот с совпадающим началом
	c := &ManualClosure{
		Period:        PeriodMorning,
		TimeSlotStart: types.TimeString("10:00"),
		IsActive:      true,
	}

	assert.True(t, c.AppliesTo(PeriodMorning, "10:00", "10:50", 1))
	assert.False(t, c.AppliesTo(PeriodMorning, "10:30", "11:20", 1))
	assert.False(t, c.AppliesTo(PeriodAfternoon, "10:00", "10:50", 1))
}

func TestManualClosure_AppliesTo_RangeClosure(t *testing.T) {
	c := &ManualClosure{
		Period:        PeriodMorning,
		TimeSlotStart: types.TimeString("10:00"),
		TimeSlotEnd:   ptr.Ptr(types.TimeString("11:00")),
		IsActive:      true,
	}

	assert.True(t, c.AppliesTo(PeriodMorning, "10:30", "11:20", 1))
	assert.True(t, c.AppliesTo(PeriodMorning, "09:30", "10:20", 1))
	// Граничащий слот не накрывается
	assert.False(t, c.AppliesTo(PeriodMorning, "11:00", "11:50", 1))
	assert.False(t, c.AppliesTo(PeriodMorning, "09:00", "10:00", 1))
}

func TestManualClosure_AppliesTo_ServiceScope(t *testing.T) {
	c := &ManualClosure{
		Period:        PeriodMorning,
		TimeSlotStart: types.TimeString("10:00"),
		ServiceID:     ptr.Ptr(int64(7)),
		IsActive:      true,
	}

	assert.True(t, c.AppliesTo(PeriodMorning, "10:00", "10:50", 7))
	assert.False(t, c.AppliesTo(PeriodMorning, "10:00", "10:50", 8))

	// nil ServiceID закрывает слот для всех услуг
	c.ServiceID = nil
	assert.True(t, c.AppliesTo(PeriodMorning, "10:00", "10:50", 7))
	assert.True(t, c.AppliesTo(PeriodMorning, "10:00", "10:50", 8))
}

func TestManualClosure_AppliesTo_Inactive(t *testing.T) {
	c := &ManualClosure{
		Period:        PeriodMorning,
		TimeSlotStart: types.TimeString("10:00"),
		IsActive:      false,
	}

	assert.False(t, c.AppliesTo(PeriodMorning, "10:00", "10:50", 1))
}
