package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayOfWeekFromDate(t *testing.T) {
	// 2026-08-31 — понедельник
	assert.Equal(t, Monday, DayOfWeekFromDate(time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)))
	// 2026-09-02 — среда
	assert.Equal(t, Wednesday, DayOfWeekFromDate(time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)))
	// 2026-09-06 — воскресенье
	assert.Equal(t, Sunday, DayOfWeekFromDate(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)))
}

func TestBucketStatus(t *testing.T) {
	// capacity 3, порог 20%, абсолютный порог 1
	assert.Equal(t, SlotFull, BucketStatus(0, 3, 20, 1))
	assert.Equal(t, SlotLimited, BucketStatus(1, 3, 20, 1))
	assert.Equal(t, SlotAvailable, BucketStatus(2, 3, 20, 1))
	assert.Equal(t, SlotAvailable, BucketStatus(3, 3, 20, 1))

	// capacity 10: 2 из 10 = ровно 20% — limited
	assert.Equal(t, SlotLimited, BucketStatus(2, 10, 20, 1))
	assert.Equal(t, SlotAvailable, BucketStatus(3, 10, 20, 1))
}

func TestPeriod_IsValid(t *testing.T) {
	assert.True(t, PeriodMorning.IsValid())
	assert.True(t, PeriodAfternoon.IsValid())
	assert.False(t, Period("evening").IsValid())
	assert.False(t, Period("").IsValid())
}
