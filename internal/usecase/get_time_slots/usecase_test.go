package get_time_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/schedule"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeServiceRepo struct {
	services map[string]*domain.Service
}

func (f *fakeServiceRepo) GetByCode(_ context.Context, code string) (*domain.Service, error) {
	svc, ok := f.services[code]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeScheduleRepo struct {
	rules []*domain.OperatingSlotRule
}

func (f *fakeScheduleRepo) GetEffectiveRulesForDay(_ context.Context, _ domain.DayOfWeek, _ int64) ([]*domain.OperatingSlotRule, error) {
	if len(f.rules) == 0 {
		return nil, scheduleRepo.ErrRuleNotFound
	}
	return f.rules, nil
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListWithFilter(_ context.Context, _ domain.ReservationsFilter) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeClosureRepo struct {
	closures []*domain.ManualClosure
}

func (f *fakeClosureRepo) ListActiveByDate(_ context.Context, _ time.Time) ([]*domain.ManualClosure, error) {
	return f.closures, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2026-09-02 — среда
var wednesday = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func newTestUseCase(svc *domain.Service, rules []*domain.OperatingSlotRule, reservations []*domain.Reservation, closures []*domain.ManualClosure) *UseCase {
	return NewUseCase(
		&fakeServiceRepo{services: map[string]*domain.Service{svc.Code: svc}},
		&fakeScheduleRepo{rules: rules},
		&fakeReservationRepo{reservations: reservations},
		&fakeClosureRepo{closures: closures},
		nil,
		Params{},
		nopLogger{},
	)
}

func morningRule(maxConcurrent int) *domain.OperatingSlotRule {
	return &domain.OperatingSlotRule{
		ID:                  1,
		DayOfWeek:           domain.Wednesday,
		Period:              domain.PeriodMorning,
		StartTime:           types.TimeString("08:30"),
		EndTime:             types.TimeString("12:00"),
		SlotIntervalMinutes: 30,
		MaxConcurrent:       maxConcurrent,
		IsActive:            true,
	}
}

func TestExecute_GeneratesCandidatesWithinWindow(t *testing.T) {
	svc := &domain.Service{ID: 1, Code: "CLEANING", Name: "Чистка", DurationMinutes: 25, BufferMinutes: 5, IsActive: true}
	uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "CLEANING"})
	require.NoError(t, err)

	// Окно 08:30–12:00 с шагом 30 и процедурой 25+5 дает 7 кандидатов: 08:30 … 11:30
	require.Len(t, resp.Slots, 7)
	assert.Equal(t, types.TimeString("08:30"), resp.Slots[0].Time)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[6].Time)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, 3, slot.Remaining)
		assert.Equal(t, domain.SlotAvailable, slot.Status)
	}
}

func TestExecute_ServiceMustFitEntirely(t *testing.T) {
	// Процедура 40+10: кандидат допустим только если start+50 <= 12:00
	svc := &domain.Service{ID: 1, Code: "VOLUME_LIFTING", Name: "Ламинирование", DurationMinutes: 40, BufferMinutes: 10, IsActive: true}
	uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "VOLUME_LIFTING"})
	require.NoError(t, err)

	// Последний помещающийся кандидат — 11:00 (11:00 + 50 мин = 11:50)
	require.Len(t, resp.Slots, 6)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[5].Time)
}

func TestExecute_OverlappingReservationsFillSlot(t *testing.T) {
	svc := &domain.Service{ID: 1, Code: "CLEANING", Name: "Чистка", DurationMinutes: 25, BufferMinutes: 5, IsActive: true}

	// Три pending записи, пересекающие кандидата 09:00
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: 1, Status: domain.StatusPending, TimeSlotStart: "09:00", TimeSlotEnd: "09:30"},
		{ID: 2, ServiceID: 1, Status: domain.StatusPending, TimeSlotStart: "09:00", TimeSlotEnd: "09:30"},
		{ID: 3, ServiceID: 1, Status: domain.StatusPending, TimeSlotStart: "09:00", TimeSlotEnd: "09:30"},
	}

	uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, reservations, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "CLEANING"})
	require.NoError(t, err)

	bySlot := make(map[types.TimeString]Slot)
	for _, s := range resp.Slots {
		bySlot[s.Time] = s
	}

	full := bySlot["09:00"]
	assert.False(t, full.Available)
	assert.Equal(t, 0, full.Remaining)
	assert.Equal(t, domain.SlotFull, full.Status)

	// Граничащий слот 08:30–09:00 не пересекается (полуоткрытые интервалы)
	prev := bySlot["08:30"]
	assert.True(t, prev.Available)
	assert.Equal(t, 3, prev.Remaining)
}

func TestExecute_CancelledReservationsDoNotCount(t *testing.T) {
	svc := &domain.Service{ID: 1, Code: "CLEANING", Name: "Чистка", DurationMinutes: 25, BufferMinutes: 5, IsActive: true}

	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: 1, Status: domain.StatusCancelled, TimeSlotStart: "09:00", TimeSlotEnd: "09:30"},
		{ID: 2, ServiceID: 1, Status: domain.StatusRejected, TimeSlotStart: "09:00", TimeSlotEnd: "09:30"},
	}

	uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, reservations, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "CLEANING"})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.Equal(t, 0, s.CurrentBookings, "slot %s", s.Time)
	}
}

func TestExecute_ClosureWinsOverCapacity(t *testing.T) {
	svc := &domain.Service{ID: 1, Code: "CLEANING", Name: "Чистка", DurationMinutes: 25, BufferMinutes: 5, IsActive: true}

	closures := []*domain.ManualClosure{
		{
			ID:            1,
			ClosureDate:   wednesday,
			Period:        domain.PeriodMorning,
			TimeSlotStart: types.TimeString("10:00"),
			Reason:        "стерилизация кабинета",
			IsActive:      true,
		},
	}

	uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, nil, closures)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "CLEANING"})
	require.NoError(t, err)

	bySlot := make(map[types.TimeString]Slot)
	for _, s := range resp.Slots {
		bySlot[s.Time] = s
	}

	closed := bySlot["10:00"]
	assert.False(t, closed.Available)
	assert.True(t, closed.IsManualClosed)
	require.NotNil(t, closed.ClosureReason)
	assert.Equal(t, "стерилизация кабинета", *closed.ClosureReason)
	// Закрытие не трогает числовую вместимость
	assert.Equal(t, 3, closed.Remaining)

	assert.True(t, bySlot["10:30"].Available)
}

func TestExecute_Errors(t *testing.T) {
	svc := &domain.Service{ID: 1, Code: "CLEANING", Name: "Чистка", DurationMinutes: 25, BufferMinutes: 5, IsActive: true}

	t.Run("unknown service", func(t *testing.T) {
		uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, nil, nil)
		_, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "NOPE"})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("inactive service", func(t *testing.T) {
		inactive := &domain.Service{ID: 2, Code: "OLD", DurationMinutes: 30, IsActive: false}
		uc := newTestUseCase(inactive, []*domain.OperatingSlotRule{morningRule(3)}, nil, nil)
		_, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "OLD"})
		assert.ErrorIs(t, err, ErrServiceInactive)
	})

	t.Run("no operating hours", func(t *testing.T) {
		uc := newTestUseCase(svc, nil, nil, nil)
		_, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "CLEANING"})
		assert.ErrorIs(t, err, ErrNoOperatingHours)
	})

	t.Run("missing date", func(t *testing.T) {
		uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, nil, nil)
		_, err := uc.Execute(context.Background(), &Request{ServiceCode: "CLEANING"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_ServiceSpecificReservationsOnly(t *testing.T) {
	// Пересечения считаются в рамках одной услуги: фильтр выборки отсекает чужие,
	// а защита CountsTowardCapacity — неактивные статусы
	svc := &domain.Service{ID: 1, Code: "CLEANING", Name: "Чистка", DurationMinutes: 25, BufferMinutes: 5, IsActive: true}

	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: 1, Status: domain.StatusConfirmed, TimeSlotStart: "09:00", TimeSlotEnd: "09:30"},
		{ID: 2, ServiceID: 1, Status: domain.StatusPending, TimeSlotStart: "09:10", TimeSlotEnd: "09:40"},
	}

	uc := newTestUseCase(svc, []*domain.OperatingSlotRule{morningRule(3)}, reservations, nil)

	resp, err := uc.Execute(context.Background(), &Request{Date: wednesday, ServiceCode: "CLEANING"})
	require.NoError(t, err)

	bySlot := make(map[types.TimeString]Slot)
	for _, s := range resp.Slots {
		bySlot[s.Time] = s
	}

	// Обе записи пересекают кандидата 09:00–09:30
	assert.Equal(t, 2, bySlot["09:00"].CurrentBookings)
	assert.Equal(t, 1, bySlot["09:00"].Remaining)
	assert.Equal(t, domain.SlotLimited, bySlot["09:00"].Status)

	// Кандидат 09:30 пересекает только запись 09:10–09:40
	assert.Equal(t, 1, bySlot["09:30"].CurrentBookings)
}
