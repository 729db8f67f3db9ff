package check_closure_conflict

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeServiceRepo struct {
	svc *domain.Service
}

func (f *fakeServiceRepo) GetByCode(_ context.Context, code string) (*domain.Service, error) {
	if f.svc == nil || f.svc.Code != code {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.svc, nil
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	lastFilter   domain.ReservationsFilter
}

func (f *fakeReservationRepo) ListWithFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if filter.ServiceID != nil && r.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.OnlyCountable && !r.CountsTowardCapacity() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var wednesday = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func baseRequest() *Request {
	return &Request{
		Date:          wednesday,
		Period:        "afternoon",
		TimeSlotStart: "14:00",
	}
}

func reservation(id, serviceID int64, name, start, end string, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{
		ID:            id,
		PatientName:   name,
		ServiceID:     serviceID,
		PreferredDate: wednesday,
		Period:        domain.PeriodAfternoon,
		TimeSlotStart: types.TimeString(start),
		TimeSlotEnd:   types.TimeString(end),
		Status:        status,
	}
}

func TestExecute_PointClosureHitsContainingReservations(t *testing.T) {
	repo := &fakeReservationRepo{reservations: []*domain.Reservation{
		// Интервал 14:00–14:50 содержит точку 14:00
		reservation(1, 1, "Анна", "14:00", "14:50", domain.StatusConfirmed),
		// Интервал 13:30–14:20 тоже содержит 14:00
		reservation(2, 1, "Борис", "13:30", "14:20", domain.StatusPending),
		// 14:50–15:40 точку не содержит
		reservation(3, 1, "Вера", "14:50", "15:40", domain.StatusConfirmed),
		// Конец интервала открыт: 13:00–14:00 точку 14:00 не содержит
		reservation(4, 1, "Глеб", "13:00", "14:00", domain.StatusPending),
	}}

	uc := NewUseCase(&fakeServiceRepo{}, repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.True(t, resp.HasConflict)
	assert.Equal(t, 2, resp.ConflictCount)
	require.Len(t, resp.Conflicts, 2)
	assert.Equal(t, int64(1), resp.Conflicts[0].ReservationID)
	assert.Equal(t, "Анна", resp.Conflicts[0].PatientName)
	assert.Equal(t, int64(2), resp.Conflicts[1].ReservationID)
}

func TestExecute_RangeClosureUsesOverlap(t *testing.T) {
	repo := &fakeReservationRepo{reservations: []*domain.Reservation{
		// Пересекает [14:00, 15:00)
		reservation(1, 1, "Анна", "14:30", "15:20", domain.StatusConfirmed),
		// Граничит, но не пересекает: начинается ровно в конце диапазона
		reservation(2, 1, "Борис", "15:00", "15:50", domain.StatusPending),
		// Заканчивается ровно в начале диапазона
		reservation(3, 1, "Вера", "13:10", "14:00", domain.StatusConfirmed),
	}}

	uc := NewUseCase(&fakeServiceRepo{}, repo, nopLogger{})

	req := baseRequest()
	req.TimeSlotEnd = ptr.Ptr("15:00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.HasConflict)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(1), resp.Conflicts[0].ReservationID)
}

func TestExecute_CancelledReservationsAreNotConflicts(t *testing.T) {
	repo := &fakeReservationRepo{reservations: []*domain.Reservation{
		reservation(1, 1, "Анна", "14:00", "14:50", domain.StatusCancelled),
		reservation(2, 1, "Борис", "14:00", "14:50", domain.StatusRejected),
		reservation(3, 1, "Вера", "14:00", "14:50", domain.StatusCompleted),
	}}

	uc := NewUseCase(&fakeServiceRepo{}, repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), baseRequest())
	require.NoError(t, err)

	assert.False(t, resp.HasConflict)
	assert.Equal(t, 0, resp.ConflictCount)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_ServiceScopeNarrowsCheck(t *testing.T) {
	svc := &domain.Service{ID: 2, Code: "CLEANING", Name: "Чистка", IsActive: true}
	repo := &fakeReservationRepo{reservations: []*domain.Reservation{
		reservation(1, 1, "Анна", "14:00", "14:50", domain.StatusConfirmed),
		reservation(2, 2, "Борис", "14:00", "14:30", domain.StatusConfirmed),
	}}

	uc := NewUseCase(&fakeServiceRepo{svc: svc}, repo, nopLogger{})

	req := baseRequest()
	req.ServiceCode = ptr.Ptr("CLEANING")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(2), resp.Conflicts[0].ReservationID)
	require.NotNil(t, repo.lastFilter.ServiceID)
	assert.Equal(t, int64(2), *repo.lastFilter.ServiceID)
}

func TestExecute_ValidationAndErrors(t *testing.T) {
	uc := NewUseCase(&fakeServiceRepo{}, &fakeReservationRepo{}, nopLogger{})

	t.Run("zero date", func(t *testing.T) {
		req := baseRequest()
		req.Date = time.Time{}
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown period", func(t *testing.T) {
		req := baseRequest()
		req.Period = "evening"
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("end not after start", func(t *testing.T) {
		req := baseRequest()
		req.TimeSlotEnd = ptr.Ptr("14:00")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown service code", func(t *testing.T) {
		req := baseRequest()
		req.ServiceCode = ptr.Ptr("NOPE")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}
