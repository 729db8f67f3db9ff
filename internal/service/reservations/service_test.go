package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
	lastFilter   domain.ReservationsFilter
}

func newFakeReservationRepo(reservations ...*domain.Reservation) *fakeReservationRepo {
	repo := &fakeReservationRepo{reservations: make(map[int64]*domain.Reservation)}
	for _, r := range reservations {
		repo.reservations[r.ID] = r
	}
	return repo
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	// Копия, как у реального репозитория: вызывающий не должен видеть
	// последующие мутации хранимой записи через этот указатель
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepo) ListWithFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if filter.ServiceID != nil && r.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.Period != nil && r.Period != *filter.Period {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus, adminNotes *string) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.Status = status
	if adminNotes != nil {
		r.AdminNotes = adminNotes
	}
	now := time.Now()
	r.StatusChangedAt = &now
	r.UpdatedAt = now
	return nil
}

type fakeServiceRepo struct {
	svc *domain.Service
}

func (f *fakeServiceRepo) GetByCode(_ context.Context, code string) (*domain.Service, error) {
	if f.svc == nil || f.svc.Code != code {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return f.svc, nil
}

type recordingCache struct {
	invalidatedDates []string
}

func (c *recordingCache) InvalidateDate(_ context.Context, date string) error {
	c.invalidatedDates = append(c.invalidatedDates, date)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var wednesday = time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

func pendingReservation(id int64) *domain.Reservation {
	return &domain.Reservation{
		ID:                       id,
		PatientName:              "Анна Иванова",
		Phone:                    "+79991234567",
		ServiceID:                1,
		PreferredDate:            wednesday,
		Period:                   domain.PeriodAfternoon,
		TimeSlotStart:            types.TimeString("14:00"),
		TimeSlotEnd:              types.TimeString("14:50"),
		EstimatedDurationMinutes: 40,
		Status:                   domain.StatusPending,
		CreatedAt:                time.Now(),
		UpdatedAt:                time.Now(),
	}
}

func TestUpdateStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		name string
		from domain.ReservationStatus
		to   string
	}{
		{"pending to confirmed", domain.StatusPending, "confirmed"},
		{"pending to cancelled", domain.StatusPending, "cancelled"},
		{"pending to rejected", domain.StatusPending, "rejected"},
		{"confirmed to completed", domain.StatusConfirmed, "completed"},
		{"confirmed to cancelled", domain.StatusConfirmed, "cancelled"},
		{"confirmed to no_show", domain.StatusConfirmed, "no_show"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := pendingReservation(1)
			res.Status = tc.from
			repo := newFakeReservationRepo(res)
			svc := NewService(repo, &fakeServiceRepo{}, nil, nopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tc.to})
			require.NoError(t, err)
			assert.Equal(t, tc.to, resp.Status)
		})
	}
}

func TestUpdateStatus_ForbiddenTransitions(t *testing.T) {
	cases := []struct {
		name string
		from domain.ReservationStatus
		to   string
	}{
		{"pending cannot complete", domain.StatusPending, "completed"},
		{"pending cannot no_show", domain.StatusPending, "no_show"},
		{"completed is terminal", domain.StatusCompleted, "confirmed"},
		{"cancelled is terminal", domain.StatusCancelled, "pending"},
		{"rejected is terminal", domain.StatusRejected, "confirmed"},
		{"no_show is terminal", domain.StatusNoShow, "completed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := pendingReservation(1)
			res.Status = tc.from
			repo := newFakeReservationRepo(res)
			svc := NewService(repo, &fakeServiceRepo{}, nil, nopLogger{})

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tc.to})
			assert.ErrorIs(t, err, ErrInvalidTransition)
			// Статус не изменился
			assert.Equal(t, tc.from, repo.reservations[1].Status)
		})
	}
}

func TestUpdateStatus_UnknownStatusRejected(t *testing.T) {
	repo := newFakeReservationRepo(pendingReservation(1))
	svc := NewService(repo, &fakeServiceRepo{}, nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	svc := NewService(newFakeReservationRepo(), &fakeServiceRepo{}, nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 404, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestUpdateStatus_CancellationFreesCapacityCache(t *testing.T) {
	repo := newFakeReservationRepo(pendingReservation(1))
	cache := &recordingCache{}
	svc := NewService(repo, &fakeServiceRepo{}, cache, nopLogger{})

	notes := "пациент попросил перенести"
	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{
		Status:     "cancelled",
		AdminNotes: &notes,
	})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.AdminNotes)
	assert.Equal(t, notes, *resp.AdminNotes)
	// Отмена освобождает вместимость: кеш слотов на дату сброшен
	assert.Equal(t, []string{"2026-09-02"}, cache.invalidatedDates)
}

func TestUpdateStatus_TerminalChangeDoesNotTouchCache(t *testing.T) {
	res := pendingReservation(1)
	res.Status = domain.StatusConfirmed
	repo := newFakeReservationRepo(res)
	cache := &recordingCache{}
	svc := NewService(repo, &fakeServiceRepo{}, cache, nopLogger{})

	// confirmed учитывается в вместимости, поэтому завершение тоже сбрасывает кеш
	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Len(t, cache.invalidatedDates, 1)
}

func TestGetByID(t *testing.T) {
	repo := newFakeReservationRepo(pendingReservation(7))
	svc := NewService(repo, &fakeServiceRepo{}, nil, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "14:00", resp.TimeSlotStart)
	assert.Equal(t, "14:50", resp.TimeSlotEnd)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestList_FiltersByServiceAndPeriod(t *testing.T) {
	other := pendingReservation(2)
	other.ServiceID = 2
	other.Period = domain.PeriodMorning

	repo := newFakeReservationRepo(pendingReservation(1), other)
	svc := NewService(repo, &fakeServiceRepo{svc: &domain.Service{ID: 1, Code: "VOLUME_LIFTING", IsActive: true}}, nil, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListRequest{
		Date:        wednesday,
		ServiceCode: ptr.Ptr("VOLUME_LIFTING"),
		Period:      ptr.Ptr("afternoon"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, int64(1), resp.Reservations[0].ID)
	require.NotNil(t, repo.lastFilter.ServiceID)
	assert.Equal(t, int64(1), *repo.lastFilter.ServiceID)
}

func TestList_Validation(t *testing.T) {
	svc := NewService(newFakeReservationRepo(), &fakeServiceRepo{}, nil, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListRequest{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{Date: wednesday, Period: ptr.Ptr("night")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListRequest{Date: wednesday, ServiceCode: ptr.Ptr("NOPE")})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}
