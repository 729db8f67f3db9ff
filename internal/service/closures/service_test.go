package closures

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	closureRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/closure"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/closures/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeClosureRepo struct {
	nextID      int64
	closures    map[int64]*domain.ManualClosure
	deactivated []int64
}

func newFakeClosureRepo() *fakeClosureRepo {
	return &fakeClosureRepo{closures: make(map[int64]*domain.ManualClosure)}
}

func (f *fakeClosureRepo) Create(_ context.Context, c *domain.ManualClosure) (*domain.ManualClosure, error) {
	f.nextID++
	stored := *c
	stored.ID = f.nextID
	stored.IsActive = true
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.closures[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeClosureRepo) GetByID(_ context.Context, id int64) (*domain.ManualClosure, error) {
	c, ok := f.closures[id]
	if !ok {
		return nil, closureRepo.ErrClosureNotFound
	}
	return c, nil
}

func (f *fakeClosureRepo) ListActiveByDate(_ context.Context, date time.Time) ([]*domain.ManualClosure, error) {
	var out []*domain.ManualClosure
	for _, c := range f.closures {
		if c.IsActive && c.ClosureDate.Equal(date) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeClosureRepo) Deactivate(_ context.Context, id int64) error {
	c, ok := f.closures[id]
	if !ok {
		return closureRepo.ErrClosureNotFound
	}
	c.IsActive = false
	f.deactivated = append(f.deactivated, id)
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

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.svc == nil || f.svc.ID != id {
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

func createRequest() *models.CreateClosureRequest {
	return &models.CreateClosureRequest{
		ClosureDate:   wednesday,
		Period:        "morning",
		TimeSlotStart: "10:00",
		Reason:        "стерилизация кабинета",
		CreatedBy:     "staff-42",
	}
}

func TestCreate_PointClosure(t *testing.T) {
	repo := newFakeClosureRepo()
	cache := &recordingCache{}
	svc := NewService(repo, &fakeServiceRepo{}, cache, nopLogger{})

	resp, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2026-09-02", resp.ClosureDate)
	assert.Equal(t, "10:00", resp.TimeSlotStart)
	assert.Nil(t, resp.TimeSlotEnd)
	assert.Nil(t, resp.ServiceID)
	assert.True(t, resp.IsActive)

	// Кеш выдачи слотов на дату сброшен
	assert.Equal(t, []string{"2026-09-02"}, cache.invalidatedDates)
}

func TestCreate_RangeClosureScopedToService(t *testing.T) {
	repo := newFakeClosureRepo()
	svc := NewService(repo, &fakeServiceRepo{svc: &domain.Service{ID: 7, Code: "CLEANING", IsActive: true}}, nil, nopLogger{})

	req := createRequest()
	req.TimeSlotEnd = ptr.Ptr("12:00")
	req.ServiceCode = ptr.Ptr("CLEANING")

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, resp.TimeSlotEnd)
	assert.Equal(t, "12:00", *resp.TimeSlotEnd)
	require.NotNil(t, resp.ServiceID)
	assert.Equal(t, int64(7), *resp.ServiceID)
	require.NotNil(t, resp.ServiceCode)
	assert.Equal(t, "CLEANING", *resp.ServiceCode)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newFakeClosureRepo(), &fakeServiceRepo{}, nil, nopLogger{})

	cases := []struct {
		name    string
		mutate  func(r *models.CreateClosureRequest)
		wantErr error
	}{
		{"zero date", func(r *models.CreateClosureRequest) { r.ClosureDate = time.Time{} }, ErrInvalidInput},
		{"unknown period", func(r *models.CreateClosureRequest) { r.Period = "night" }, ErrInvalidInput},
		{"empty reason", func(r *models.CreateClosureRequest) { r.Reason = "" }, ErrInvalidInput},
		{"empty createdBy", func(r *models.CreateClosureRequest) { r.CreatedBy = "" }, ErrInvalidInput},
		{"malformed start", func(r *models.CreateClosureRequest) { r.TimeSlotStart = "сейчас" }, ErrInvalidInput},
		{"end before start", func(r *models.CreateClosureRequest) { r.TimeSlotEnd = ptr.Ptr("09:00") }, ErrInvalidInput},
		{"unknown service", func(r *models.CreateClosureRequest) { r.ServiceCode = ptr.Ptr("NOPE") }, ErrServiceNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createRequest()
			tc.mutate(req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRemove_DeactivatesAndIsIdempotent(t *testing.T) {
	repo := newFakeClosureRepo()
	cache := &recordingCache{}
	svc := NewService(repo, &fakeServiceRepo{}, cache, nopLogger{})

	created, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), created.ID))
	assert.False(t, repo.closures[created.ID].IsActive)

	// Повторное снятие уже неактивного закрытия — no-op, не ошибка
	require.NoError(t, svc.Remove(context.Background(), created.ID))
	assert.Equal(t, []int64{created.ID, created.ID}, repo.deactivated)
}

func TestRemove_UnknownClosure(t *testing.T) {
	svc := NewService(newFakeClosureRepo(), &fakeServiceRepo{}, nil, nopLogger{})

	err := svc.Remove(context.Background(), 404)
	assert.ErrorIs(t, err, ErrClosureNotFound)
}

func TestListByDate_ReturnsOnlyActive(t *testing.T) {
	repo := newFakeClosureRepo()
	svc := NewService(repo, &fakeServiceRepo{}, nil, nopLogger{})

	first, err := svc.Create(context.Background(), createRequest())
	require.NoError(t, err)

	second := createRequest()
	second.TimeSlotStart = "11:00"
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(context.Background(), first.ID))

	resp, err := svc.ListByDate(context.Background(), wednesday)
	require.NoError(t, err)

	require.Len(t, resp.Closures, 1)
	assert.Equal(t, "11:00", resp.Closures[0].TimeSlotStart)
}
