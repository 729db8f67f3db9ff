package limits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	limitRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/limit"
	serviceRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/service"
	"github.com/m04kA/SMC-ReservationService/internal/service/limits/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

type fakeLimitRepo struct {
	nextID int64
	limits map[int64]*domain.ServiceReservationLimit // ключ — serviceID
}

func newFakeLimitRepo() *fakeLimitRepo {
	return &fakeLimitRepo{limits: make(map[int64]*domain.ServiceReservationLimit)}
}

func (f *fakeLimitRepo) GetByServiceID(_ context.Context, serviceID int64) (*domain.ServiceReservationLimit, error) {
	l, ok := f.limits[serviceID]
	if !ok {
		return nil, limitRepo.ErrLimitNotFound
	}
	return l, nil
}

func (f *fakeLimitRepo) List(_ context.Context) ([]*domain.ServiceReservationLimit, error) {
	var out []*domain.ServiceReservationLimit
	for _, l := range f.limits {
		out = append(out, l)
	}
	return out, nil
}

func (f *fakeLimitRepo) Upsert(_ context.Context, l *domain.ServiceReservationLimit) (*domain.ServiceReservationLimit, error) {
	stored := *l
	if existing, ok := f.limits[l.ServiceID]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		f.nextID++
		stored.ID = f.nextID
		stored.CreatedAt = time.Now()
	}
	stored.UpdatedAt = time.Now()
	f.limits[l.ServiceID] = &stored
	return &stored, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func cleaning() *domain.Service {
	return &domain.Service{ID: 1, Code: "CLEANING", Name: "Чистка", IsActive: true}
}

func upsertRequest(daily int) *models.UpsertLimitRequest {
	return &models.UpsertLimitRequest{DailyLimit: daily, UpdatedBy: "staff-42"}
}

func TestUpsert_CreatesThenUpdates(t *testing.T) {
	repo := newFakeLimitRepo()
	svc := NewService(repo, &fakeServiceRepo{svc: cleaning()}, nopLogger{})

	created, err := svc.Upsert(context.Background(), "CLEANING", upsertRequest(10))
	require.NoError(t, err)

	assert.Equal(t, 10, created.DailyLimit)
	// Мягкий порог производный: 80% от жесткого лимита
	assert.Equal(t, 8, created.SoftThreshold)
	assert.True(t, created.IsActive)

	// Повторный Upsert обновляет ту же строку, а не создает новую
	updated, err := svc.Upsert(context.Background(), "CLEANING", upsertRequest(20))
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 20, updated.DailyLimit)
	assert.Equal(t, 16, updated.SoftThreshold)
	assert.Len(t, repo.limits, 1)
}

func TestUpsert_ExplicitDeactivation(t *testing.T) {
	svc := NewService(newFakeLimitRepo(), &fakeServiceRepo{svc: cleaning()}, nopLogger{})

	req := upsertRequest(10)
	req.IsActive = ptr.Ptr(false)
	req.Reason = ptr.Ptr("уход мастера в отпуск")

	resp, err := svc.Upsert(context.Background(), "CLEANING", req)
	require.NoError(t, err)

	assert.False(t, resp.IsActive)
	require.NotNil(t, resp.Reason)
	assert.Equal(t, "уход мастера в отпуск", *resp.Reason)
}

func TestUpsert_Validation(t *testing.T) {
	svc := NewService(newFakeLimitRepo(), &fakeServiceRepo{svc: cleaning()}, nopLogger{})

	cases := []struct {
		name   string
		mutate func(r *models.UpsertLimitRequest)
	}{
		{"below minimum", func(r *models.UpsertLimitRequest) { r.DailyLimit = 0 }},
		{"above maximum", func(r *models.UpsertLimitRequest) { r.DailyLimit = domain.MaxDailyLimit + 1 }},
		{"empty updatedBy", func(r *models.UpsertLimitRequest) { r.UpdatedBy = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := upsertRequest(10)
			tc.mutate(req)
			_, err := svc.Upsert(context.Background(), "CLEANING", req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	t.Run("unknown service", func(t *testing.T) {
		_, err := svc.Upsert(context.Background(), "NOPE", upsertRequest(10))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestGetByServiceCode(t *testing.T) {
	repo := newFakeLimitRepo()
	svc := NewService(repo, &fakeServiceRepo{svc: cleaning()}, nopLogger{})

	_, err := svc.GetByServiceCode(context.Background(), "CLEANING")
	assert.ErrorIs(t, err, ErrLimitNotFound)

	_, err = svc.Upsert(context.Background(), "CLEANING", upsertRequest(15))
	require.NoError(t, err)

	resp, err := svc.GetByServiceCode(context.Background(), "CLEANING")
	require.NoError(t, err)
	assert.Equal(t, 15, resp.DailyLimit)
	assert.Equal(t, 12, resp.SoftThreshold)
}
