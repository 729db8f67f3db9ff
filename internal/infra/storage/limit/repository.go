package limit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий дневных лимитов по услугам
// Строка лимита — единственный ресурс с пессимистичной блокировкой в системе:
// GetByServiceIDForUpdate сериализует решения о допуске для одной услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория лимитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var limitColumns = []string{
	"id",
	"service_id",
	"daily_limit",
	"is_active",
	"reason",
	"updated_by",
	"created_at",
	"updated_at",
}

// GetByServiceID получает лимит услуги без блокировки
// Используется консультативной проверкой доступности; для допуска использовать GetByServiceIDForUpdate
func (r *Repository) GetByServiceID(ctx context.Context, serviceID int64) (*domain.ServiceReservationLimit, error) {
	return r.getByServiceID(ctx, serviceID, false)
}

// GetByServiceIDForUpdate получает лимит услуги с блокировкой строки (SELECT ... FOR UPDATE)
// Должен вызываться только внутри транзакции допуска: блокировка держится до коммита/отката
// и упорядочивает конкурирующие допуски для одной услуги, не блокируя другие услуги
func (r *Repository) GetByServiceIDForUpdate(ctx context.Context, serviceID int64) (*domain.ServiceReservationLimit, error) {
	return r.getByServiceID(ctx, serviceID, true)
}

func (r *Repository) getByServiceID(ctx context.Context, serviceID int64, forUpdate bool) (*domain.ServiceReservationLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(limitColumns...).
		From("service_reservation_limits").
		Where(squirrel.Eq{"service_id": serviceID})

	if forUpdate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getByServiceID - build select query: %v", ErrBuildQuery, err)
	}

	return scanLimit(executor.QueryRowContext(ctx, query, args...))
}

// List получает все настроенные лимиты
func (r *Repository) List(ctx context.Context) ([]*domain.ServiceReservationLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(limitColumns...).
		From("service_reservation_limits").
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	limits := make([]*domain.ServiceReservationLimit, 0)
	for rows.Next() {
		var l domain.ServiceReservationLimit
		var reason, updatedBy sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&l.ID,
			&l.ServiceID,
			&l.DailyLimit,
			&l.IsActive,
			&reason,
			&updatedBy,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		if reason.Valid {
			l.Reason = &reason.String
		}
		if updatedBy.Valid {
			l.UpdatedBy = &updatedBy.String
		}
		l.CreatedAt = createdAt.Time
		l.UpdatedAt = updatedAt.Time

		limits = append(limits, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return limits, nil
}

// Upsert создает или обновляет лимит услуги
// Изменение действует со следующей проверки допуска: Enforcer всегда перечитывает строку под блокировкой
func (r *Repository) Upsert(ctx context.Context, l *domain.ServiceReservationLimit) (*domain.ServiceReservationLimit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_reservation_limits").
		Columns(
			"service_id",
			"daily_limit",
			"is_active",
			"reason",
			"updated_by",
		).
		Values(
			l.ServiceID,
			l.DailyLimit,
			l.IsActive,
			l.Reason,
			l.UpdatedBy,
		).
		Suffix(`ON CONFLICT (service_id) DO UPDATE SET
			daily_limit = EXCLUDED.daily_limit,
			is_active = EXCLUDED.is_active,
			reason = EXCLUDED.reason,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&l.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return l, nil
}

func scanLimit(row *sql.Row) (*domain.ServiceReservationLimit, error) {
	var l domain.ServiceReservationLimit
	var reason, updatedBy sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&l.ID,
		&l.ServiceID,
		&l.DailyLimit,
		&l.IsActive,
		&reason,
		&updatedBy,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrLimitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanLimit - scan limit: %v", ErrScanRow, err)
	}

	if reason.Valid {
		l.Reason = &reason.String
	}
	if updatedBy.Valid {
		l.UpdatedBy = &updatedBy.String
	}
	l.CreatedAt = createdAt.Time
	l.UpdatedAt = updatedAt.Time

	return &l, nil
}
