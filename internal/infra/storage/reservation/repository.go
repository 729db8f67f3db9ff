package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий записей на прием
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"patient_name",
	"phone",
	"service_id",
	"preferred_date",
	"period",
	"time_slot_start",
	"time_slot_end",
	"estimated_duration_minutes",
	"status",
	"admin_notes",
	"status_changed_at",
	"created_at",
	"updated_at",
}

// countableStatusStrings статусы, занимающие вместимость, в виде строк для SQL-фильтра
func countableStatusStrings() []string {
	statuses := make([]string, len(domain.CountableStatuses))
	for i, s := range domain.CountableStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// Create создает новую запись на прием
// Вызывается только внутри транзакции допуска (txCtx от TransactionManager),
// чтобы вставка и проверка вместимости были атомарны
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"patient_name",
			"phone",
			"service_id",
			"preferred_date",
			"period",
			"time_slot_start",
			"time_slot_end",
			"estimated_duration_minutes",
			"status",
			"admin_notes",
		).
		Values(
			res.PatientName,
			res.Phone,
			res.ServiceID,
			res.PreferredDate,
			res.Period,
			res.TimeSlotStart,
			res.TimeSlotEnd,
			res.EstimatedDurationMinutes,
			res.Status,
			res.AdminNotes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	res, err := scanReservationRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListWithFilter получает записи по фильтру, отсортированные по времени слота
//
// Внутри транзакции допуска (dbmetrics.IsInTransaction) при фильтре по конкретной дате
// добавляется FOR UPDATE: конкурирующие допуски на ту же дату/услугу блокируются
// до завершения транзакции
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"preferred_date": *filter.Date})
	}
	if filter.Period != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"period": *filter.Period})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyCountable {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": countableStatusStrings()})
	}

	selectBuilder = selectBuilder.OrderBy("time_slot_start ASC, id ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// CountCountableByDateAndService подсчитывает записи (pending/confirmed) услуги на дату
// Используется Capacity Enforcer'ом под блокировкой строки лимита и
// консультативной проверкой доступности без блокировки
func (r *Repository) CountCountableByDateAndService(ctx context.Context, date time.Time, serviceID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("reservations").
		Where(squirrel.Eq{
			"preferred_date": date,
			"service_id":     serviceID,
			"status":         countableStatusStrings(),
		}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountCountableByDateAndService - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountCountableByDateAndService - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус записи и проставляет status_changed_at
// Опционально обновляет заметки персонала
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus, adminNotes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("status_changed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if adminNotes != nil {
		updateBuilder = updateBuilder.Set("admin_notes", *adminNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func scanReservationRow(row *sql.Row) (*domain.Reservation, error) {
	var res domain.Reservation
	var adminNotes sql.NullString
	var statusChangedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.PatientName,
		&res.Phone,
		&res.ServiceID,
		&res.PreferredDate,
		&res.Period,
		&res.TimeSlotStart,
		&res.TimeSlotEnd,
		&res.EstimatedDurationMinutes,
		&res.Status,
		&adminNotes,
		&statusChangedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if adminNotes.Valid {
		res.AdminNotes = &adminNotes.String
	}
	if statusChangedAt.Valid {
		res.StatusChangedAt = &statusChangedAt.Time
	}
	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс записей
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		var res domain.Reservation
		var adminNotes sql.NullString
		var statusChangedAt, createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&res.ID,
			&res.PatientName,
			&res.Phone,
			&res.ServiceID,
			&res.PreferredDate,
			&res.Period,
			&res.TimeSlotStart,
			&res.TimeSlotEnd,
			&res.EstimatedDurationMinutes,
			&res.Status,
			&adminNotes,
			&statusChangedAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}

		if adminNotes.Valid {
			res.AdminNotes = &adminNotes.String
		}
		if statusChangedAt.Valid {
			res.StatusChangedAt = &statusChangedAt.Time
		}
		res.CreatedAt = createdAt.Time
		res.UpdatedAt = updatedAt.Time

		reservations = append(reservations, &res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
