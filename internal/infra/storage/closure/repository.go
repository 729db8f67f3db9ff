package closure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// DBExecutor интерфейс исполнителя запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий ручных закрытий слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория закрытий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var closureColumns = []string{
	"id",
	"closure_date",
	"period",
	"time_slot_start",
	"time_slot_end",
	"service_id",
	"reason",
	"created_by",
	"is_active",
	"created_at",
	"updated_at",
}

// Create создает активное закрытие слота
// Записи на прием при этом не изменяются: закрытие влияет только на будущую выдачу доступности
func (r *Repository) Create(ctx context.Context, c *domain.ManualClosure) (*domain.ManualClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("manual_closures").
		Columns(
			"closure_date",
			"period",
			"time_slot_start",
			"time_slot_end",
			"service_id",
			"reason",
			"created_by",
			"is_active",
		).
		Values(
			c.ClosureDate,
			c.Period,
			c.TimeSlotStart,
			c.TimeSlotEnd,
			c.ServiceID,
			c.Reason,
			c.CreatedBy,
			true,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.IsActive = true
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает закрытие по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ManualClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(closureColumns...).
		From("manual_closures").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)

	c, err := scanClosureRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrClosureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan closure: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListActiveByDate получает активные закрытия на дату (по всем услугам)
// Фильтрация по услуге и слоту делается генератором слотов через ManualClosure.AppliesTo
func (r *Repository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.ManualClosure, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(closureColumns...).
		From("manual_closures").
		Where(squirrel.Eq{
			"closure_date": date,
			"is_active":    true,
		}).
		OrderBy("time_slot_start ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	closures := make([]*domain.ManualClosure, 0)
	for rows.Next() {
		c, err := scanClosureRows(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByDate - scan row: %v", ErrScanRow, err)
		}
		closures = append(closures, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - rows error: %v", ErrScanRow, err)
	}

	return closures, nil
}

// Deactivate снимает закрытие (is_active = false)
// Операция идемпотентна: повторное снятие уже неактивного закрытия — no-op, не ошибка.
// ErrClosureNotFound возвращается только для несуществующего ID
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("manual_closures").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClosureNotFound
	}

	return nil
}

func scanClosureRow(row *sql.Row) (*domain.ManualClosure, error) {
	var c domain.ManualClosure
	var slotEnd types.TimeString
	var slotEndValid bool
	var serviceID sql.NullInt64
	var createdAt, updatedAt sql.NullTime
	var rawSlotEnd sql.NullString

	err := row.Scan(
		&c.ID,
		&c.ClosureDate,
		&c.Period,
		&c.TimeSlotStart,
		&rawSlotEnd,
		&serviceID,
		&c.Reason,
		&c.CreatedBy,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rawSlotEnd.Valid {
		if err := slotEnd.Scan(rawSlotEnd.String); err != nil {
			return nil, err
		}
		slotEndValid = true
	}

	fillClosure(&c, slotEnd, slotEndValid, serviceID, createdAt, updatedAt)
	return &c, nil
}

func scanClosureRows(rows *sql.Rows) (*domain.ManualClosure, error) {
	var c domain.ManualClosure
	var slotEnd types.TimeString
	var slotEndValid bool
	var serviceID sql.NullInt64
	var createdAt, updatedAt sql.NullTime
	var rawSlotEnd sql.NullString

	err := rows.Scan(
		&c.ID,
		&c.ClosureDate,
		&c.Period,
		&c.TimeSlotStart,
		&rawSlotEnd,
		&serviceID,
		&c.Reason,
		&c.CreatedBy,
		&c.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rawSlotEnd.Valid {
		if err := slotEnd.Scan(rawSlotEnd.String); err != nil {
			return nil, err
		}
		slotEndValid = true
	}

	fillClosure(&c, slotEnd, slotEndValid, serviceID, createdAt, updatedAt)
	return &c, nil
}

func fillClosure(c *domain.ManualClosure, slotEnd types.TimeString, slotEndValid bool, serviceID sql.NullInt64, createdAt, updatedAt sql.NullTime) {
	if slotEndValid {
		c.TimeSlotEnd = &slotEnd
	}
	if serviceID.Valid {
		c.ServiceID = &serviceID.Int64
	}
	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time
}
