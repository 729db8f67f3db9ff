package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий правил операционных часов клиники
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var ruleColumns = []string{
	"id",
	"day_of_week",
	"period",
	"start_time",
	"end_time",
	"slot_interval_minutes",
	"max_concurrent",
	"service_id",
	"is_active",
	"created_at",
	"updated_at",
}

// GetByDayPeriodService получает активное правило для точной комбинации (день, период, услуга)
// serviceID == nil ищет общее правило (для всех услуг)
func (r *Repository) GetByDayPeriodService(ctx context.Context, day domain.DayOfWeek, period domain.Period, serviceID *int64) (*domain.OperatingSlotRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("operating_slot_rules").
		Where(squirrel.Eq{
			"day_of_week": int(day),
			"period":      string(period),
			"is_active":   true,
		})

	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDayPeriodService - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanRule(executor.QueryRowContext(ctx, query, args...), "GetByDayPeriodService")
}

// GetEffectiveRule получает действующее правило для (день, период, услуга) с учетом приоритета:
// 1. Правило для конкретной услуги (service_id = serviceID)
// 2. Общее правило (service_id IS NULL)
// Если правила нет ни на одном уровне, возвращает ErrRuleNotFound
func (r *Repository) GetEffectiveRule(ctx context.Context, day domain.DayOfWeek, period domain.Period, serviceID int64) (*domain.OperatingSlotRule, error) {
	// 1. Пробуем правило для конкретной услуги
	rule, err := r.GetByDayPeriodService(ctx, day, period, &serviceID)
	if err == nil {
		return rule, nil
	}
	if !errors.Is(err, ErrRuleNotFound) {
		return nil, fmt.Errorf("%w: GetEffectiveRule - service-specific lookup: %v", ErrExecQuery, err)
	}

	// 2. Откатываемся на общее правило
	rule, err = r.GetByDayPeriodService(ctx, day, period, nil)
	if err == nil {
		return rule, nil
	}
	if !errors.Is(err, ErrRuleNotFound) {
		return nil, fmt.Errorf("%w: GetEffectiveRule - generic lookup: %v", ErrExecQuery, err)
	}

	return nil, ErrRuleNotFound
}

// GetEffectiveRulesForDay получает действующие правила для всех периодов дня
// Периоды без правила пропускаются; если правил нет вообще, возвращает ErrRuleNotFound
func (r *Repository) GetEffectiveRulesForDay(ctx context.Context, day domain.DayOfWeek, serviceID int64) ([]*domain.OperatingSlotRule, error) {
	rules := make([]*domain.OperatingSlotRule, 0, len(domain.Periods))

	for _, period := range domain.Periods {
		rule, err := r.GetEffectiveRule(ctx, day, period, serviceID)
		if err != nil {
			if errors.Is(err, ErrRuleNotFound) {
				continue
			}
			return nil, err
		}
		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return nil, ErrRuleNotFound
	}

	return rules, nil
}

func (r *Repository) scanRule(row *sql.Row, method string) (*domain.OperatingSlotRule, error) {
	var rule domain.OperatingSlotRule
	var serviceID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.DayOfWeek,
		&rule.Period,
		&rule.StartTime,
		&rule.EndTime,
		&rule.SlotIntervalMinutes,
		&rule.MaxConcurrent,
		&serviceID,
		&rule.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan rule: %v", ErrScanRow, method, err)
	}

	if serviceID.Valid {
		rule.ServiceID = &serviceID.Int64
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
