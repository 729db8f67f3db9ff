package schedule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда для комбинации день/период/услуга нет действующего правила
	ErrRuleNotFound = errors.New("schedule.repository: operating slot rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
