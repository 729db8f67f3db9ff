package limit

import "errors"

var (
	// ErrLimitNotFound возвращается, когда для услуги не настроен дневной лимит
	ErrLimitNotFound = errors.New("limit.repository: service reservation limit not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("limit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("limit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("limit.repository: failed to scan row")
)
