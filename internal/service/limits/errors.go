package limits

import "errors"

var (
	// ErrLimitNotFound возвращается, когда лимит не настроен для услуги
	ErrLimitNotFound = errors.New("limit not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
