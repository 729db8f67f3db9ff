package check_closure_conflict

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_closure_conflict: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга с таким кодом не найдена
	ErrServiceNotFound = errors.New("check_closure_conflict: service not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_closure_conflict: internal error")
)
