package check_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_availability: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга с таким кодом не найдена
	ErrServiceNotFound = errors.New("check_availability: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена в справочнике
	ErrServiceInactive = errors.New("check_availability: service is inactive")

	// ErrNoOperatingHours возвращается, когда клиника закрыта в этот день
	// Отличается от "занято": UI показывает "закрыто", а не "мест нет"
	ErrNoOperatingHours = errors.New("check_availability: no operating hours for this day")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_availability: internal error")
)
