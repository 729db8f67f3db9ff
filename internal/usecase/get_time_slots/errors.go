package get_time_slots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_time_slots: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга с таким кодом не найдена
	ErrServiceNotFound = errors.New("get_time_slots: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена в справочнике
	ErrServiceInactive = errors.New("get_time_slots: service is inactive")

	// ErrNoOperatingHours возвращается, когда на этот день недели не настроено ни одного правила
	// Отличается от "все слоты заняты": клиника в этот день закрыта
	ErrNoOperatingHours = errors.New("get_time_slots: no operating hours for this day")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_time_slots: internal error")
)
