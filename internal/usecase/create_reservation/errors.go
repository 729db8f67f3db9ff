package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrServiceNotFound возвращается, когда услуга с таким кодом не найдена
	ErrServiceNotFound = errors.New("create_reservation: service not found")

	// ErrServiceInactive возвращается, когда услуга отключена в справочнике
	ErrServiceInactive = errors.New("create_reservation: service is inactive")

	// ErrNoOperatingHours возвращается, когда на этот день не настроено ни одного правила
	ErrNoOperatingHours = errors.New("create_reservation: no operating hours for this day")

	// ErrInvalidTimeSlot возвращается, когда время начала не является валидным кандидатом:
	// не попадает в окно периода, не выровнено по шагу или процедура не помещается до конца окна
	ErrInvalidTimeSlot = errors.New("create_reservation: invalid time slot")

	// ErrSlotClosed возвращается, когда слот административно закрыт
	ErrSlotClosed = errors.New("create_reservation: slot is manually closed")

	// ErrSlotFull возвращается, когда послотовая вместимость исчерпана
	ErrSlotFull = errors.New("create_reservation: slot capacity exhausted")

	// ErrDailyLimitReached возвращается, когда достигнут дневной лимит услуги
	ErrDailyLimitReached = errors.New("create_reservation: daily limit reached")

	// ErrLimitNotConfigured возвращается, когда у услуги нет активного дневного лимита
	// Отсутствие лимита — отказ, а не "без ограничений": безопасное значение по умолчанию
	ErrLimitNotConfigured = errors.New("create_reservation: daily limit not configured")

	// ErrAdmissionTimeout возвращается, когда ожидание блокировки или повторы транзакции исчерпаны
	// Клиенту следует повторить создание записи целиком с backoff
	ErrAdmissionTimeout = errors.New("create_reservation: admission timed out, retry the operation")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
