package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultMaxConcurrent       = 1

	// DefaultLimitedThresholdPercent порог статуса "limited": слот считается почти заполненным,
	// когда свободных мест осталось не больше этого процента от вместимости
	DefaultLimitedThresholdPercent = 20

	// DefaultLimitedAbsoluteSpots абсолютный порог статуса "limited"
	DefaultLimitedAbsoluteSpots = 1

	// SoftLimitPercent производный "мягкий" порог дневного лимита для предупреждений
	// Хранится только жесткий dailyLimit, мягкий порог вычисляется
	SoftLimitPercent = 80
)

// Business validation constants
const (
	MinSlotIntervalMinutes = 5
	MaxSlotIntervalMinutes = 240
	MinConcurrent          = 1
	MaxConcurrent          = 50
	MinDailyLimit          = 1
	MaxDailyLimit          = 500
	MaxPatientNameLength   = 100
	MaxPhoneLength         = 20
	MaxReasonLength        = 500
	MaxNotesLength         = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CountableStatuses статусы, учитываемые при подсчете занятости слотов и дневного лимита
// Только pending и confirmed занимают вместимость
var CountableStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses конечные статусы, из которых переходы запрещены
var TerminalStatuses = []ReservationStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
	StatusRejected,
}
