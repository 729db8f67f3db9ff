package check_availability

import "time"

// Уровни дневной доступности услуги
const (
	LevelAvailable = "available"
	LevelLimited   = "limited"
	LevelFull      = "full"
)

// Request модель запроса консультативной проверки доступности
type Request struct {
	Date        time.Time
	ServiceCode string
}

// Response модель ответа консультативной проверки
// Configured = false означает, что дневной лимит услуги не настроен или отключен:
// создание записи будет отклонено (безопасное значение по умолчанию)
type Response struct {
	Available    bool
	Configured   bool
	Remaining    int
	CurrentCount int
	Limit        int
	Level        string
}
