package domain

import "time"

// ServiceReservationLimit дневной потолок записей по услуге, независимый от послотовой вместимости
// Строка этой таблицы блокируется (SELECT ... FOR UPDATE) при допуске новой записи,
// сериализуя решения о допуске для одной услуги
type ServiceReservationLimit struct {
	ID         int64
	ServiceID  int64
	DailyLimit int // жесткий потолок записей в день
	IsActive   bool
	Reason     *string
	UpdatedBy  *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SoftThreshold производный мягкий порог для предупреждений (процент от жесткого лимита)
// Отдельного хранимого softLimit нет
func (l *ServiceReservationLimit) SoftThreshold() int {
	return l.DailyLimit * SoftLimitPercent / 100
}
