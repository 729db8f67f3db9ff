package domain

import "time"

// Service услуга клиники из справочника
// Справочник ведется административным инструментарием и read-only для движка бронирования
type Service struct {
	ID              int64
	Code            string // стабильный внешний ключ, например "VOLUME_LIFTING"
	Name            string
	DurationMinutes int // длительность процедуры
	BufferMinutes   int // буфер на уборку/подготовку после процедуры
	DisplayOrder    int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TotalMinutes полное время занятости слота: процедура + буфер
// Именно эта сумма используется везде, где проверяются пересечения интервалов
func (s *Service) TotalMinutes() int {
	return s.DurationMinutes + s.BufferMinutes
}
