package list_services

// ServiceInfo услуга каталога для витрины бронирования
type ServiceInfo struct {
	ID              int64  `json:"id"`
	Code            string `json:"code"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	BufferMinutes   int    `json:"bufferMinutes"`
	TotalMinutes    int    `json:"totalMinutes"`
	DisplayOrder    int    `json:"displayOrder"`
}

// Response модель ответа со списком активных услуг
type Response struct {
	Services []ServiceInfo `json:"services"`
}
