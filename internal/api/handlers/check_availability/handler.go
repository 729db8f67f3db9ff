package check_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
)

const (
	msgMissingDate        = "параметр date обязателен"
	msgMissingServiceCode = "параметр serviceCode обязателен"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"

	msgClinicClosed    = "клиника не работает в выбранный день"
	msgNotConfigured   = "запись на эту услугу временно недоступна"
	msgDayFull         = "на выбранную дату мест нет"
	msgDayLimited      = "на выбранную дату осталось мало мест"
	msgDayAvailable    = "на выбранную дату есть свободные места"
	levelClinicClosed  = "closed"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&serviceCode=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	serviceCode := r.URL.Query().Get("serviceCode")
	if serviceCode == "" {
		handlers.RespondBadRequest(w, msgMissingServiceCode)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkAvailability.Request{
		Date:        date,
		ServiceCode: serviceCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: serviceCode=%s", serviceCode)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkAvailability.ErrServiceInactive):
			h.logger.Warn("GET /availability - Service inactive: serviceCode=%s", serviceCode)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgServiceInactive, "SERVICE_INACTIVE")

		case errors.Is(err, checkAvailability.ErrNoOperatingHours):
			// Закрытый день — валидный ответ о доступности, а не ошибка
			h.logger.Info("GET /availability - Clinic closed: serviceCode=%s, date=%s", serviceCode, dateStr)
			handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
				Available: false,
				Level:     levelClinicClosed,
				Message:   msgClinicClosed,
			})

		default:
			h.logger.Error("GET /availability - Failed: serviceCode=%s, date=%s, error=%v", serviceCode, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
