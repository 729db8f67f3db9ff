package get_time_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getTimeSlots "github.com/m04kA/SMC-ReservationService/internal/usecase/get_time_slots"
)

const (
	msgMissingDate        = "параметр date обязателен"
	msgMissingServiceCode = "параметр serviceCode обязателен"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgNoOperatingHours   = "клиника не работает в выбранный день"
)

type Handler struct {
	useCase GetTimeSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetTimeSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/time-slots?date=YYYY-MM-DD&serviceCode=...
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
		h.logger.Warn("GET /time-slots - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getTimeSlots.Request{
		Date:        date,
		ServiceCode: serviceCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, getTimeSlots.ErrInvalidInput):
			h.logger.Warn("GET /time-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, getTimeSlots.ErrServiceNotFound):
			h.logger.Warn("GET /time-slots - Service not found: serviceCode=%s", serviceCode)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getTimeSlots.ErrServiceInactive):
			h.logger.Warn("GET /time-slots - Service inactive: serviceCode=%s", serviceCode)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgServiceInactive, "SERVICE_INACTIVE")

		case errors.Is(err, getTimeSlots.ErrNoOperatingHours):
			h.logger.Info("GET /time-slots - No operating hours: serviceCode=%s, date=%s", serviceCode, dateStr)
			handlers.RespondErrorWithCode(w, http.StatusNotFound, msgNoOperatingHours, "NO_OPERATING_HOURS")

		default:
			h.logger.Error("GET /time-slots - Failed: serviceCode=%s, date=%s, error=%v", serviceCode, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
