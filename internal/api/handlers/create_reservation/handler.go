package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createReservation "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgServiceNotFound    = "услуга не найдена"
	msgServiceInactive    = "услуга недоступна для записи"
	msgNoOperatingHours   = "клиника не работает в выбранный день"
	msgInvalidTimeSlot    = "выбранное время не является доступным слотом"
	msgSlotClosed         = "выбранный слот закрыт администратором"
	msgSlotFull           = "выбранный слот полностью занят"
	msgDailyLimitReached  = "на выбранную дату мест больше нет"
	msgLimitNotConfigured = "запись на эту услугу временно недоступна"
	msgAdmissionTimeout   = "не удалось обработать запись, попробуйте еще раз"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: serviceCode=%s", req.ServiceCode)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrServiceInactive):
			h.logger.Warn("POST /reservations - Service inactive: serviceCode=%s", req.ServiceCode)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgServiceInactive, "SERVICE_INACTIVE")

		case errors.Is(err, createReservation.ErrNoOperatingHours):
			h.logger.Warn("POST /reservations - No operating hours: serviceCode=%s, date=%s",
				req.ServiceCode, req.PreferredDate)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgNoOperatingHours, "NO_OPERATING_HOURS")

		case errors.Is(err, createReservation.ErrInvalidTimeSlot):
			h.logger.Warn("POST /reservations - Invalid time slot: serviceCode=%s, start=%s",
				req.ServiceCode, req.TimeSlotStart)
			handlers.RespondErrorWithCode(w, http.StatusBadRequest, msgInvalidTimeSlot, "INVALID_TIME_SLOT")

		case errors.Is(err, createReservation.ErrSlotClosed):
			h.logger.Warn("POST /reservations - Slot manually closed: serviceCode=%s, start=%s",
				req.ServiceCode, req.TimeSlotStart)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgSlotClosed, "MANUALLY_CLOSED")

		case errors.Is(err, createReservation.ErrSlotFull):
			h.logger.Warn("POST /reservations - Slot full: serviceCode=%s, start=%s",
				req.ServiceCode, req.TimeSlotStart)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgSlotFull, "SLOT_FULL")

		case errors.Is(err, createReservation.ErrDailyLimitReached):
			h.logger.Warn("POST /reservations - Daily limit reached: serviceCode=%s, date=%s",
				req.ServiceCode, req.PreferredDate)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgDailyLimitReached, "CAPACITY_EXCEEDED")

		case errors.Is(err, createReservation.ErrLimitNotConfigured):
			h.logger.Warn("POST /reservations - Limit not configured: serviceCode=%s", req.ServiceCode)
			handlers.RespondErrorWithCode(w, http.StatusConflict, msgLimitNotConfigured, "LIMIT_NOT_CONFIGURED")

		case errors.Is(err, createReservation.ErrAdmissionTimeout):
			h.logger.Warn("POST /reservations - Admission timeout: serviceCode=%s, date=%s",
				req.ServiceCode, req.PreferredDate)
			handlers.RespondErrorWithCode(w, http.StatusServiceUnavailable, msgAdmissionTimeout, "CONCURRENCY_TIMEOUT")

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: serviceCode=%s, date=%s, error=%v",
				req.ServiceCode, req.PreferredDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, serviceCode=%s, date=%s, start=%s",
		result.ID, req.ServiceCode, req.PreferredDate, req.TimeSlotStart)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
