package update_service_limit

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/service/limits"
	"github.com/m04kA/SMC-ReservationService/internal/service/limits/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service LimitService
	logger  Logger
}

func NewHandler(service LimitService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/service-limits/{serviceCode}
// Изменение лимита действует со следующей проверки допуска
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceCode := mux.Vars(r)["serviceCode"]

	var req models.UpsertLimitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-limits/{serviceCode} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UpdatedBy = middleware.StaffIDFromContext(r.Context())

	result, err := h.service.Upsert(r.Context(), serviceCode, &req)
	if err != nil {
		switch {
		case errors.Is(err, limits.ErrInvalidInput):
			h.logger.Warn("PUT /service-limits/{serviceCode} - Invalid input: serviceCode=%s, error=%v",
				serviceCode, err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, limits.ErrServiceNotFound):
			h.logger.Warn("PUT /service-limits/{serviceCode} - Service not found: serviceCode=%s", serviceCode)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("PUT /service-limits/{serviceCode} - Failed: serviceCode=%s, error=%v", serviceCode, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /service-limits/{serviceCode} - Limit set: serviceCode=%s, dailyLimit=%d",
		serviceCode, result.DailyLimit)
	handlers.RespondJSON(w, http.StatusOK, result)
}
