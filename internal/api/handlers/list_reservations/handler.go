package list_reservations

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

const (
	msgMissingDate     = "параметр date обязателен"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound = "услуга не найдена"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?date=YYYY-MM-DD&serviceCode=...&period=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.ListRequest{Date: date}
	if serviceCode := r.URL.Query().Get("serviceCode"); serviceCode != "" {
		req.ServiceCode = &serviceCode
	}
	if period := r.URL.Query().Get("period"); period != "" {
		req.Period = &period
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, reservations.ErrServiceNotFound):
			h.logger.Warn("GET /reservations - Service not found: date=%s", dateStr)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /reservations - Failed: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
