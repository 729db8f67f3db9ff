package create_closure

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/closures"
	"github.com/m04kA/SMC-ReservationService/internal/service/closures/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"
)

// CreateClosureRequest HTTP request model
type CreateClosureRequest struct {
	ClosureDate   string  `json:"closureDate"` // "2026-09-02"
	Period        string  `json:"period"`
	TimeSlotStart string  `json:"timeSlotStart"`
	TimeSlotEnd   *string `json:"timeSlotEnd,omitempty"`
	ServiceCode   *string `json:"serviceCode,omitempty"`
	Reason        string  `json:"reason"`
}

type Handler struct {
	service ClosureService
	logger  Logger
}

func NewHandler(service ClosureService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/closures
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateClosureRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /closures - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	closureDate, err := time.Parse(domain.DateFormat, req.ClosureDate)
	if err != nil {
		h.logger.Warn("POST /closures - Invalid date %q: %v", req.ClosureDate, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.Create(r.Context(), &models.CreateClosureRequest{
		ClosureDate:   closureDate,
		Period:        req.Period,
		TimeSlotStart: req.TimeSlotStart,
		TimeSlotEnd:   req.TimeSlotEnd,
		ServiceCode:   req.ServiceCode,
		Reason:        req.Reason,
		CreatedBy:     middleware.StaffIDFromContext(r.Context()),
	})
	if err != nil {
		switch {
		case errors.Is(err, closures.ErrInvalidInput):
			h.logger.Warn("POST /closures - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, closures.ErrServiceNotFound):
			h.logger.Warn("POST /closures - Service not found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /closures - Failed: date=%s, error=%v", req.ClosureDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /closures - Closure created: closure_id=%d, date=%s, period=%s, start=%s",
		result.ID, req.ClosureDate, req.Period, req.TimeSlotStart)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
