package check_closure_conflict

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	checkClosureConflict "github.com/m04kA/SMC-ReservationService/internal/usecase/check_closure_conflict"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound    = "услуга не найдена"

	msgRecommendContact = "в слоте есть активные записи: свяжитесь с пациентами перед закрытием"
	msgRecommendSafe    = "активных записей в слоте нет, закрытие безопасно"
)

type Handler struct {
	useCase CheckClosureConflictUseCase
	logger  Logger
}

func NewHandler(useCase CheckClosureConflictUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/closures/check-conflict
// Отчет информационный: наличие конфликтов не блокирует последующее закрытие
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckConflictRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /closures/check-conflict - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /closures/check-conflict - Failed to parse date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkClosureConflict.ErrInvalidInput):
			h.logger.Warn("POST /closures/check-conflict - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, checkClosureConflict.ErrServiceNotFound):
			h.logger.Warn("POST /closures/check-conflict - Service not found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /closures/check-conflict - Failed: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /closures/check-conflict - Checked: date=%s, period=%s, conflicts=%d",
		req.Date, req.Period, result.ConflictCount)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
