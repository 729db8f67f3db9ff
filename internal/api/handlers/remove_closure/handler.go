package remove_closure

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/service/closures"
)

const (
	msgInvalidID       = "некорректный идентификатор закрытия"
	msgClosureNotFound = "закрытие не найдено"
)

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

// Handle DELETE /api/v1/closures/{id}
// Закрытие деактивируется, а не удаляется; повторное снятие — no-op
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /closures/{id} - Invalid id %q", idStr)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, closures.ErrClosureNotFound):
			h.logger.Warn("DELETE /closures/{id} - Not found: closure_id=%d", id)
			handlers.RespondNotFound(w, msgClosureNotFound)

		default:
			h.logger.Error("DELETE /closures/{id} - Failed: closure_id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /closures/{id} - Closure deactivated: closure_id=%d", id)
	w.WriteHeader(http.StatusNoContent)
}
