package get_service_limits

import (
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
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

// Handle GET /api/v1/service-limits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /service-limits - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
