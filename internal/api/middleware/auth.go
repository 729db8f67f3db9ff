package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// StaffIDHeader заголовок идентификации сотрудника для staff-маршрутов
// Аутентификацию выполняет внешний gateway, сюда приходит уже проверенный идентификатор
const StaffIDHeader = "X-Staff-ID"

const msgStaffRequired = "требуется идентификатор сотрудника"

type staffIDKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// StaffAuth проверяет наличие идентификатора сотрудника на staff-маршрутах
// и кладет его в контекст запроса
func StaffAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staffID := r.Header.Get(StaffIDHeader)
			if staffID == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, StaffIDHeader)
				handlers.RespondError(w, http.StatusUnauthorized, msgStaffRequired)
				return
			}

			ctx := context.WithValue(r.Context(), staffIDKey{}, staffID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StaffIDFromContext возвращает идентификатор сотрудника, положенный StaffAuth
func StaffIDFromContext(ctx context.Context) string {
	staffID, _ := ctx.Value(staffIDKey{}).(string)
	return staffID
}
