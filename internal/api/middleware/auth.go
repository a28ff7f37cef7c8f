package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-ConsultationService/internal/api/handlers"
)

// StaffKeyHeader заголовок с ключом персонала
const StaffKeyHeader = "X-Staff-Key"

// StaffAuth проверяет ключ персонала для административных маршрутов.
// Ключ задается в конфигурации сервиса.
func StaffAuth(staffKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(StaffKeyHeader)
			if provided == "" {
				handlers.RespondUnauthorized(w, "отсутствует ключ персонала")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(staffKey)) != 1 {
				handlers.RespondForbidden(w, "неверный ключ персонала")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
