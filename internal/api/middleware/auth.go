package middleware

import (
	"crypto/subtle"
	"net/http"

	"event-slot-service/internal/api/handlers"
)

const organizerTokenHeader = "X-Organizer-Token"

const msgUnauthorized = "требуется токен организатора"

// Auth проверяет токен организатора на административных маршрутах.
// Токен статический, из конфигурации; сравнение за константное время.
func Auth(token string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(organizerTokenHeader)
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warn("Auth: rejected %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
