package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gamehorizon/gamehorizon/internal/middleware"
)

// Logging creates request logging middleware for the web interface.
// Each request gets an X-Request-ID before it is logged.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	requestID := middleware.RequestID()
	logging := middleware.Logging(logger)
	return func(next http.Handler) http.Handler {
		return requestID(logging(next))
	}
}
