package middleware

import (
	"net/http"

	"github.com/gorilla/handlers"
)

// Preflight answers are cached by browsers for this many seconds
const corsMaxAge = 600

// NoCache marks every response as uncacheable
func NoCache() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "no-store")
			w.Header().Set("Pragma", "no-cache")
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows cross-origin requests from any origin.
// Preflight requests are answered directly with 204 and never reach next.
func CORS() func(http.Handler) http.Handler {
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.OptionStatusCode(http.StatusNoContent),
		handlers.MaxAge(corsMaxAge),
	)
}
