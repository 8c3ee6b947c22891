package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gamehorizon/gamehorizon/internal/middleware"
	"github.com/gamehorizon/gamehorizon/internal/web/templates/layout"
	"github.com/gamehorizon/gamehorizon/internal/web/templates/pages"
)

// ErrorMessage is shown on the page rendered after a panic
const ErrorMessage = "Something went wrong. Please try again."

// Recovery creates panic recovery middleware for the web interface.
// A panic renders an HTML error page inside the usual layout.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, r *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	data := pages.ErrorData{
		PageData: layout.PageData{Title: "Error"},
		Message:  ErrorMessage,
	}
	_ = pages.Error(data).Render(r.Context(), w)
}
