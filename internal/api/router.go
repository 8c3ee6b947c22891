package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamehorizon/gamehorizon/internal/api/apierr"
	"github.com/gamehorizon/gamehorizon/internal/api/handler"
	apimiddleware "github.com/gamehorizon/gamehorizon/internal/api/middleware"
	"github.com/gamehorizon/gamehorizon/internal/api/response"
	"github.com/gamehorizon/gamehorizon/internal/middleware"
	"github.com/gamehorizon/gamehorizon/internal/services/collection"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	CollectionService *collection.Service
}

// NewRouter creates the record store router.
// Header, CORS, logging and recovery middleware wrap the whole router rather than
// being attached with r.Use, so unmatched routes and preflight requests get them too.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	gameHandler := handler.NewGameHandler(cfg.CollectionService)

	r.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	r.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	r.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}", gameHandler.Update).Methods(http.MethodPut)
	r.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewNotFoundError())
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewMethodNotAllowedError())
	})

	return chain(r,
		middleware.RequestID(),
		apimiddleware.Recovery(cfg.Logger),
		middleware.Logging(cfg.Logger),
		middleware.NoCache(),
		middleware.CORS(),
	)
}

// chain applies mw so the first one listed is outermost
func chain(h http.Handler, mw ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}
