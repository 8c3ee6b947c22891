package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamehorizon/gamehorizon/internal/ui"
	"github.com/gamehorizon/gamehorizon/internal/web/handler"
	"github.com/gamehorizon/gamehorizon/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger     *slog.Logger
	Controller *ui.Controller
	StaticDir  string // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Global middleware; logging is outermost so recovered panics are logged with a status
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))

	collectionHandler := handler.NewCollectionHandler(cfg.Controller, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	pages := r.NewRoute().Subrouter()
	pages.Use(middleware.Flash())

	pages.HandleFunc("/", collectionHandler.Index).Methods(http.MethodGet)
	pages.HandleFunc("/games/new", collectionHandler.New).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/edit", collectionHandler.Edit).Methods(http.MethodGet)
	pages.HandleFunc("/games/{id}/delete", collectionHandler.Delete).Methods(http.MethodPost)

	// Form actions
	pages.HandleFunc("/form", collectionHandler.Submit).Methods(http.MethodPost)
	pages.HandleFunc("/form/field", collectionHandler.Field).Methods(http.MethodPost)
	pages.HandleFunc("/form/cancel", collectionHandler.Cancel).Methods(http.MethodPost)

	pages.HandleFunc("/banner/dismiss", collectionHandler.Dismiss).Methods(http.MethodPost)

	return r
}
