package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/ui"
	"github.com/gamehorizon/gamehorizon/internal/ui/form"
	"github.com/gamehorizon/gamehorizon/internal/web/middleware"
	"github.com/gamehorizon/gamehorizon/internal/web/templates/components"
	"github.com/gamehorizon/gamehorizon/internal/web/templates/layout"
	"github.com/gamehorizon/gamehorizon/internal/web/templates/pages"
)

// formFields are applied in this order when the whole form is posted
var formFields = []form.Field{
	form.FieldTitle,
	form.FieldGenre,
	form.FieldPlatforms,
	form.FieldReleaseYear,
	form.FieldRating,
	form.FieldCompleted,
	form.FieldMultiplayer,
}

// CollectionHandler serves the collection page and its actions
type CollectionHandler struct {
	controller *ui.Controller
	logger     *slog.Logger
}

// NewCollectionHandler creates a new CollectionHandler
func NewCollectionHandler(controller *ui.Controller, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{
		controller: controller,
		logger:     logger,
	}
}

func isCheckbox(field form.Field) bool {
	switch field {
	case form.FieldPlatforms, form.FieldCompleted, form.FieldMultiplayer:
		return true
	}
	return false
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// render writes the main region for HTMX requests and the full page otherwise
func (h *CollectionHandler) render(w http.ResponseWriter, r *http.Request, status int) {
	view := h.controller.View()

	var c templ.Component
	if isHTMX(r) {
		c = components.App(view)
	} else {
		c = pages.Collection(pages.CollectionData{
			PageData: layout.PageData{
				Title: layout.AppName,
				Flash: middleware.GetFlash(r.Context()),
			},
			View: view,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render page", slog.String("error", err.Error()))
	}
}

// done finishes a successful action: HTMX gets the updated region, a plain
// form post is redirected home with a flash message
func (h *CollectionHandler) done(w http.ResponseWriter, r *http.Request, flash string) {
	if isHTMX(r) {
		h.render(w, r, http.StatusOK)
		return
	}
	if flash != "" {
		middleware.SetFlash(w, middleware.FlashSuccess, flash)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ensureLoaded fetches the collection if nothing has been loaded yet
func (h *CollectionHandler) ensureLoaded(r *http.Request) {
	if !h.controller.View().State.Loaded {
		_ = h.controller.Load(r.Context())
	}
}

// Index handles GET /: every full page load resynchronises with the store
func (h *CollectionHandler) Index(w http.ResponseWriter, r *http.Request) {
	// A failed load is shown in the banner
	_ = h.controller.Load(r.Context())
	h.render(w, r, http.StatusOK)
}

// New handles GET /games/new
func (h *CollectionHandler) New(w http.ResponseWriter, r *http.Request) {
	h.ensureLoaded(r)
	h.controller.OpenCreate()
	h.render(w, r, http.StatusOK)
}

// Edit handles GET /games/{id}/edit
func (h *CollectionHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseGameID(mux.Vars(r)["id"])
	if err != nil {
		h.notFound(w, r)
		return
	}

	h.ensureLoaded(r)
	if err := h.controller.OpenEdit(id); err != nil {
		h.notFound(w, r)
		return
	}
	h.render(w, r, http.StatusOK)
}

func (h *CollectionHandler) notFound(w http.ResponseWriter, r *http.Request) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", "/")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	middleware.SetFlash(w, middleware.FlashError, "Game not found")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Field handles POST /form/field: one incremental change, answered with the
// re-rendered form
func (h *CollectionHandler) Field(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	field := form.Field(r.PostForm.Get("field"))
	f, err := h.controller.UpdateField(field, r.PostForm[string(field)])
	if errors.Is(err, ui.ErrNoForm) {
		h.done(w, r, "")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := components.GameForm(f).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render form", slog.String("error", err.Error()))
	}
}

// Submit handles POST /form
func (h *CollectionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	for _, field := range formFields {
		// Unchecked boxes are absent from the post; other inputs are always sent
		if _, sent := r.PostForm[string(field)]; !sent && !isCheckbox(field) {
			continue
		}
		if _, err := h.controller.UpdateField(field, r.PostForm[string(field)]); err != nil {
			h.done(w, r, "")
			return
		}
	}

	open := h.controller.View().Form
	editing := open != nil && open.IsEdit()
	err := h.controller.Submit(r.Context())

	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		h.render(w, r, http.StatusUnprocessableEntity)
	case err != nil:
		// The banner carries the failure; the form stays open for a retry
		h.render(w, r, http.StatusOK)
	case editing:
		h.done(w, r, "Game updated")
	default:
		h.done(w, r, "Game added")
	}
}

// Cancel handles POST /form/cancel
func (h *CollectionHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.controller.Cancel()
	h.done(w, r, "")
}

// Delete handles POST /games/{id}/delete
func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseGameID(mux.Vars(r)["id"])
	if err != nil {
		h.notFound(w, r)
		return
	}

	if err := h.controller.Delete(r.Context(), id); err != nil {
		h.render(w, r, http.StatusOK)
		return
	}
	h.done(w, r, "Game deleted")
}

// Dismiss handles POST /banner/dismiss
func (h *CollectionHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	h.controller.DismissError()
	h.done(w, r, "")
}
