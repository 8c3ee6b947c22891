package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/gamehorizon/gamehorizon/internal/api/request"
	"github.com/gamehorizon/gamehorizon/internal/api/response"
	"github.com/gamehorizon/gamehorizon/internal/model"
	"github.com/gamehorizon/gamehorizon/internal/services/collection"
)

// maxBodyBytes bounds request bodies; a record is a few hundred bytes
const maxBodyBytes = 64 << 10

// GameHandler handles the /games resource
type GameHandler struct {
	collection *collection.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(collection *collection.Service) *GameHandler {
	return &GameHandler{collection: collection}
}

// List handles GET /games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.collection.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Get handles GET /games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseGameID(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	game, err := h.collection.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(*game))
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeGame(w, r)
	if !ok {
		return
	}

	created, err := h.collection.Create(r.Context(), req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Location", "/games/"+created.ID.String())
	response.JSON(w, http.StatusCreated, response.GameFromModel(created))
}

// Update handles PUT /games/{id}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseGameID(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	req, ok := decodeGame(w, r)
	if !ok {
		return
	}

	updated, err := h.collection.Update(r.Context(), id, req.ToModel())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(updated))
}

// Delete handles DELETE /games/{id}. An unknown id is a 404.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := model.ParseGameID(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.collection.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func decodeGame(w http.ResponseWriter, r *http.Request) (request.GameRequest, bool) {
	var req request.GameRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return req, false
	}
	return req, true
}
