package api_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehorizon/gamehorizon/internal/api"
	"github.com/gamehorizon/gamehorizon/internal/api/apierr"
	"github.com/gamehorizon/gamehorizon/internal/api/response"
	"github.com/gamehorizon/gamehorizon/internal/factory"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		CollectionService: app.CollectionService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		data, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:3000")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func hadesBody() map[string]any {
	return map[string]any{
		"title":       "Hades",
		"genre":       "RPG",
		"platforms":   []string{"PC"},
		"releaseYear": 2020,
		"rating":      4.5,
		"completed":   true,
		"multiplayer": false,
	}
}

func decodeGame(t *testing.T, rr *httptest.ResponseRecorder) response.Game {
	t.Helper()
	var g response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	return g
}

func decodeGames(t *testing.T, rr *httptest.ResponseRecorder) []response.Game {
	t.Helper()
	var games []response.Game
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &games))
	return games
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func (ts *testServer) createHades(t *testing.T) response.Game {
	t.Helper()
	rr := ts.request(http.MethodPost, "/games", hadesBody())
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeGame(t, rr)
}

func assertStoreHeaders(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "no-cache", rr.Header().Get("Pragma"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestListEmptyReturnsArray(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/games", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())
	assertStoreHeaders(t, rr)
}

func TestListIgnoresCacheBustingParameter(t *testing.T) {
	ts := newTestServer(t)
	ts.createHades(t)

	rr := ts.request(http.MethodGet, "/games?_=1729300000000", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeGames(t, rr), 1)
}

func TestCreateGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/games", hadesBody())
	require.Equal(t, http.StatusCreated, rr.Code)
	assertStoreHeaders(t, rr)

	created := decodeGame(t, rr)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Hades", created.Title)
	assert.Equal(t, "RPG", created.Genre)
	assert.Equal(t, []string{"PC"}, created.Platforms)
	assert.Equal(t, 2020, created.ReleaseYear)
	assert.Equal(t, 4.5, created.Rating)
	assert.True(t, created.Completed)
	assert.False(t, created.Multiplayer)
	assert.Equal(t, "/games/1", rr.Header().Get("Location"))

	rr = ts.request(http.MethodGet, "/games", nil)
	games := decodeGames(t, rr)
	require.Len(t, games, 1)
	assert.Equal(t, created, games[0])
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	ts := newTestServer(t)

	seen := map[int64]bool{}
	for range 10 {
		g := ts.createHades(t)
		assert.False(t, seen[g.ID])
		seen[g.ID] = true
	}
}

func TestCreateAcceptsStringRating(t *testing.T) {
	ts := newTestServer(t)

	body := hadesBody()
	body["rating"] = "3.5"
	rr := ts.request(http.MethodPost, "/games", body)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 3.5, decodeGame(t, rr).Rating)
}

func TestCreateRejectsInvalidGame(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		field string
		value any
	}{
		{"empty title", "title", ""},
		{"long title", "title", strings.Repeat("a", 101)},
		{"no platforms", "platforms", []string{}},
		{"unknown platform", "platforms", []string{"Amiga"}},
		{"unknown genre", "genre", "Roguelike"},
		{"off-step rating", "rating", 4.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := hadesBody()
			body[tt.field] = tt.value

			rr := ts.request(http.MethodPost, "/games", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			apiErr := decodeError(t, rr)
			assert.Equal(t, apierr.CodeInvalidGame, apiErr.Code)
			assert.Contains(t, apiErr.Fields, tt.field)
		})
	}

	rr := ts.request(http.MethodGet, "/games", nil)
	assert.Empty(t, decodeGames(t, rr))
}

func TestCreateRejectsMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/games", "{not json")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, apierr.CodeInvalidRequest, decodeError(t, rr).Code)
}

func TestGetGame(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createHades(t)

	rr := ts.request(http.MethodGet, "/games/1", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created, decodeGame(t, rr))

	rr = ts.request(http.MethodGet, "/games/99", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/games/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateGame(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createHades(t)
	ts.createHades(t)

	body := hadesBody()
	body["id"] = created.ID
	body["rating"] = 3.5
	body["multiplayer"] = true

	rr := ts.request(http.MethodPut, "/games/1", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assertStoreHeaders(t, rr)

	updated := decodeGame(t, rr)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 3.5, updated.Rating)
	assert.True(t, updated.Multiplayer)

	rr = ts.request(http.MethodGet, "/games", nil)
	games := decodeGames(t, rr)
	require.Len(t, games, 2)
	assert.Equal(t, updated, games[0])
}

func TestUpdateAcceptsStringID(t *testing.T) {
	ts := newTestServer(t)
	ts.createHades(t)

	body := hadesBody()
	body["id"] = "1"
	rr := ts.request(http.MethodPut, "/games/1", body)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateMissingGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPut, "/games/5", hadesBody())
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeGameNotFound, decodeError(t, rr).Code)
}

func TestUpdateRejectsMismatchedID(t *testing.T) {
	ts := newTestServer(t)
	ts.createHades(t)

	body := hadesBody()
	body["id"] = 2
	rr := ts.request(http.MethodPut, "/games/1", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteGame(t *testing.T) {
	ts := newTestServer(t)
	created := ts.createHades(t)
	ts.createHades(t)

	rr := ts.request(http.MethodDelete, "/games/1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assertStoreHeaders(t, rr)

	rr = ts.request(http.MethodGet, "/games", nil)
	games := decodeGames(t, rr)
	require.Len(t, games, 1)
	assert.NotEqual(t, created.ID, games[0].ID)
}

func TestDeleteMissingGameIsNotFound(t *testing.T) {
	ts := newTestServer(t)
	ts.createHades(t)

	rr := ts.request(http.MethodDelete, "/games/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertStoreHeaders(t, rr)

	rr = ts.request(http.MethodGet, "/games", nil)
	assert.Len(t, decodeGames(t, rr), 1)
}

func TestPreflightRequest(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/games/1", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assertStoreHeaders(t, rr)
	assert.Equal(t, http.MethodDelete, rr.Header().Get("Access-Control-Allow-Methods"))
}

func TestUnknownRouteAndMethod(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/players", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assertStoreHeaders(t, rr)

	rr = ts.request(http.MethodPatch, "/games/1", hadesBody())
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFullLifecycle(t *testing.T) {
	ts := newTestServer(t)

	created := ts.createHades(t)

	body := hadesBody()
	body["rating"] = 3.5
	body["multiplayer"] = true
	rr := ts.request(http.MethodPut, "/games/1", body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodDelete, "/games/1", nil)
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/games", nil)
	for _, g := range decodeGames(t, rr) {
		assert.NotEqual(t, created.ID, g.ID)
	}
}
