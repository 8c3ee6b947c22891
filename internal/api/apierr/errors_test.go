package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestWriteErrorMapsModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", model.ErrGameNotFound, http.StatusNotFound, CodeGameNotFound},
		{"wrapped not found", fmt.Errorf("delete game 3: %w", model.ErrGameNotFound), http.StatusNotFound, CodeGameNotFound},
		{"invalid id", model.ErrInvalidID, http.StatusBadRequest, CodeInvalidRequest},
		{"id mismatch", model.ErrIDMismatch, http.StatusBadRequest, CodeInvalidRequest},
		{"bad request", NewInvalidRequestError("nope"), http.StatusBadRequest, CodeInvalidRequest},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.code, decode(t, rr).Error.Code)
		})
	}
}

func TestWriteErrorIncludesValidationFields(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, &model.ValidationError{Fields: map[string]string{"title": "Title is required"}})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, CodeInvalidGame, resp.Error.Code)
	assert.Equal(t, "Title is required", resp.Error.Fields["title"])
}

func TestInternalErrorHidesDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("open /var/db.json: permission denied"))

	assert.NotContains(t, rr.Body.String(), "permission denied")
}
