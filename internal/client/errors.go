package client

import (
	"fmt"
	"net/http"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// Operation names carried by client errors
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpHealth = "health"
)

// NetworkError is returned for transport failures and non-success statuses.
// Status is zero when the request never got a response.
type NetworkError struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements error
func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Reason()
}

// Reason describes the failure without the operation prefix
func (e *NetworkError) Reason() string {
	switch {
	case e.Err != nil:
		return e.Err.Error()
	case e.Message != "":
		return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
	default:
		return fmt.Sprintf("HTTP %d %s", e.Status, http.StatusText(e.Status))
	}
}

// Unwrap returns the transport error, if any
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError is returned when the store has no game with the requested id
type NotFoundError struct {
	Op string
	ID model.GameID
}

// Error implements error
func (e *NotFoundError) Error() string {
	return e.Op + ": " + e.Reason()
}

// Reason describes the failure without the operation prefix
func (e *NotFoundError) Reason() string {
	return fmt.Sprintf("game %s not found", e.ID)
}

// Is lets errors.Is(err, model.ErrGameNotFound) match
func (e *NotFoundError) Is(target error) bool {
	return target == model.ErrGameNotFound
}
