package model

import (
	"errors"
	"sort"
	"strings"
)

// Common errors used across the application
var (
	// Game errors
	ErrGameNotFound = errors.New("game not found")
	ErrInvalidGame  = errors.New("invalid game")
	ErrInvalidID    = errors.New("invalid game id")
	ErrIDMismatch   = errors.New("game id does not match path")

	// Storage errors
	ErrStorageClosed = errors.New("storage is closed")
)

// ValidationError carries per-field messages for a rejected record.
// It matches ErrInvalidGame with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

// Error implements error
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "invalid game: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalidGame) match
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidGame
}
