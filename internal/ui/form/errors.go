package form

import (
	"maps"
	"slices"
	"strings"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// Field names a form input. Values match the record's JSON keys.
type Field string

const (
	FieldTitle       Field = "title"
	FieldGenre       Field = "genre"
	FieldPlatforms   Field = "platforms"
	FieldReleaseYear Field = "releaseYear"
	FieldRating      Field = "rating"
	FieldCompleted   Field = "completed"
	FieldMultiplayer Field = "multiplayer"
)

// Validation messages
const (
	MsgTitleRequired    = "Title is required"
	MsgTitleTooLong     = "Title must be at most 100 characters"
	MsgPlatformRequired = "Select at least one platform"
)

// FieldErrors holds at most one message per field
type FieldErrors struct {
	m map[Field]string
}

// Set records msg for f, replacing any previous message
func (e *FieldErrors) Set(f Field, msg string) {
	if e.m == nil {
		e.m = make(map[Field]string)
	}
	e.m[f] = msg
}

// Clear removes the message for f
func (e *FieldErrors) Clear(f Field) {
	delete(e.m, f)
}

// Get returns the message for f, or "" if there is none
func (e FieldErrors) Get(f Field) string {
	return e.m[f]
}

// Has reports whether f has a message
func (e FieldErrors) Has(f Field) bool {
	_, ok := e.m[f]
	return ok
}

// Empty reports whether no field has a message
func (e FieldErrors) Empty() bool {
	return len(e.m) == 0
}

// Fields returns the fields with messages, sorted
func (e FieldErrors) Fields() []Field {
	return slices.Sorted(maps.Keys(e.m))
}

// clone returns an independent copy
func (e FieldErrors) clone() FieldErrors {
	return FieldErrors{m: maps.Clone(e.m)}
}

// ValidationError is returned by Submit when the form holds invalid input.
// It never leaves the form; nothing is sent to the store.
type ValidationError struct {
	Fields FieldErrors
}

// Error implements error
func (e *ValidationError) Error() string {
	fields := e.Fields.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f) + ": " + e.Fields.Get(f)
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, model.ErrInvalidGame) match
func (e *ValidationError) Is(target error) bool {
	return target == model.ErrInvalidGame
}
