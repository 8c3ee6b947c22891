package collection

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gamehorizon/gamehorizon/internal/model"
)

// newValidator builds a validator that knows the fixed genre, platform and
// rating lists and reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
		return model.Genre(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		return model.Platform(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
		return model.ValidRating(fl.Field().Float())
	})

	return v
}

// toValidationError converts validator output into per-field messages
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field, _, _ := strings.Cut(fe.Field(), "[")
		if _, ok := fields[field]; ok {
			continue
		}
		fields[field] = fieldMessage(field, fe)
	}
	return &model.ValidationError{Fields: fields}
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if field == "title" {
			return "Title is required"
		}
		return field + " is required"
	case "max":
		if field == "title" {
			return fmt.Sprintf("Title must be at most %d characters", model.MaxTitleLength)
		}
		return field + " is too long"
	case "min":
		if field == "platforms" {
			return "Select at least one platform"
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "genre":
		return fmt.Sprintf("Unknown genre %q", fe.Value())
	case "platform":
		return fmt.Sprintf("Unknown platform %q", fe.Value())
	case "rating":
		return "Rating must be between 1.0 and 5.0 in 0.5 steps"
	default:
		return field + " is invalid"
	}
}
