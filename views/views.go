// Package views holds the view-model layer: each view declares the
// queries and mutations it needs, owns its transient UI state (open
// dialogs, active tab, form fields), and filters already-fetched data
// purely when tabs switch. Rendering is up to the embedding frontend.
//
// Forms are validated locally before any mutation fires; a validation
// failure parks field messages on the view and never reaches the
// network. Views are not safe for concurrent use.
package views

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldErrors maps form field names to inline messages.
type FieldErrors map[string]string

// validateStruct runs tag validation and flattens the result into
// per-field messages keyed by struct field name.
func validateStruct(v any) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	fields := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return fields
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "too short"
	case "gt", "gte":
		return "must be a positive number"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value"
	}
}
