// Waypoint - Trip Itinerary Scheduling and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/waypoint

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is one failed rule on one field.
type ValidationError struct {
	field, tag, param string
	value             interface{}
	message           string
}

func (e *ValidationError) Field() string      { return e.field }
func (e *ValidationError) Tag() string        { return e.tag }
func (e *ValidationError) Param() string      { return e.param }
func (e *ValidationError) Value() interface{} { return e.value }

// Error returns the user-facing message, e.g. "pace must be one of: relaxed balanced packed".
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError represents a collection of validation errors.
// It provides methods to convert errors to the application's APIError format.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the slice of validation errors.
func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

// Error joins the field messages with "; ".
func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(ve.errors))
	for i := range ve.errors {
		parts[i] = ve.errors[i].message
	}
	return strings.Join(parts, "; ")
}

// CodeValidationFailed is the API error code for rejected request bodies.
const CodeValidationFailed = "VALIDATION_FAILED"

// APIError mirrors models.APIError so this package stays free of model imports.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts validation errors to the application's APIError format.
func (ve *RequestValidationError) ToAPIError() *APIError {
	if len(ve.errors) == 0 {
		return &APIError{
			Code:    CodeValidationFailed,
			Message: "Validation failed",
		}
	}

	// Single error - use simple message
	if len(ve.errors) == 1 {
		err := ve.errors[0]
		return &APIError{
			Code:    CodeValidationFailed,
			Message: err.message,
			Details: map[string]interface{}{
				"field": err.field,
				"tag":   err.tag,
				"value": err.value,
			},
		}
	}

	// Multiple errors - list all fields
	fields := make([]map[string]interface{}, len(ve.errors))
	summary := make([]string, len(ve.errors))
	for i, err := range ve.errors {
		fields[i] = map[string]interface{}{
			"field":   err.field,
			"tag":     err.tag,
			"message": err.message,
		}
		summary[i] = err.field + ": " + err.message
	}

	return &APIError{
		Code:    CodeValidationFailed,
		Message: strings.Join(summary, "; "),
		Details: map[string]interface{}{
			"fields": fields,
		},
	}
}

// GetValidator returns the shared validator, built on first use.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON field names so errors match the request body.
		validate.RegisterTagNameFunc(jsonFieldName)

		// Registration only fails for empty tags or nil functions.
		_ = validate.RegisterValidation("notblank", notBlank)
	})

	return validate
}

// jsonFieldName returns the json tag name of a field, or the Go name when the
// field has no usable json tag.
func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	default:
		return name
	}
}

// notBlank rejects strings that are empty after trimming whitespace.
func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}

// ValidateStruct runs the struct's validate tags. It returns nil on success.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		// InvalidValidationError: s was not a struct
		return &RequestValidationError{errors: []ValidationError{{
			field: "unknown", tag: "unknown", message: err.Error(),
		}}}
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

// messages renders a failed tag for a field. Tags without an entry fall back
// to "<field> failed <tag> validation".
var messages = map[string]func(field, param string, isString bool) string{
	"required":  fixed("%s is required"),
	"notblank":  fixed("%s must not be blank"),
	"latitude":  fixed("%s must be a valid latitude (-90 to 90)"),
	"longitude": fixed("%s must be a valid longitude (-180 to 180)"),
	"oneof":     withParam("%s must be one of: %s"),
	"gte":       withParam("%s must be greater than or equal to %s"),
	"lte":       withParam("%s must be less than or equal to %s"),
	"gt":        withParam("%s must be greater than %s"),
	"lt":        withParam("%s must be less than %s"),
	"min":       bound("at least"),
	"max":       bound("at most"),
}

func fixed(format string) func(string, string, bool) string {
	return func(field, _ string, _ bool) string { return fmt.Sprintf(format, field) }
}

func withParam(format string) func(string, string, bool) string {
	return func(field, param string, _ bool) string { return fmt.Sprintf(format, field, param) }
}

// bound words min/max as a length for strings and a count or value otherwise.
func bound(word string) func(string, string, bool) string {
	return func(field, param string, isString bool) string {
		if isString {
			return fmt.Sprintf("%s must be %s %s characters", field, word, param)
		}
		return fmt.Sprintf("%s must be %s %s", field, word, param)
	}
}

func translateError(fe validator.FieldError) string {
	render, ok := messages[fe.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
	return render(fe.Field(), fe.Param(), fe.Kind() == reflect.String)
}
