// Package validation provides struct validation using go-playground/validator v10.
// A single validator instance is shared by the whole process; it caches struct
// metadata and is safe for concurrent use.
//
// Example usage:
//
//	type SubscribeRequest struct {
//	    Email   string `json:"email" validate:"required,email"`
//	    Consent bool   `json:"consent"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    // err is a *validation.RequestValidationError
//	}
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is a single field validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message"`
}

// RequestValidationError collects every field failure of one struct.
type RequestValidationError struct {
	Fields []FieldError
}

// Error implements the error interface, returning a combined error message.
func (ve *RequestValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		messages = append(messages, fe.Field+": "+fe.Message)
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// It returns nil when validation passes and a *RequestValidationError otherwise.
func ValidateStruct(s interface{}) error {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("validate struct: %w", err)
	}

	result := &RequestValidationError{Fields: make([]FieldError, 0, len(validationErrs))}
	for _, fe := range validationErrs {
		result.Fields = append(result.Fields, FieldError{
			Field:   fe.Namespace(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe),
		})
	}
	return result
}

// ValidateVar validates a single value against a tag expression, e.g. ValidateVar(email, "required,email").
func ValidateVar(value interface{}, tag string) error {
	return GetValidator().Var(value, tag)
}

// translateError converts a validator.FieldError into a human-readable message.
func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "gtfield", "gtefield":
		return "must be greater than " + fe.Param()
	default:
		return fmt.Sprintf("failed '%s' validation", fe.Tag())
	}
}
