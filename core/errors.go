package core

import (
	"fmt"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	// ErrAuthTimeout is returned when the auth collaborator did not become ready in time.
	ErrAuthTimeout = errors.New("timed out waiting for authentication")
	// ErrMissingTenant is returned when a tenant-scoped user has no school.
	ErrMissingTenant = errors.New("authenticated user has no school")
)

// APIError is returned when the API answers with a non-2xx status or `success: false`.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if txt := http.StatusText(e.Status); txt != "" {
		return strings.ToLower(txt)
	}
	return "request failed"
}

// NotFound reports whether the API answered with 404.
func (e *APIError) NotFound() bool { return e.Status == http.StatusNotFound }

// NetworkError is returned when a request could not be completed at all.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetwork reports whether the cause of err is a *NetworkError.
func IsNetwork(err error) bool {
	_, ok := errors.Cause(err).(*NetworkError)
	return ok
}

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewFieldsValidationError converts validator errors into a *ValidationError with translated messages.
// Any other error is returned as is.
func NewFieldsValidationError(err error, translator ut.Translator) error {
	vErrs, ok := errors.Cause(err).(validator.ValidationErrors)
	if !ok {
		return err
	}
	flds := make([]FieldError, 0, len(vErrs))
	for _, vErr := range vErrs {
		msg := vErr.Error()
		if translator != nil {
			msg = vErr.Translate(translator)
		}
		flds = append(flds, FieldError{Field: vErr.Field(), Error: msg})
	}
	return &ValidationError{Err: errors.New("validation failed"), Fields: flds}
}

func (err ValidationError) Error() string {
	if len(err.Fields) > 0 {
		parts := make([]string, 0, len(err.Fields))
		for _, f := range err.Fields {
			parts = append(parts, f.Field+": "+f.Error)
		}
		return strings.Join(parts, "; ")
	}
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// Message returns the user facing message of any error, the way the API envelope carries it.
func Message(err error) string {
	if err == nil {
		return ""
	}
	return errors.Cause(err).Error()
}
