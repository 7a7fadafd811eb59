// Package apperr holds the error taxonomy shared by the storefront
// packages. Callers classify failures with errors.Is and errors.As.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrGateway           = errors.New("gateway failure")
	ErrMalformedState    = errors.New("malformed local state")
	ErrInvalidCredential = errors.New("invalid PIN")
	ErrPinExists         = errors.New("PIN already exists")
)

// ValidationError reports a missing or invalid required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a ValidationError for field.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// GatewayError wraps a failure of the persistence layer itself. The
// message of the underlying error is kept so it can be shown to users.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

func (e *GatewayError) Is(target error) bool {
	return target == ErrGateway
}

// Gateway wraps err as a GatewayError for op. Errors that already carry
// a classification (validation, not found, credential) pass through.
func Gateway(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidCredential) ||
		errors.Is(err, ErrPinExists) ||
		errors.Is(err, ErrGateway) {
		return err
	}
	return &GatewayError{Op: op, Err: err}
}
