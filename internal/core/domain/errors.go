package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every specific error below wraps exactly one of them so callers
// can branch with errors.Is on the kind.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Identity errors
var (
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrEmailNotFound     = fmt.Errorf("email %w", ErrNotFound)
	ErrEmailAlreadyInUse = fmt.Errorf("email already in use: %w", ErrConflict)
	ErrCannotRemoveSelf  = fmt.Errorf("cannot remove your own account: %w", ErrInvalidOperation)
	ErrNoSession         = fmt.Errorf("no active session: %w", ErrUnauthenticated)
)

// Loan errors
var (
	ErrLoanNotFound = fmt.Errorf("loan %w", ErrNotFound)
)

// ValidationError carries per-field messages for a rejected input
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			return fmt.Sprintf("%s: %s", field, msg)
		}
	}
	return fmt.Sprintf("%s: %d invalid fields", ErrValidation, len(e.Fields))
}

// Unwrap lets errors.Is(err, ErrValidation) match
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError builds a single-field validation error
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// TransitionError reports a rejected status change
type TransitionError struct {
	From LoanStatus
	To   LoanStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
