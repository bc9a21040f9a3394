package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so the HTTP layer can pick a status code.
type ErrorKind string

const (
	KindValidation  ErrorKind = "VALIDATION"
	KindConflict    ErrorKind = "CONFLICT"
	KindNotFound    ErrorKind = "NOT_FOUND"
	KindTransaction ErrorKind = "TRANSACTION"
	KindConnection  ErrorKind = "CONNECTION"
)

// DomainError is a classified business-logic error.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationError reports malformed or out-of-enum input.
func NewValidationError(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// NewConflictError reports a uniqueness or referential-guard violation.
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// NewNotFoundError reports a lookup miss.
func NewNotFoundError(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// NewConnectionError reports pool exhaustion or connectivity loss.
func NewConnectionError(message string, cause error) *DomainError {
	return &DomainError{Kind: KindConnection, Message: message, Err: cause}
}

// NewTransactionError reports a failure inside a multi-statement write.
// When the cause is already a classified domain error (a unique-constraint
// conflict, say) the cause keeps its identity so the HTTP layer maps it to
// the right status instead of a blanket 500.
func NewTransactionError(message string, cause error) error {
	var de *DomainError
	if errors.As(cause, &de) && (de.Kind == KindValidation || de.Kind == KindConflict) {
		return de
	}
	return &DomainError{Kind: KindTransaction, Message: message, Err: cause}
}

// KindOf returns the classification of err, or "" for unclassified errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConflict reports whether err is a conflict error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
