// Package apperrors defines the error taxonomy shared by the service, repository
// and handler layers. Callers switch on Kind instead of matching messages.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Violation narrows a storage error down to the constraint that rejected the write.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationUnique
	ViolationNotNull
)

// Error is the single concrete error type carried across layers.
type Error struct {
	Kind      Kind
	Field     string
	Message   string
	Violation Violation
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s (%s): %v", e.Message, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s (%s)", e.Message, e.Field)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a client-fixable error for field.
func Validation(field, message string) *Error {
	return &Error{Kind: KindValidation, Field: field, Message: message}
}

// NotFound creates a not-found error for the given resource and id.
func NotFound(resource string, id int64) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with ID %d not found", resource, id)}
}

// Storage wraps a persistence failure. field is the column involved, when known.
func Storage(v Violation, field string, err error) *Error {
	msg := "storage error"
	switch v {
	case ViolationUnique:
		msg = "unique constraint violated"
	case ViolationNotNull:
		msg = "required column missing"
	}
	return &Error{Kind: KindStorage, Field: field, Message: msg, Violation: v, Err: err}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf reports the kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return KindUnknown
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
