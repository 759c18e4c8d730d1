package cardroom

import (
	"errors"
	"fmt"
)

// Kind classifies an error so callers can map it to a response
type Kind int

// Constants for Kind
const (
	// KindAuthorization is acting for a seat one does not occupy
	KindAuthorization Kind = iota

	// KindPrecondition is a request that is legal in some table state, but not this one
	KindPrecondition

	// KindValidation is a malformed identifier or amount
	KindValidation

	// KindResource is a missing table or seat, or a seat already taken
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindAuthorization:
		return "authorization"
	case KindPrecondition:
		return "precondition"
	case KindValidation:
		return "validation"
	case KindResource:
		return "resource"
	}

	return "unknown"
}

// Error is an error that is safe to surface to the caller
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// KindOf returns the kind of the error if it is a cardroom error
func KindOf(err error) (Kind, bool) {
	var crErr *Error
	if errors.As(err, &crErr) {
		return crErr.Kind, true
	}

	return 0, false
}

func authorizationError(format string, args ...interface{}) error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

func preconditionError(format string, args ...interface{}) error {
	return &Error{Kind: KindPrecondition, Message: fmt.Sprintf(format, args...)}
}

func validationError(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func resourceError(format string, args ...interface{}) error {
	return &Error{Kind: KindResource, Message: fmt.Sprintf(format, args...)}
}
