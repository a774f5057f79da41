// Package apperror defines the error kinds shared by the repository, service
// and handler layers. Handlers translate a kind into an HTTP status without
// knowing which component produced the error.
package apperror

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindInvalidTransition
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidTransition:
		return "invalid_transition"
	case KindValidation:
		return "validation"
	}
	return "unknown"
}

// Error is a domain error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

// New returns an error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func (e *Error) Error() string { return e.Message }

// Is reports a match when target is an *Error of the same kind with an empty
// message, so errors.Is(err, ErrNotFound) matches every not-found error.
// Two errors with messages match only when both kind and message agree.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Kind-level sentinels for errors.Is.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrConflict          = &Error{Kind: KindConflict}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrValidation        = &Error{Kind: KindValidation}
)

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// HTTPStatus maps err to the status code a handler should answer with.
// Conflicts and rejected transitions are reported as bad requests.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidTransition, KindValidation:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Message returns the client-facing message for err. Errors without a kind
// are hidden behind a generic text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal server error"
}
