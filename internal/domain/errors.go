package domain

import "errors"

// Kind tags an expected domain failure so boundaries can dispatch on it.
type Kind int

const (
	KindConflict Kind = iota + 1
	KindNotFound
	KindUnauthorized
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

// Error is a typed, expected failure raised by a use case. Anything outside
// this taxonomy is an unexpected fault and must not leak detail to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Conflict signals a duplicate unique key (business rule violation).
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// NotFound signals that a referenced entity does not exist.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Unauthorized signals bad credentials or a missing/invalid/expired token.
func Unauthorized(message string) error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// As extracts the domain error from err, unwrapping as needed.
func As(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}
