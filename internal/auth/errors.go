package auth

import "errors"

var (
	// ErrUserNotFound signals that the store holds no live user for the key.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken indicates the email already belongs to a live user.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidToken is returned when a bearer token fails verification.
	ErrInvalidToken = errors.New("invalid token")
)
