package auth

import "context"

// Hasher is the one-way password hashing port.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hashed string) bool
}

// TokenService signs and verifies bearer tokens carrying a TokenPayload.
type TokenService interface {
	Sign(payload TokenPayload) (string, error)
	Verify(token string) (TokenPayload, error)
}

// CreateUserInput carries the fields persisted for a new account. Role and
// coins balance are assigned by the store (USER, 0).
type CreateUserInput struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

// UpdateProfileInput is a partial update; nil fields are left untouched.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
}

// UserStore abstracts user persistence. Absence is reported with
// ErrUserNotFound, duplicate emails with ErrEmailTaken.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (UserWithPassword, error)
	FindByID(ctx context.Context, id string) (UserWithPassword, error)
	Create(ctx context.Context, input CreateUserInput) (UserWithPassword, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (UserWithPassword, error)
}
