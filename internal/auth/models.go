package auth

import (
	"strings"
	"time"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleModerator Role = "MODERATOR"
	RoleVIP       Role = "VIP"
	RoleUser      Role = "USER"
)

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleVIP, RoleUser:
		return true
	}
	return false
}

// User is the public account profile returned to callers.
type User struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	Role         Role
	CoinsBalance int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserWithPassword is the internal persistence record. It never crosses the
// package boundary; Profile is the only way out.
type UserWithPassword struct {
	User
	PasswordHash string
}

// Profile strips the password hash for response payloads.
func (u UserWithPassword) Profile() User {
	return u.User
}

// TokenPayload identifies a user inside a signed bearer token.
type TokenPayload struct {
	Sub   string
	Email string
}

// NormalizeEmail lowercases and trims an email address. Lookups and writes
// both go through this so the unique index is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
