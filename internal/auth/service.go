package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/midgard/midgard-core/internal/domain"
)

// User-facing failure messages. The login message is deliberately identical
// for unknown email and wrong password so callers cannot enumerate accounts.
const (
	msgEmailTaken     = "Email já cadastrado"
	msgBadCredentials = "Credenciais inválidas"
	msgUserNotFound   = "Usuário não encontrado"
)

// Service implements the authentication use cases on top of the three ports.
type Service struct {
	store  UserStore
	hasher Hasher
	tokens TokenService
}

// NewService creates a Service with explicit dependencies.
func NewService(store UserStore, hasher Hasher, tokens TokenService) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
	}
}

// RegisterInput carries data for account registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult bundles the public profile with a freshly signed bearer token.
type AuthResult struct {
	User  User
	Token string
}

// Register creates a new account, hashing the password and issuing a token.
// A pre-existing live user with the same email (case-insensitive) fails with
// a conflict and performs no further action.
func (s *Service) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	email := NormalizeEmail(input.Email)

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, domain.Conflict(msgEmailTaken)
	case !errors.Is(err, ErrUserNotFound):
		return AuthResult{}, fmt.Errorf("find user by email: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.store.Create(ctx, CreateUserInput{
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	})
	if err != nil {
		// The unique index closes the check-then-create window; a concurrent
		// duplicate surfaces here and is translated to the same conflict.
		if errors.Is(err, ErrEmailTaken) {
			return AuthResult{}, domain.Conflict(msgEmailTaken)
		}
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Sign(TokenPayload{Sub: user.ID, Email: user.Email})
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}

	return AuthResult{User: user.Profile(), Token: token}, nil
}

// LoginInput carries login credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Login authenticates credentials and issues a fresh token.
func (s *Service) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	user, err := s.store.FindByEmail(ctx, NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return AuthResult{}, domain.Unauthorized(msgBadCredentials)
		}
		return AuthResult{}, fmt.Errorf("find user by email: %w", err)
	}

	if !s.hasher.Compare(input.Password, user.PasswordHash) {
		return AuthResult{}, domain.Unauthorized(msgBadCredentials)
	}

	token, err := s.tokens.Sign(TokenPayload{Sub: user.ID, Email: user.Email})
	if err != nil {
		return AuthResult{}, fmt.Errorf("sign token: %w", err)
	}

	return AuthResult{User: user.Profile(), Token: token}, nil
}

// GetProfile returns the public profile for an authenticated user id.
func (s *Service) GetProfile(ctx context.Context, userID string) (User, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, domain.NotFound(msgUserNotFound)
		}
		return User{}, fmt.Errorf("find user by id: %w", err)
	}
	return user.Profile(), nil
}

// UpdateProfile applies a partial name update. The existence check runs
// before the mutation; the store update is never issued for a missing user.
func (s *Service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (User, error) {
	if _, err := s.store.FindByID(ctx, userID); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, domain.NotFound(msgUserNotFound)
		}
		return User{}, fmt.Errorf("find user by id: %w", err)
	}

	user, err := s.store.UpdateProfile(ctx, userID, input)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return User{}, domain.NotFound(msgUserNotFound)
		}
		return User{}, fmt.Errorf("update profile: %w", err)
	}

	return user.Profile(), nil
}
