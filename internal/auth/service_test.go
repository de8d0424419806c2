package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/midgard/midgard-core/internal/domain"
)

func newTestService(store *memoryStore) *Service {
	return NewService(store, NewBcryptHasher(4), NewJWTService("test-secret", time.Hour))
}

func TestRegisterSuccess(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)

	result, err := service.Register(context.Background(), RegisterInput{
		Email:     "a@x.com",
		Password:  "secret1",
		FirstName: "A",
		LastName:  "B",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if result.User.ID == "" {
		t.Fatalf("expected a non-empty user id")
	}
	if result.Token == "" {
		t.Fatalf("expected a token to be issued")
	}
	if result.User.Role != RoleUser {
		t.Fatalf("expected default role USER, got %s", result.User.Role)
	}
	if result.User.CoinsBalance != 0 {
		t.Fatalf("expected zero coins balance, got %d", result.User.CoinsBalance)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected one stored user, got %d", len(store.users))
	}
}

func TestRegisterDuplicateEmailIsCaseInsensitive(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)

	if _, err := service.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B",
	}); err != nil {
		t.Fatalf("initial registration returned error: %v", err)
	}

	_, err := service.Register(context.Background(), RegisterInput{
		Email: "A@X.com", Password: "secret2", FirstName: "C", LastName: "D",
	})

	domainErr, ok := domain.As(err)
	if !ok || domainErr.Kind != domain.KindConflict {
		t.Fatalf("expected a conflict, got %v", err)
	}
	if domainErr.Message != "Email já cadastrado" {
		t.Fatalf("unexpected conflict message: %q", domainErr.Message)
	}
	if len(store.users) != 1 {
		t.Fatalf("expected exactly one stored user, got %d", len(store.users))
	}
}

func TestRegisterTranslatesStoreConflict(t *testing.T) {
	store := newMemoryStore()
	store.createErr = ErrEmailTaken
	service := newTestService(store)

	_, err := service.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B",
	})

	domainErr, ok := domain.As(err)
	if !ok || domainErr.Kind != domain.KindConflict {
		t.Fatalf("expected a conflict from the store race, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)

	registered, err := service.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	result, err := service.Login(context.Background(), LoginInput{
		Email:    "A@X.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("expected a token to be issued")
	}
	if result.User.ID != registered.User.ID {
		t.Fatalf("expected the registered user back")
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)

	if _, err := service.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B",
	}); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	_, unknownErr := service.Login(context.Background(), LoginInput{
		Email: "nobody@x.com", Password: "secret1",
	})
	_, wrongErr := service.Login(context.Background(), LoginInput{
		Email: "a@x.com", Password: "wrong",
	})

	unknown, ok := domain.As(unknownErr)
	if !ok || unknown.Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized for unknown email, got %v", unknownErr)
	}
	wrong, ok := domain.As(wrongErr)
	if !ok || wrong.Kind != domain.KindUnauthorized {
		t.Fatalf("expected unauthorized for wrong password, got %v", wrongErr)
	}
	if unknown.Message != wrong.Message {
		t.Fatalf("login failures must not be distinguishable: %q vs %q", unknown.Message, wrong.Message)
	}
	if wrong.Message != "Credenciais inválidas" {
		t.Fatalf("unexpected login failure message: %q", wrong.Message)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	service := newTestService(newMemoryStore())

	_, err := service.GetProfile(context.Background(), "nonexistent-id")

	domainErr, ok := domain.As(err)
	if !ok || domainErr.Kind != domain.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if domainErr.Message != "Usuário não encontrado" {
		t.Fatalf("unexpected message: %q", domainErr.Message)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)

	registered, err := service.Register(context.Background(), RegisterInput{
		Email: "a@x.com", Password: "secret1", FirstName: "A", LastName: "B",
	})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	first := "Z"
	updated, err := service.UpdateProfile(context.Background(), registered.User.ID, UpdateProfileInput{
		FirstName: &first,
	})
	if err != nil {
		t.Fatalf("update profile returned error: %v", err)
	}

	if updated.FirstName != "Z" {
		t.Fatalf("expected firstName Z, got %q", updated.FirstName)
	}
	if updated.LastName != "B" {
		t.Fatalf("expected lastName untouched, got %q", updated.LastName)
	}
	if updated.Email != "a@x.com" || updated.Role != RoleUser || updated.CoinsBalance != 0 {
		t.Fatalf("expected email, role and coins balance untouched")
	}

	profile, err := service.GetProfile(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("get profile returned error: %v", err)
	}
	if profile.FirstName != "Z" || profile.LastName != "B" {
		t.Fatalf("update was not persisted: %+v", profile)
	}
}

func TestUpdateProfileUnknownUserNeverMutates(t *testing.T) {
	store := newMemoryStore()
	service := newTestService(store)

	first := "Z"
	_, err := service.UpdateProfile(context.Background(), "nonexistent-id", UpdateProfileInput{
		FirstName: &first,
	})

	domainErr, ok := domain.As(err)
	if !ok || domainErr.Kind != domain.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.updateCalls != 0 {
		t.Fatalf("update must not be issued for a missing user, got %d calls", store.updateCalls)
	}
}

// memoryStore implements UserStore for tests.
type memoryStore struct {
	users       map[string]UserWithPassword
	createErr   error
	updateCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{users: make(map[string]UserWithPassword)}
}

func (m *memoryStore) FindByEmail(ctx context.Context, email string) (UserWithPassword, error) {
	user, ok := m.users[NormalizeEmail(email)]
	if !ok {
		return UserWithPassword{}, ErrUserNotFound
	}
	return user, nil
}

func (m *memoryStore) FindByID(ctx context.Context, id string) (UserWithPassword, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return UserWithPassword{}, ErrUserNotFound
}

func (m *memoryStore) Create(ctx context.Context, input CreateUserInput) (UserWithPassword, error) {
	if m.createErr != nil {
		return UserWithPassword{}, m.createErr
	}

	email := NormalizeEmail(input.Email)
	if _, ok := m.users[email]; ok {
		return UserWithPassword{}, ErrEmailTaken
	}

	now := time.Now()
	user := UserWithPassword{
		User: User{
			ID:        uuid.New().String(),
			Email:     email,
			FirstName: input.FirstName,
			LastName:  input.LastName,
			Role:      RoleUser,
			CreatedAt: now,
			UpdatedAt: now,
		},
		PasswordHash: input.PasswordHash,
	}
	m.users[email] = user
	return user, nil
}

func (m *memoryStore) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (UserWithPassword, error) {
	m.updateCalls++
	for email, user := range m.users {
		if user.ID != id {
			continue
		}
		if input.FirstName != nil {
			user.FirstName = *input.FirstName
		}
		if input.LastName != nil {
			user.LastName = *input.LastName
		}
		user.UpdatedAt = time.Now()
		m.users[email] = user
		return user, nil
	}
	return UserWithPassword{}, ErrUserNotFound
}

var _ UserStore = (*memoryStore)(nil)
