package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryTimeout = 5 * time.Second

const userColumns = "id, email, password, first_name, last_name, role, coins_balance, created_at, updated_at"

// Repository implements UserStore on PostgreSQL. Rows carry a deleted_at
// marker; every lookup filters soft-deleted users out.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a new Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// FindByEmail fetches a live user by normalized email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (UserWithPassword, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
SELECT ` + userColumns + `
FROM users
WHERE email = $1 AND deleted_at IS NULL;`

	return scanUser(r.pool.QueryRow(ctx, query, NormalizeEmail(email)))
}

// FindByID fetches a live user by id.
func (r *Repository) FindByID(ctx context.Context, id string) (UserWithPassword, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
SELECT ` + userColumns + `
FROM users
WHERE id = $1 AND deleted_at IS NULL;`

	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// Create persists a new user with role USER and a zero coins balance.
func (r *Repository) Create(ctx context.Context, input CreateUserInput) (UserWithPassword, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
INSERT INTO users (id, email, password, first_name, last_name, role, coins_balance)
VALUES ($1, $2, $3, $4, $5, 'USER', 0)
RETURNING ` + userColumns + `;`

	user, err := scanUser(r.pool.QueryRow(ctx, query,
		uuid.New().String(),
		NormalizeEmail(input.Email),
		input.PasswordHash,
		input.FirstName,
		input.LastName,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return UserWithPassword{}, ErrEmailTaken
		}
		return UserWithPassword{}, err
	}

	return user, nil
}

// UpdateProfile applies a partial name update and bumps updated_at. Fields
// absent from the input are left untouched.
func (r *Repository) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (UserWithPassword, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultQueryTimeout)
	defer cancel()

	query := `
UPDATE users
SET first_name = COALESCE($2, first_name),
    last_name  = COALESCE($3, last_name),
    updated_at = NOW()
WHERE id = $1 AND deleted_at IS NULL
RETURNING ` + userColumns + `;`

	return scanUser(r.pool.QueryRow(ctx, query, id, input.FirstName, input.LastName))
}

func scanUser(row pgx.Row) (UserWithPassword, error) {
	var (
		user UserWithPassword
		role string
	)
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&role,
		&user.CoinsBalance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return UserWithPassword{}, ErrUserNotFound
		}
		if isUniqueViolation(err) {
			return UserWithPassword{}, err
		}
		return UserWithPassword{}, fmt.Errorf("scan user: %w", err)
	}

	user.Role = Role(role)
	return user, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
