package manga

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const repositoryTimeout = 5 * time.Second

const mangaColumns = "id, slug, title, author, popularity, cover_key, created_at, updated_at"

// Repository provides database access for the manga catalog and favorites.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a catalog repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns a page of the catalog ordered by title.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]Manga, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + mangaColumns + `
FROM manga
ORDER BY title
OFFSET $1 LIMIT $2;`

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list manga: %w", err)
	}
	defer rows.Close()

	return collectManga(rows)
}

// MostPopular returns the catalog entries with the highest popularity.
func (r *Repository) MostPopular(ctx context.Context, limit int) ([]Manga, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + mangaColumns + `
FROM manga
ORDER BY popularity DESC, title
LIMIT $1;`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list popular manga: %w", err)
	}
	defer rows.Close()

	return collectManga(rows)
}

// FindBySlug fetches a single catalog entry.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (Manga, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT ` + mangaColumns + `
FROM manga
WHERE slug = $1;`

	entry, err := scanManga(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Manga{}, ErrMangaNotFound
		}
		return Manga{}, fmt.Errorf("find manga by slug: %w", err)
	}

	return entry, nil
}

// AddFavorite records the user's favorite. The insert is idempotent; the
// popularity counter is bumped only when a new row lands.
func (r *Repository) AddFavorite(ctx context.Context, userID, mangaID string) error {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
INSERT INTO manga_favorites (user_id, manga_id)
VALUES ($1, $2)
ON CONFLICT (user_id, manga_id) DO NOTHING;`

	tag, err := r.pool.Exec(ctx, query, userID, mangaID)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return nil
	}

	bump := `UPDATE manga SET popularity = popularity + 1 WHERE id = $1;`
	if _, err := r.pool.Exec(ctx, bump, mangaID); err != nil {
		return fmt.Errorf("bump popularity: %w", err)
	}

	return nil
}

// ListFavorites returns the user's favorites, most recent first.
func (r *Repository) ListFavorites(ctx context.Context, userID string) ([]Manga, error) {
	ctx, cancel := context.WithTimeout(ctx, repositoryTimeout)
	defer cancel()

	query := `
SELECT m.id, m.slug, m.title, m.author, m.popularity, m.cover_key, m.created_at, m.updated_at
FROM manga m
JOIN manga_favorites f ON f.manga_id = m.id
WHERE f.user_id = $1
ORDER BY f.created_at DESC;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	return collectManga(rows)
}

func collectManga(rows pgx.Rows) ([]Manga, error) {
	var entries []Manga
	for rows.Next() {
		entry, err := scanManga(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate manga rows: %w", err)
	}
	return entries, nil
}

func scanManga(row pgx.Row) (Manga, error) {
	var entry Manga
	err := row.Scan(
		&entry.ID,
		&entry.Slug,
		&entry.Title,
		&entry.Author,
		&entry.Popularity,
		&entry.CoverKey,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return Manga{}, err
	}
	return entry, nil
}
