package manga

import (
	"context"
	"errors"
	"fmt"

	"github.com/midgard/midgard-core/internal/domain"
)

const (
	defaultPageSize  = 20
	popularListLimit = 10
)

const msgMangaNotFound = "Mangá não encontrado"

// catalogStore abstracts catalog and favorites persistence.
type catalogStore interface {
	List(ctx context.Context, offset, limit int) ([]Manga, error)
	MostPopular(ctx context.Context, limit int) ([]Manga, error)
	FindBySlug(ctx context.Context, slug string) (Manga, error)
	AddFavorite(ctx context.Context, userID, mangaID string) error
	ListFavorites(ctx context.Context, userID string) ([]Manga, error)
}

// coverStore resolves cover object keys to fetchable URLs.
type coverStore interface {
	CoverURL(ctx context.Context, key string) (string, error)
}

// Service exposes the catalog and favorites use cases.
type Service struct {
	repo     catalogStore
	covers   coverStore
	pageSize int
}

// NewService constructs a catalog service.
func NewService(repo catalogStore, covers coverStore, pageSize int) *Service {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Service{
		repo:     repo,
		covers:   covers,
		pageSize: pageSize,
	}
}

// List returns one catalog page. Pages are 1-based; anything below 1 is
// treated as the first page.
func (s *Service) List(ctx context.Context, page int) ([]Entry, error) {
	if page < 1 {
		page = 1
	}

	entries, err := s.repo.List(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list catalog page %d: %w", page, err)
	}

	return s.resolveCovers(ctx, entries)
}

// MostPopular returns the most favorited catalog entries.
func (s *Service) MostPopular(ctx context.Context) ([]Entry, error) {
	entries, err := s.repo.MostPopular(ctx, popularListLimit)
	if err != nil {
		return nil, fmt.Errorf("list popular: %w", err)
	}

	return s.resolveCovers(ctx, entries)
}

// Favorite marks the slug as a favorite of the user. Adding the same
// favorite twice is a no-op.
func (s *Service) Favorite(ctx context.Context, userID, slug string) (Entry, error) {
	entry, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrMangaNotFound) {
			return Entry{}, domain.NotFound(msgMangaNotFound)
		}
		return Entry{}, fmt.Errorf("find manga: %w", err)
	}

	if err := s.repo.AddFavorite(ctx, userID, entry.ID); err != nil {
		return Entry{}, fmt.Errorf("add favorite: %w", err)
	}

	resolved, err := s.resolveCovers(ctx, []Manga{entry})
	if err != nil {
		return Entry{}, err
	}
	return resolved[0], nil
}

// Favorites lists the user's favorites.
func (s *Service) Favorites(ctx context.Context, userID string) ([]Entry, error) {
	entries, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return s.resolveCovers(ctx, entries)
}

func (s *Service) resolveCovers(ctx context.Context, entries []Manga) ([]Entry, error) {
	resolved := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		coverURL, err := s.covers.CoverURL(ctx, entry.CoverKey)
		if err != nil {
			return nil, fmt.Errorf("resolve cover for %q: %w", entry.Slug, err)
		}
		resolved = append(resolved, Entry{Manga: entry, CoverURL: coverURL})
	}
	return resolved, nil
}
