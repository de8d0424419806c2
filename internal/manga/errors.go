package manga

import "errors"

// ErrMangaNotFound signals that no catalog entry exists for the slug.
var ErrMangaNotFound = errors.New("manga not found")
