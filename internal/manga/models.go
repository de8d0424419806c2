package manga

import "time"

// Manga is a catalog entry. CoverKey references the cover image object in
// the object store; it is resolved to a presigned URL at the boundary.
type Manga struct {
	ID         string
	Slug       string
	Title      string
	Author     string
	Popularity int64
	CoverKey   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Entry is a catalog entry with a resolved cover URL.
type Entry struct {
	Manga
	CoverURL string
}
