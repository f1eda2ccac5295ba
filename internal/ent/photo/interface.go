package photo

import (
	"context"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
)

// Fetcher resolves a species' photo page to a direct image URL by
// scraping page metadata. Lookups are best effort.
type Fetcher interface {
	// ImageURL returns the page's og:image (or twitter:image) URL, or
	// an empty string when the page has none.
	ImageURL(ctx context.Context, pageURL string) (string, error)

	// FetchAll resolves image URLs for every row that has a photo or
	// source page but no direct image link yet, filling Row.ImageURL
	// in place. Failures on single species are logged and skipped.
	// It returns the number of rows resolved.
	FetchAll(ctx context.Context, rows []sighting.Row) (int, error)
}

// Cache is a persistent cache of metadata lookups keyed by page URL.
type Cache interface {
	// Open opens the cache store.
	Open() error

	// Close closes the cache store.
	Close() error

	// Get returns the cached value for a key, or nil when absent.
	Get(key string) ([]byte, error)

	// Set stores a value under a key.
	Set(key string, val []byte) error
}
