package yardlist

import (
	"context"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
)

// Yardlist ties the reference dataset, the remote overlay store and
// the photo fetcher together for one session. It replaces any global
// process state: everything a command needs travels in this object.
type Yardlist interface {
	// Unified loads the reference dataset, fetches the user's overlay
	// and merges the two. A failing remote fetch degrades to a
	// reference-only view with a warning; only a broken reference
	// dataset is fatal. The returned overlay is the session baseline
	// for change detection.
	Unified(ctx context.Context) ([]sighting.Row, map[string]sighting.Observation, error)

	// SaveLocal writes the unified view back to the reference dataset
	// file.
	SaveLocal(rows []sighting.Row) error

	// Export writes the unified view to another file in the same
	// format.
	Export(path string, rows []sighting.Row) error

	// Sync upserts one update record per row to the remote store.
	// Failures are isolated per record; Sync reports how many records
	// succeeded and how many failed.
	Sync(ctx context.Context, rows []sighting.Row) (synced, failed int)

	// WarmPhotos resolves missing image URLs for the rows and reports
	// how many were filled in.
	WarmPhotos(ctx context.Context, rows []sighting.Row) (int, error)
}
