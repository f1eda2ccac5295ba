package overlay

import (
	"context"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
)

// Store is the remote store collaborator, keyed by (userID, species).
// It must tolerate being unconfigured: a disabled store fetches an
// empty overlay and ignores upserts.
type Store interface {
	// Enabled reports whether a remote store is configured.
	Enabled() bool

	// Fetch returns the user's sparse overlay of observations, keyed
	// by species name.
	Fetch(ctx context.Context, userID string) (map[string]sighting.Observation, error)

	// Upsert persists one update record. Callers send one record per
	// call so a failure on one species cannot block the rest.
	Upsert(ctx context.Context, upd sighting.Update) error

	// Migrate creates or upgrades the remote table schema. It fails
	// when the store is disabled.
	Migrate() error

	// Close releases the store's connections.
	Close()
}
