package yardlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/birdwatch/yardlist/internal/ent/overlay"
	"github.com/birdwatch/yardlist/internal/ent/photo"
	"github.com/birdwatch/yardlist/internal/ent/refdata"
	"github.com/birdwatch/yardlist/internal/ent/sighting"
	"github.com/birdwatch/yardlist/pkg/config"
)

// yardlist is an implementation of the Yardlist interface.
type yardlist struct {
	cfg config.Config
	ds  refdata.Dataset
	st  overlay.Store
	ph  photo.Fetcher
}

// New creates a new session from its collaborators. The photo fetcher
// is optional; commands that never touch photos pass nil.
func New(
	cfg config.Config,
	ds refdata.Dataset,
	st overlay.Store,
	ph photo.Fetcher,
) Yardlist {
	res := yardlist{
		cfg: cfg,
		ds:  ds,
		st:  st,
		ph:  ph,
	}
	return &res
}

func (y *yardlist) Unified(
	ctx context.Context,
) ([]sighting.Row, map[string]sighting.Observation, error) {
	ref, err := y.ds.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot load reference dataset: %w", err)
	}

	ovl, err := y.st.Fetch(ctx, y.cfg.UserID)
	if err != nil {
		slog.Warn("Remote fetch failed, using reference data only",
			"error", err, "user", y.cfg.UserID)
		ovl = map[string]sighting.Observation{}
	}

	return sighting.Unify(ref, ovl), ovl, nil
}

func (y *yardlist) SaveLocal(rows []sighting.Row) error {
	if err := y.ds.Save(rows); err != nil {
		return fmt.Errorf("cannot save dataset: %w", err)
	}
	return nil
}

func (y *yardlist) Export(path string, rows []sighting.Row) error {
	if err := y.ds.SaveAs(path, rows); err != nil {
		return fmt.Errorf("cannot export dataset: %w", err)
	}
	return nil
}

// Sync sends every row's update record, one upsert per record. A
// failure on one species never blocks the rest.
func (y *yardlist) Sync(
	ctx context.Context, rows []sighting.Row,
) (synced, failed int) {
	now := time.Now().UTC()
	for _, upd := range sighting.Updates(rows, y.cfg.UserID, now) {
		if err := y.st.Upsert(ctx, upd); err != nil {
			slog.Warn("Upsert failed", "error", err, "species", upd.Species)
			failed++
			continue
		}
		synced++
	}
	return synced, failed
}

func (y *yardlist) WarmPhotos(
	ctx context.Context, rows []sighting.Row,
) (int, error) {
	if y.ph == nil {
		return 0, errors.New("photo fetcher is not configured")
	}
	return y.ph.FetchAll(ctx, rows)
}
