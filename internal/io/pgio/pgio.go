package pgio

import (
	"errors"
	"log/slog"

	"github.com/birdwatch/yardlist/internal/ent/overlay"
	"github.com/birdwatch/yardlist/pkg/config"
	"github.com/birdwatch/yardlist/pkg/io/modelio"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDisabled is returned by operations that need a configured remote
// store when none is set up.
var ErrDisabled = errors.New("remote store is not configured")

// pgio implements the overlay.Store interface on PostgreSQL. A zero
// PgHost in the config produces a disabled store: Fetch returns an
// empty overlay and Upsert is a no-op.
type pgio struct {
	cfg config.Config
	db  *pgxpool.Pool
}

// New returns a Store for the remote overlay. When no PostgreSQL host
// is configured, the returned store is disabled rather than broken.
func New(cfg config.Config) (overlay.Store, error) {
	res := pgio{cfg: cfg}
	if cfg.PgHost == "" {
		return &res, nil
	}

	db, err := pgxConn(cfg)
	if err != nil {
		slog.Error("Cannot connect to database", "error", err)
		return nil, err
	}
	res.db = db
	return &res, nil
}

// Enabled reports whether a remote store is configured.
func (p *pgio) Enabled() bool {
	return p.db != nil
}

// Migrate creates or upgrades the bird_sightings table.
func (p *pgio) Migrate() error {
	if !p.Enabled() {
		return ErrDisabled
	}
	grm, err := gormConn(p.cfg)
	if err != nil {
		return err
	}
	defer grm.Close()

	slog.Info("Running database migrations")
	m := modelio.New(grm)
	if err = m.Migrate(); err != nil {
		slog.Error("Cannot migrate database", "error", err)
		return err
	}
	slog.Info("Database migrations completed")
	return nil
}

// Close releases the connection pool.
func (p *pgio) Close() {
	if p.db != nil {
		p.db.Close()
		p.db = nil
	}
}
