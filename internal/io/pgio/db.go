package pgio

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/birdwatch/yardlist/internal/ent/sighting"
)

const dateLayout = "2006-01-02"

// Fetch returns the user's sparse overlay, keyed by species name.
// NULL cells degrade to defaults; a disabled store yields an empty
// overlay.
func (p *pgio) Fetch(
	ctx context.Context, userID string,
) (map[string]sighting.Observation, error) {
	res := make(map[string]sighting.Observation)
	if !p.Enabled() {
		return res, nil
	}

	q := `SELECT species, seen, first_seen_date, notes
	        FROM bird_sightings
	        WHERE user_id = $1`
	rows, err := p.db.Query(ctx, q, userID)
	if err != nil {
		slog.Error("Cannot fetch overlay", "error", err, "user", userID)
		return nil, err
	}
	defer rows.Close()

	var species string
	var seen sql.NullBool
	var firstSeen sql.NullTime
	var notes sql.NullString
	for rows.Next() {
		err = rows.Scan(&species, &seen, &firstSeen, &notes)
		if err != nil {
			slog.Error("Cannot scan overlay row", "error", err)
			return nil, err
		}
		obs := sighting.Observation{
			Seen:  seen.Bool,
			Notes: notes.String,
		}
		if firstSeen.Valid {
			obs.FirstSeen = firstSeen.Time.Format(dateLayout)
		}
		res[species] = obs
	}
	return res, rows.Err()
}

// Upsert persists one update record, addressed by (user_id, species).
func (p *pgio) Upsert(ctx context.Context, upd sighting.Update) error {
	if !p.Enabled() {
		return nil
	}

	q := `INSERT INTO bird_sightings
	        (user_id, species, species_id, seen, first_seen_date, notes, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7)
	      ON CONFLICT (user_id, species) DO UPDATE
	        SET seen = EXCLUDED.seen,
	            first_seen_date = EXCLUDED.first_seen_date,
	            notes = EXCLUDED.notes,
	            updated_at = EXCLUDED.updated_at`

	var firstSeen *time.Time
	if upd.FirstSeen.Valid {
		d, err := time.Parse(dateLayout, upd.FirstSeen.String)
		if err != nil {
			slog.Warn("Cannot parse first-seen date, storing NULL",
				"date", upd.FirstSeen.String, "species", upd.Species)
		} else {
			firstSeen = &d
		}
	}

	_, err := p.db.Exec(ctx, q,
		upd.UserID, upd.Species, upd.SpeciesID, upd.Seen,
		firstSeen, upd.Notes, upd.UpdatedAt,
	)
	return err
}
