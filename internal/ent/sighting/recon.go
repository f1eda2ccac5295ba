package sighting

import (
	"database/sql"
	"time"
)

// Unify merges the reference dataset with a user's overlay into one
// unified view. The result has exactly one row per reference species,
// in reference order. For each of the three mutable fields the overlay
// value wins only if it is non-empty after normalization; an overlay
// Seen=false becomes "" and therefore never overrides a "Yes" stored
// in the reference file. Overlay entries for species missing from the
// reference set are dropped. Unify never fails; malformed or missing
// overlay data degrades to reference values.
func Unify(ref []Species, ovl map[string]Observation) []Row {
	res := make([]Row, len(ref))
	for i, sp := range ref {
		row := Row{Species: sp, RecordID: RecordID(sp.Name)}
		if obs, ok := ovl[sp.Name]; ok {
			if obs.Seen {
				row.Seen = SeenYes
			}
			if obs.FirstSeen != "" {
				row.FirstSeen = obs.FirstSeen
			}
			if obs.Notes != "" {
				row.Notes = obs.Notes
			}
		}
		res[i] = row
	}
	return res
}

// Apply overwrites the row's observation state with the supplied
// values. The date is stored only while seen is true; a stale date
// passed with seen=false is discarded. Applying the same edit twice
// yields the same state.
func (r *Row) Apply(seen bool, date, notes string) {
	if seen {
		r.Seen = SeenYes
	} else {
		r.Seen = ""
		date = ""
	}
	r.FirstSeen = date
	r.Notes = notes
}

// PageURL is the page to scrape image metadata from: the photo link
// when present, otherwise the source link.
func (r *Row) PageURL() string {
	if r.PhotoURL != "" {
		return r.PhotoURL
	}
	return r.SourceURL
}

// Observation re-expresses the row's mutable state in overlay shape.
func (r *Row) Observation() Observation {
	return Observation{
		Seen:      r.Seen == SeenYes,
		FirstSeen: r.FirstSeen,
		Notes:     r.Notes,
	}
}

// AsOverlay converts rows to the sparse overlay shape, keyed by
// species name. Feeding the result back into Unify with the same
// reference sequence is a fixed point.
func AsOverlay(rows []Row) map[string]Observation {
	res := make(map[string]Observation, len(rows))
	for i := range rows {
		res[rows[i].Name] = rows[i].Observation()
	}
	return res
}

// Updates produces one Update per row, unconditionally. FirstSeen is
// emitted as SQL NULL, never as an empty string, and is always NULL
// when the species is not marked seen.
func Updates(rows []Row, userID string, now time.Time) []Update {
	res := make([]Update, len(rows))
	for i := range rows {
		r := &rows[i]
		upd := Update{
			SpeciesID: r.RecordID,
			UserID:    userID,
			Species:   r.Name,
			Seen:      r.Seen == SeenYes,
			Notes:     r.Notes,
			UpdatedAt: now,
		}
		if upd.Seen && r.FirstSeen != "" {
			upd.FirstSeen = sql.NullString{String: r.FirstSeen, Valid: true}
		}
		res[i] = upd
	}
	return res
}

// Changed filters rows down to the ones whose observation state
// differs from the overlay fetched at the start of the session. Rows
// absent from the overlay count as changed when any of their three
// fields is non-default.
func Changed(rows []Row, ovl map[string]Observation) []Row {
	var res []Row
	for i := range rows {
		if rows[i].Observation() != ovl[rows[i].Name] {
			res = append(res, rows[i])
		}
	}
	return res
}

// MarkAll marks every row as seen today, stamping the supplied date
// over any prior first-seen date.
func MarkAll(rows []Row, today string) {
	for i := range rows {
		rows[i].Seen = SeenYes
		rows[i].FirstSeen = today
	}
}

// ClearAll clears the seen flag and first-seen date on every row.
// Notes persist independently of the seen state and are wiped only
// when withNotes is set.
func ClearAll(rows []Row, withNotes bool) {
	for i := range rows {
		rows[i].Seen = ""
		rows[i].FirstSeen = ""
		if withNotes {
			rows[i].Notes = ""
		}
	}
}
