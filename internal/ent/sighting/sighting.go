package sighting

import (
	"database/sql"
	"time"

	"github.com/gnames/gnuuid"
)

// SeenYes is the stored representation of a positive sighting. The
// reference CSV keeps the "Seen?" column as "Yes" or an empty string,
// and the unified view preserves that representation.
const SeenYes = "Yes"

// Species is one row of the reference dataset. All fields are opaque
// strings. The three mutable fields (Seen, FirstSeen, Notes) are kept
// here too, because the CSV itself may carry edits from a previous
// local save.
type Species struct {
	// Name is the join key between reference and overlay data. It is
	// unique and case-sensitive.
	Name string `json:"species"`

	// Description is a short free-text description of the species.
	Description string `json:"description,omitempty"`

	// Habitat describes where the species is typically found.
	Habitat string `json:"habitat,omitempty"`

	// Foods lists the species' favorite foods.
	Foods string `json:"favoriteFoods,omitempty"`

	// BestTime is the best time of year to see the species locally.
	BestTime string `json:"bestTime,omitempty"`

	// PhotoURL points to a photo page for the species.
	PhotoURL string `json:"photoURL,omitempty"`

	// SourceURL points to the reference page the data came from.
	SourceURL string `json:"sourceURL,omitempty"`

	// ImageURL is a direct image link, when the dataset provides one.
	ImageURL string `json:"imageURL,omitempty"`

	// Seen is "Yes" or "" as stored in the dataset.
	Seen string `json:"seen,omitempty"`

	// FirstSeen is an ISO calendar date (YYYY-MM-DD) or "".
	FirstSeen string `json:"firstSeenDate,omitempty"`

	// Notes is the user's free-text notes or "".
	Notes string `json:"notes,omitempty"`
}

// Observation is one user's mutable state for one species, as fetched
// from the remote store.
type Observation struct {
	Seen      bool
	FirstSeen string
	Notes     string
}

// Row is the unified per-species view: reference metadata plus the
// current observation state. Every field always holds a concrete
// value; empty string is a valid concrete value.
type Row struct {
	Species

	// RecordID is a deterministic UUID v5 derived from the species
	// name. It is stable across sessions and machines.
	RecordID string `json:"recordId"`
}

// Update is the outbound shape for persisting one species' state to
// the remote store. Records are addressed by the composite key
// (UserID, Species).
type Update struct {
	SpeciesID string
	UserID    string
	Species   string
	Seen      bool
	FirstSeen sql.NullString
	Notes     string
	UpdatedAt time.Time
}

// RecordID returns the stable UUID for a species name.
func RecordID(name string) string {
	return gnuuid.New(name).String()
}
