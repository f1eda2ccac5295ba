package model

import "time"

// Model provides schema management for the remote store.
type Model interface {
	// Migrate creates or upgrades the database tables.
	Migrate() error
}

// BirdSighting is one user's observation state for one species, as
// stored in the remote database. Records are addressed by the
// composite key (UserID, Species).
type BirdSighting struct {
	// UserID scopes the record to one user.
	UserID string `gorm:"primary_key;type:varchar(100);auto_increment:false"`

	// Species is the case-sensitive species name, the join key with
	// the reference dataset.
	Species string `gorm:"primary_key;type:varchar(255);auto_increment:false"`

	// SpeciesID is a deterministic UUID v5 derived from the species
	// name. It is the same for every user and handy for joining
	// exports across datasets.
	SpeciesID string `gorm:"type:uuid;index:species_id"`

	// Seen is true once the user has observed the species.
	Seen bool

	// FirstSeenDate is the calendar date of the first observation.
	// NULL while the species is unseen.
	FirstSeenDate *time.Time `gorm:"type:date"`

	// Notes is the user's free-text notes.
	Notes string `gorm:"type:text"`

	// UpdatedAt is the time of the last upsert.
	UpdatedAt time.Time
}

// TableName sets the table name used by the upsert path.
func (BirdSighting) TableName() string {
	return "bird_sightings"
}
