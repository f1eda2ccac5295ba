package refdata

import "github.com/birdwatch/yardlist/internal/ent/sighting"

// Dataset is the reference dataset collaborator. It owns the tabular
// text format; the reconciler never touches files.
type Dataset interface {
	// Load reads the reference table, preserving file order. The three
	// mutable columns always exist in the result, defaulted to empty
	// strings when the file omits them.
	Load() ([]sighting.Species, error)

	// Save writes the unified view back in the same tabular format,
	// field names and order preserved.
	Save([]sighting.Row) error

	// SaveAs writes the unified view to a different path, for export.
	SaveAs(path string, rows []sighting.Row) error
}
