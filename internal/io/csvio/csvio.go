package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/birdwatch/yardlist/internal/ent/refdata"
	"github.com/birdwatch/yardlist/internal/ent/sighting"
	"github.com/birdwatch/yardlist/internal/str"
	"github.com/birdwatch/yardlist/pkg/config"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column names of the reference dataset. Save always writes this full
// set in this order; Load finds columns by name and tolerates files
// that omit any of them.
const (
	colSpecies     = "Species"
	colDescription = "Description"
	colHabitat     = "Typical habitat"
	colFoods       = "Favorite foods"
	colBestTime    = "Best time to see"
	colPhoto       = "Photo (link)"
	colSource      = "Source"
	colImageURL    = "Image URL"
	colSeen        = "Seen?"
	colFirstSeen   = "Date first seen"
	colNotes       = "Notes"
)

var header = []string{
	colSpecies, colDescription, colHabitat, colFoods, colBestTime,
	colPhoto, colSource, colImageURL, colSeen, colFirstSeen, colNotes,
}

// csvio implements the refdata.Dataset interface on a CSV file.
type csvio struct {
	path string
}

// New returns a Dataset backed by the CSV file from the config.
func New(cfg config.Config) refdata.Dataset {
	return &csvio{path: cfg.CSVFile}
}

// Load reads the reference table in file order. Missing columns and
// cells degrade to empty strings, and a Source column is backfilled
// from the photo link when the file has none.
func (c *csvio) Load() ([]sighting.Species, error) {
	f, err := os.Open(c.path)
	if err != nil {
		slog.Error("Cannot open csv file", "error", err, "path", c.path)
		return nil, err
	}
	defer f.Close()

	// Spreadsheet exports often carry a UTF-8 BOM.
	r := csv.NewReader(transform.NewReader(f, unicode.UTF8BOM.NewDecoder()))
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		slog.Error("Cannot read csv file", "error", err, "path", c.path)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv file %s is empty", c.path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[name] = i
	}
	_, hasSource := cols[colSource]

	res := make([]sighting.Species, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}
		var seen string
		if str.SeenBool(cell(colSeen)) {
			seen = sighting.SeenYes
		}
		sp := sighting.Species{
			Name:        cell(colSpecies),
			Description: cell(colDescription),
			Habitat:     cell(colHabitat),
			Foods:       cell(colFoods),
			BestTime:    cell(colBestTime),
			PhotoURL:    cell(colPhoto),
			SourceURL:   cell(colSource),
			ImageURL:    cell(colImageURL),
			Seen:        seen,
			FirstSeen:   cell(colFirstSeen),
			Notes:       cell(colNotes),
		}
		if !hasSource {
			sp.SourceURL = sp.PhotoURL
		}
		res = append(res, sp)
	}
	return res, nil
}

// Save writes the unified view back to the dataset file.
func (c *csvio) Save(rows []sighting.Row) error {
	return c.SaveAs(c.path, rows)
}

// SaveAs writes the unified view to the given path.
func (c *csvio) SaveAs(path string, rows []sighting.Row) error {
	f, err := os.Create(path)
	if err != nil {
		slog.Error("Cannot create csv file", "error", err, "path", path)
		return err
	}
	defer f.Close()

	if err = Encode(f, rows); err != nil {
		slog.Error("Cannot write to csv file", "error", err, "path", path)
		return err
	}
	return f.Sync()
}

// Encode writes the unified view as CSV, header included.
func Encode(out io.Writer, rows []sighting.Row) error {
	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range rows {
		r := &rows[i]
		csvRow := []string{
			r.Name, r.Description, r.Habitat, r.Foods, r.BestTime,
			r.PhotoURL, r.SourceURL, r.ImageURL, r.Seen, r.FirstSeen,
			r.Notes,
		}
		if err := w.Write(csvRow); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
