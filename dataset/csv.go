package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// DefaultFeatureColumns is the fixed MOF property schema the screening
// pipeline was built around: surface areas, pore geometry, density, hydrogen
// uptake figures and unit-cell parameters. The raw columns feeding the
// target synthesizer (uptake_vol, pore_volume) are part of the feature set.
var DefaultFeatureColumns = []string{
	"surface_area_grav",
	"surface_area_vol",
	"pore_volume",
	"void_fraction",
	"largest_cavity_diameter",
	"pore_limiting_diameter",
	"density",
	"uptake_grav",
	"uptake_vol",
	"heat_of_adsorption",
	"cell_a",
	"cell_b",
	"cell_c",
	"cell_alpha",
	"cell_beta",
	"cell_gamma",
	"cell_volume",
	"metal_linker_ratio",
}

// Columns used by the target synthesizer.
const (
	// UptakeVolColumn is the volumetric hydrogen uptake column.
	UptakeVolColumn = "uptake_vol"

	// PoreVolumeColumn is the gravimetric pore volume column.
	PoreVolumeColumn = "pore_volume"
)

// LoadCSV reads a comma-delimited file with a header row into a Table.
//
// Every column in required must appear in the header; a missing column is a
// fatal MissingColumnError. Cells that are empty or fail to parse as a
// float become the missing marker (NaN), so a single bad cell never aborts
// the load. Columns present in the file but not in required are loaded too.
func LoadCSV(path string, required []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset.LoadCSV: open %s", path)
	}
	defer f.Close()

	t, err := ReadCSV(bufio.NewReader(f), required)
	if err != nil {
		var mce *errors.MissingColumnError
		if errors.As(err, &mce) && mce.Path == "" {
			return nil, errors.NewMissingColumnError(mce.Column, path)
		}
		return nil, errors.Wrapf(err, "dataset.LoadCSV: %s", path)
	}
	return t, nil
}

// ReadCSV reads CSV content from r. See LoadCSV for the contract.
func ReadCSV(r io.Reader, required []string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("dataset.ReadCSV", "empty input", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "dataset.ReadCSV: header")
	}

	names := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for j, h := range header {
		name := strings.TrimSpace(h)
		names[j] = name
		seen[name] = true
	}

	// Fail fast on schema violations before touching any data row.
	for _, col := range required {
		if !seen[col] {
			return nil, errors.NewMissingColumnError(col, "")
		}
	}

	cols := make([][]float64, len(names))
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "dataset.ReadCSV: record")
		}
		for j := range names {
			cols[j] = append(cols[j], parseCell(rec, j))
		}
	}

	if len(cols[0]) == 0 {
		return nil, errors.NewModelError("dataset.ReadCSV", "no records", errors.ErrEmptyData)
	}
	return NewTable(names, cols)
}

// parseCell converts one CSV cell to a float64, mapping anything
// unparseable to the missing marker.
func parseCell(rec []string, j int) float64 {
	if j >= len(rec) {
		return Missing()
	}
	s := strings.TrimSpace(rec[j])
	if s == "" || strings.EqualFold(s, "na") || strings.EqualFold(s, "nan") {
		return Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Missing()
	}
	return v
}
