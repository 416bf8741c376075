// Package dataset provides the in-memory tabular representation used by the
// MOF screening pipeline.
//
// A Table is an ordered collection of named float64 columns of equal length.
// Missing values are represented by NaN, matching the convention of the
// numeric stack: any cell that could not be parsed, or any derived value
// whose inputs were missing, is NaN until the row is dropped by
// DropMissing. The matrix handed to the regression fitter is therefore
// always fully populated.
package dataset

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// Missing returns the marker used for absent values.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Table is an ordered, column-major collection of named numeric columns.
// All columns have the same length. A Table is cheap to copy by column:
// transforming operations return new Tables and never mutate their receiver.
type Table struct {
	names []string
	index map[string]int
	cols  [][]float64
	nRows int
}

// NewTable creates a table from column names and column-major data.
// Every column must have the same length.
func NewTable(names []string, cols [][]float64) (*Table, error) {
	if len(names) == 0 {
		return nil, errors.NewValueError("dataset.NewTable", "no columns")
	}
	if len(names) != len(cols) {
		return nil, errors.NewDimensionError("dataset.NewTable", len(names), len(cols), 1)
	}

	nRows := len(cols[0])
	index := make(map[string]int, len(names))
	for j, name := range names {
		if _, dup := index[name]; dup {
			return nil, errors.NewValueError("dataset.NewTable", "duplicate column "+name)
		}
		if len(cols[j]) != nRows {
			return nil, errors.NewDimensionError("dataset.NewTable", nRows, len(cols[j]), 0)
		}
		index[name] = j
	}

	return &Table{
		names: append([]string(nil), names...),
		index: index,
		cols:  cols,
		nRows: nRows,
	}, nil
}

// FromRows creates a table from row-major data. Convenient in tests.
func FromRows(names []string, rows [][]float64) (*Table, error) {
	cols := make([][]float64, len(names))
	for j := range cols {
		cols[j] = make([]float64, len(rows))
	}
	for i, row := range rows {
		if len(row) != len(names) {
			return nil, errors.NewDimensionError("dataset.FromRows", len(names), len(row), 1)
		}
		for j, v := range row {
			cols[j][i] = v
		}
	}
	return NewTable(names, cols)
}

// NumRows returns the number of records in the table.
func (t *Table) NumRows() int { return t.nRows }

// NumColumns returns the number of columns in the table.
func (t *Table) NumColumns() int { return len(t.names) }

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.names...)
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the named column's values.
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, errors.NewMissingColumnError(name, "")
	}
	return append([]float64(nil), t.cols[j]...), nil
}

// At returns the value at row i of the named column.
func (t *Table) At(i int, name string) (float64, error) {
	j, ok := t.index[name]
	if !ok {
		return 0, errors.NewMissingColumnError(name, "")
	}
	if i < 0 || i >= t.nRows {
		return 0, errors.NewValueError("dataset.At", "row index out of range")
	}
	return t.cols[j][i], nil
}

// WithColumn returns a new table with the named column replaced, or appended
// if it does not exist yet. The receiver is not modified.
func (t *Table) WithColumn(name string, values []float64) (*Table, error) {
	if len(values) != t.nRows {
		return nil, errors.NewDimensionError("dataset.WithColumn", t.nRows, len(values), 0)
	}

	names := append([]string(nil), t.names...)
	cols := append([][]float64(nil), t.cols...)
	values = append([]float64(nil), values...)

	if j, ok := t.index[name]; ok {
		cols[j] = values
	} else {
		names = append(names, name)
		cols = append(cols, values)
	}
	return NewTable(names, cols)
}

// Select returns a new table containing only the named columns, in the given
// order.
func (t *Table) Select(names []string) (*Table, error) {
	cols := make([][]float64, len(names))
	for j, name := range names {
		src, ok := t.index[name]
		if !ok {
			return nil, errors.NewMissingColumnError(name, "")
		}
		cols[j] = append([]float64(nil), t.cols[src]...)
	}
	return NewTable(names, cols)
}

// DropMissing returns a new table containing only the rows that have no
// missing value in any of the named columns, along with the number of rows
// removed. Passing no columns checks every column.
func (t *Table) DropMissing(names ...string) (*Table, int, error) {
	if len(names) == 0 {
		names = t.names
	}

	checked := make([]int, len(names))
	for k, name := range names {
		j, ok := t.index[name]
		if !ok {
			return nil, 0, errors.NewMissingColumnError(name, "")
		}
		checked[k] = j
	}

	keep := make([]int, 0, t.nRows)
	for i := 0; i < t.nRows; i++ {
		complete := true
		for _, j := range checked {
			if IsMissing(t.cols[j][i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	cols := make([][]float64, len(t.cols))
	for j := range t.cols {
		col := make([]float64, len(keep))
		for k, i := range keep {
			col[k] = t.cols[j][i]
		}
		cols[j] = col
	}

	filtered, err := NewTable(t.names, cols)
	if err != nil {
		return nil, 0, err
	}
	return filtered, t.nRows - len(keep), nil
}

// TakeRows returns a new table containing the given rows, in the given order.
func (t *Table) TakeRows(rows []int) (*Table, error) {
	cols := make([][]float64, len(t.cols))
	for j := range t.cols {
		col := make([]float64, len(rows))
		for k, i := range rows {
			if i < 0 || i >= t.nRows {
				return nil, errors.NewValueError("dataset.TakeRows", "row index out of range")
			}
			col[k] = t.cols[j][i]
		}
		cols[j] = col
	}
	return NewTable(t.names, cols)
}

// Matrix assembles the named columns into a dense row-major matrix.
// It fails if any selected cell is missing: callers must run DropMissing
// first so the fitter always receives a fully populated matrix.
func (t *Table) Matrix(names []string) (*mat.Dense, error) {
	if t.nRows == 0 {
		return nil, errors.NewModelError("dataset.Matrix", "empty table", errors.ErrEmptyData)
	}

	cols := make([]int, len(names))
	for k, name := range names {
		j, ok := t.index[name]
		if !ok {
			return nil, errors.NewMissingColumnError(name, "")
		}
		cols[k] = j
	}

	m := mat.NewDense(t.nRows, len(names), nil)
	for i := 0; i < t.nRows; i++ {
		for k, j := range cols {
			v := t.cols[j][i]
			if IsMissing(v) {
				return nil, errors.Wrapf(errors.ErrMissingValue,
					"dataset.Matrix: column %q row %d", names[k], i)
			}
			m.Set(i, k, v)
		}
	}
	return m, nil
}

// Vector assembles the named column into a dense vector, with the same
// missing-value check as Matrix.
func (t *Table) Vector(name string) (*mat.VecDense, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if len(col) == 0 {
		return nil, errors.NewModelError("dataset.Vector", "empty table", errors.ErrEmptyData)
	}
	for i, v := range col {
		if IsMissing(v) {
			return nil, errors.Wrapf(errors.ErrMissingValue,
				"dataset.Vector: column %q row %d", name, i)
		}
	}
	return mat.NewVecDense(len(col), col), nil
}
