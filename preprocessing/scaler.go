// Package preprocessing provides feature scaling for the screening pipeline.
//
// Both scalers are missing-value aware: statistics are computed over the
// non-missing (finite) values of each column, and missing cells pass through
// Transform unchanged. This lets a scaler be fitted before or after row
// filtering without changing the learned statistics of the retained values.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mofsieve/core/model"
	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// degenerateScale is substituted for a zero column range so that
// (v - min) / scale maps every value of a constant column to exactly 0.
// The substitution is reported through a DegenerateColumnWarning.
const degenerateScale = 1.0

// MinMaxScaler rescales each feature column to [0, 1]:
//
//	scaled = (v - min) / (max - min)
//
// min and max are computed over the non-missing values seen during Fit.
// The record holding a column's minimum maps to 0 and the maximum to 1.
// A zero-variance column (max == min) is mapped entirely to 0 and a
// DegenerateColumnWarning is emitted; the run continues.
type MinMaxScaler struct {
	model.BaseEstimator

	// DataMin holds each column's observed minimum.
	DataMin []float64

	// DataMax holds each column's observed maximum.
	DataMax []float64

	// Scale holds each column's divisor (max - min, or the degenerate fallback).
	Scale []float64

	// NFeatures is the number of feature columns seen during Fit.
	NFeatures int

	// ColumnNames, when set, is used in warnings to identify degenerate
	// columns by name rather than by index.
	ColumnNames []string
}

// NewMinMaxScaler creates an unfitted MinMaxScaler.
func NewMinMaxScaler() *MinMaxScaler {
	return &MinMaxScaler{}
}

// WithColumnNames attaches column names used in diagnostics and warnings.
func (m *MinMaxScaler) WithColumnNames(names []string) *MinMaxScaler {
	m.ColumnNames = append([]string(nil), names...)
	return m
}

// Fit computes the per-column minimum and maximum over non-missing values.
// A column with no finite value at all is an error: the normalizer contract
// requires at least one observed value per column.
func (m *MinMaxScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	m.NFeatures = c
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		min := math.Inf(1)
		max := math.Inf(-1)
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		if math.IsInf(min, 1) {
			return errors.NewValueError("MinMaxScaler.Fit",
				fmt.Sprintf("column %s has no non-missing values", m.columnLabel(j)))
		}

		m.DataMin[j] = min
		m.DataMax[j] = max

		if max == min {
			errors.Warn(errors.NewDegenerateColumnWarning(m.columnLabel(j), min, 0))
			m.Scale[j] = degenerateScale
		} else {
			m.Scale[j] = max - min
		}
	}

	m.SetFitted()
	return nil
}

// Transform rescales X using the fitted statistics and returns a new matrix.
// The input is never mutated. Missing cells stay missing.
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				result.Set(i, j, v)
				continue
			}
			result.Set(i, j, (v-m.DataMin[j])/m.Scale[j])
		}
	}
	return result, nil
}

// FitTransform fits the scaler on X and transforms it in one step.
func (m *MinMaxScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := m.Fit(X); err != nil {
		return nil, err
	}
	return m.Transform(X)
}

// InverseTransform maps scaled values back to the original range.
func (m *MinMaxScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.InverseTransform", m.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				result.Set(i, j, v)
				continue
			}
			result.Set(i, j, v*m.Scale[j]+m.DataMin[j])
		}
	}
	return result, nil
}

// String returns a short description of the scaler.
func (m *MinMaxScaler) String() string {
	if !m.IsFitted() {
		return "MinMaxScaler()"
	}
	return fmt.Sprintf("MinMaxScaler(n_features=%d)", m.NFeatures)
}

func (m *MinMaxScaler) columnLabel(j int) string {
	if j < len(m.ColumnNames) {
		return m.ColumnNames[j]
	}
	return fmt.Sprintf("#%d", j)
}

// StandardScaler standardizes each feature column to zero mean and unit
// variance over the non-missing values seen during Fit. A zero-variance
// column keeps its values at 0 after scaling and emits a
// DegenerateColumnWarning, mirroring the MinMaxScaler policy.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds each column's mean.
	Mean []float64

	// Scale holds each column's standard deviation (or the degenerate fallback).
	Scale []float64

	// NFeatures is the number of feature columns seen during Fit.
	NFeatures int

	// ColumnNames, when set, is used in warnings.
	ColumnNames []string
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// WithColumnNames attaches column names used in diagnostics and warnings.
func (s *StandardScaler) WithColumnNames(names []string) *StandardScaler {
	s.ColumnNames = append([]string(nil), names...)
	return s
}

// Fit computes the per-column mean and standard deviation over non-missing
// values.
func (s *StandardScaler) Fit(X mat.Matrix) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		var sum float64
		var n int
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			return errors.NewValueError("StandardScaler.Fit",
				fmt.Sprintf("column %s has no non-missing values", s.columnLabel(j)))
		}
		s.Mean[j] = sum / float64(n)

		var sumSquares float64
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				continue
			}
			diff := v - s.Mean[j]
			sumSquares += diff * diff
		}
		s.Scale[j] = math.Sqrt(sumSquares / float64(n))

		if s.Scale[j] == 0 {
			errors.Warn(errors.NewDegenerateColumnWarning(s.columnLabel(j), s.Mean[j], 0))
			s.Scale[j] = degenerateScale
		}
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X using the fitted statistics and returns a new
// matrix. The input is never mutated. Missing cells stay missing.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				result.Set(i, j, v)
				continue
			}
			result.Set(i, j, (v-s.Mean[j])/s.Scale[j])
		}
	}
	return result, nil
}

// FitTransform fits the scaler on X and transforms it in one step.
func (s *StandardScaler) FitTransform(X mat.Matrix) (mat.Matrix, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized values back to the original scale.
func (s *StandardScaler) InverseTransform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) {
				result.Set(i, j, v)
				continue
			}
			result.Set(i, j, v*s.Scale[j]+s.Mean[j])
		}
	}
	return result, nil
}

// String returns a short description of the scaler.
func (s *StandardScaler) String() string {
	if !s.IsFitted() {
		return "StandardScaler()"
	}
	return fmt.Sprintf("StandardScaler(n_features=%d)", s.NFeatures)
}

func (s *StandardScaler) columnLabel(j int) string {
	if j < len(s.ColumnNames) {
		return s.ColumnNames[j]
	}
	return fmt.Sprintf("#%d", j)
}
