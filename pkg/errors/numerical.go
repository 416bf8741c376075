package errors

import (
	"math"
)

// CheckValues checks whether values contain NaN or Inf and returns
// ErrMissingValue-wrapped context if so. Used to enforce the invariant that
// the matrix handed to the regression fitter is fully populated.
func CheckValues(operation string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Wrapf(ErrMissingValue, "%s: non-finite value %g at index %d", operation, v, i)
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical validity.
func CheckScalar(operation string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Wrapf(ErrMissingValue, "%s: non-finite value %g", operation, value)
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical validity.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return Wrapf(ErrMissingValue, "%s: non-finite value %g at (%d, %d)", operation, v, i, j)
			}
		}
	}
	return nil
}
