package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

func TestMinMaxScalerRange(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		10, 1.0,
		20, 0.5,
		30, 2.0,
		40, 1.5,
	})

	scaler := NewMinMaxScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}

	r, c := scaled.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := scaled.At(i, j)
			if v < 0 || v > 1 {
				t.Errorf("scaled(%d,%d) = %v, want within [0,1]", i, j, v)
			}
		}
	}

	// Column minimum maps to 0, maximum to 1.
	if got := scaled.At(0, 0); got != 0 {
		t.Errorf("min of column 0 scaled to %v, want 0", got)
	}
	if got := scaled.At(3, 0); got != 1 {
		t.Errorf("max of column 0 scaled to %v, want 1", got)
	}
	if got := scaled.At(1, 1); got != 0 {
		t.Errorf("min of column 1 scaled to %v, want 0", got)
	}
	if got := scaled.At(2, 1); got != 1 {
		t.Errorf("max of column 1 scaled to %v, want 1", got)
	}

	// The input must not be mutated.
	if X.At(0, 0) != 10 {
		t.Error("Transform mutated its input")
	}
}

func TestMinMaxScalerDegenerateColumn(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) {
		warnings = append(warnings, w)
	})
	defer errors.SetWarningHandler(func(error) {})

	X := mat.NewDense(3, 2, []float64{
		7, 1,
		7, 2,
		7, 3,
	})

	scaler := NewMinMaxScaler().WithColumnNames([]string{"cell_alpha", "density"})
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}

	// All values of the constant column map to 0.
	for i := 0; i < 3; i++ {
		if got := scaled.At(i, 0); got != 0 {
			t.Errorf("degenerate column value = %v, want 0", got)
		}
	}

	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	var dcw *errors.DegenerateColumnWarning
	if !errors.As(warnings[0], &dcw) {
		t.Fatalf("expected DegenerateColumnWarning, got %v", warnings[0])
	}
	if dcw.Column != "cell_alpha" {
		t.Errorf("warning column = %q, want cell_alpha", dcw.Column)
	}
}

func TestMinMaxScalerMissingValues(t *testing.T) {
	nan := math.NaN()
	X := mat.NewDense(4, 1, []float64{1, nan, 3, 5})

	scaler := NewMinMaxScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}

	// Statistics come from the finite values only: min 1, max 5.
	if scaler.DataMin[0] != 1 || scaler.DataMax[0] != 5 {
		t.Errorf("min/max = %v/%v, want 1/5", scaler.DataMin[0], scaler.DataMax[0])
	}
	if !math.IsNaN(scaled.At(1, 0)) {
		t.Error("missing cell should stay missing after Transform")
	}
	if got := scaled.At(2, 0); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("scaled(2,0) = %v, want 0.5", got)
	}
}

func TestMinMaxScalerAllMissingColumn(t *testing.T) {
	nan := math.NaN()
	X := mat.NewDense(2, 1, []float64{nan, nan})

	if err := NewMinMaxScaler().Fit(X); err == nil {
		t.Error("a column with no observed values should fail Fit")
	}
}

func TestMinMaxScalerNotFitted(t *testing.T) {
	X := mat.NewDense(1, 1, []float64{1})
	_, err := NewMinMaxScaler().Transform(X)

	var nfe *errors.NotFittedError
	if !errors.As(err, &nfe) {
		t.Errorf("expected NotFittedError, got %v", err)
	}
}

func TestMinMaxScalerInverseRoundTrip(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1, 100,
		2, 250,
		4, 400,
	})

	scaler := NewMinMaxScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}
	restored, err := scaler.InverseTransform(scaled)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if math.Abs(restored.At(i, j)-X.At(i, j)) > 1e-9 {
				t.Errorf("restored(%d,%d) = %v, want %v", i, j, restored.At(i, j), X.At(i, j))
			}
		}
	}
}

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{2, 4, 6, 8})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}

	if scaler.Mean[0] != 5 {
		t.Errorf("mean = %v, want 5", scaler.Mean[0])
	}

	// Scaled column has zero mean and unit variance.
	var sum, sumSq float64
	for i := 0; i < 4; i++ {
		v := scaled.At(i, 0)
		sum += v
		sumSq += v * v
	}
	if math.Abs(sum) > 1e-9 {
		t.Errorf("scaled mean = %v, want 0", sum/4)
	}
	if math.Abs(sumSq/4-1) > 1e-9 {
		t.Errorf("scaled variance = %v, want 1", sumSq/4)
	}
}

func TestStandardScalerDegenerateColumn(t *testing.T) {
	var warnings []error
	errors.SetWarningHandler(func(w error) {
		warnings = append(warnings, w)
	})
	defer errors.SetWarningHandler(func(error) {})

	X := mat.NewDense(3, 1, []float64{5, 5, 5})

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		if got := scaled.At(i, 0); got != 0 {
			t.Errorf("degenerate column value = %v, want 0", got)
		}
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}
