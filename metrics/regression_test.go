package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			yPred:     mat.NewVecDense(5, []float64{1.0, 2.0, 3.0, 4.0, 5.0}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:      "uniform half-unit error",
			yTrue:     mat.NewVecDense(4, []float64{1.0, 2.0, 3.0, 4.0}),
			yPred:     mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:      0.25, // ((0.5)² × 4) / 4
			tolerance: 1e-10,
		},
		{
			name:      "mixed errors",
			yTrue:     mat.NewVecDense(3, []float64{10.0, 20.0, 30.0}),
			yPred:     mat.NewVecDense(3, []float64{12.0, 18.0, 33.0}),
			want:      17.0 / 3.0, // (4 + 4 + 9) / 3
			tolerance: 1e-10,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1.0, 2.0, 3.0}),
			yPred:   mat.NewVecDense(2, []float64{1.0, 2.0}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMSEMatrix(t *testing.T) {
	yTrue := mat.NewDense(3, 1, []float64{1, 2, 3})
	yPred := mat.NewDense(3, 1, []float64{1, 2, 4})

	got, err := MSEMatrix(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-1.0/3.0) > 1e-10 {
		t.Errorf("MSEMatrix() = %v, want 1/3", got)
	}

	if _, err := MSEMatrix(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil)); err == nil {
		t.Error("non-column input should fail")
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(2, []float64{0, 0})
	yPred := mat.NewVecDense(2, []float64{3, 4})

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	want := math.Sqrt(12.5) // (9 + 16) / 2
	if math.Abs(got-want) > 1e-10 {
		t.Errorf("RMSE() = %v, want %v", got, want)
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{2, 2, 1, 4})

	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-0.75) > 1e-10 { // (1 + 0 + 2 + 0) / 4
		t.Errorf("MAE() = %v, want 0.75", got)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name      string
		yTrue     *mat.VecDense
		yPred     *mat.VecDense
		want      float64
		tolerance float64
		wantErr   bool
	}{
		{
			name:      "perfect prediction",
			yTrue:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			want:      1.0,
			tolerance: 1e-10,
		},
		{
			name:      "mean prediction scores zero",
			yTrue:     mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred:     mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:      0.0,
			tolerance: 1e-10,
		},
		{
			name:    "constant target",
			yTrue:   mat.NewVecDense(3, []float64{2, 2, 2}),
			yPred:   mat.NewVecDense(3, []float64{2, 2, 2}),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}
