package dataset

import (
	"math"
	"testing"
)

func TestSievingScore(t *testing.T) {
	w := DefaultTargetWeights()
	nan := math.NaN()

	tests := []struct {
		name        string
		uptake      float64
		pore        float64
		want        float64
		wantMissing bool
		tolerance   float64
	}{
		{
			name:      "reference formula",
			uptake:    40.0,
			pore:      0.5,
			want:      2 * (0.5*40.0 + 0.5*(1/0.5)), // 42
			tolerance: 1e-12,
		},
		{
			name:      "small pore raises score",
			uptake:    10.0,
			pore:      0.1,
			want:      2 * (0.5*10.0 + 0.5*10.0), // 20
			tolerance: 1e-12,
		},
		{
			name:        "zero pore volume",
			uptake:      40.0,
			pore:        0,
			wantMissing: true,
		},
		{
			name:        "missing uptake",
			uptake:      nan,
			pore:        0.5,
			wantMissing: true,
		},
		{
			name:        "missing pore",
			uptake:      40.0,
			pore:        nan,
			wantMissing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SievingScore(tt.uptake, tt.pore, w)
			if tt.wantMissing {
				if !IsMissing(got) {
					t.Errorf("SievingScore() = %v, want missing", got)
				}
				return
			}
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("SievingScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSynthesizeTarget(t *testing.T) {
	nan := math.NaN()
	tbl, err := FromRows([]string{"uptake_vol", "pore_volume"}, [][]float64{
		{40.0, 0.5},
		{35.0, 0},   // zero pore -> missing target
		{nan, 0.4},  // missing uptake -> missing target
		{20.0, 0.2},
	})
	if err != nil {
		t.Fatal(err)
	}

	out, err := SynthesizeTarget(tbl, "uptake_vol", "pore_volume", DefaultTargetWeights())
	if err != nil {
		t.Fatal(err)
	}

	scores, err := out.Column(TargetColumn)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(scores[0]-42.0) > 1e-12 {
		t.Errorf("scores[0] = %v, want 42", scores[0])
	}
	if !IsMissing(scores[1]) || !IsMissing(scores[2]) {
		t.Errorf("degenerate inputs should yield missing targets: %v", scores)
	}
	if math.Abs(scores[3]-25.0) > 1e-12 {
		t.Errorf("scores[3] = %v, want 25", scores[3])
	}

	// The input table must be untouched.
	if tbl.HasColumn(TargetColumn) {
		t.Error("SynthesizeTarget mutated its input")
	}

	// A second synthesis on the result must refuse to overwrite.
	if _, err := SynthesizeTarget(out, "uptake_vol", "pore_volume", DefaultTargetWeights()); err == nil {
		t.Error("expected error when target column already exists")
	}
}

func TestSynthesizeTargetMissingColumn(t *testing.T) {
	tbl, err := FromRows([]string{"uptake_vol"}, [][]float64{{40.0}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := SynthesizeTarget(tbl, "uptake_vol", "pore_volume", DefaultTargetWeights()); err == nil {
		t.Error("expected error for absent pore_volume column")
	}
}
