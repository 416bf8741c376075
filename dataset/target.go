package dataset

import (
	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// TargetColumn is the name of the derived quantum-sieving potential column.
const TargetColumn = "sieving_score"

// TargetWeights parameterizes the sieving-score formula
//
//	score = Scale * (Uptake*uptake_vol + InversePore*(1/pore_volume))
//
// Higher volumetric uptake and smaller pores both raise the score: pores
// comparable to the hydrogen de Broglie wavelength enhance tunneling-based
// isotope selectivity.
type TargetWeights struct {
	Uptake      float64 `yaml:"uptake"`
	InversePore float64 `yaml:"inverse_pore"`
	Scale       float64 `yaml:"scale"`
}

// DefaultTargetWeights returns the weights of the reference formula:
// equal weighting of uptake and inverse pore volume, doubled.
func DefaultTargetWeights() TargetWeights {
	return TargetWeights{Uptake: 0.5, InversePore: 0.5, Scale: 2.0}
}

// SievingScore computes the quantum-sieving potential for one record.
// A missing input or a zero pore volume yields the missing marker rather
// than an error, so downstream filtering can drop the record.
func SievingScore(uptakeVol, poreVolume float64, w TargetWeights) float64 {
	if IsMissing(uptakeVol) || IsMissing(poreVolume) || poreVolume == 0 {
		return Missing()
	}
	return w.Scale * (w.Uptake*uptakeVol + w.InversePore*(1/poreVolume))
}

// SynthesizeTarget computes the sieving score for every record and returns a
// new table with the TargetColumn appended. The input columns must exist;
// records with missing or degenerate inputs get a missing target.
func SynthesizeTarget(t *Table, uptakeCol, poreCol string, w TargetWeights) (*Table, error) {
	uptake, err := t.Column(uptakeCol)
	if err != nil {
		return nil, err
	}
	pore, err := t.Column(poreCol)
	if err != nil {
		return nil, err
	}
	if t.HasColumn(TargetColumn) {
		return nil, errors.NewValueError("dataset.SynthesizeTarget",
			"table already has a "+TargetColumn+" column")
	}

	scores := make([]float64, t.NumRows())
	for i := range scores {
		scores[i] = SievingScore(uptake[i], pore[i], w)
	}
	return t.WithColumn(TargetColumn, scores)
}
