// Package modelselection provides deterministic train/evaluation
// partitioning for the screening pipeline.
package modelselection

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// Default split parameters of the screening pipeline.
const (
	// DefaultTestFraction is the share of records assigned to evaluation.
	DefaultTestFraction = 0.2

	// DefaultSeed makes repeated runs produce the same partition.
	DefaultSeed int64 = 42
)

// SplitIndices partitions the row indices 0..n-1 into disjoint train and
// test sets using a seeded shuffle-then-cut. The same n, testFraction and
// seed always produce the same membership. Both returned slices are sorted
// ascending so row order within each subset is stable.
func SplitIndices(n int, testFraction float64, seed int64) (train, test []int, err error) {
	if n <= 0 {
		return nil, nil, errors.NewModelError("modelselection.SplitIndices", "empty data", errors.ErrEmptyData)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.NewValueError("modelselection.SplitIndices",
			"test fraction must be in (0, 1)")
	}

	nTest := int(float64(n) * testFraction)
	if nTest == 0 {
		return nil, nil, errors.NewValueError("modelselection.SplitIndices",
			"test fraction yields an empty evaluation subset")
	}
	if nTest == n {
		return nil, nil, errors.NewValueError("modelselection.SplitIndices",
			"test fraction yields an empty training subset")
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	test = append([]int(nil), perm[:nTest]...)
	train = append([]int(nil), perm[nTest:]...)
	sort.Ints(test)
	sort.Ints(train)
	return train, test, nil
}

// TrainTestSplit partitions the rows of X and y into training and
// evaluation subsets. X must have as many rows as y; the split is the
// seeded shuffle-then-cut of SplitIndices.
func TrainTestSplit(X, y mat.Matrix, testFraction float64, seed int64) (XTrain, XTest *mat.Dense, yTrain, yTest *mat.VecDense, err error) {
	n, c := X.Dims()
	yRows, yCols := y.Dims()
	if yRows != n {
		return nil, nil, nil, nil, errors.NewDimensionError("modelselection.TrainTestSplit", n, yRows, 0)
	}
	if yCols != 1 {
		return nil, nil, nil, nil, errors.NewValueError("modelselection.TrainTestSplit",
			"y must be a column vector")
	}

	train, test, err := SplitIndices(n, testFraction, seed)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	XTrain, yTrain = takeRows(X, y, c, train)
	XTest, yTest = takeRows(X, y, c, test)
	return XTrain, XTest, yTrain, yTest, nil
}

func takeRows(X, y mat.Matrix, cols int, rows []int) (*mat.Dense, *mat.VecDense) {
	outX := mat.NewDense(len(rows), cols, nil)
	outY := mat.NewVecDense(len(rows), nil)
	for k, i := range rows {
		for j := 0; j < cols; j++ {
			outX.Set(k, j, X.At(i, j))
		}
		outY.SetVec(k, y.At(i, 0))
	}
	return outX, outY
}
