// Package linear implements the ordinary least squares regression model used
// by the screening pipeline.
package linear

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mofsieve/core/model"
	"github.com/YuminosukeSato/mofsieve/core/parallel"
	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// LinearRegression は線形回帰モデル
//
// 正規方程式 w = (X^T X)^(-1) X^T y で解きます。計画行列がランク落ちして
// いる場合はSVDベースの擬似逆行列にフォールバックし、SingularMatrixWarning
// を発生させた上で学習を継続します。
type LinearRegression struct {
	model.BaseEstimator

	// Weights は学習された重み（係数）
	Weights *mat.VecDense

	// Intercept は学習された切片
	Intercept float64

	// NFeatures は特徴量の数
	NFeatures int

	// Rank は計画行列のランク
	Rank int

	// Singular は計画行列の特異値
	Singular []float64

	fitIntercept bool
	tol          float64
}

// NewLinearRegression は新しい線形回帰モデルを作成する
func NewLinearRegression(opts ...Option) *LinearRegression {
	lr := &LinearRegression{
		fitIntercept: true,
		tol:          1e-10,
	}
	for _, opt := range opts {
		opt(lr)
	}
	return lr
}

// Fit はモデルを訓練データで学習させる
//
// 入力行列に非有限値（NaN/Inf）が含まれる場合はエラーを返します。
// 欠損レコードのフィルタリングは呼び出し側（dataset.DropMissing）の責務です。
func (lr *LinearRegression) Fit(X, y mat.Matrix) (err error) {
	defer errors.Recover(&err, "LinearRegression.Fit")

	r, c := X.Dims()
	ry, cy := y.Dims()

	if r == 0 || c == 0 {
		return errors.NewModelError("LinearRegression.Fit", "empty data", errors.ErrEmptyData)
	}
	if ry != r {
		return errors.NewDimensionError("LinearRegression.Fit", r, ry, 0)
	}
	if cy != 1 {
		return errors.NewValueError("LinearRegression.Fit", "y must be a column vector")
	}
	if err := errors.CheckMatrix("LinearRegression.Fit: X", X, r, c); err != nil {
		return err
	}
	if err := errors.CheckMatrix("LinearRegression.Fit: y", y, ry, cy); err != nil {
		return err
	}

	lr.NFeatures = c

	// 切片項のために X に 1 の列を追加
	// XFit = [1, X]
	cols := c
	if lr.fitIntercept {
		cols = c + 1
	}
	XFit := mat.NewDense(r, cols, nil)

	// 並列処理の閾値（この値以下の行数では逐次処理を使用）
	const parallelThreshold = 1000

	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			off := 0
			if lr.fitIntercept {
				XFit.Set(i, 0, 1.0) // 切片項
				off = 1
			}
			for j := 0; j < c; j++ {
				XFit.Set(i, j+off, X.At(i, j))
			}
		}
	})

	yVec := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		yVec.SetVec(i, y.At(i, 0))
	}

	// SVDでランクを診断してから解法を選ぶ
	var svd mat.SVD
	if ok := svd.Factorize(XFit, mat.SVDThin); !ok {
		return errors.NewModelError("LinearRegression.Fit", "SVD factorization failed",
			errors.ErrSingularMatrix)
	}

	lr.Singular = svd.Values(nil)
	lr.Rank = 0
	cutoff := lr.tol
	if len(lr.Singular) > 0 {
		cutoff = lr.tol * math.Max(1, lr.Singular[0])
	}
	for _, s := range lr.Singular {
		if s > cutoff {
			lr.Rank++
		}
	}

	var weights *mat.VecDense
	if lr.Rank < cols {
		// ランク落ち: 擬似逆行列で最小ノルム解を求める
		errors.Warn(errors.NewSingularMatrixWarning("LinearRegression.Fit", lr.Rank, cols))
		weights = solvePseudoInverse(&svd, yVec, cutoff)
	} else {
		weights, err = solveNormalEquation(XFit, yVec)
		if err != nil {
			// 数値的に特異に近い場合も擬似逆行列へフォールバック
			errors.Warn(errors.NewSingularMatrixWarning("LinearRegression.Fit", lr.Rank, cols))
			weights = solvePseudoInverse(&svd, yVec, cutoff)
		}
	}

	// 切片と重みを分離
	if lr.fitIntercept {
		lr.Intercept = weights.AtVec(0)
		lr.Weights = mat.NewVecDense(c, nil)
		for i := 0; i < c; i++ {
			lr.Weights.SetVec(i, weights.AtVec(i + 1))
		}
	} else {
		lr.Intercept = 0
		lr.Weights = weights
	}

	lr.SetFitted()
	return nil
}

// solveNormalEquation は正規方程式 (X^T X)^(-1) X^T y を解く
func solveNormalEquation(X *mat.Dense, y *mat.VecDense) (*mat.VecDense, error) {
	_, cols := X.Dims()

	var XT mat.Dense
	XT.CloneFrom(X.T())

	var XTX mat.Dense
	XTX.Mul(&XT, X)

	var XTXInv mat.Dense
	if err := XTXInv.Inverse(&XTX); err != nil {
		return nil, errors.NewModelError("LinearRegression.Fit", "singular matrix", errors.ErrSingularMatrix)
	}

	var XTy mat.VecDense
	XTy.MulVec(&XT, y)

	weights := mat.NewVecDense(cols, nil)
	weights.MulVec(&XTXInv, &XTy)
	return weights, nil
}

// solvePseudoInverse は薄いSVD分解 X = U S V^T から最小二乗解
// w = V S^+ U^T y を計算する。cutoff以下の特異値は0として扱う。
func solvePseudoInverse(svd *mat.SVD, y *mat.VecDense, cutoff float64) *mat.VecDense {
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// U^T y
	var uty mat.VecDense
	uty.MulVec(u.T(), y)

	// S^+ (U^T y)
	scaled := mat.NewVecDense(len(s), nil)
	for i, sv := range s {
		if sv > cutoff {
			scaled.SetVec(i, uty.AtVec(i)/sv)
		}
	}

	cols, _ := v.Dims()
	weights := mat.NewVecDense(cols, nil)
	weights.MulVec(&v, scaled)
	return weights
}

// Predict は入力データに対する予測を行う
// 予測: y = X * weights + intercept
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	if !lr.IsFitted() {
		return nil, errors.NewNotFittedError("LinearRegression", "Predict")
	}

	r, c := X.Dims()
	if c != lr.NFeatures {
		return nil, errors.NewDimensionError("LinearRegression.Predict", lr.NFeatures, c, 1)
	}

	predictions := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		pred := lr.Intercept
		for j := 0; j < c; j++ {
			pred += X.At(i, j) * lr.Weights.AtVec(j)
		}
		predictions.Set(i, 0, pred)
	}
	return predictions, nil
}

// GetWeights は学習された重み（係数）を返す
func (lr *LinearRegression) GetWeights() []float64 {
	if lr.Weights == nil {
		return nil
	}
	weights := make([]float64, lr.Weights.Len())
	for i := 0; i < lr.Weights.Len(); i++ {
		weights[i] = lr.Weights.AtVec(i)
	}
	return weights
}

// GetIntercept は学習された切片を返す
func (lr *LinearRegression) GetIntercept() float64 {
	if !lr.IsFitted() {
		return 0
	}
	return lr.Intercept
}

// Score はモデルの決定係数（R²）を計算する
func (lr *LinearRegression) Score(X, y mat.Matrix) (float64, error) {
	if !lr.IsFitted() {
		return 0, errors.NewNotFittedError("LinearRegression", "Score")
	}

	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}

	r, _ := y.Dims()

	var yMean float64
	for i := 0; i < r; i++ {
		yMean += y.At(i, 0)
	}
	yMean /= float64(r)

	// 全変動 (TSS) と残差変動 (RSS) を計算
	var tss, rss float64
	for i := 0; i < r; i++ {
		yTrue := y.At(i, 0)
		yPredVal := yPred.At(i, 0)

		tss += (yTrue - yMean) * (yTrue - yMean)
		rss += (yTrue - yPredVal) * (yTrue - yPredVal)
	}

	if tss == 0 {
		return 0, errors.Newf("total sum of squares is zero")
	}
	return 1 - rss/tss, nil
}
