package linear

// Option は線形回帰モデルの設定オプション
type Option func(*LinearRegression)

// WithFitIntercept は切片の学習有無を設定（デフォルト: true）
func WithFitIntercept(fit bool) Option {
	return func(lr *LinearRegression) {
		lr.fitIntercept = fit
	}
}

// WithTolerance はランク判定に使う特異値の相対許容誤差を設定（デフォルト: 1e-10）
func WithTolerance(tol float64) Option {
	return func(lr *LinearRegression) {
		lr.tol = tol
	}
}
