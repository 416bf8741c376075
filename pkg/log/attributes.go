// Package log defines standard attribute keys for screening-pipeline operations.
//
// Using these keys consistently across the pipeline stages enables structured
// log analysis and filtering (e.g. grouping by stage, correlating record
// counts between stages).

package log

// Pipeline and operation context.
const (
	// StageKey identifies the pipeline stage emitting the log record.
	// Standard values: "load", "target", "normalize", "split", "fit", "evaluate"
	StageKey = "pipeline.stage"

	// ModelNameKey identifies the estimator type.
	// Examples: "LinearRegression", "MinMaxScaler"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "score"
	OperationKey = "ml.operation"
)

// Data shape and characteristics.
const (
	// RecordsKey indicates the number of records (rows) in the dataset.
	RecordsKey = "data.records"

	// FeaturesKey indicates the number of feature columns.
	FeaturesKey = "data.features"

	// DroppedKey indicates the number of records removed by missing-value filtering.
	DroppedKey = "data.dropped"

	// PathKey is the source file the dataset was loaded from.
	PathKey = "data.path"
)

// Split parameters.
const (
	// SeedKey is the pseudo-random seed used for the train/eval partition.
	SeedKey = "split.seed"

	// TestFractionKey is the configured evaluation fraction.
	TestFractionKey = "split.test_fraction"

	// TrainRecordsKey is the number of records in the training subset.
	TrainRecordsKey = "split.train_records"

	// EvalRecordsKey is the number of records in the evaluation subset.
	EvalRecordsKey = "split.eval_records"
)

// Metrics.
const (
	// MSEKey records the mean squared error over the evaluation subset.
	MSEKey = "metrics.mse"

	// RMSEKey records the root mean squared error.
	RMSEKey = "metrics.rmse"

	// MAEKey records the mean absolute error.
	MAEKey = "metrics.mae"

	// R2ScoreKey records the coefficient of determination.
	R2ScoreKey = "metrics.r2_score"

	// RankKey records the rank of the design matrix seen during fitting.
	RankKey = "model.rank"
)
