// Package pipeline wires the four screening stages into a single batch
// computation: target synthesis, feature normalization, the deterministic
// train/eval split, and the OLS fit with evaluation.
//
// A Pipeline holds no state between runs; each Run is an independent batch
// job over one dataset.
package pipeline

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mofsieve/dataset"
	"github.com/YuminosukeSato/mofsieve/linear"
	"github.com/YuminosukeSato/mofsieve/metrics"
	"github.com/YuminosukeSato/mofsieve/modelselection"
	"github.com/YuminosukeSato/mofsieve/pkg/errors"
	mlog "github.com/YuminosukeSato/mofsieve/pkg/log"
	"github.com/YuminosukeSato/mofsieve/preprocessing"
)

// Report is the result of one pipeline run. MSE over the evaluation subset
// is the primary output; the rest is diagnostics.
type Report struct {
	// MSE is the mean squared error over the evaluation subset.
	MSE float64

	// RMSE, MAE and R2 are supplementary evaluation metrics.
	// R2 is NaN when the evaluation targets have no variance.
	RMSE float64
	MAE  float64
	R2   float64

	// Record counts through the pipeline.
	RecordsLoaded  int
	RecordsDropped int
	TrainRecords   int
	EvalRecords    int

	// Model diagnostics.
	Rank         int
	Coefficients []float64
	Intercept    float64
}

// Pipeline executes the screening stages for one configuration.
type Pipeline struct {
	cfg    *Config
	logger *slog.Logger
}

// New creates a pipeline after validating the configuration.
func New(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:    cfg,
		logger: slog.Default(),
	}, nil
}

// Run loads the configured CSV file and executes the pipeline on it.
func (p *Pipeline) Run() (*Report, error) {
	if p.cfg.DataPath == "" {
		return nil, errors.NewValueError("Pipeline.Run", "no data file configured")
	}

	required := append([]string(nil), p.cfg.FeatureColumns...)
	required = appendMissing(required, p.cfg.UptakeColumn, p.cfg.PoreVolumeColumn)

	tbl, err := dataset.LoadCSV(p.cfg.DataPath, required)
	if err != nil {
		return nil, err
	}
	p.logger.Info("dataset loaded",
		mlog.StageKey, "load",
		mlog.PathKey, p.cfg.DataPath,
		mlog.RecordsKey, tbl.NumRows(),
		mlog.FeaturesKey, len(p.cfg.FeatureColumns),
	)
	return p.RunTable(tbl)
}

// RunTable executes the pipeline on an already loaded table. The table must
// contain every configured feature column plus the target synthesizer
// inputs; it is not mutated.
func (p *Pipeline) RunTable(tbl *dataset.Table) (*Report, error) {
	report := &Report{RecordsLoaded: tbl.NumRows()}

	// Stage 1: synthesize the sieving-score target.
	tbl, err := dataset.SynthesizeTarget(tbl, p.cfg.UptakeColumn, p.cfg.PoreVolumeColumn, p.cfg.Target)
	if err != nil {
		return nil, err
	}
	p.logger.Info("target synthesized",
		mlog.StageKey, "target",
		mlog.RecordsKey, tbl.NumRows(),
	)

	// Records with any missing retained value leave the pipeline here, so
	// every later stage sees a fully populated matrix.
	retained := append(append([]string(nil), p.cfg.FeatureColumns...), dataset.TargetColumn)
	tbl, dropped, err := tbl.DropMissing(retained...)
	if err != nil {
		return nil, err
	}
	report.RecordsDropped = dropped
	if dropped > 0 {
		p.logger.Info("incomplete records dropped",
			mlog.StageKey, "target",
			mlog.DroppedKey, dropped,
			mlog.RecordsKey, tbl.NumRows(),
		)
	}

	// Stage 2: normalize the feature columns (target excluded).
	X, err := tbl.Matrix(p.cfg.FeatureColumns)
	if err != nil {
		return nil, err
	}
	y, err := tbl.Vector(dataset.TargetColumn)
	if err != nil {
		return nil, err
	}

	scaler := p.newScaler()
	XScaled, err := scaler.FitTransform(X)
	if err != nil {
		return nil, err
	}
	p.logger.Info("features normalized",
		mlog.StageKey, "normalize",
		mlog.OperationKey, "fit_transform",
		mlog.FeaturesKey, len(p.cfg.FeatureColumns),
	)

	// Stage 3: deterministic train/eval partition.
	XTrain, XEval, yTrain, yEval, err := modelselection.TrainTestSplit(
		XScaled, y, p.cfg.TestFraction, p.cfg.Seed)
	if err != nil {
		return nil, err
	}
	report.TrainRecords = yTrain.Len()
	report.EvalRecords = yEval.Len()
	p.logger.Info("dataset split",
		mlog.StageKey, "split",
		mlog.SeedKey, p.cfg.Seed,
		mlog.TestFractionKey, p.cfg.TestFraction,
		mlog.TrainRecordsKey, report.TrainRecords,
		mlog.EvalRecordsKey, report.EvalRecords,
	)

	// Stage 4: fit OLS on the training subset and score the evaluation subset.
	model := linear.NewLinearRegression()
	if err := model.Fit(XTrain, asColumn(yTrain)); err != nil {
		return nil, err
	}
	report.Rank = model.Rank
	report.Coefficients = model.GetWeights()
	report.Intercept = model.GetIntercept()
	p.logger.Info("model fitted",
		mlog.StageKey, "fit",
		mlog.ModelNameKey, "LinearRegression",
		mlog.RecordsKey, report.TrainRecords,
		mlog.RankKey, model.Rank,
	)

	pred, err := model.Predict(XEval)
	if err != nil {
		return nil, err
	}
	predVec := columnVec(pred)

	if report.MSE, err = metrics.MSE(yEval, predVec); err != nil {
		return nil, err
	}
	if report.RMSE, err = metrics.RMSE(yEval, predVec); err != nil {
		return nil, err
	}
	if report.MAE, err = metrics.MAE(yEval, predVec); err != nil {
		return nil, err
	}
	if r2, err := metrics.R2Score(yEval, predVec); err != nil {
		// A constant evaluation target leaves R² undefined; MSE still stands.
		report.R2 = math.NaN()
	} else {
		report.R2 = r2
	}

	p.logger.Info("model evaluated",
		mlog.StageKey, "evaluate",
		mlog.MSEKey, report.MSE,
		mlog.RMSEKey, report.RMSE,
		mlog.MAEKey, report.MAE,
		mlog.R2ScoreKey, report.R2,
	)
	return report, nil
}

func (p *Pipeline) newScaler() interface {
	FitTransform(mat.Matrix) (mat.Matrix, error)
} {
	if p.cfg.Scaler == ScalerStandard {
		return preprocessing.NewStandardScaler().WithColumnNames(p.cfg.FeatureColumns)
	}
	return preprocessing.NewMinMaxScaler().WithColumnNames(p.cfg.FeatureColumns)
}

func appendMissing(list []string, names ...string) []string {
	for _, name := range names {
		found := false
		for _, have := range list {
			if have == name {
				found = true
				break
			}
		}
		if !found {
			list = append(list, name)
		}
	}
	return list
}

func asColumn(v *mat.VecDense) *mat.Dense {
	out := mat.NewDense(v.Len(), 1, nil)
	for i := 0; i < v.Len(); i++ {
		out.Set(i, 0, v.AtVec(i))
	}
	return out
}

func columnVec(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	out := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		out.SetVec(i, m.At(i, 0))
	}
	return out
}
