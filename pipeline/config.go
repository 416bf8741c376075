package pipeline

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/mofsieve/dataset"
	"github.com/YuminosukeSato/mofsieve/modelselection"
	"github.com/YuminosukeSato/mofsieve/pkg/errors"
)

// Scaler names accepted by Config.Scaler.
const (
	ScalerMinMax   = "minmax"
	ScalerStandard = "standard"
)

// Config is the full configuration surface of the screening pipeline. The
// zero value is not usable; start from DefaultConfig or LoadConfig.
type Config struct {
	// DataPath is the CSV file holding the MOF property table.
	DataPath string `yaml:"data"`

	// FeatureColumns lists the columns fed to the regression, in order.
	// Defaults to the fixed 18-column MOF schema.
	FeatureColumns []string `yaml:"feature_columns"`

	// UptakeColumn and PoreVolumeColumn feed the target synthesizer.
	UptakeColumn     string `yaml:"uptake_column"`
	PoreVolumeColumn string `yaml:"pore_volume_column"`

	// TestFraction is the share of records held out for evaluation.
	TestFraction float64 `yaml:"test_fraction"`

	// Seed drives the deterministic train/eval partition.
	Seed int64 `yaml:"seed"`

	// Scaler selects the feature normalizer: "minmax" (default) or "standard".
	Scaler string `yaml:"scaler"`

	// Target holds the sieving-score formula weights.
	Target dataset.TargetWeights `yaml:"target"`
}

// DefaultConfig returns the reference configuration: the 18-column MOF
// schema, an 80/20 split at seed 42, min-max normalization, and the
// equal-weight doubled sieving-score formula.
func DefaultConfig() *Config {
	return &Config{
		FeatureColumns:   append([]string(nil), dataset.DefaultFeatureColumns...),
		UptakeColumn:     dataset.UptakeVolColumn,
		PoreVolumeColumn: dataset.PoreVolumeColumn,
		TestFraction:     modelselection.DefaultTestFraction,
		Seed:             modelselection.DefaultSeed,
		Scaler:           ScalerMinMax,
		Target:           dataset.DefaultTargetWeights(),
	}
}

// LoadConfig reads a YAML file over the defaults: fields absent from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "pipeline.LoadConfig: %s", path)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, errors.Wrapf(err, "pipeline.LoadConfig: %s", path)
	}
	return cfg, nil
}

// Validate checks the configuration before a run.
func (c *Config) Validate() error {
	if len(c.FeatureColumns) == 0 {
		return errors.NewValueError("Config.Validate", "feature_columns must not be empty")
	}
	if c.UptakeColumn == "" || c.PoreVolumeColumn == "" {
		return errors.NewValueError("Config.Validate", "uptake_column and pore_volume_column are required")
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return errors.NewValueError("Config.Validate", "test_fraction must be in (0, 1)")
	}
	switch c.Scaler {
	case ScalerMinMax, ScalerStandard:
	default:
		return errors.NewValueError("Config.Validate", "scaler must be \"minmax\" or \"standard\"")
	}
	if c.Target.Scale == 0 {
		return errors.NewValueError("Config.Validate", "target scale must be nonzero")
	}
	return nil
}
