package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mofsieve/dataset"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.FeatureColumns, 18)
	assert.Equal(t, dataset.UptakeVolColumn, cfg.UptakeColumn)
	assert.Equal(t, dataset.PoreVolumeColumn, cfg.PoreVolumeColumn)
	assert.Equal(t, 0.2, cfg.TestFraction)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, ScalerMinMax, cfg.Scaler)
	assert.Equal(t, dataset.DefaultTargetWeights(), cfg.Target)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	content := `
data: mof.csv
feature_columns: [uptake_vol, pore_volume, density]
test_fraction: 0.3
seed: 7
scaler: standard
target:
  uptake: 0.7
  inverse_pore: 0.3
  scale: 1.0
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mof.csv", cfg.DataPath)
	assert.Equal(t, []string{"uptake_vol", "pore_volume", "density"}, cfg.FeatureColumns)
	assert.Equal(t, 0.3, cfg.TestFraction)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, ScalerStandard, cfg.Scaler)
	assert.Equal(t, 0.7, cfg.Target.Uptake)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, dataset.UptakeVolColumn, cfg.UptakeColumn)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty feature columns", func(c *Config) { c.FeatureColumns = nil }},
		{"missing uptake column", func(c *Config) { c.UptakeColumn = "" }},
		{"missing pore column", func(c *Config) { c.PoreVolumeColumn = "" }},
		{"fraction too low", func(c *Config) { c.TestFraction = 0 }},
		{"fraction too high", func(c *Config) { c.TestFraction = 1 }},
		{"unknown scaler", func(c *Config) { c.Scaler = "robust" }},
		{"zero target scale", func(c *Config) { c.Target.Scale = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
