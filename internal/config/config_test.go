package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/chromagan/internal/gan"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 64, cfg.BatchSize)
	assert.Equal(t, 10000, cfg.Epochs)
	assert.Equal(t, 100, cfg.ReportInterval)
	assert.Equal(t, float32(0.001), cfg.Generator.Adam().WithDefaults().LR)
	assert.Equal(t, "synthetic", cfg.Data.Source)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
batch_size: 16
epochs: 200
report_interval: 10
seed: 7
generator:
  learning_rate: 0.0002
  beta1: 0.5
  beta2: 0.999
  epsilon: 1.0e-7
  width: 32
data:
  source: synthetic
  train_samples: 64
  test_samples: 8
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.BatchSize)
	assert.Equal(t, 200, cfg.Epochs)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 32, cfg.Generator.Width)
	assert.Equal(t, float32(0.5), cfg.Generator.Adam().Betas[0])
	// Unset sections keep their defaults.
	assert.Equal(t, 64, cfg.Discriminator.Width)
	assert.Equal(t, 64, cfg.Data.TrainSamples)

	train := cfg.Train()
	assert.Equal(t, gan.TrainConfig{BatchSize: 16, Epochs: 200, ReportInterval: 10, Seed: 7}, train)
	assert.Equal(t, int64(7), cfg.DataOptions().Seed)
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "batch_size: 8\nlearning_rate: 0.1\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero batch", func(c *Config) { c.BatchSize = 0 }},
		{"negative batch", func(c *Config) { c.BatchSize = -2 }},
		{"odd batch", func(c *Config) { c.BatchSize = 3 }},
		{"zero epochs", func(c *Config) { c.Epochs = 0 }},
		{"zero report interval", func(c *Config) { c.ReportInterval = 0 }},
		{"zero width", func(c *Config) { c.Discriminator.Width = 0 }},
		{"beta out of range", func(c *Config) { c.Generator.Beta1 = 1 }},
		{"zero beta1", func(c *Config) { c.Generator.Beta1 = 0 }},
		{"zero beta2", func(c *Config) { c.Discriminator.Beta2 = 0 }},
		{"zero learning rate", func(c *Config) { c.Discriminator.LearningRate = 0 }},
		{"zero epsilon", func(c *Config) { c.Generator.Epsilon = 0 }},
		{"unknown source", func(c *Config) { c.Data.Source = "imagenet" }},
		{"cifar without path", func(c *Config) { c.Data.Source = "cifar10" }},
		{"no training samples", func(c *Config) { c.Data.TrainSamples = 0 }},
		{"negative workers", func(c *Config) { c.NumWorkers = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, gan.ErrInvalidConfig), "got %v", err)
		})
	}

	var nilCfg *Config
	assert.True(t, errors.Is(nilCfg.Validate(), gan.ErrInvalidConfig))
}

func ptr[T any](v T) *T { return &v }

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.ApplyOverrides(Overrides{
		Epochs:     ptr(2),
		BatchSize:  ptr(4),
		DataSource: ptr("cifar10"),
		DataPath:   ptr("/data"),
	})

	assert.Equal(t, 2, cfg.Epochs)
	assert.Equal(t, 4, cfg.BatchSize)
	assert.Equal(t, 100, cfg.ReportInterval, "unset override keeps the file value")
	assert.Equal(t, "cifar10", cfg.Data.Source)
	assert.Equal(t, "/data", cfg.Data.Path)
}

func TestApplyOverrides_ZeroSeed(t *testing.T) {
	cfg := Default()
	require.Equal(t, int64(1), cfg.Seed)

	cfg.ApplyOverrides(Overrides{Seed: ptr(int64(0)), NumWorkers: ptr(0)})
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, 0, cfg.NumWorkers)
	assert.NoError(t, cfg.Validate())
}

func TestApplyOverrides_NonPositiveRejected(t *testing.T) {
	tests := []struct {
		name string
		o    Overrides
	}{
		{"negative batch", Overrides{BatchSize: ptr(-4)}},
		{"zero batch", Overrides{BatchSize: ptr(0)}},
		{"negative epochs", Overrides{Epochs: ptr(-1)}},
		{"zero epochs", Overrides{Epochs: ptr(0)}},
		{"zero report interval", Overrides{ReportInterval: ptr(0)}},
		{"negative workers", Overrides{NumWorkers: ptr(-2)}},
		{"empty source", Overrides{DataSource: ptr("")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ApplyOverrides(tt.o)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, gan.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "chromagan.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
