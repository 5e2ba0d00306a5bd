// Package config loads the YAML description of a colorization training run.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/chromagan/internal/dataset"
	"github.com/born-ml/chromagan/internal/gan"
	"github.com/born-ml/chromagan/internal/optim"
)

// Network holds the optimizer and width settings of one network.
type Network struct {
	LearningRate float32 `yaml:"learning_rate"`
	Beta1        float32 `yaml:"beta1"`
	Beta2        float32 `yaml:"beta2"`
	Epsilon      float32 `yaml:"epsilon"`
	Width        int     `yaml:"width"`
}

// Adam converts the network settings to an optimizer config.
func (n Network) Adam() optim.AdamConfig {
	return optim.AdamConfig{
		LR:    n.LearningRate,
		Betas: [2]float32{n.Beta1, n.Beta2},
		Eps:   n.Epsilon,
	}
}

// Data selects the training and evaluation images.
type Data struct {
	Source       string `yaml:"source"`
	Path         string `yaml:"path"`
	TrainSamples int    `yaml:"train_samples"`
	TestSamples  int    `yaml:"test_samples"`
}

// Config captures the runtime knobs for a training run.
type Config struct {
	BatchSize      int     `yaml:"batch_size"`
	Epochs         int     `yaml:"epochs"`
	ReportInterval int     `yaml:"report_interval"`
	Seed           int64   `yaml:"seed"`
	NumWorkers     int     `yaml:"num_workers"`
	Generator      Network `yaml:"generator"`
	Discriminator  Network `yaml:"discriminator"`
	Data           Data    `yaml:"data"`
}

// Overrides captures CLI supplied values. Nil fields were not given.
type Overrides struct {
	BatchSize      *int
	Epochs         *int
	ReportInterval *int
	Seed           *int64
	NumWorkers     *int
	DataSource     *string
	DataPath       *string
}

// Default returns the stock configuration: batch 64, 10000 epochs, a report
// every 100 epochs and Adam defaults for both networks.
func Default() *Config {
	network := Network{
		LearningRate: optim.DefaultAdamLR,
		Beta1:        optim.DefaultAdamBeta1,
		Beta2:        optim.DefaultAdamBeta2,
		Epsilon:      optim.DefaultAdamEps,
		Width:        gan.DefaultWidth,
	}
	return &Config{
		BatchSize:      gan.DefaultBatchSize,
		Epochs:         gan.DefaultEpochs,
		ReportInterval: gan.DefaultReportInterval,
		Seed:           1,
		Generator:      network,
		Discriminator:  network,
		Data: Data{
			Source:       dataset.SourceSynthetic,
			TrainSamples: 1024,
			TestSamples:  128,
		},
	}
}

// Load reads a Config from YAML on top of Default and validates it. Unknown
// keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg := Default()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyOverrides copies every given override into c. Values are not
// checked here; call Validate afterwards.
func (c *Config) ApplyOverrides(o Overrides) {
	if o.BatchSize != nil {
		c.BatchSize = *o.BatchSize
	}
	if o.Epochs != nil {
		c.Epochs = *o.Epochs
	}
	if o.ReportInterval != nil {
		c.ReportInterval = *o.ReportInterval
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	if o.NumWorkers != nil {
		c.NumWorkers = *o.NumWorkers
	}
	if o.DataSource != nil {
		c.Data.Source = *o.DataSource
	}
	if o.DataPath != nil {
		c.Data.Path = *o.DataPath
	}
}

// Validate verifies the config is runnable. Failures wrap gan.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(gan.ErrInvalidConfig, "config is nil")
	}
	if err := c.Train().Validate(); err != nil {
		return err
	}
	if c.NumWorkers < 0 {
		return errors.Wrapf(gan.ErrInvalidConfig, "num_workers must be >= 0 (got %d)", c.NumWorkers)
	}
	for name, n := range map[string]Network{"generator": c.Generator, "discriminator": c.Discriminator} {
		if n.Width <= 0 {
			return errors.Wrapf(gan.ErrInvalidConfig, "%s.width must be > 0 (got %d)", name, n.Width)
		}
		if n.LearningRate <= 0 || n.Epsilon <= 0 {
			return errors.Wrapf(gan.ErrInvalidConfig, "%s: learning_rate and epsilon must be > 0 (got %g, %g)",
				name, n.LearningRate, n.Epsilon)
		}
		if n.Beta1 <= 0 || n.Beta1 >= 1 || n.Beta2 <= 0 || n.Beta2 >= 1 {
			return errors.Wrapf(gan.ErrInvalidConfig, "%s: betas must be in (0, 1) (got %g, %g)",
				name, n.Beta1, n.Beta2)
		}
	}
	switch c.Data.Source {
	case dataset.SourceSynthetic:
	case dataset.SourceCIFAR10:
		if c.Data.Path == "" {
			return errors.Wrap(gan.ErrInvalidConfig, "data.path is required for cifar10")
		}
	default:
		return errors.Wrapf(gan.ErrInvalidConfig, "unknown data.source %q", c.Data.Source)
	}
	if c.Data.TrainSamples <= 0 || c.Data.TestSamples < 0 {
		return errors.Wrapf(gan.ErrInvalidConfig, "data.train_samples must be > 0 and test_samples >= 0 (got %d, %d)",
			c.Data.TrainSamples, c.Data.TestSamples)
	}
	return nil
}

// Train returns the training-loop settings.
func (c *Config) Train() gan.TrainConfig {
	return gan.TrainConfig{
		BatchSize:      c.BatchSize,
		Epochs:         c.Epochs,
		ReportInterval: c.ReportInterval,
		Seed:           c.Seed,
	}
}

// DataOptions returns the dataset loader options.
func (c *Config) DataOptions() dataset.Options {
	return dataset.Options{
		Source:       c.Data.Source,
		Path:         c.Data.Path,
		TrainSamples: c.Data.TrainSamples,
		TestSamples:  c.Data.TestSamples,
		Seed:         c.Seed,
	}
}
