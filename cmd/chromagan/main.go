// Package main provides the chromagan training CLI.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/backend/cpu"
	"github.com/born-ml/chromagan/internal/config"
	"github.com/born-ml/chromagan/internal/dataset"
	"github.com/born-ml/chromagan/internal/gan"
	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/parallel"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("chromagan %s\n", version)
		return
	}

	cfgPath := flag.String("config", "", "Path to YAML config (defaults built in when empty)")
	epochs := flag.Int("epochs", 0, "Number of training epochs")
	batchSize := flag.Int("batch-size", 0, "Batch size (even)")
	reportInterval := flag.Int("report-interval", 0, "Report progress every N epochs")
	numWorkers := flag.Int("num-workers", 0, "Goroutines per convolution kernel")
	seed := flag.Int64("seed", 0, "PRNG seed")
	dataSource := flag.String("data-source", "", "Data source: synthetic or cifar10")
	dataPath := flag.String("data-path", "", "Directory holding CIFAR-10 *_batch*.bin files")
	progressPath := flag.String("progress-json", "", "Also write progress records as JSON lines to this file")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger := newLogger(*logLevel)
	slog.SetDefault(logger)

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			fatal("failed to load config", err)
		}
		cfg = loaded
	}
	// Only flags given on the command line override the config, so an
	// explicit zero or negative value still reaches Validate.
	var overrides config.Overrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "batch-size":
			overrides.BatchSize = batchSize
		case "epochs":
			overrides.Epochs = epochs
		case "report-interval":
			overrides.ReportInterval = reportInterval
		case "seed":
			overrides.Seed = seed
		case "num-workers":
			overrides.NumWorkers = numWorkers
		case "data-source":
			overrides.DataSource = dataSource
		case "data-path":
			overrides.DataPath = dataPath
		}
	})
	cfg.ApplyOverrides(overrides)
	if err := cfg.Validate(); err != nil {
		fatal("invalid config", err)
	}

	if err := run(cfg, *progressPath); err != nil {
		fatal("training failed", err)
	}
}

func run(cfg *config.Config, progressPath string) error {
	fmt.Println("chromagan - adversarial colorization of 32x32 images")
	fmt.Println(strings.Repeat("=", 60))

	train, test, err := dataset.Load(cfg.DataOptions())
	if err != nil {
		return err
	}
	slog.Info("data loaded", "source", cfg.Data.Source, "train", train.Len(), "test", test.Len())

	backend := autodiff.New(cpu.NewWithConfig(parallelConfig(cfg.NumWorkers)))

	gArch := gan.Architecture{Width: cfg.Generator.Width, Size: gan.DefaultImageSize, Seed: cfg.Seed}
	dArch := gan.Architecture{Width: cfg.Discriminator.Width, Size: gan.DefaultImageSize, Seed: cfg.Seed + 1}
	g := gan.NewGenerator(gArch, backend)
	d := gan.NewDiscriminator(dArch, cfg.Discriminator.Adam(), backend)
	adv := gan.NewAdversarial(g, d, cfg.Generator.Adam())

	fmt.Printf("\n%v\n   %d trainable parameters\n", g, nn.CountParameters(g.Parameters()))
	fmt.Printf("\n%v\n   %d trainable parameters\n", d, nn.CountParameters(d.Parameters()))
	fmt.Printf("\nTraining: batch %d, epochs %d, report every %d, backend %s\n\n",
		cfg.BatchSize, cfg.Epochs, cfg.ReportInterval, backend.Name())

	sinks := gan.MultiSink{gan.NewLogSink(slog.Default())}
	var jsonSink *gan.JSONSink
	if progressPath != "" {
		f, err := os.Create(progressPath)
		if err != nil {
			return err
		}
		defer f.Close()
		jsonSink = gan.NewJSONSink(f)
		sinks = append(sinks, jsonSink)
	}

	trainer, err := gan.NewTrainer(cfg.Train(), train, g, d, adv, sinks)
	if err != nil {
		return err
	}
	if err := trainer.Run(); err != nil {
		return err
	}
	if jsonSink != nil && jsonSink.Err() != nil {
		slog.Warn("progress file incomplete", "path", progressPath, "err", jsonSink.Err())
	}

	if test.Len() > 0 {
		eval, err := gan.Evaluate(g, test, cfg.BatchSize)
		if err != nil {
			return err
		}
		slog.Info("evaluation", "samples", eval.Samples, "mae", eval.MAE, "mae_std", eval.StdDev)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Training complete: %d epochs\n", trainer.Epoch())
	return nil
}

func parallelConfig(workers int) parallel.Config {
	if workers == 1 {
		return parallel.Sequential()
	}
	cfg := parallel.DefaultConfig()
	if workers > 1 {
		cfg.Enabled = true
		cfg.NumWorkers = workers
	}
	return cfg
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
