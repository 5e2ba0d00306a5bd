// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gan

import (
	"log/slog"

	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/dataset"
	"github.com/born-ml/chromagan/internal/gan"
	"github.com/born-ml/chromagan/internal/optim"
)

// Errors.
var (
	ErrShapeMismatch      = gan.ErrShapeMismatch
	ErrIndexOutOfRange    = gan.ErrIndexOutOfRange
	ErrNumericInstability = gan.ErrNumericInstability
	ErrInvalidConfig      = gan.ErrInvalidConfig
	ErrTrainingComplete   = gan.ErrTrainingComplete
)

// Networks

// Architecture sizes both networks.
type Architecture = gan.Architecture

// DefaultArchitecture returns width 64 on 32x32 images.
func DefaultArchitecture() Architecture {
	return gan.DefaultArchitecture()
}

// Generator maps grayscale images to color images.
type Generator[B autodiff.BackwardCapable] = gan.Generator[B]

// NewGenerator builds a generator.
func NewGenerator[B autodiff.BackwardCapable](arch Architecture, backend B) *Generator[B] {
	return gan.NewGenerator(arch, backend)
}

// Discriminator scores color images as real or generated.
type Discriminator[B autodiff.BackwardCapable] = gan.Discriminator[B]

// BatchResult reports one discriminator update.
type BatchResult = gan.BatchResult

// NewDiscriminator builds a discriminator with its own Adam optimizer.
func NewDiscriminator[B autodiff.BackwardCapable](arch Architecture, opt optim.AdamConfig, backend B) *Discriminator[B] {
	return gan.NewDiscriminator(arch, opt, backend)
}

// Adversarial trains a generator through a frozen discriminator.
type Adversarial[B autodiff.BackwardCapable] = gan.Adversarial[B]

// NewAdversarial couples g and d.
func NewAdversarial[B autodiff.BackwardCapable](g *Generator[B], d *Discriminator[B], opt optim.AdamConfig) *Adversarial[B] {
	return gan.NewAdversarial(g, d, opt)
}

// Training

// TrainConfig controls the training loop.
type TrainConfig = gan.TrainConfig

// DefaultTrainConfig returns batch 64, 10000 epochs and a report every 100.
func DefaultTrainConfig() TrainConfig {
	return gan.DefaultTrainConfig()
}

// Phase is the trainer's position in the epoch cycle.
type Phase = gan.Phase

// Trainer phases.
const (
	PhaseIdle          = gan.PhaseIdle
	PhaseDiscriminator = gan.PhaseDiscriminator
	PhaseGenerator     = gan.PhaseGenerator
)

// StepMetrics describes one completed epoch.
type StepMetrics = gan.StepMetrics

// Trainer alternates discriminator and generator updates.
type Trainer[B autodiff.BackwardCapable] = gan.Trainer[B]

// NewTrainer validates its inputs and returns an idle trainer.
func NewTrainer[B autodiff.BackwardCapable](
	cfg TrainConfig,
	data *Pair,
	g *Generator[B],
	d *Discriminator[B],
	adv *Adversarial[B],
	sink ProgressSink,
) (*Trainer[B], error) {
	return gan.NewTrainer(cfg, data, g, d, adv, sink)
}

// Reporting

// Progress is the periodic training report.
type Progress = gan.Progress

// ProgressSink receives training reports.
type ProgressSink = gan.ProgressSink

// History keeps every report in memory.
type History = gan.History

// MultiSink fans reports out to several sinks.
type MultiSink = gan.MultiSink

// NewLogSink reports through slog; nil uses slog.Default.
func NewLogSink(logger *slog.Logger) *gan.LogSink {
	return gan.NewLogSink(logger)
}

// Evaluation summarizes colorization error on held-out images.
type Evaluation = gan.Evaluation

// Evaluate colorizes pair.Gray and measures the error against pair.Color.
func Evaluate[B autodiff.BackwardCapable](g *Generator[B], pair *Pair, batchSize int) (Evaluation, error) {
	return gan.Evaluate(g, pair, batchSize)
}

// Data

// Images is a channels-last batch of images in [0, 1].
type Images = dataset.Images

// Pair holds matching grayscale and color images.
type Pair = dataset.Pair

// DataOptions selects a dataset.
type DataOptions = dataset.Options

// Data sources.
const (
	SourceSynthetic = dataset.SourceSynthetic
	SourceCIFAR10   = dataset.SourceCIFAR10
)

// LoadData builds train and test pairs.
func LoadData(opts DataOptions) (train, test *Pair, err error) {
	return dataset.Load(opts)
}

// PairFromColor derives grayscale images from color ones.
func PairFromColor(color *Images) (*Pair, error) {
	return dataset.PairFromColor(color)
}

// ConstantColors builds one size x size pair per color.
func ConstantColors(size int, colors ...[3]float32) (*Pair, error) {
	return dataset.ConstantColors(size, colors...)
}
