// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package gan trains a generative adversarial network that colorizes 32x32
// grayscale images.
//
// # Overview
//
// A Generator maps [N, 32, 32, 1] luminance to [N, 32, 32, 3] color in
// [0, 1]. A Discriminator scores color images as real or generated. The
// Adversarial composite trains the generator through a frozen view of the
// discriminator, and a Trainer alternates the two networks epoch by epoch.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/chromagan/autodiff"
//	    "github.com/born-ml/chromagan/backend/cpu"
//	    "github.com/born-ml/chromagan/gan"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    train, test, err := gan.LoadData(gan.DataOptions{Source: gan.SourceSynthetic, TrainSamples: 256, TestSamples: 32})
//
//	    g := gan.NewGenerator(gan.DefaultArchitecture(), backend)
//	    d := gan.NewDiscriminator(gan.DefaultArchitecture(), optim.AdamConfig{}, backend)
//	    adv := gan.NewAdversarial(g, d, optim.AdamConfig{})
//
//	    trainer, err := gan.NewTrainer(gan.DefaultTrainConfig(), train, g, d, adv, gan.NewLogSink(nil))
//	    err = trainer.Run()
//
//	    eval, err := gan.Evaluate(g, test, 64)
//	    color, err := g.Colorize(gray)
//	}
//
// # Training Loop
//
// Each epoch samples half a batch of real images, colorizes their grayscale
// versions without recording gradients, and updates the discriminator once on
// the real half (labels 1) and once on the generated half (labels 0). It then
// samples a fresh full batch and updates the generator through the composite
// with labels of 1. Reports go to a ProgressSink every ReportInterval epochs.
//
// # Errors
//
// Failures wrap the sentinels ErrShapeMismatch, ErrIndexOutOfRange,
// ErrNumericInstability and ErrInvalidConfig; test them with errors.Is.
package gan
