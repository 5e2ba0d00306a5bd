// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package gan_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/chromagan/autodiff"
	"github.com/born-ml/chromagan/backend/cpu"
	"github.com/born-ml/chromagan/gan"
	"github.com/born-ml/chromagan/optim"
	"github.com/born-ml/chromagan/tensor"
)

func TestPublicTrainingRoundTrip(t *testing.T) {
	backend := autodiff.New(cpu.NewWithWorkers(1))
	train, test, err := gan.LoadData(gan.DataOptions{
		Source:       gan.SourceSynthetic,
		TrainSamples: 8,
		TestSamples:  2,
		Seed:         3,
	})
	require.NoError(t, err)

	arch := gan.Architecture{Width: 2, Size: 32, Seed: 1}
	g := gan.NewGenerator(arch, backend)
	d := gan.NewDiscriminator(arch, optim.AdamConfig{}, backend)
	adv := gan.NewAdversarial(g, d, optim.AdamConfig{})

	history := &gan.History{}
	cfg := gan.TrainConfig{BatchSize: 2, Epochs: 2, ReportInterval: 1, Seed: 5}
	trainer, err := gan.NewTrainer(cfg, train, g, d, adv, gan.MultiSink{history, gan.NewLogSink(nil)})
	require.NoError(t, err)
	require.NoError(t, trainer.Run())

	assert.Equal(t, gan.PhaseIdle, trainer.Phase())
	assert.Len(t, history.Records(), 2)

	eval, err := gan.Evaluate(g, test, 4)
	require.NoError(t, err)
	assert.Equal(t, 2, eval.Samples)

	color, err := g.Colorize(tensor.Zeros(tensor.Shape{1, 32, 32, 1}, backend))
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{1, 32, 32, 3}, color.Shape())
}

func TestPublicErrors(t *testing.T) {
	backend := autodiff.New(cpu.New())
	g := gan.NewGenerator(gan.Architecture{Width: 2}, backend)

	_, err := g.Colorize(tensor.Zeros(tensor.Shape{1, 32, 32, 3}, backend))
	assert.True(t, errors.Is(err, gan.ErrShapeMismatch))

	assert.True(t, errors.Is(gan.TrainConfig{}.Validate(), gan.ErrInvalidConfig))
}
