// Package gan implements adversarial colorization of small grayscale images.
//
// A Generator maps [N, H, W, 1] luminance images to [N, H, W, 3] color
// images in [0, 1]. A Discriminator scores color images as real (1) or
// generated (0). The Adversarial composite trains the generator through a
// frozen view of the discriminator, and a Trainer alternates the two:
//
//	backend := autodiff.New(cpu.New())
//	g := gan.NewGenerator(gan.DefaultArchitecture(), backend)
//	d := gan.NewDiscriminator(gan.DefaultArchitecture(), optim.AdamConfig{}, backend)
//	adv := gan.NewAdversarial(g, d, optim.AdamConfig{})
//	trainer, err := gan.NewTrainer(gan.DefaultTrainConfig(), data, g, d, adv, gan.NewLogSink(nil))
//	err = trainer.Run()
package gan

import (
	"fmt"
	"math/rand"
)

// Defaults for the networks and the training loop.
const (
	DefaultWidth          = 64
	DefaultImageSize      = 32
	DefaultBatchSize      = 64
	DefaultEpochs         = 10000
	DefaultReportInterval = 100
)

// Architecture sizes both networks.
type Architecture struct {
	Width int   // channels of the first convolution; deeper layers use 2*Width
	Size  int   // side length of the square input images
	Seed  int64 // weight initialization seed
}

// DefaultArchitecture returns width 64 on 32x32 images.
func DefaultArchitecture() Architecture {
	return Architecture{Width: DefaultWidth, Size: DefaultImageSize, Seed: 1}
}

func (a Architecture) withDefaults() Architecture {
	if a.Width == 0 {
		a.Width = DefaultWidth
	}
	if a.Size == 0 {
		a.Size = DefaultImageSize
	}
	if a.Width < 0 || a.Size < 4 || a.Size%4 != 0 {
		panic(fmt.Sprintf("gan: invalid architecture width=%d size=%d (size must be a positive multiple of 4)", a.Width, a.Size))
	}
	return a
}

func (a Architecture) rng() *rand.Rand {
	//nolint:gosec // weight initialization is not security-critical
	return rand.New(rand.NewSource(a.Seed))
}
