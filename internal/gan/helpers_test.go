package gan_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/backend/cpu"
	"github.com/born-ml/chromagan/internal/dataset"
	"github.com/born-ml/chromagan/internal/gan"
	"github.com/born-ml/chromagan/internal/optim"
	"github.com/born-ml/chromagan/internal/parallel"
	"github.com/born-ml/chromagan/internal/tensor"
)

type testBackend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// smallArch keeps the networks tiny so every test trains in milliseconds.
var smallArch = gan.Architecture{Width: 4, Size: 32, Seed: 7}

func newBackend() testBackend {
	return autodiff.New(cpu.NewWithConfig(parallel.Sequential()))
}

type fixture struct {
	backend testBackend
	g       *gan.Generator[testBackend]
	d       *gan.Discriminator[testBackend]
	adv     *gan.Adversarial[testBackend]
}

func newFixture() fixture {
	b := newBackend()
	opt := optim.AdamConfig{LR: 0.01}
	g := gan.NewGenerator(smallArch, b)
	d := gan.NewDiscriminator(gan.Architecture{Width: 4, Size: 32, Seed: 8}, opt, b)
	return fixture{backend: b, g: g, d: d, adv: gan.NewAdversarial(g, d, opt)}
}

func randomImages(b testBackend, seed int64, n, channels int) *tensor.Tensor[testBackend] {
	//nolint:gosec // test data
	rng := rand.New(rand.NewSource(seed))
	return tensor.Uniform(tensor.Shape{n, 32, 32, channels}, 0, 1, rng, b)
}

func labels(b testBackend, n int, value float32) *tensor.Tensor[testBackend] {
	return tensor.Full(tensor.Shape{n, 1}, value, b)
}

// constantPairs is five 32x32 constant-color images and their luminance.
func constantPairs(t *testing.T) *dataset.Pair {
	t.Helper()
	pair, err := dataset.ConstantColors(32,
		[3]float32{1, 0, 0},
		[3]float32{0, 1, 0},
		[3]float32{0, 0, 1},
		[3]float32{1, 1, 0},
		[3]float32{0.2, 0.4, 0.6},
	)
	require.NoError(t, err)
	return pair
}
