package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Synthetic builds n size x size image pairs, each filled with one random
// RGB color. It is the smallest dataset on which colorization is learnable.
func Synthetic(n, size int, seed int64) (*Pair, error) {
	if n <= 0 {
		return nil, errors.Errorf("synthetic dataset needs at least one image, got %d", n)
	}
	color, err := NewImages(n, size, size, 3)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // synthetic data is not security-critical
	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < n; i++ {
		rgb := [3]float32{rng.Float32(), rng.Float32(), rng.Float32()}
		px := color.Sample(i)
		for j := range px {
			px[j] = rgb[j%3]
		}
	}
	return PairFromColor(color)
}

// ConstantColors builds one size x size pair per entry of colors.
func ConstantColors(size int, colors ...[3]float32) (*Pair, error) {
	color, err := NewImages(len(colors), size, size, 3)
	if err != nil {
		return nil, err
	}
	for i, rgb := range colors {
		px := color.Sample(i)
		for j := range px {
			px[j] = rgb[j%3]
		}
	}
	return PairFromColor(color)
}
