package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/chromagan/internal/tensor"
)

// Xavier (Glorot) initialization for weights.
//
// Values are drawn from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))).
// A nil rng draws from the global math/rand source.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, rng *rand.Rand, backend B) *tensor.Tensor[B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))

	draw := rand.Float64
	if rng != nil {
		draw = rng.Float64
	}

	t := tensor.Zeros(shape, backend)
	data := t.Data()
	for i := range data {
		//nolint:gosec // weight initialization is not security-critical
		data[i] = float32((draw()*2.0 - 1.0) * bound)
	}
	return t
}

// Zeros creates a tensor filled with zeros, used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[B] {
	return tensor.Zeros(shape, backend)
}
