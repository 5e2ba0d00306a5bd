package tensor

import "math/rand"

// Zeros creates a zero-filled tensor.
//
//	t := tensor.Zeros(tensor.Shape{3, 4}, backend)
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return New(MustRaw(shape, b.Device()), b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return Full(shape, 1, b)
}

// Full creates a tensor filled with value.
//
//	labels := tensor.Full(tensor.Shape{32, 1}, 1.0, backend)
func Full[B Backend](shape Shape, value float32, b B) *Tensor[B] {
	t := Zeros(shape, b)
	t.raw.Fill(value)
	return t
}

// Uniform fills a new tensor with values drawn from U(lo, hi) using rng.
func Uniform[B Backend](shape Shape, lo, hi float64, rng *rand.Rand, b B) *Tensor[B] {
	t := Zeros(shape, b)
	data := t.Data()
	for i := range data {
		data[i] = float32(lo + rng.Float64()*(hi-lo))
	}
	return t
}
