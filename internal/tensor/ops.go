package tensor

// Add performs element-wise addition with broadcasting.
//
//	a := tensor.Ones(Shape{3, 1}, backend)
//	b := tensor.Ones(Shape{3, 5}, backend)
//	c := a.Add(b) // Shape: [3, 5]
func (t *Tensor[B]) Add(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Add(t.raw, other.raw), t.backend)
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Tensor[B]) Sub(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Sub(t.raw, other.raw), t.backend)
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Tensor[B]) Mul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.Mul(t.raw, other.raw), t.backend)
}

// MulScalar multiplies every element by s.
func (t *Tensor[B]) MulScalar(s float32) *Tensor[B] {
	return New(t.backend.MulScalar(t.raw, s), t.backend)
}

// MatMul multiplies two 2D tensors: (M, K) @ (K, N) -> (M, N).
func (t *Tensor[B]) MatMul(other *Tensor[B]) *Tensor[B] {
	return New(t.backend.MatMul(t.raw, other.raw), t.backend)
}

// Reshape returns a tensor with the same elements and a new shape.
func (t *Tensor[B]) Reshape(newShape ...int) *Tensor[B] {
	return New(t.backend.Reshape(t.raw, Shape(newShape)), t.backend)
}

// Transpose permutes dimensions. With no axes the dimensions are reversed.
//
//	nhwc := nchw.Transpose(0, 2, 3, 1)
func (t *Tensor[B]) Transpose(axes ...int) *Tensor[B] {
	return New(t.backend.Transpose(t.raw, axes...), t.backend)
}

// T is the 2D transpose.
func (t *Tensor[B]) T() *Tensor[B] {
	if len(t.Shape()) != 2 {
		panic("T() only works for 2D tensors")
	}
	return t.Transpose(1, 0)
}
