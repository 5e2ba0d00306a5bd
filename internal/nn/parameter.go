package nn

import (
	"github.com/born-ml/chromagan/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// The parameter's RawTensor pointer is its identity on the gradient tape,
// so optimizers update the data in place and never replace the tensor.
//
//	weight := nn.NewParameter("weight", weightTensor)
//	grad := weight.Grad() // after backward pass
type Parameter[B tensor.Backend] struct {
	name   string
	tensor *tensor.Tensor[B]
	grad   *tensor.Tensor[B]
}

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[B] {
	return p.tensor
}

// Grad returns the gradient tensor, or nil before the first backward pass.
func (p *Parameter[B]) Grad() *tensor.Tensor[B] {
	return p.grad
}

// SetGrad sets the gradient tensor.
func (p *Parameter[B]) SetGrad(grad *tensor.Tensor[B]) {
	p.grad = grad
}

// ZeroGrad clears the gradient tensor.
func (p *Parameter[B]) ZeroGrad() {
	p.grad = nil
}

// Snapshot returns a deep copy of every parameter's values, in order.
func Snapshot[B tensor.Backend](params []*Parameter[B]) [][]float32 {
	out := make([][]float32, len(params))
	for i, p := range params {
		out[i] = append([]float32(nil), p.Tensor().Data()...)
	}
	return out
}

// CountParameters returns the total number of scalar weights in params.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	n := 0
	for _, p := range params {
		n += p.Tensor().NumElements()
	}
	return n
}
