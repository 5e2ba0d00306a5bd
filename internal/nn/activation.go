package nn

import (
	"github.com/born-ml/chromagan/internal/tensor"
)

// ReLU is a Rectified Linear Unit activation module: f(x) = max(0, x).
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation.
func (r *ReLU[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	backend := input.Backend()
	return tensor.New(backend.ReLU(input.Raw()), backend)
}

// Parameters returns nil (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns the module name.
func (r *ReLU[B]) String() string {
	return "ReLU()"
}

// Sigmoid is a sigmoid activation module: σ(x) = 1 / (1 + exp(-x)).
//
// Outputs lie strictly inside (0, 1), which is what the generator's color
// channels and the discriminator's probability need.
type Sigmoid[B tensor.Backend] struct{}

// NewSigmoid creates a new Sigmoid activation module.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return &Sigmoid[B]{}
}

// Forward applies Sigmoid activation.
func (s *Sigmoid[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	backend := input.Backend()
	return tensor.New(backend.Sigmoid(input.Raw()), backend)
}

// Parameters returns nil (Sigmoid has no trainable parameters).
func (s *Sigmoid[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns the module name.
func (s *Sigmoid[B]) String() string {
	return "Sigmoid()"
}
