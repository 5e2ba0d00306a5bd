// Package nn implements neural network modules on top of the tensor and
// autodiff packages.
//
// This package provides building blocks for constructing neural networks:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters with gradient tracking
//   - Conv2D, Linear: layers with Xavier-initialized weights
//   - Activations: ReLU, Sigmoid
//   - Layout: Permute, Flatten, Upsample2D
//   - BCELoss: binary cross-entropy on probabilities
//   - Sequential: Container for stacking layers
//   - Frozen: wrapper that excludes a module's parameters from gradients
package nn

import (
	"github.com/born-ml/chromagan/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewConv2D(1, 16, 3, 3, 1, 1, true, rng, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewFlatten[Backend](),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[B]) *tensor.Tensor[B]

	// Parameters returns all trainable parameters of this module, including
	// those of nested modules. Parameter-free modules return nil.
	Parameters() []*Parameter[B]
}
