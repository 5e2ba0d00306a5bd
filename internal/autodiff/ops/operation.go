// Package ops defines the differentiable operations recorded on a gradient tape.
//
// Each operation keeps its inputs and output from the forward pass and
// computes input gradients during the backward pass:
//   - AddOp, SubOp, MulOp: element-wise arithmetic with broadcast reduction
//   - MulScalarOp: scaling by a constant
//   - MatMulOp: d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad
//   - Conv2DOp, Upsample2DOp: spatial layers
//   - ReshapeOp, TransposeOp: layout changes
//   - ReLUOp, SigmoidOp: activations
//   - BCEOp: binary cross-entropy on probabilities
package ops

import "github.com/born-ml/chromagan/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// The result is index-aligned with Inputs; a nil entry means no
	// gradient flows to that input.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}
