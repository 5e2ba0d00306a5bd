package ops

import "github.com/born-ml/chromagan/internal/tensor"

// ReshapeOp records a reshape so gradients reach the original tensor.
//
// Example: a Conv2D bias of shape [C_out] is reshaped to [1, C_out, 1, 1]
// for broadcasting. Without this op the gradient would stop at the reshaped
// copy and never reach the bias parameter.
type ReshapeOp struct {
	input     *tensor.RawTensor
	output    *tensor.RawTensor
	origShape tensor.Shape
}

// NewReshapeOp creates a new ReshapeOp.
func NewReshapeOp(input, output *tensor.RawTensor) *ReshapeOp {
	return &ReshapeOp{
		input:     input,
		output:    output,
		origShape: input.Shape().Clone(),
	}
}

// Backward reshapes outputGrad back to the input shape.
func (op *ReshapeOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Reshape(outputGrad, op.origShape)}
}

// Inputs returns the input tensors.
func (op *ReshapeOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ReshapeOp) Output() *tensor.RawTensor {
	return op.output
}
