package ops

import (
	"github.com/born-ml/chromagan/internal/tensor"
)

// SigmoidOp represents the sigmoid activation operation: σ(x) = 1 / (1 + exp(-x)).
type SigmoidOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewSigmoidOp creates a new sigmoid operation.
func NewSigmoidOp(input, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{
		input:  input,
		output: output,
	}
}

// Inputs returns the input tensors.
func (op *SigmoidOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *SigmoidOp) Output() *tensor.RawTensor {
	return op.output
}

// Backward computes grad_input = grad_output * σ(x) * (1 - σ(x)), reusing the
// forward output.
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	s := op.output.Data()
	g := outputGrad.Data()

	inputGrad := tensor.MustRaw(op.input.Shape(), backend.Device())
	dst := inputGrad.Data()
	for i := range dst {
		dst[i] = g[i] * s[i] * (1 - s[i])
	}
	return []*tensor.RawTensor{inputGrad}
}
