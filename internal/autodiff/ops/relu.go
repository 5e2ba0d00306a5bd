package ops

import "github.com/born-ml/chromagan/internal/tensor"

// ReLUOp represents the ReLU activation: output = max(0, x).
type ReLUOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(input, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{input: input, output: output}
}

// Backward passes outputGrad through where the input was positive.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, reluMask(op.input, backend))}
}

// Inputs returns the input tensors.
func (op *ReLUOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *ReLUOp) Output() *tensor.RawTensor {
	return op.output
}

// reluMask is 1 where x > 0 and 0 elsewhere.
func reluMask(x *tensor.RawTensor, backend tensor.Backend) *tensor.RawTensor {
	mask := tensor.MustRaw(x.Shape(), backend.Device())
	dst := mask.Data()
	for i, v := range x.Data() {
		if v > 0 {
			dst[i] = 1
		}
	}
	return mask
}
