package ops

import "github.com/born-ml/chromagan/internal/tensor"

// Upsample2DOp records nearest-neighbour upsampling. Each input pixel fans
// out to a scale x scale block, so its gradient is the block sum.
type Upsample2DOp struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
	scale  int
}

// NewUpsample2DOp creates a new Upsample2DOp.
func NewUpsample2DOp(input, output *tensor.RawTensor, scale int) *Upsample2DOp {
	return &Upsample2DOp{input: input, output: output, scale: scale}
}

// Backward sums outputGrad over each upsampled block.
func (op *Upsample2DOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Upsample2DBackward(outputGrad, op.scale)}
}

// Inputs returns the input tensors.
func (op *Upsample2DOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.input}
}

// Output returns the output tensor.
func (op *Upsample2DOp) Output() *tensor.RawTensor {
	return op.output
}
