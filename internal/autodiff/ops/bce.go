package ops

import "github.com/born-ml/chromagan/internal/tensor"

// BCEOp records mean binary cross-entropy between probabilities and 0/1
// targets. Targets are constants: their gradient slot is always nil.
type BCEOp struct {
	predictions *tensor.RawTensor
	targets     *tensor.RawTensor
	output      *tensor.RawTensor
}

// NewBCEOp creates a new BCEOp.
func NewBCEOp(predictions, targets, output *tensor.RawTensor) *BCEOp {
	return &BCEOp{predictions: predictions, targets: targets, output: output}
}

// Backward delegates to the backend's clipped BCE derivative.
func (op *BCEOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := backend.BinaryCrossEntropyBackward(op.predictions, op.targets, outputGrad)
	return []*tensor.RawTensor{grad, nil}
}

// Inputs returns [predictions, targets].
func (op *BCEOp) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{op.predictions, op.targets}
}

// Output returns the scalar loss tensor.
func (op *BCEOp) Output() *tensor.RawTensor {
	return op.output
}
