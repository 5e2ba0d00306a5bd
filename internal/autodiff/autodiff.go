// Package autodiff implements automatic differentiation using the decorator pattern.
//
// AutodiffBackend wraps any Backend implementation and adds gradient
// tracking through a GradientTape.
//
// Architecture:
//   - Decorator pattern: AutodiffBackend[B] wraps any Backend implementation
//   - GradientTape: Records operations during forward pass
//   - Operation interface: Each op implements its backward pass
//   - Freeze set: per-session exclusion of tensors from gradient results
//
// Usage:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x, _ := tensor.FromSlice([]float32{2.0}, tensor.Shape{1}, backend)
//	y := x.Mul(x) // y = x²
//	grads := autodiff.Backward(y, backend)
//	fmt.Println(grads[x.Raw()].Data()) // dy/dx = 2x = 4.0
package autodiff

import (
	"github.com/born-ml/chromagan/internal/autodiff/ops"
	"github.com/born-ml/chromagan/internal/tensor"
)

// AutodiffBackend wraps a Backend and adds automatic differentiation.
// It implements the tensor.Backend interface and records operations in a GradientTape.
//
// Type parameter B must satisfy the tensor.Backend interface.
type AutodiffBackend[B tensor.Backend] struct {
	inner B             // Wrapped backend
	tape  *GradientTape // Records operations for backpropagation
}

// New creates a new AutodiffBackend wrapping the given backend.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{
		inner: backend,
		tape:  NewGradientTape(),
	}
}

// Tape returns the gradient tape for manual control.
func (b *AutodiffBackend[B]) Tape() *GradientTape {
	return b.tape
}

// Inner returns the wrapped backend for direct access.
func (b *AutodiffBackend[B]) Inner() B {
	return b.inner
}

// Freeze excludes raws from gradient results for the current tape session.
func (b *AutodiffBackend[B]) Freeze(raws ...*tensor.RawTensor) {
	b.tape.Freeze(raws...)
}

// Name returns the backend name.
func (b *AutodiffBackend[B]) Name() string {
	return "Autodiff(" + b.inner.Name() + ")"
}

// Device returns the compute device.
func (b *AutodiffBackend[B]) Device() tensor.Device {
	return b.inner.Device()
}

func (b *AutodiffBackend[B]) record(op ops.Operation) {
	if b.tape.IsRecording() {
		b.tape.Record(op)
	}
}

// Add performs element-wise addition and records the operation.
func (b *AutodiffBackend[B]) Add(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Add(a, c)
	b.record(ops.NewAddOp(a, c, result))
	return result
}

// Sub performs element-wise subtraction and records the operation.
func (b *AutodiffBackend[B]) Sub(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sub(a, c)
	b.record(ops.NewSubOp(a, c, result))
	return result
}

// Mul performs element-wise multiplication and records the operation.
func (b *AutodiffBackend[B]) Mul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Mul(a, c)
	b.record(ops.NewMulOp(a, c, result))
	return result
}

// MulScalar scales x by s and records the operation.
func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	result := b.inner.MulScalar(x, s)
	b.record(ops.NewMulScalarOp(x, result, s))
	return result
}

// MatMul performs matrix multiplication and records the operation.
func (b *AutodiffBackend[B]) MatMul(a, c *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.MatMul(a, c)
	b.record(ops.NewMatMulOp(a, c, result))
	return result
}

// Reshape reshapes a tensor and records the operation.
//
// Reshape must be recorded: the backend returns a new tensor, and without
// ReshapeOp the gradient would stop at the reshaped copy.
func (b *AutodiffBackend[B]) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	result := b.inner.Reshape(t, newShape)
	b.record(ops.NewReshapeOp(t, result))
	return result
}

// Transpose permutes dimensions and records the operation.
//
// For example, in the Linear layer:
//
//	wT = w.Transpose()   // new tensor
//	output = input @ wT  // MatMul records wT, not w
//
// TransposeOp carries the gradient of wT back to w.
func (b *AutodiffBackend[B]) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	ndim := len(t.Shape())
	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}

	result := b.inner.Transpose(t, axes...)
	b.record(ops.NewTransposeOp(t, result, axes))
	return result
}

// Conv2D performs 2D convolution and records the operation.
func (b *AutodiffBackend[B]) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	result := b.inner.Conv2D(input, kernel, stride, padding)
	b.record(ops.NewConv2DOp(input, kernel, result, stride, padding))
	return result
}

// Conv2DInputBackward delegates to the wrapped backend without recording.
func (b *AutodiffBackend[B]) Conv2DInputBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return b.inner.Conv2DInputBackward(input, kernel, grad, stride, padding)
}

// Conv2DKernelBackward delegates to the wrapped backend without recording.
func (b *AutodiffBackend[B]) Conv2DKernelBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	return b.inner.Conv2DKernelBackward(input, kernel, grad, stride, padding)
}

// Upsample2D performs nearest-neighbour upsampling and records the operation.
func (b *AutodiffBackend[B]) Upsample2D(x *tensor.RawTensor, scale int) *tensor.RawTensor {
	result := b.inner.Upsample2D(x, scale)
	b.record(ops.NewUpsample2DOp(x, result, scale))
	return result
}

// Upsample2DBackward delegates to the wrapped backend without recording.
func (b *AutodiffBackend[B]) Upsample2DBackward(grad *tensor.RawTensor, scale int) *tensor.RawTensor {
	return b.inner.Upsample2DBackward(grad, scale)
}

// ReLU applies ReLU activation and records the operation.
func (b *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.ReLU(x)
	b.record(ops.NewReLUOp(x, result))
	return result
}

// Sigmoid applies sigmoid activation and records the operation.
func (b *AutodiffBackend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.Sigmoid(x)
	b.record(ops.NewSigmoidOp(x, result))
	return result
}

// BinaryCrossEntropy computes mean BCE of probabilities against targets and
// records the operation. Only predictions receive a gradient.
func (b *AutodiffBackend[B]) BinaryCrossEntropy(predictions, targets *tensor.RawTensor) *tensor.RawTensor {
	result := b.inner.BinaryCrossEntropy(predictions, targets)
	b.record(ops.NewBCEOp(predictions, targets, result))
	return result
}

// BinaryCrossEntropyBackward delegates to the wrapped backend without recording.
func (b *AutodiffBackend[B]) BinaryCrossEntropyBackward(predictions, targets, grad *tensor.RawTensor) *tensor.RawTensor {
	return b.inner.BinaryCrossEntropyBackward(predictions, targets, grad)
}
