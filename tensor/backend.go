// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/chromagan/internal/tensor"

// Backend is the set of kernels a compute device provides.
//
// Implementations:
//   - backend/cpu: Pure Go on gonum BLAS
//
// Decorator backends for additional functionality:
//   - autodiff: Automatic differentiation (wraps any backend)
type Backend interface {
	// Element-wise binary operations with broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	MulScalar(x *RawTensor, s float32) *RawTensor

	// Matrix operations.
	MatMul(a, b *RawTensor) *RawTensor

	// Convolutional operations on NCHW tensors.
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	Conv2DInputBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor
	Conv2DKernelBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor
	Upsample2D(x *RawTensor, scale int) *RawTensor
	Upsample2DBackward(grad *RawTensor, scale int) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Activations.
	ReLU(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor

	// Loss.
	BinaryCrossEntropy(predictions, targets *RawTensor) *RawTensor
	BinaryCrossEntropyBackward(predictions, targets, grad *RawTensor) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}

// Compile-time check that internal Backend implements public Backend.
var _ Backend = tensor.Backend(nil)
