// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/chromagan/internal/tensor"
)

// Device represents the device where tensor data resides.
type Device = tensor.Device

// CPU is the host device.
const CPU Device = tensor.CPU

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 32, 32, 3} is a batch of two 32x32 RGB images.
type Shape = tensor.Shape

// RawTensor is the untyped float32 storage behind a Tensor. Its pointer
// identifies the tensor on a gradient tape.
type RawTensor = tensor.RawTensor

// Tensor is a float32 tensor bound to backend B.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	y := tensor.Ones(tensor.Shape{2, 3}, backend)
//	z := x.Add(y)  // Element-wise addition
type Tensor[B Backend] = tensor.Tensor[B]

// Zeros creates a tensor filled with zeros.
func Zeros[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Zeros(shape, b)
}

// Ones creates a tensor filled with ones.
func Ones[B Backend](shape Shape, b B) *Tensor[B] {
	return tensor.Ones(shape, b)
}

// Full creates a tensor filled with value.
//
// Example:
//
//	labels := tensor.Full(tensor.Shape{32, 1}, 1.0, backend)
func Full[B Backend](shape Shape, value float32, b B) *Tensor[B] {
	return tensor.Full(shape, value, b)
}

// Uniform creates a tensor with values drawn from U(lo, hi).
func Uniform[B Backend](shape Shape, lo, hi float64, rng *rand.Rand, b B) *Tensor[B] {
	return tensor.Uniform(shape, lo, hi, rng, b)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
func FromSlice[B Backend](data []float32, shape Shape, b B) (*Tensor[B], error) {
	return tensor.FromSlice(data, shape, b)
}

// New wraps a raw tensor.
//
// This is a low-level function. Most users should use creation functions like
// Zeros, Full, or FromSlice instead.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return tensor.New(raw, b)
}

// NewRaw allocates a zeroed raw tensor.
func NewRaw(shape Shape, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, device)
}
