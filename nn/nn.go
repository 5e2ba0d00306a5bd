// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization drawn from
// rng (nil uses the global source).
//
// Example:
//
//	layer := nn.NewLinear(512, 1, rng, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, rng *rand.Rand, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, rng, backend)
}

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer.
//
// Example:
//
//	conv := nn.NewConv2D(1, 64, 3, 3, 1, 1, true, rng, backend)  // 1->64 channels, 3x3, stride 1, padding 1
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	useBias bool,
	rng *rand.Rand,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, useBias, rng, backend)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// Sigmoid represents the logistic activation function.
type Sigmoid[B tensor.Backend] = nn.Sigmoid[B]

// NewSigmoid creates a new Sigmoid activation layer.
func NewSigmoid[B tensor.Backend]() *Sigmoid[B] {
	return nn.NewSigmoid[B]()
}

// Layout

// Permute reorders tensor axes.
type Permute[B tensor.Backend] = nn.Permute[B]

// NewPermute creates a Permute module, e.g. NewPermute(0, 3, 1, 2) for NHWC to NCHW.
func NewPermute[B tensor.Backend](axes ...int) *Permute[B] {
	return nn.NewPermute[B](axes...)
}

// Flatten collapses every dimension after the first.
type Flatten[B tensor.Backend] = nn.Flatten[B]

// NewFlatten creates a Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return nn.NewFlatten[B]()
}

// Upsample2D is nearest-neighbour upsampling of NCHW tensors.
type Upsample2D[B tensor.Backend] = nn.Upsample2D[B]

// NewUpsample2D creates an upsampling module.
func NewUpsample2D[B tensor.Backend](scale int) *Upsample2D[B] {
	return nn.NewUpsample2D[B](scale)
}

// Containers

// Sequential chains modules.
type Sequential[B tensor.Backend] = nn.Sequential[B]

// NewSequential creates a Sequential container.
//
// Example:
//
//	model := nn.NewSequential[B](
//	    nn.NewConv2D(3, 8, 3, 3, 2, 1, true, rng, backend),
//	    nn.NewReLU[B](),
//	    nn.NewFlatten[B](),
//	)
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return nn.NewSequential[B](modules...)
}

// Frozen is a view of a module whose parameters receive no gradients.
type Frozen[B tensor.Backend] = nn.Frozen[B]

// Freeze wraps m. The freeze lasts for the tape session of each Forward.
func Freeze[B tensor.Backend](m Module[B]) *Frozen[B] {
	return nn.Freeze(m)
}

// Loss functions

// BCELoss is binary cross-entropy on probabilities.
type BCELoss[B tensor.Backend] = nn.BCELoss[B]

// NewBCELoss creates a binary cross-entropy loss.
func NewBCELoss[B tensor.Backend](backend B) *BCELoss[B] {
	return nn.NewBCELoss(backend)
}

// CountParameters returns the total number of scalar parameters.
func CountParameters[B tensor.Backend](params []*Parameter[B]) int {
	return nn.CountParameters(params)
}
