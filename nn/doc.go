// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network layers and building blocks.
//
// # Overview
//
// This package contains:
//   - Layers: Linear, Conv2D
//   - Activations: ReLU, Sigmoid
//   - Layout: Permute, Flatten, Upsample2D
//   - Loss functions: BCELoss
//   - Utilities: Sequential, Frozen, Module interface, Parameter
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/chromagan/autodiff"
//	    "github.com/born-ml/chromagan/backend/cpu"
//	    "github.com/born-ml/chromagan/nn"
//	)
//
//	func main() {
//	    backend := autodiff.New(cpu.New())
//	    rng := rand.New(rand.NewSource(1))
//
//	    model := nn.NewSequential[B](
//	        nn.NewConv2D(3, 8, 3, 3, 2, 1, true, rng, backend),
//	        nn.NewReLU[B](),
//	        nn.NewFlatten[B](),
//	        nn.NewLinear(8*16*16, 1, rng, backend),
//	        nn.NewSigmoid[B](),
//	    )
//
//	    probs := model.Forward(images) // [N, 3, 32, 32] -> [N, 1]
//	}
//
// # Freezing
//
// Freeze returns a view of a module that takes part in the forward pass but
// whose parameters get no gradient during the current tape session. The
// wrapped module is shared, so it keeps training through its own handle:
//
//	frozen := nn.Freeze[B](discriminator)
//	loss := bce.Forward(frozen.Forward(generator.Forward(gray)), ones)
//
// # Initialization
//
// Conv2D and Linear draw weights from the Xavier uniform distribution using
// the *rand.Rand they are given, so a fixed seed reproduces a network exactly.
package nn
