// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimization algorithms for training neural networks.
//
// # Overview
//
// Adam keeps per-parameter first and second moment estimates and a step
// counter. Create one optimizer per network and keep it for the network's
// lifetime; rebuilding it resets the moments.
//
// # Basic Usage
//
//	backend := autodiff.New(cpu.New())
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{}, backend)
//
//	for step := 0; step < steps; step++ {
//	    backend.Tape().StartRecording()
//	    loss := bce.Forward(model.Forward(images), labels)
//	    grads := autodiff.Backward(loss, backend)
//	    optimizer.Step(grads)
//	    backend.Tape().Clear()
//	}
//
// Parameters missing from the gradient map, such as those of a frozen
// module, are left untouched.
package optim
