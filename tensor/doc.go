// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides float32 tensors for chromagan.
//
// # Overview
//
// A Tensor[B] couples float32 storage with the backend B that computes on
// it. Every operation allocates a new result, so a tensor's identity is
// stable for the lifetime of a gradient tape.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/chromagan/backend/cpu"
//	    "github.com/born-ml/chromagan/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	    y := tensor.Ones(tensor.Shape{3, 2}, backend)
//	    z := x.MatMul(y) // [2, 2]
//	}
//
// # Broadcasting
//
// Element-wise operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros(tensor.Shape{3, 1}, backend) // (3, 1)
//	b := tensor.Ones(tensor.Shape{3, 4}, backend)  // (3, 4)
//	c := a.Add(b)                                  // (3, 4)
//
// # Image Layout
//
// Image batches cross package boundaries channels-last, [N, H, W, C].
// Convolutions run channels-first, [N, C, H, W]; use Transpose(0, 3, 1, 2)
// and Transpose(0, 2, 3, 1) to move between the two.
package tensor
