// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for tensor operations.
//
// # Overview
//
// This package implements a CPU backend with:
//   - Pure Go implementation (no CGO)
//   - Matrix products on gonum BLAS
//   - Im2col convolutions with per-sample goroutines
//   - NumPy-compatible broadcasting
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
//	    y := tensor.Ones(tensor.Shape{2, 3}, backend)
//	    z := x.Add(y)
//	}
//
// # Thread Safety
//
// Kernels share no mutable state, so one backend may serve several
// goroutines. An autodiff wrapper around it may not: its tape is single-owner.
package cpu
