// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/chromagan/internal/backend/cpu"
	"github.com/born-ml/chromagan/internal/parallel"
	"github.com/born-ml/chromagan/tensor"
)

// Backend represents the CPU backend implementation.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a CPU backend that uses every core for batched kernels.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
func New() *Backend {
	return internalcpu.New()
}

// NewWithWorkers creates a CPU backend limited to workers goroutines per
// kernel. One worker runs every kernel on the calling goroutine.
func NewWithWorkers(workers int) *Backend {
	if workers <= 1 {
		return internalcpu.NewWithConfig(parallel.Sequential())
	}
	cfg := parallel.DefaultConfig()
	cfg.Enabled = true
	cfg.NumWorkers = workers
	return internalcpu.NewWithConfig(cfg)
}
