// Package cpu implements the CPU backend on top of gonum BLAS.
package cpu

import (
	"fmt"

	"github.com/born-ml/chromagan/internal/parallel"
	"github.com/born-ml/chromagan/internal/tensor"
)

// CPUBackend implements tensor.Backend on the host CPU.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a CPU backend that fans per-sample kernels out across all cores.
func New() *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float32) float32 { return x * y })
}

// MulScalar multiplies every element by s.
func (cpu *CPUBackend) MulScalar(x *tensor.RawTensor, s float32) *tensor.RawTensor {
	result := tensor.MustRaw(x.Shape(), cpu.device)
	dst := result.Data()
	for i, v := range x.Data() {
		dst[i] = v * s
	}
	return result
}

func (cpu *CPUBackend) binary(name string, a, b *tensor.RawTensor, f func(x, y float32) float32) *tensor.RawTensor {
	outShape, stretched, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(fmt.Sprintf("%s: %v", name, err))
	}

	result, err := tensor.NewRaw(outShape, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("%s: failed to create result tensor: %v", name, err))
	}

	dst := result.Data()
	aData, bData := a.Data(), b.Data()

	if !stretched {
		// Fast path: identical shapes.
		for i := range dst {
			dst[i] = f(aData[i], bData[i])
		}
		return result
	}

	aShape, bShape := a.Shape(), b.Shape()
	for i := range dst {
		ai := tensor.BroadcastOffset(i, outShape, aShape)
		bi := tensor.BroadcastOffset(i, outShape, bShape)
		dst[i] = f(aData[ai], bData[bi])
	}
	return result
}
