package cpu

import (
	"math"

	"github.com/born-ml/chromagan/internal/tensor"
)

// ReLU computes max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustRaw(x.Shape(), cpu.device)
	dst := result.Data()
	for i, v := range x.Data() {
		if v > 0 {
			dst[i] = v
		}
	}
	return result
}

// Sigmoid computes 1 / (1 + exp(-x)) element-wise.
//
// The negative branch is evaluated as exp(x) / (1 + exp(x)) so large
// magnitudes never overflow. Results are clamped so they stay strictly inside
// (0, 1) after rounding to float32.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	result := tensor.MustRaw(x.Shape(), cpu.device)
	dst := result.Data()
	for i, v := range x.Data() {
		dst[i] = sigmoid(v)
	}
	return result
}

const (
	sigmoidFloor = 1e-30
	sigmoidCeil  = 1 - 1.0/(1<<24) // largest float32 below 1
)

func sigmoid(v float32) float32 {
	var s float64
	if v >= 0 {
		s = 1 / (1 + math.Exp(-float64(v)))
	} else {
		e := math.Exp(float64(v))
		s = e / (1 + e)
	}
	return float32(min(max(s, sigmoidFloor), sigmoidCeil))
}
