package cpu

import (
	"fmt"

	"github.com/born-ml/chromagan/internal/tensor"
)

// Reshape returns a copy of t with a new shape of the same size.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			t.Shape(), t.NumElements(), newShape, newShape.NumElements()))
	}
	result, err := tensor.NewRaw(newShape, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	copy(result.Data(), t.Data())
	return result
}

// Transpose permutes dimensions; output dimension i is input dimension axes[i].
// With no axes the dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	rank := len(shape)
	if len(axes) == 0 {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if len(axes) != rank {
		panic(fmt.Sprintf("transpose: %d axes for a %dD tensor", len(axes), rank))
	}

	seen := make([]bool, rank)
	outShape := make(tensor.Shape, rank)
	for i, ax := range axes {
		if ax < 0 || ax >= rank || seen[ax] {
			panic(fmt.Sprintf("transpose: invalid permutation %v", axes))
		}
		seen[ax] = true
		outShape[i] = shape[ax]
	}

	result, err := tensor.NewRaw(outShape, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	inStrides := t.Strides()
	src := t.Data()
	dst := result.Data()
	coord := make([]int, rank)
	for i := range dst {
		// Decompose i into output coordinates.
		rem := i
		for d := rank - 1; d >= 0; d-- {
			coord[d] = rem % outShape[d]
			rem /= outShape[d]
		}
		offset := 0
		for d, ax := range axes {
			offset += coord[d] * inStrides[ax]
		}
		dst[i] = src[offset]
	}
	return result
}
