package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/born-ml/chromagan/internal/tensor"
)

// MatMul performs matrix multiplication (M, K) @ (K, N) -> (M, N) with SGEMM.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result, err := tensor.NewRaw(tensor.Shape{m, n}, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result tensor: %v", err))
	}

	gemm(blas.NoTrans, blas.NoTrans,
		general(a.Data(), m, k),
		general(b.Data(), k, n),
		general(result.Data(), m, n),
	)
	return result
}

// general views a row-major buffer as a BLAS matrix.
func general(data []float32, rows, cols int) blas32.General {
	return blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}

// gemm computes c = op(a) @ op(b), overwriting c.
func gemm(tA, tB blas.Transpose, a, b, c blas32.General) {
	blas32.Gemm(tA, tB, 1, a, b, 0, c)
}
