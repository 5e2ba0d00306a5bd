package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"

	"github.com/born-ml/chromagan/internal/parallel"
	"github.com/born-ml/chromagan/internal/tensor"
)

// Conv2DInputBackward computes dL/dinput for Conv2D.
//
//	dcol = grad^T @ kernel   [N*H_out*W_out, C_in*K_h*K_w]
//	dinput = col2im(dcol)    overlapping patches accumulate
func (cpu *CPUBackend) Conv2DInputBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := newConvGeometry("conv2d input backward", input.Shape(), kernel.Shape(), stride, padding)
	checkConvGrad("conv2d input backward", grad, g)

	inputGrad, err := tensor.NewRaw(input.Shape(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("Conv2DInputBackward: failed to create gradient tensor: %v", err))
	}

	cols := g.n * g.positions
	gradMat := channelsMajor(grad.Data(), g)
	dcol := make([]float32, cols*g.patch)
	gemm(blas.Trans, blas.NoTrans,
		general(gradMat, g.cOut, cols),
		general(kernel.Data(), g.cOut, g.patch),
		general(dcol, cols, g.patch),
	)

	col2im(inputGrad.Data(), dcol, g, cpu.parallel)
	return inputGrad
}

// Conv2DKernelBackward computes dL/dkernel for Conv2D.
//
//	dkernel = grad @ col   [C_out, C_in*K_h*K_w]
func (cpu *CPUBackend) Conv2DKernelBackward(input, kernel, grad *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := newConvGeometry("conv2d kernel backward", input.Shape(), kernel.Shape(), stride, padding)
	checkConvGrad("conv2d kernel backward", grad, g)

	kernelGrad, err := tensor.NewRaw(kernel.Shape(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("Conv2DKernelBackward: failed to create gradient tensor: %v", err))
	}

	cols := g.n * g.positions
	col := make([]float32, cols*g.patch)
	im2col(col, input.Data(), g, cpu.parallel)

	gemm(blas.NoTrans, blas.NoTrans,
		general(channelsMajor(grad.Data(), g), g.cOut, cols),
		general(col, cols, g.patch),
		general(kernelGrad.Data(), g.cOut, g.patch),
	)
	return kernelGrad
}

func checkConvGrad(op string, grad *tensor.RawTensor, g convGeometry) {
	want := tensor.Shape{g.n, g.cOut, g.hOut, g.wOut}
	if !grad.Shape().Equal(want) {
		panic(fmt.Sprintf("%s: gradient shape %v, expected %v", op, grad.Shape(), want))
	}
}

// channelsMajor reorders an NCHW gradient into [C_out, N*H_out*W_out].
func channelsMajor(grad []float32, g convGeometry) []float32 {
	cols := g.n * g.positions
	out := make([]float32, g.cOut*cols)
	for n := 0; n < g.n; n++ {
		for c := 0; c < g.cOut; c++ {
			src := grad[(n*g.cOut+c)*g.positions : (n*g.cOut+c+1)*g.positions]
			copy(out[c*cols+n*g.positions:], src)
		}
	}
	return out
}

// col2im scatters patch gradients back onto the input planes.
func col2im(inputGrad, dcol []float32, g convGeometry, cfg parallel.Config) {
	parallel.For(g.n, func(n int) {
		plane := inputGrad[n*g.cIn*g.h*g.w : (n+1)*g.cIn*g.h*g.w]
		row := n * g.positions
		for oh := 0; oh < g.hOut; oh++ {
			for ow := 0; ow < g.wOut; ow++ {
				buf := dcol[row*g.patch : (row+1)*g.patch]
				hStart := oh*g.stride - g.padding
				wStart := ow*g.stride - g.padding
				i := 0
				for c := 0; c < g.cIn; c++ {
					for kh := 0; kh < g.kH; kh++ {
						y := hStart + kh
						for kw := 0; kw < g.kW; kw++ {
							x := wStart + kw
							if y >= 0 && y < g.h && x >= 0 && x < g.w {
								plane[(c*g.h+y)*g.w+x] += buf[i]
							}
							i++
						}
					}
				}
				row++
			}
		}
	}, cfg)
}
