package cpu

import (
	"fmt"

	"gonum.org/v1/gonum/blas"

	"github.com/born-ml/chromagan/internal/parallel"
	"github.com/born-ml/chromagan/internal/tensor"
)

// convGeometry holds the sizes shared by the forward and backward kernels.
type convGeometry struct {
	n, cIn, h, w     int
	cOut, kH, kW     int
	hOut, wOut       int
	stride, padding  int
	patch, positions int // patch = C_in*K_h*K_w, positions = H_out*W_out
}

func newConvGeometry(op string, input, kernel tensor.Shape, stride, padding int) convGeometry {
	if len(input) != 4 {
		panic(fmt.Sprintf("%s: input must be 4D [N,C,H,W], got %dD", op, len(input)))
	}
	if len(kernel) != 4 {
		panic(fmt.Sprintf("%s: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", op, len(kernel)))
	}
	if input[1] != kernel[1] {
		panic(fmt.Sprintf("%s: input channels %d != kernel channels %d", op, input[1], kernel[1]))
	}
	if stride <= 0 || padding < 0 {
		panic(fmt.Sprintf("%s: invalid stride %d / padding %d", op, stride, padding))
	}

	g := convGeometry{
		n: input[0], cIn: input[1], h: input[2], w: input[3],
		cOut: kernel[0], kH: kernel[2], kW: kernel[3],
		stride: stride, padding: padding,
	}
	g.hOut = (g.h+2*padding-g.kH)/stride + 1
	g.wOut = (g.w+2*padding-g.kW)/stride + 1
	if g.hOut <= 0 || g.wOut <= 0 {
		panic(fmt.Sprintf("%s: invalid output dimensions: out_h=%d, out_w=%d (check stride/padding)", op, g.hOut, g.wOut))
	}
	g.patch = g.cIn * g.kH * g.kW
	g.positions = g.hOut * g.wOut
	return g
}

// Conv2D performs 2D convolution with im2col followed by one SGEMM.
//
// Input shape: [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
//	col:    [N*H_out*W_out, C_in*K_h*K_w]
//	kernel: [C_out, C_in*K_h*K_w]
//	out:    kernel @ col^T -> [C_out, N*H_out*W_out], then reordered to NCHW
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	g := newConvGeometry("conv2d", input.Shape(), kernel.Shape(), stride, padding)

	output, err := tensor.NewRaw(tensor.Shape{g.n, g.cOut, g.hOut, g.wOut}, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create output tensor: %v", err))
	}

	col := make([]float32, g.n*g.positions*g.patch)
	im2col(col, input.Data(), g, cpu.parallel)

	cols := g.n * g.positions
	tmp := make([]float32, g.cOut*cols)
	gemm(blas.NoTrans, blas.Trans,
		general(kernel.Data(), g.cOut, g.patch),
		general(col, cols, g.patch),
		general(tmp, g.cOut, cols),
	)

	// [C_out, N, P] -> [N, C_out, P]
	out := output.Data()
	for n := 0; n < g.n; n++ {
		for c := 0; c < g.cOut; c++ {
			src := tmp[c*cols+n*g.positions : c*cols+(n+1)*g.positions]
			dst := out[(n*g.cOut+c)*g.positions : (n*g.cOut+c+1)*g.positions]
			copy(dst, src)
		}
	}

	return output
}

// im2col unrolls every receptive field into one row of col.
// Rows for sample n are written only by the worker handling n.
func im2col(col, input []float32, g convGeometry, cfg parallel.Config) {
	parallel.For(g.n, func(n int) {
		plane := input[n*g.cIn*g.h*g.w : (n+1)*g.cIn*g.h*g.w]
		row := n * g.positions
		for oh := 0; oh < g.hOut; oh++ {
			for ow := 0; ow < g.wOut; ow++ {
				buf := col[row*g.patch : (row+1)*g.patch]
				hStart := oh*g.stride - g.padding
				wStart := ow*g.stride - g.padding
				i := 0
				for c := 0; c < g.cIn; c++ {
					for kh := 0; kh < g.kH; kh++ {
						y := hStart + kh
						for kw := 0; kw < g.kW; kw++ {
							x := wStart + kw
							if y >= 0 && y < g.h && x >= 0 && x < g.w {
								buf[i] = plane[(c*g.h+y)*g.w+x]
							} else {
								buf[i] = 0
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
