package cpu

import (
	"fmt"

	"github.com/born-ml/chromagan/internal/tensor"
)

// Upsample2D performs nearest-neighbour upsampling of [N, C, H, W] to
// [N, C, H*scale, W*scale].
func (cpu *CPUBackend) Upsample2D(x *tensor.RawTensor, scale int) *tensor.RawTensor {
	shape := x.Shape()
	if len(shape) != 4 {
		panic(fmt.Sprintf("upsample2d: input must be 4D [N,C,H,W], got %dD", len(shape)))
	}
	if scale <= 0 {
		panic(fmt.Sprintf("upsample2d: invalid scale %d", scale))
	}

	planes, h, w := shape[0]*shape[1], shape[2], shape[3]
	result := tensor.MustRaw(tensor.Shape{shape[0], shape[1], h * scale, w * scale}, cpu.device)

	src := x.Data()
	dst := result.Data()
	outW := w * scale
	for p := 0; p < planes; p++ {
		in := src[p*h*w : (p+1)*h*w]
		out := dst[p*h*w*scale*scale : (p+1)*h*w*scale*scale]
		for y := 0; y < h*scale; y++ {
			row := in[(y/scale)*w : (y/scale+1)*w]
			for xx := 0; xx < outW; xx++ {
				out[y*outW+xx] = row[xx/scale]
			}
		}
	}
	return result
}

// Upsample2DBackward sums each scale x scale block of grad back onto the
// source pixel.
func (cpu *CPUBackend) Upsample2DBackward(grad *tensor.RawTensor, scale int) *tensor.RawTensor {
	shape := grad.Shape()
	if len(shape) != 4 || shape[2]%scale != 0 || shape[3]%scale != 0 {
		panic(fmt.Sprintf("upsample2d backward: gradient shape %v not divisible by scale %d", shape, scale))
	}

	planes, outH, outW := shape[0]*shape[1], shape[2], shape[3]
	h, w := outH/scale, outW/scale
	result := tensor.MustRaw(tensor.Shape{shape[0], shape[1], h, w}, cpu.device)

	src := grad.Data()
	dst := result.Data()
	for p := 0; p < planes; p++ {
		in := src[p*outH*outW : (p+1)*outH*outW]
		out := dst[p*h*w : (p+1)*h*w]
		for y := 0; y < outH; y++ {
			for xx := 0; xx < outW; xx++ {
				out[(y/scale)*w+xx/scale] += in[y*outW+xx]
			}
		}
	}
	return result
}
