package ops

import (
	"github.com/born-ml/chromagan/internal/tensor"
)

// reduceBroadcast sums grad over the dimensions that were broadcast to
// produce it, so the result has targetShape.
//
//	Forward:  a[3,1] + b[3,4] -> c[3,4]
//	Backward: grad_c[3,4] -> grad_a[3,1] (sum along dim 1)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()
	if gradShape.Equal(targetShape) {
		// Fresh copy so accumulation never aliases the upstream gradient.
		return grad.Clone()
	}

	result := tensor.MustRaw(targetShape, backend.Device())
	dst := result.Data()
	for i, v := range grad.Data() {
		dst[tensor.BroadcastOffset(i, gradShape, targetShape)] += v
	}
	return result
}
