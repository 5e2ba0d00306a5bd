package nn

import (
	"fmt"

	"github.com/born-ml/chromagan/internal/tensor"
)

// Permute reorders tensor dimensions, e.g. NHWC -> NCHW with axes (0, 3, 1, 2).
type Permute[B tensor.Backend] struct {
	axes []int
}

// NewPermute creates a Permute module. Output dimension i is input dimension axes[i].
func NewPermute[B tensor.Backend](axes ...int) *Permute[B] {
	return &Permute[B]{axes: append([]int(nil), axes...)}
}

// Forward transposes input.
func (p *Permute[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	return input.Transpose(p.axes...)
}

// Parameters returns nil.
func (p *Permute[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns a string representation of the module.
func (p *Permute[B]) String() string {
	return fmt.Sprintf("Permute(%v)", p.axes)
}

// Flatten collapses every dimension after the first: [N, ...] -> [N, prod(...)].
type Flatten[B tensor.Backend] struct{}

// NewFlatten creates a Flatten module.
func NewFlatten[B tensor.Backend]() *Flatten[B] {
	return &Flatten[B]{}
}

// Forward reshapes input to 2D.
func (f *Flatten[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	shape := input.Shape()
	if len(shape) < 2 {
		panic(fmt.Sprintf("flatten: expected at least 2D input, got shape %v", shape))
	}
	return input.Reshape(shape[0], input.NumElements()/shape[0])
}

// Parameters returns nil.
func (f *Flatten[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns the module name.
func (f *Flatten[B]) String() string {
	return "Flatten()"
}

// Upsample2D repeats every pixel of an NCHW tensor into a scale x scale block.
type Upsample2D[B tensor.Backend] struct {
	scale int
}

// NewUpsample2D creates a nearest-neighbour upsampling module.
func NewUpsample2D[B tensor.Backend](scale int) *Upsample2D[B] {
	if scale <= 0 {
		panic(fmt.Sprintf("upsample2d: invalid scale %d", scale))
	}
	return &Upsample2D[B]{scale: scale}
}

// Forward upsamples [N, C, H, W] to [N, C, H*scale, W*scale].
func (u *Upsample2D[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	backend := input.Backend()
	return tensor.New(backend.Upsample2D(input.Raw(), u.scale), backend)
}

// Parameters returns nil.
func (u *Upsample2D[B]) Parameters() []*Parameter[B] {
	return nil
}

// String returns a string representation of the module.
func (u *Upsample2D[B]) String() string {
	return fmt.Sprintf("Upsample2D(scale=%d, mode=nearest)", u.scale)
}
