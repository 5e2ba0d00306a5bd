package gan

import (
	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/tensor"
)

// Generator maps 1-channel luminance images to 3-channel color images.
//
//	[N,1,H,W] -> Conv3x3(1->w)+ReLU -> Conv3x3/2(w->2w)+ReLU -> Upsample x2
//	          -> Conv3x3(2w->w)+ReLU -> Conv3x3(w->3)+Sigmoid -> [N,3,H,W]
type Generator[B autodiff.BackwardCapable] struct {
	arch    Architecture
	network *nn.Sequential[B]
	toNCHW  *nn.Permute[B]
	toNHWC  *nn.Permute[B]
	backend B
}

// NewGenerator builds a generator with Xavier-initialized convolutions.
// Zero fields of arch take the defaults.
func NewGenerator[B autodiff.BackwardCapable](arch Architecture, backend B) *Generator[B] {
	arch = arch.withDefaults()
	rng := arch.rng()
	w := arch.Width

	network := nn.NewSequential[B](
		nn.NewConv2D(1, w, 3, 3, 1, 1, true, rng, backend),
		nn.NewReLU[B](),
		nn.NewConv2D(w, 2*w, 3, 3, 2, 1, true, rng, backend),
		nn.NewReLU[B](),
		nn.NewUpsample2D[B](2),
		nn.NewConv2D(2*w, w, 3, 3, 1, 1, true, rng, backend),
		nn.NewReLU[B](),
		nn.NewConv2D(w, 3, 3, 3, 1, 1, true, rng, backend),
		nn.NewSigmoid[B](),
	)

	return &Generator[B]{
		arch:    arch,
		network: network,
		toNCHW:  nn.NewPermute[B](0, 3, 1, 2),
		toNHWC:  nn.NewPermute[B](0, 2, 3, 1),
		backend: backend,
	}
}

// Forward runs the differentiable pass on channels-first input:
// [N, 1, H, W] -> [N, 3, H, W].
func (g *Generator[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	return g.network.Forward(x)
}

// Colorize predicts color images for gray ([N, H, W, 1]) without recording
// gradients. The result is [N, H, W, 3] with values in (0, 1).
func (g *Generator[B]) Colorize(gray *tensor.Tensor[B]) (*tensor.Tensor[B], error) {
	if _, err := checkImages(gray, 0, 1); err != nil {
		return nil, err
	}

	var color *tensor.Tensor[B]
	g.backend.GetTape().Paused(func() {
		color = g.toNHWC.Forward(g.Forward(g.toNCHW.Forward(gray)))
	})
	return color, nil
}

// Parameters returns the trainable parameters.
func (g *Generator[B]) Parameters() []*nn.Parameter[B] {
	return g.network.Parameters()
}

// Architecture returns the sizing the generator was built with.
func (g *Generator[B]) Architecture() Architecture {
	return g.arch
}

// String returns the layer summary.
func (g *Generator[B]) String() string {
	return "Generator " + g.network.String()
}
