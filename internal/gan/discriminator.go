package gan

import (
	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/optim"
	"github.com/born-ml/chromagan/internal/tensor"
)

// BatchResult reports one discriminator update.
type BatchResult struct {
	Loss     float32 // mean binary cross-entropy before the update
	Accuracy float32 // fraction of rows classified correctly, in [0, 1]
}

// Discriminator scores color images as real (near 1) or generated (near 0).
//
//	[N,3,S,S] -> Conv3x3/2(3->w)+ReLU -> Conv3x3/2(w->2w)+ReLU -> Flatten
//	          -> Linear(2w*(S/4)^2 -> 1) -> Sigmoid -> [N,1]
//
// It owns a single Adam optimizer for its whole lifetime.
type Discriminator[B autodiff.BackwardCapable] struct {
	arch      Architecture
	network   *nn.Sequential[B]
	toNCHW    *nn.Permute[B]
	loss      *nn.BCELoss[B]
	optimizer *optim.Adam[B]
	backend   B
}

// NewDiscriminator builds a discriminator and its optimizer.
func NewDiscriminator[B autodiff.BackwardCapable](arch Architecture, opt optim.AdamConfig, backend B) *Discriminator[B] {
	arch = arch.withDefaults()
	rng := arch.rng()
	w := arch.Width
	side := arch.Size / 4

	network := nn.NewSequential[B](
		nn.NewConv2D(3, w, 3, 3, 2, 1, true, rng, backend),
		nn.NewReLU[B](),
		nn.NewConv2D(w, 2*w, 3, 3, 2, 1, true, rng, backend),
		nn.NewReLU[B](),
		nn.NewFlatten[B](),
		nn.NewLinear(2*w*side*side, 1, rng, backend),
		nn.NewSigmoid[B](),
	)

	return &Discriminator[B]{
		arch:      arch,
		network:   network,
		toNCHW:    nn.NewPermute[B](0, 3, 1, 2),
		loss:      nn.NewBCELoss(backend),
		optimizer: optim.NewAdam(network.Parameters(), opt, backend),
		backend:   backend,
	}
}

// Classify returns the probability that each of images ([N, S, S, 3]) is
// real, as an [N, 1] tensor in (0, 1). Nothing is recorded.
func (d *Discriminator[B]) Classify(images *tensor.Tensor[B]) (*tensor.Tensor[B], error) {
	if _, err := checkImages(images, d.arch.Size, 3); err != nil {
		return nil, err
	}
	var probs *tensor.Tensor[B]
	d.backend.GetTape().Paused(func() {
		probs = d.network.Forward(d.toNCHW.Forward(images))
	})
	return probs, nil
}

// UpdateOnBatch takes one optimizer step on binary cross-entropy between the
// predictions for images ([N, S, S, 3]) and labels ([N, 1]).
//
// The returned loss and accuracy describe the predictions before the step.
func (d *Discriminator[B]) UpdateOnBatch(images, labels *tensor.Tensor[B]) (BatchResult, error) {
	n, err := checkImages(images, d.arch.Size, 3)
	if err != nil {
		return BatchResult{}, err
	}
	if err := checkLabels(labels, n); err != nil {
		return BatchResult{}, err
	}

	tape := d.backend.GetTape()
	tape.Clear()
	tape.StartRecording()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	probs := d.network.Forward(d.toNCHW.Forward(images))
	loss := d.loss.Forward(probs, labels)

	result := BatchResult{
		Loss:     loss.Item(),
		Accuracy: binaryAccuracy(probs.Data(), labels.Data()),
	}
	if err := checkFinite(result.Loss, "discriminator"); err != nil {
		return result, err
	}

	d.optimizer.Step(autodiff.Backward(loss, d.backend))
	return result, nil
}

// Parameters returns the trainable parameters.
func (d *Discriminator[B]) Parameters() []*nn.Parameter[B] {
	return d.network.Parameters()
}

// Optimizer returns the discriminator's optimizer.
func (d *Discriminator[B]) Optimizer() *optim.Adam[B] {
	return d.optimizer
}

// Architecture returns the sizing the discriminator was built with.
func (d *Discriminator[B]) Architecture() Architecture {
	return d.arch
}

// String returns the layer summary.
func (d *Discriminator[B]) String() string {
	return "Discriminator " + d.network.String()
}
