package gan

import (
	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/optim"
	"github.com/born-ml/chromagan/internal/tensor"
)

// Adversarial chains the generator into a frozen view of the discriminator
// and trains the generator to make the discriminator answer "real".
//
// The discriminator is shared, not copied. Its parameters are frozen only for
// the tape session of each UpdateGeneratorOnBatch call, so the discriminator
// keeps training normally through its own UpdateOnBatch.
type Adversarial[B autodiff.BackwardCapable] struct {
	generator     *Generator[B]
	discriminator *Discriminator[B]
	frozen        *nn.Frozen[B]
	loss          *nn.BCELoss[B]
	optimizer     *optim.Adam[B]
	backend       B
}

// NewAdversarial couples g and d. The composite owns an Adam optimizer over
// the generator's parameters only.
func NewAdversarial[B autodiff.BackwardCapable](g *Generator[B], d *Discriminator[B], opt optim.AdamConfig) *Adversarial[B] {
	return &Adversarial[B]{
		generator:     g,
		discriminator: d,
		frozen:        nn.Freeze[B](d.network),
		loss:          nn.NewBCELoss(g.backend),
		optimizer:     optim.NewAdam(g.Parameters(), opt, g.backend),
		backend:       g.backend,
	}
}

// UpdateGeneratorOnBatch colorizes gray ([N, S, S, 1]), scores the result with
// the frozen discriminator and steps the generator toward labels ([N, 1]).
// It returns the loss before the step.
func (a *Adversarial[B]) UpdateGeneratorOnBatch(gray, labels *tensor.Tensor[B]) (float32, error) {
	n, err := checkImages(gray, a.discriminator.arch.Size, 1)
	if err != nil {
		return 0, err
	}
	if err := checkLabels(labels, n); err != nil {
		return 0, err
	}

	tape := a.backend.GetTape()
	tape.Clear()
	tape.StartRecording()
	defer func() {
		tape.StopRecording()
		tape.Clear()
	}()

	fake := a.generator.Forward(a.generator.toNCHW.Forward(gray))
	probs := a.frozen.Forward(fake)
	loss := a.loss.Forward(probs, labels)

	value := loss.Item()
	if err := checkFinite(value, "generator"); err != nil {
		return value, err
	}

	a.optimizer.Step(autodiff.Backward(loss, a.backend))
	return value, nil
}

// Generator returns the generator being trained.
func (a *Adversarial[B]) Generator() *Generator[B] {
	return a.generator
}

// Discriminator returns the shared discriminator.
func (a *Adversarial[B]) Discriminator() *Discriminator[B] {
	return a.discriminator
}

// Optimizer returns the generator's optimizer.
func (a *Adversarial[B]) Optimizer() *optim.Adam[B] {
	return a.optimizer
}
