package nn

import (
	"fmt"

	"github.com/born-ml/chromagan/internal/tensor"
)

// BCELoss computes binary cross-entropy between probabilities and 0/1 targets.
//
// Loss = mean(-y*log(p) - (1-y)*log(1-p))
//
// Predictions are clipped to [1e-7, 1-1e-7] before the logarithm, so a
// saturated sigmoid yields a large but finite loss.
//
// Example:
//
//	bce := nn.NewBCELoss(backend)
//	probs := discriminator.Forward(images)  // [N, 1]
//	loss := bce.Forward(probs, labels)      // [1]
type BCELoss[B tensor.Backend] struct {
	backend B
}

// NewBCELoss creates a new BCE loss function.
func NewBCELoss[B tensor.Backend](backend B) *BCELoss[B] {
	return &BCELoss[B]{backend: backend}
}

// Forward computes the loss. predictions and targets must share a shape.
func (l *BCELoss[B]) Forward(predictions, targets *tensor.Tensor[B]) *tensor.Tensor[B] {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("BCELoss: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape()))
	}
	return tensor.New(l.backend.BinaryCrossEntropy(predictions.Raw(), targets.Raw()), l.backend)
}

// Parameters returns nil (loss functions have no trainable parameters).
func (l *BCELoss[B]) Parameters() []*Parameter[B] {
	return nil
}
