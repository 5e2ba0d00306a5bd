package gan

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/chromagan/internal/tensor"
)

// checkImages verifies t is [N, size, size, channels] with N > 0. A size of
// zero accepts any even side length.
func checkImages[B tensor.Backend](t *tensor.Tensor[B], size, channels int) (int, error) {
	if t == nil {
		return 0, errors.Wrap(ErrShapeMismatch, "nil image tensor")
	}
	s := t.Shape()
	if len(s) != 4 || s[0] <= 0 || s[3] != channels {
		return 0, errors.Wrapf(ErrShapeMismatch, "expected [N H W %d] images, got %v", channels, s)
	}
	if size > 0 && (s[1] != size || s[2] != size) {
		return 0, errors.Wrapf(ErrShapeMismatch, "expected %dx%d images, got %v", size, size, s)
	}
	if s[1] <= 0 || s[2] <= 0 || s[1]%2 != 0 || s[2]%2 != 0 {
		return 0, errors.Wrapf(ErrShapeMismatch, "image sides must be even, got %v", s)
	}
	return s[0], nil
}

// checkLabels verifies labels is [n, 1].
func checkLabels[B tensor.Backend](labels *tensor.Tensor[B], n int) error {
	if labels == nil {
		return errors.Wrap(ErrShapeMismatch, "nil label tensor")
	}
	if s := labels.Shape(); len(s) != 2 || s[0] != n || s[1] != 1 {
		return errors.Wrapf(ErrShapeMismatch, "expected labels [%d 1], got %v", n, s)
	}
	return nil
}

func checkFinite(loss float32, what string) error {
	if math.IsNaN(float64(loss)) || math.IsInf(float64(loss), 0) {
		return errors.Wrapf(ErrNumericInstability, "%s loss is %v", what, loss)
	}
	return nil
}

// binaryAccuracy is the fraction of rows where (p > 0.5) matches the label.
func binaryAccuracy(probs, labels []float32) float32 {
	if len(probs) == 0 {
		return 0
	}
	correct := 0
	for i, p := range probs {
		if (p > 0.5) == (labels[i] > 0.5) {
			correct++
		}
	}
	return float32(correct) / float32(len(probs))
}
