package gan

import (
	"github.com/pkg/errors"

	"github.com/born-ml/chromagan/internal/dataset"
)

var (
	// ErrShapeMismatch is returned when an image or label tensor does not have
	// the layout a network expects.
	ErrShapeMismatch = dataset.ErrShapeMismatch
	// ErrIndexOutOfRange is returned when a batch index falls outside the dataset.
	ErrIndexOutOfRange = dataset.ErrIndexOutOfRange
	// ErrNumericInstability is returned when a loss is NaN or infinite.
	ErrNumericInstability = errors.New("numeric instability")
	// ErrInvalidConfig is returned for unusable training settings.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrTrainingComplete is returned by Advance once every epoch has run.
	ErrTrainingComplete = errors.New("training complete")
)
