package gan

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/dataset"
)

// Evaluation summarizes colorization error on a held-out set.
type Evaluation struct {
	Samples int
	MAE     float64 // mean over images of the per-image mean absolute error
	StdDev  float64 // sample standard deviation of the per-image error
}

// Evaluate colorizes pair.Gray in chunks of batchSize and compares the result
// with pair.Color.
func Evaluate[B autodiff.BackwardCapable](g *Generator[B], pair *dataset.Pair, batchSize int) (Evaluation, error) {
	if pair == nil || pair.Len() == 0 {
		return Evaluation{}, errors.Wrap(ErrInvalidConfig, "evaluation data is empty")
	}
	if batchSize <= 0 {
		return Evaluation{}, errors.Wrapf(ErrInvalidConfig, "evaluation batch size must be > 0 (got %d)", batchSize)
	}

	errs := make([]float64, 0, pair.Len())
	for lo := 0; lo < pair.Len(); lo += batchSize {
		hi := min(lo+batchSize, pair.Len())
		gray, err := pair.Gray.Slice(lo, hi)
		if err != nil {
			return Evaluation{}, err
		}
		predicted, err := g.Colorize(dataset.ToTensor(gray, g.backend))
		if err != nil {
			return Evaluation{}, err
		}
		pred := predicted.Data()
		size := pair.Color.SampleSize()
		for i := lo; i < hi; i++ {
			want := pair.Color.Sample(i)
			got := pred[(i-lo)*size : (i-lo+1)*size]
			var sum float64
			for j, v := range want {
				sum += math.Abs(float64(got[j] - v))
			}
			errs = append(errs, sum/float64(size))
		}
	}

	eval := Evaluation{Samples: len(errs)}
	if len(errs) == 1 {
		eval.MAE = errs[0]
		return eval, nil
	}
	eval.MAE, eval.StdDev = stat.MeanStdDev(errs, nil)
	return eval, nil
}
