package dataset

import (
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Sources accepted by Load.
const (
	SourceSynthetic = "synthetic"
	SourceCIFAR10   = "cifar10"
)

// Options selects and sizes a dataset.
type Options struct {
	Source       string // SourceSynthetic or SourceCIFAR10
	Path         string // directory holding data_batch_*.bin for CIFAR-10
	TrainSamples int
	TestSamples  int
	Seed         int64
}

// Load builds train and test pairs. Test pairs follow the training pairs in
// the source order.
func Load(opts Options) (train, test *Pair, err error) {
	if opts.TrainSamples <= 0 || opts.TestSamples < 0 {
		return nil, nil, errors.Errorf("invalid sample counts train=%d test=%d", opts.TrainSamples, opts.TestSamples)
	}
	total := opts.TrainSamples + opts.TestSamples

	var all *Pair
	switch opts.Source {
	case SourceSynthetic:
		all, err = Synthetic(total, cifarSide, opts.Seed)
	case SourceCIFAR10:
		all, err = loadCIFARPair(opts.Path, total)
	default:
		return nil, nil, errors.Errorf("unknown data source %q", opts.Source)
	}
	if err != nil {
		return nil, nil, err
	}
	if all.Len() < total {
		return nil, nil, errors.Errorf("need %d images, source has %d", total, all.Len())
	}
	return all.Split(opts.TrainSamples)
}

func loadCIFARPair(dir string, limit int) (*Pair, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*_batch*.bin"))
	if err != nil {
		return nil, errors.Wrap(err, "list CIFAR-10 batches")
	}
	if len(paths) == 0 {
		return nil, errors.Errorf("no CIFAR-10 batch files in %s", dir)
	}
	sort.Strings(paths)

	color, err := LoadCIFAR10(limit, paths...)
	if err != nil {
		return nil, err
	}
	return PairFromColor(color)
}
