package gan

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/dataset"
	"github.com/born-ml/chromagan/internal/tensor"
)

// TrainConfig controls the adversarial training loop.
type TrainConfig struct {
	BatchSize      int   // real+fake discriminator samples per epoch; must be even
	Epochs         int   // number of D/G rounds
	ReportInterval int   // report progress every ReportInterval epochs
	Seed           int64 // batch sampling seed
}

// DefaultTrainConfig returns batch 64, 10000 epochs and a report every 100.
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		BatchSize:      DefaultBatchSize,
		Epochs:         DefaultEpochs,
		ReportInterval: DefaultReportInterval,
		Seed:           1,
	}
}

// Validate checks the loop settings.
func (c TrainConfig) Validate() error {
	if c.BatchSize <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "batch_size must be > 0 (got %d)", c.BatchSize)
	}
	if c.BatchSize%2 != 0 {
		return errors.Wrapf(ErrInvalidConfig, "batch_size must be even (got %d)", c.BatchSize)
	}
	if c.Epochs <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "epochs must be > 0 (got %d)", c.Epochs)
	}
	if c.ReportInterval <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "report_interval must be > 0 (got %d)", c.ReportInterval)
	}
	return nil
}

// Phase is the trainer's position in the epoch cycle.
type Phase int

// Trainer phases. An epoch is a discriminator phase followed by a generator
// phase; the trainer rests in PhaseIdle before the first epoch and after the
// last.
const (
	PhaseIdle Phase = iota
	PhaseDiscriminator
	PhaseGenerator
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDiscriminator:
		return "discriminator"
	case PhaseGenerator:
		return "generator"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// StepMetrics describes one completed epoch.
type StepMetrics struct {
	Epoch     int     // 1-based epoch number
	DLossReal float32 // discriminator loss on the real half batch
	DLossFake float32 // discriminator loss on the generated half batch
	DLoss     float32 // mean of DLossReal and DLossFake
	DAccuracy float32 // mean discriminator accuracy over both halves, in [0, 1]
	GLoss     float32 // generator loss through the frozen discriminator
}

// Progress converts m into a report record.
func (m StepMetrics) Progress() Progress {
	return Progress{
		Epoch:        m.Epoch,
		DLoss:        m.DLoss,
		DAccuracyPct: 100 * m.DAccuracy,
		GLoss:        m.GLoss,
	}
}

// Trainer runs the adversarial loop: each epoch trains the discriminator on
// half a batch of real images and half a batch of generated ones, then trains
// the generator through the composite on a fresh full batch.
//
// The state machine is PhaseIdle -> {PhaseDiscriminator -> PhaseGenerator} x
// Epochs -> PhaseIdle. Advance executes one phase, Step one epoch and Run the
// remaining epochs.
type Trainer[B autodiff.BackwardCapable] struct {
	cfg     TrainConfig
	data    *dataset.Pair
	g       *Generator[B]
	d       *Discriminator[B]
	adv     *Adversarial[B]
	sink    ProgressSink
	sampler *dataset.Sampler
	backend B

	phase   Phase
	epoch   int // completed epochs
	current StepMetrics
}

// NewTrainer validates cfg and data against the networks. sink may be nil.
func NewTrainer[B autodiff.BackwardCapable](
	cfg TrainConfig,
	data *dataset.Pair,
	g *Generator[B],
	d *Discriminator[B],
	adv *Adversarial[B],
	sink ProgressSink,
) (*Trainer[B], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if g == nil || d == nil || adv == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "generator, discriminator and adversarial are required")
	}
	if adv.generator != g || adv.discriminator != d {
		return nil, errors.Wrap(ErrInvalidConfig, "adversarial composite does not wrap the given networks")
	}
	if data == nil || data.Gray == nil || data.Color == nil || data.Len() == 0 {
		return nil, errors.Wrap(ErrInvalidConfig, "training data is empty")
	}
	if _, err := dataset.NewPair(data.Gray, data.Color); err != nil {
		return nil, err
	}
	size := d.arch.Size
	if data.Color.H != size || data.Color.W != size {
		return nil, errors.Wrapf(ErrShapeMismatch, "networks expect %dx%d images, data is %dx%d",
			size, size, data.Color.H, data.Color.W)
	}

	return &Trainer[B]{
		cfg:     cfg,
		data:    data,
		g:       g,
		d:       d,
		adv:     adv,
		sink:    sink,
		sampler: dataset.NewSampler(data.Len(), cfg.Seed),
		backend: g.backend,
	}, nil
}

// Phase returns the phase executed by the last Advance, or PhaseIdle.
func (t *Trainer[B]) Phase() Phase {
	return t.phase
}

// Epoch returns the number of completed epochs.
func (t *Trainer[B]) Epoch() int {
	return t.epoch
}

// Done reports whether every epoch has run.
func (t *Trainer[B]) Done() bool {
	return t.epoch >= t.cfg.Epochs
}

// Advance executes exactly one phase. A failed phase abandons the epoch and
// returns the trainer to PhaseIdle.
func (t *Trainer[B]) Advance() error {
	switch t.phase {
	case PhaseIdle, PhaseGenerator:
		if t.Done() {
			t.phase = PhaseIdle
			return errors.Wrapf(ErrTrainingComplete, "all %d epochs have run", t.cfg.Epochs)
		}
		if err := t.discriminatorPhase(); err != nil {
			t.phase = PhaseIdle
			return errors.Wrapf(err, "epoch %d: discriminator", t.epoch+1)
		}
		t.phase = PhaseDiscriminator
	case PhaseDiscriminator:
		if err := t.generatorPhase(); err != nil {
			t.phase = PhaseIdle
			return errors.Wrapf(err, "epoch %d: generator", t.epoch+1)
		}
		t.epoch++
		t.current.Epoch = t.epoch
		t.report()
		t.phase = PhaseGenerator
		if t.Done() {
			t.phase = PhaseIdle
		}
	}
	return nil
}

// Step finishes the current epoch, starting a new one if none is in progress.
func (t *Trainer[B]) Step() (StepMetrics, error) {
	if err := t.Advance(); err != nil {
		return StepMetrics{}, err
	}
	if t.phase == PhaseDiscriminator {
		if err := t.Advance(); err != nil {
			return StepMetrics{}, err
		}
	}
	return t.current, nil
}

// Run executes the remaining epochs and leaves the trainer in PhaseIdle.
// It stops at the first error.
func (t *Trainer[B]) Run() error {
	for !t.Done() {
		if _, err := t.Step(); err != nil {
			return err
		}
	}
	t.phase = PhaseIdle
	return nil
}

func (t *Trainer[B]) discriminatorPhase() error {
	half := t.cfg.BatchSize / 2
	idx := t.sampler.Indices(half)

	realColor, err := t.data.Color.Gather(idx)
	if err != nil {
		return err
	}
	gray, err := t.data.Gray.Gather(idx)
	if err != nil {
		return err
	}

	fake, err := t.g.Colorize(dataset.ToTensor(gray, t.backend))
	if err != nil {
		return err
	}

	onReal, err := t.d.UpdateOnBatch(dataset.ToTensor(realColor, t.backend), t.labels(half, 1))
	if err != nil {
		return err
	}
	onFake, err := t.d.UpdateOnBatch(fake, t.labels(half, 0))
	if err != nil {
		return err
	}

	t.current = StepMetrics{
		DLossReal: onReal.Loss,
		DLossFake: onFake.Loss,
		DLoss:     0.5 * (onReal.Loss + onFake.Loss),
		DAccuracy: 0.5 * (onReal.Accuracy + onFake.Accuracy),
	}
	return nil
}

func (t *Trainer[B]) generatorPhase() error {
	n := t.cfg.BatchSize
	gray, err := t.data.Gray.Gather(t.sampler.Indices(n))
	if err != nil {
		return err
	}

	loss, err := t.adv.UpdateGeneratorOnBatch(dataset.ToTensor(gray, t.backend), t.labels(n, 1))
	if err != nil {
		return err
	}
	t.current.GLoss = loss
	return nil
}

func (t *Trainer[B]) labels(n int, value float32) *tensor.Tensor[B] {
	return tensor.Full(tensor.Shape{n, 1}, value, t.backend)
}

func (t *Trainer[B]) report() {
	if t.sink == nil || t.epoch%t.cfg.ReportInterval != 0 {
		return
	}
	t.sink.Report(t.current.Progress())
}
