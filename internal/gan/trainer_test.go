package gan_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/chromagan/internal/dataset"
	"github.com/born-ml/chromagan/internal/gan"
	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/optim"
)

func smallTrainConfig() gan.TrainConfig {
	return gan.TrainConfig{BatchSize: 4, Epochs: 2, ReportInterval: 1, Seed: 42}
}

func TestTrainConfig_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		cfg  gan.TrainConfig
	}{
		{"zero batch", gan.TrainConfig{BatchSize: 0, Epochs: 1, ReportInterval: 1}},
		{"negative batch", gan.TrainConfig{BatchSize: -4, Epochs: 1, ReportInterval: 1}},
		{"odd batch", gan.TrainConfig{BatchSize: 5, Epochs: 1, ReportInterval: 1}},
		{"zero epochs", gan.TrainConfig{BatchSize: 4, Epochs: 0, ReportInterval: 1}},
		{"negative epochs", gan.TrainConfig{BatchSize: 4, Epochs: -1, ReportInterval: 1}},
		{"zero report interval", gan.TrainConfig{BatchSize: 4, Epochs: 1, ReportInterval: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := gan.NewTrainer(tt.cfg, constantPairs(t), f.g, f.d, f.adv, nil)
			assert.True(t, errors.Is(err, gan.ErrInvalidConfig), "got %v", err)
		})
	}

	require.NoError(t, gan.DefaultTrainConfig().Validate())
	assert.Equal(t, 64, gan.DefaultTrainConfig().BatchSize)
	assert.Equal(t, 10000, gan.DefaultTrainConfig().Epochs)
	assert.Equal(t, 100, gan.DefaultTrainConfig().ReportInterval)
}

func TestNewTrainer_RejectsBadInputs(t *testing.T) {
	f := newFixture()
	cfg := smallTrainConfig()

	_, err := gan.NewTrainer(cfg, nil, f.g, f.d, f.adv, nil)
	assert.True(t, errors.Is(err, gan.ErrInvalidConfig))

	small, err := dataset.ConstantColors(16, [3]float32{1, 0, 0})
	require.NoError(t, err)
	_, err = gan.NewTrainer(cfg, small, f.g, f.d, f.adv, nil)
	assert.True(t, errors.Is(err, gan.ErrShapeMismatch))

	pairs := constantPairs(t)
	fewerGray, err := pairs.Gray.Slice(0, 3)
	require.NoError(t, err)
	_, err = gan.NewTrainer(cfg, &dataset.Pair{Gray: fewerGray, Color: pairs.Color}, f.g, f.d, f.adv, nil)
	assert.True(t, errors.Is(err, gan.ErrShapeMismatch))

	other := newFixture()
	_, err = gan.NewTrainer(cfg, pairs, f.g, f.d, other.adv, nil)
	assert.True(t, errors.Is(err, gan.ErrInvalidConfig))
}

// The reported discriminator loss is the mean of the real and fake branches.
func TestTrainer_CombinedLossIsMeanOfBranches(t *testing.T) {
	f := newFixture()
	trainer, err := gan.NewTrainer(smallTrainConfig(), constantPairs(t), f.g, f.d, f.adv, nil)
	require.NoError(t, err)

	m, err := trainer.Step()
	require.NoError(t, err)

	assert.InDelta(t, 0.5*(m.DLossReal+m.DLossFake), m.DLoss, 1e-6)
	assert.NotEqual(t, m.DLossReal, m.DLossFake)
	assert.GreaterOrEqual(t, m.DAccuracy, float32(0))
	assert.LessOrEqual(t, m.DAccuracy, float32(1))
	assert.Equal(t, 2, f.d.Optimizer().GetTimestep(), "one step per branch")
	assert.Equal(t, 1, f.adv.Optimizer().GetTimestep())
}

func TestTrainer_SingleStepping(t *testing.T) {
	f := newFixture()
	trainer, err := gan.NewTrainer(smallTrainConfig(), constantPairs(t), f.g, f.d, f.adv, nil)
	require.NoError(t, err)
	assert.Equal(t, gan.PhaseIdle, trainer.Phase())

	gBefore := nn.Snapshot(f.g.Parameters())
	require.NoError(t, trainer.Advance())
	assert.Equal(t, gan.PhaseDiscriminator, trainer.Phase())
	assert.Equal(t, 0, trainer.Epoch())
	assert.Equal(t, gBefore, nn.Snapshot(f.g.Parameters()), "discriminator phase leaves the generator alone")

	dBefore := nn.Snapshot(f.d.Parameters())
	require.NoError(t, trainer.Advance())
	assert.Equal(t, gan.PhaseGenerator, trainer.Phase())
	assert.Equal(t, 1, trainer.Epoch())
	assert.Equal(t, dBefore, nn.Snapshot(f.d.Parameters()), "generator phase leaves the discriminator alone")

	require.NoError(t, trainer.Advance())
	require.NoError(t, trainer.Advance())
	assert.Equal(t, gan.PhaseIdle, trainer.Phase())
	assert.True(t, trainer.Done())

	err = trainer.Advance()
	assert.True(t, errors.Is(err, gan.ErrTrainingComplete))
	assert.Equal(t, "generator", gan.PhaseGenerator.String())
}

// One epoch with batch 4 (half batch 2) on five constant-color pairs yields
// finite losses.
func TestTrainer_OneEpochFiniteLosses(t *testing.T) {
	f := newFixture()
	cfg := smallTrainConfig()
	cfg.Epochs = 1
	trainer, err := gan.NewTrainer(cfg, constantPairs(t), f.g, f.d, f.adv, nil)
	require.NoError(t, err)

	m, err := trainer.Step()
	require.NoError(t, err)
	assert.Equal(t, 1, m.Epoch)
	for _, v := range []float32{m.DLossReal, m.DLossFake, m.DLoss, m.GLoss} {
		assert.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0), "loss %v", v)
	}
	assert.Equal(t, gan.PhaseIdle, trainer.Phase())
}

// Two epochs with report_interval=1 give two distinct records, and the
// parameters differ between epoch boundaries.
func TestTrainer_TwoEpochsReportAndLearn(t *testing.T) {
	f := newFixture()
	history := &gan.History{}
	trainer, err := gan.NewTrainer(smallTrainConfig(), constantPairs(t), f.g, f.d, f.adv, history)
	require.NoError(t, err)

	g0, d0 := nn.Snapshot(f.g.Parameters()), nn.Snapshot(f.d.Parameters())
	_, err = trainer.Step()
	require.NoError(t, err)
	g1, d1 := nn.Snapshot(f.g.Parameters()), nn.Snapshot(f.d.Parameters())
	_, err = trainer.Step()
	require.NoError(t, err)
	g2, d2 := nn.Snapshot(f.g.Parameters()), nn.Snapshot(f.d.Parameters())

	assert.NotEqual(t, g0, g1)
	assert.NotEqual(t, g1, g2)
	assert.NotEqual(t, d0, d1)
	assert.NotEqual(t, d1, d2)

	records := history.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Epoch)
	assert.Equal(t, 2, records[1].Epoch)
	assert.NotEqual(t, records[0], records[1])
	for _, r := range records {
		assert.GreaterOrEqual(t, r.DAccuracyPct, float32(0))
		assert.LessOrEqual(t, r.DAccuracyPct, float32(100))
	}
}

func TestTrainer_RunHonoursReportInterval(t *testing.T) {
	f := newFixture()
	history := &gan.History{}
	cfg := gan.TrainConfig{BatchSize: 2, Epochs: 5, ReportInterval: 2, Seed: 1}
	trainer, err := gan.NewTrainer(cfg, constantPairs(t), f.g, f.d, f.adv, history)
	require.NoError(t, err)

	require.NoError(t, trainer.Run())
	assert.Equal(t, 5, trainer.Epoch())
	assert.Equal(t, gan.PhaseIdle, trainer.Phase())

	records := history.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Epoch)
	assert.Equal(t, 4, records[1].Epoch)

	require.NoError(t, trainer.Run(), "a finished run has nothing left to do")
	_, err = trainer.Step()
	assert.True(t, errors.Is(err, gan.ErrTrainingComplete))
}

func TestTrainer_NumericInstabilityStopsRun(t *testing.T) {
	f := newFixture()
	history := &gan.History{}
	trainer, err := gan.NewTrainer(smallTrainConfig(), constantPairs(t), f.g, f.d, f.adv, history)
	require.NoError(t, err)

	params := f.d.Parameters()
	params[len(params)-1].Tensor().Data()[0] = float32(math.NaN())

	err = trainer.Run()
	assert.True(t, errors.Is(err, gan.ErrNumericInstability), "got %v", err)
	assert.Equal(t, gan.PhaseIdle, trainer.Phase())
	assert.Equal(t, 0, trainer.Epoch())
	assert.Empty(t, history.Records())
}

func TestTrainer_DeterministicGivenSeed(t *testing.T) {
	run := func() []gan.Progress {
		b := newBackend()
		g := gan.NewGenerator(smallArch, b)
		d := gan.NewDiscriminator(smallArch, optim.AdamConfig{}, b)
		history := &gan.History{}
		trainer, err := gan.NewTrainer(smallTrainConfig(), constantPairs(t), g, d, gan.NewAdversarial(g, d, optim.AdamConfig{}), history)
		require.NoError(t, err)
		require.NoError(t, trainer.Run())
		return history.Records()
	}
	assert.Equal(t, run(), run())
}
