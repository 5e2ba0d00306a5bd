package gan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinaryAccuracy(t *testing.T) {
	probs := []float32{0.9, 0.2, 0.51, 0.5}
	labels := []float32{1, 0, 0, 1}
	assert.Equal(t, float32(0.5), binaryAccuracy(probs, labels))
	assert.Equal(t, float32(0), binaryAccuracy(nil, nil))
}

func TestCheckFinite(t *testing.T) {
	assert.NoError(t, checkFinite(0.3, "d"))
	assert.ErrorIs(t, checkFinite(float32(math.NaN()), "d"), ErrNumericInstability)
	assert.ErrorIs(t, checkFinite(float32(math.Inf(-1)), "g"), ErrNumericInstability)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "discriminator", PhaseDiscriminator.String())
	assert.Equal(t, "Phase(9)", Phase(9).String())
}
