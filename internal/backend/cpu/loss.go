package cpu

import (
	"fmt"
	"math"

	"github.com/born-ml/chromagan/internal/tensor"
)

// BCEEpsilon bounds probabilities to [eps, 1-eps] before taking logs.
const BCEEpsilon = 1e-7

// BinaryCrossEntropy computes the mean binary cross-entropy of probability
// predictions against 0/1 targets of the same shape. The result has shape [1].
func (cpu *CPUBackend) BinaryCrossEntropy(predictions, targets *tensor.RawTensor) *tensor.RawTensor {
	if !predictions.Shape().Equal(targets.Shape()) {
		panic(fmt.Sprintf("bce: predictions %v and targets %v must have the same shape",
			predictions.Shape(), targets.Shape()))
	}

	p := predictions.Data()
	y := targets.Data()
	var sum float64
	for i := range p {
		pi := clipProbability(float64(p[i]))
		yi := float64(y[i])
		sum -= yi*math.Log(pi) + (1-yi)*math.Log(1-pi)
	}

	result := tensor.MustRaw(tensor.Shape{1}, cpu.device)
	result.Data()[0] = float32(sum / float64(len(p)))
	return result
}

// BinaryCrossEntropyBackward returns dL/dpredictions scaled by the upstream
// scalar gradient. The derivative is taken at the clipped probability:
//
//	dL/dp_i = (p_i - y_i) / (p_i * (1 - p_i)) / N
func (cpu *CPUBackend) BinaryCrossEntropyBackward(predictions, targets, grad *tensor.RawTensor) *tensor.RawTensor {
	p := predictions.Data()
	y := targets.Data()
	upstream := float64(grad.Data()[0])
	n := float64(len(p))

	result := tensor.MustRaw(predictions.Shape(), cpu.device)
	dst := result.Data()
	for i := range p {
		pi := clipProbability(float64(p[i]))
		dst[i] = float32(upstream * (pi - float64(y[i])) / (pi * (1 - pi)) / n)
	}
	return result
}

// clipProbability clamps p into [BCEEpsilon, 1-BCEEpsilon].
func clipProbability(p float64) float64 {
	return min(max(p, BCEEpsilon), 1-BCEEpsilon)
}
