// Package optim implements optimization algorithms for training neural networks.
//
// Optimizers are long-lived: their moment estimates and step counter persist
// across every Step for the lifetime of the network they serve.
//
//	optimizer := optim.NewAdam(model.Parameters(), optim.AdamConfig{LR: 0.001}, backend)
//
//	for step := range steps {
//	    backend.Tape().StartRecording()
//	    loss := lossFunc.Forward(model.Forward(input), targets)
//	    grads := autodiff.Backward(loss, backend)
//	    optimizer.Step(grads)
//	    backend.Tape().Clear()
//	}
package optim

import (
	"github.com/born-ml/chromagan/internal/nn"
	"github.com/born-ml/chromagan/internal/tensor"
)

// Optimizer is the base interface for all optimization algorithms.
type Optimizer interface {
	// Step applies gradient updates to all parameters in place, reading
	// each parameter's gradient from the map returned by Backward.
	Step(grads map[*tensor.RawTensor]*tensor.RawTensor)

	// ZeroGrad clears all parameter gradients.
	ZeroGrad()

	// GetLR returns the current learning rate.
	GetLR() float32
}

// getGradient retrieves the gradient for a parameter, or nil when the
// parameter was not part of the graph (or was frozen).
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
