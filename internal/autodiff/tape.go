package autodiff

import (
	"github.com/born-ml/chromagan/internal/autodiff/ops"
	"github.com/born-ml/chromagan/internal/tensor"
)

// GradientTape records operations during the forward pass and computes
// gradients during the backward pass using reverse-mode automatic differentiation.
//
// A tape session also carries a freeze set: tensors registered with Freeze
// never receive a gradient from Backward, although gradients still flow
// through the operations that consumed them. Clear ends the session and
// empties the freeze set, so freezing is scoped to one forward/backward pass.
//
// Usage:
//
//	tape := NewGradientTape()
//	tape.StartRecording()
//	// ... perform operations ...
//	gradients := tape.Backward(loss, outputGrad, backend)
type GradientTape struct {
	operations []ops.Operation // Recorded operations (in execution order)
	recording  bool            // Whether tape is currently recording
	frozen     map[*tensor.RawTensor]struct{}
}

// NewGradientTape creates a new gradient tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{
		operations: make([]ops.Operation, 0, 64),
		frozen:     make(map[*tensor.RawTensor]struct{}),
	}
}

// StartRecording enables operation recording.
func (t *GradientTape) StartRecording() {
	t.recording = true
}

// StopRecording disables operation recording.
func (t *GradientTape) StopRecording() {
	t.recording = false
}

// IsRecording returns true if the tape is currently recording operations.
func (t *GradientTape) IsRecording() bool {
	return t.recording
}

// Paused runs fn with recording disabled and restores the previous state.
func (t *GradientTape) Paused(fn func()) {
	was := t.recording
	t.recording = false
	defer func() { t.recording = was }()
	fn()
}

// Record adds an operation to the tape.
// Only records if the tape is currently recording.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.operations = append(t.operations, op)
	}
}

// Freeze excludes the given tensors from gradient computation until Clear.
func (t *GradientTape) Freeze(raws ...*tensor.RawTensor) {
	for _, r := range raws {
		t.frozen[r] = struct{}{}
	}
}

// IsFrozen reports whether r is in the current freeze set.
func (t *GradientTape) IsFrozen(r *tensor.RawTensor) bool {
	_, ok := t.frozen[r]
	return ok
}

// Clear resets the tape, removing all recorded operations and the freeze set.
// Recording state is preserved.
func (t *GradientTape) Clear() {
	t.operations = t.operations[:0]
	clear(t.frozen)
}

// NumOps returns the number of recorded operations.
func (t *GradientTape) NumOps() int {
	return len(t.operations)
}

// Backward computes gradients of output with respect to every tensor that
// contributed to it, walking the tape in reverse.
//
//  1. Seed the output with outputGrad (ones for a scalar loss)
//  2. Walk operations in reverse order
//  3. For each operation, compute input gradients using chain rule
//  4. Accumulate gradients when the same tensor is used multiple times
//
// Frozen tensors are left out of the result. Returns a map from RawTensor to
// its accumulated gradient.
func (t *GradientTape) Backward(
	output, outputGrad *tensor.RawTensor,
	backend tensor.Backend,
) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := make(map[*tensor.RawTensor]*tensor.RawTensor)
	if len(t.operations) == 0 {
		return grads
	}

	// Gradient kernels must not land on the tape.
	wasRecording := t.recording
	t.recording = false
	defer func() {
		t.recording = wasRecording
	}()

	grads[output] = outputGrad

	for i := len(t.operations) - 1; i >= 0; i-- {
		op := t.operations[i]
		opGrad, ok := grads[op.Output()]
		if !ok {
			continue
		}
		t.accumulateGrads(op, op.Backward(opGrad, backend), grads, backend)
	}

	return grads
}

// accumulateGrads accumulates gradients for each input tensor.
func (t *GradientTape) accumulateGrads(
	op ops.Operation,
	inputGrads []*tensor.RawTensor,
	grads map[*tensor.RawTensor]*tensor.RawTensor,
	backend tensor.Backend,
) {
	for j, input := range op.Inputs() {
		if j >= len(inputGrads) {
			break
		}
		inputGrad := inputGrads[j]
		if inputGrad == nil || t.IsFrozen(input) {
			continue
		}
		if existing, ok := grads[input]; ok {
			grads[input] = backend.Add(existing, inputGrad)
		} else {
			grads[input] = inputGrad
		}
	}
}
