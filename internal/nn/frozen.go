package nn

import (
	"github.com/born-ml/chromagan/internal/tensor"
)

// FreezeBackend is implemented by backends that can exclude tensors from
// gradient computation for the current tape session.
type FreezeBackend interface {
	Freeze(raws ...*tensor.RawTensor)
}

// Frozen wraps a module so its parameters take part in the forward pass but
// never receive gradients.
//
// Each Forward registers the wrapped parameters with the backend's tape;
// the registration lasts until the tape is cleared. The wrapped module is
// shared, not copied, and is still trainable through its own handle:
//
//	d := buildDiscriminator()
//	frozenD := nn.Freeze(d)
//	probs := frozenD.Forward(generator.Forward(gray)) // d gets no gradient
//	d.Forward(real)                                   // next session: d trains
type Frozen[B tensor.Backend] struct {
	inner Module[B]
}

// Freeze returns a frozen view of m.
func Freeze[B tensor.Backend](m Module[B]) *Frozen[B] {
	return &Frozen[B]{inner: m}
}

// Forward registers the wrapped parameters as frozen and runs the module.
// On backends without a tape there are no gradients to suppress.
func (f *Frozen[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	if fb, ok := any(input.Backend()).(FreezeBackend); ok {
		params := f.inner.Parameters()
		raws := make([]*tensor.RawTensor, len(params))
		for i, p := range params {
			raws[i] = p.Tensor().Raw()
		}
		fb.Freeze(raws...)
	}
	return f.inner.Forward(input)
}

// Parameters returns nil: a frozen module contributes nothing to optimize.
func (f *Frozen[B]) Parameters() []*Parameter[B] {
	return nil
}

// Unwrap returns the wrapped module.
func (f *Frozen[B]) Unwrap() Module[B] {
	return f.inner
}
