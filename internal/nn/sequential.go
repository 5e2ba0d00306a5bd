package nn

import (
	"fmt"
	"strings"

	"github.com/born-ml/chromagan/internal/tensor"
)

// Sequential is a container module that chains multiple modules together.
//
// Each module's output becomes the next module's input:
//
//	model := nn.NewSequential(
//	    nn.NewConv2D(3, 64, 3, 3, 2, 1, true, rng, backend),
//	    nn.NewReLU[B](),
//	    nn.NewFlatten[B](),
//	)
//	output := model.Forward(input)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a new Sequential container.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{
		modules: modules,
	}
}

// Forward applies all modules in sequence.
func (s *Sequential[B]) Forward(input *tensor.Tensor[B]) *tensor.Tensor[B] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns all trainable parameters from all modules, in order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the sequence.
func (s *Sequential[B]) Add(module Module[B]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the sequence.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic("Sequential.Module: index out of bounds")
	}
	return s.modules[index]
}

// String lists the contained modules one per line.
func (s *Sequential[B]) String() string {
	var sb strings.Builder
	sb.WriteString("Sequential(\n")
	for i, m := range s.modules {
		fmt.Fprintf(&sb, "  (%d): %v\n", i, m)
	}
	sb.WriteString(")")
	return sb.String()
}
