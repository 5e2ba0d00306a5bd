package tensor

import "fmt"

// Tensor pairs a RawTensor with the backend that computes on it.
//
// The backend type parameter decides whether operations are recorded for
// autodiff: wrap a CPU backend with autodiff.New to get gradient tracking.
//
//	backend := autodiff.New(cpu.New())
//	x := tensor.Zeros(tensor.Shape{2, 3}, backend)
//	y := x.Add(x)
type Tensor[B Backend] struct {
	raw     *RawTensor
	backend B
}

// New wraps an existing RawTensor.
func New[B Backend](raw *RawTensor, b B) *Tensor[B] {
	return &Tensor[B]{raw: raw, backend: b}
}

// FromSlice copies data into a new tensor of the given shape.
func FromSlice[B Backend](data []float32, shape Shape, b B) (*Tensor[B], error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	raw, err := NewRaw(shape, b.Device())
	if err != nil {
		return nil, err
	}
	copy(raw.Data(), data)
	return New(raw, b), nil
}

// Shape returns the tensor's shape.
func (t *Tensor[B]) Shape() Shape {
	return t.raw.Shape()
}

// NumElements returns the total number of elements.
func (t *Tensor[B]) NumElements() int {
	return t.raw.NumElements()
}

// Raw returns the underlying RawTensor.
func (t *Tensor[B]) Raw() *RawTensor {
	return t.raw
}

// Backend returns the computation backend.
func (t *Tensor[B]) Backend() B {
	return t.backend
}

// Data returns a view of the tensor's elements.
//
// WARNING: modifications to the returned slice modify the tensor.
func (t *Tensor[B]) Data() []float32 {
	return t.raw.Data()
}

// Item returns the value of a single-element tensor.
func (t *Tensor[B]) Item() float32 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() needs a single-element tensor, got shape %v", t.Shape()))
	}
	return t.raw.Data()[0]
}

// At returns the element at the given indices.
func (t *Tensor[B]) At(indices ...int) float32 {
	return t.raw.Data()[t.offset(indices)]
}

// Set writes value at the given indices.
func (t *Tensor[B]) Set(value float32, indices ...int) {
	t.raw.Data()[t.offset(indices)] = value
}

func (t *Tensor[B]) offset(indices []int) int {
	shape := t.Shape()
	if len(indices) != len(shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(shape), len(indices)))
	}
	offset := 0
	strides := t.raw.Strides()
	for i, idx := range indices {
		if idx < 0 || idx >= shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, shape[i]))
		}
		offset += idx * strides[i]
	}
	return offset
}

// Clone returns a deep copy sharing the backend but not the data.
func (t *Tensor[B]) Clone() *Tensor[B] {
	return New(t.raw.Clone(), t.backend)
}

// String returns a short description (not the data).
func (t *Tensor[B]) String() string {
	return fmt.Sprintf("Tensor[float32]%v on %s", t.Shape(), t.raw.Device())
}
