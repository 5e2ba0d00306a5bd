package tensor

import "fmt"

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the untyped storage behind a Tensor: a contiguous row-major
// float32 buffer plus its shape.
//
// RawTensor pointers double as node identities in the gradient tape, so
// every backend operation allocates a fresh RawTensor for its result.
type RawTensor struct {
	data   []float32
	shape  Shape
	stride []int
	device Device
}

// NewRaw allocates a zero-filled RawTensor.
func NewRaw(shape Shape, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:   make([]float32, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		device: device,
	}, nil
}

// MustRaw is NewRaw for shapes already known to be valid.
func MustRaw(shape Shape, device Device) *RawTensor {
	r, err := NewRaw(shape, device)
	if err != nil {
		panic(err)
	}
	return r
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the row-major strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return len(r.data)
}

// Data returns the backing slice.
// WARNING: writes go straight into the tensor.
func (r *RawTensor) Data() []float32 {
	return r.data
}

// Clone returns a deep copy with its own buffer.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]float32, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		device: r.device,
	}
}

// Fill sets every element to value.
func (r *RawTensor) Fill(value float32) {
	for i := range r.data {
		r.data[i] = value
	}
}
