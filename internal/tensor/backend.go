package tensor

// Backend is the set of kernels a compute device provides.
//
// Forward kernels allocate a new result on every call. The *Backward kernels
// are used by autodiff operations to propagate gradients and are never
// recorded on a tape themselves.
type Backend interface {
	// Element-wise binary operations with NumPy broadcasting.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor

	// MulScalar multiplies every element by s.
	MulScalar(x *RawTensor, s float32) *RawTensor

	// MatMul multiplies 2D matrices: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Conv2D convolves [N, C_in, H, W] with [C_out, C_in, K_h, K_w].
	Conv2D(input, kernel *RawTensor, stride, padding int) *RawTensor
	Conv2DInputBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor
	Conv2DKernelBackward(input, kernel, grad *RawTensor, stride, padding int) *RawTensor

	// Upsample2D repeats every pixel of [N, C, H, W] into a scale x scale block.
	Upsample2D(x *RawTensor, scale int) *RawTensor
	Upsample2DBackward(grad *RawTensor, scale int) *RawTensor

	// Shape operations.
	Reshape(t *RawTensor, newShape Shape) *RawTensor
	Transpose(t *RawTensor, axes ...int) *RawTensor

	// Activations.
	ReLU(x *RawTensor) *RawTensor
	Sigmoid(x *RawTensor) *RawTensor

	// BinaryCrossEntropy returns mean(-y*log(p) - (1-y)*log(1-p)) as a
	// one-element tensor, with p clipped away from 0 and 1.
	BinaryCrossEntropy(predictions, targets *RawTensor) *RawTensor
	BinaryCrossEntropyBackward(predictions, targets, grad *RawTensor) *RawTensor

	// Metadata.
	Name() string
	Device() Device
}
