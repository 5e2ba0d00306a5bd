package nn

import (
	"math/rand"
	"testing"

	"github.com/born-ml/chromagan/internal/autodiff"
	"github.com/born-ml/chromagan/internal/backend/cpu"
	"github.com/born-ml/chromagan/internal/tensor"
)

// TestConv2D_Creation tests Conv2D layer creation.
func TestConv2D_Creation(t *testing.T) {
	backend := cpu.New()
	conv := NewConv2D(1, 6, 3, 3, 1, 1, true, rand.New(rand.NewSource(1)), backend)

	if conv.InChannels() != 1 {
		t.Errorf("Expected in_channels=1, got %d", conv.InChannels())
	}
	if conv.OutChannels() != 6 {
		t.Errorf("Expected out_channels=6, got %d", conv.OutChannels())
	}
	if ks := conv.KernelSize(); ks != [2]int{3, 3} {
		t.Errorf("Expected kernel_size=[3,3], got %v", ks)
	}
	if !conv.weight.Tensor().Shape().Equal(tensor.Shape{6, 1, 3, 3}) {
		t.Errorf("Weight shape: got %v", conv.weight.Tensor().Shape())
	}
	if !conv.bias.Tensor().Shape().Equal(tensor.Shape{6}) {
		t.Errorf("Bias shape: got %v", conv.bias.Tensor().Shape())
	}
	if len(conv.Parameters()) != 2 {
		t.Errorf("Expected 2 parameters (weight, bias), got %d", len(conv.Parameters()))
	}

	noBias := NewConv2D(1, 6, 3, 3, 1, 1, false, nil, backend)
	if len(noBias.Parameters()) != 1 {
		t.Errorf("Expected 1 parameter without bias, got %d", len(noBias.Parameters()))
	}
}

// TestConv2D_ForwardShape tests forward pass output shape.
func TestConv2D_ForwardShape(t *testing.T) {
	backend := cpu.New()
	rng := rand.New(rand.NewSource(2))

	tests := []struct {
		name            string
		stride, padding int
		want            tensor.Shape
	}{
		{"same", 1, 1, tensor.Shape{2, 4, 32, 32}},
		{"downsample", 2, 1, tensor.Shape{2, 4, 16, 16}},
		{"valid", 1, 0, tensor.Shape{2, 4, 30, 30}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := NewConv2D(3, 4, 3, 3, tt.stride, tt.padding, true, rng, backend)
			out := conv.Forward(tensor.Zeros(tensor.Shape{2, 3, 32, 32}, backend))
			if !out.Shape().Equal(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, out.Shape())
			}
			size := conv.ComputeOutputSize(32, 32)
			if size[0] != tt.want[2] || size[1] != tt.want[3] {
				t.Errorf("ComputeOutputSize = %v, want %v", size, tt.want[2:])
			}
		})
	}
}

// TestConv2D_BiasBroadcast checks the per-channel bias is added everywhere.
func TestConv2D_BiasBroadcast(t *testing.T) {
	backend := cpu.New()
	conv := NewConv2D(1, 2, 3, 3, 1, 1, true, nil, backend)
	copy(conv.bias.Tensor().Data(), []float32{0.25, -0.5})

	out := conv.Forward(tensor.Zeros(tensor.Shape{1, 1, 4, 4}, backend))
	for i, v := range out.Data() {
		want := float32(0.25)
		if i >= 16 {
			want = -0.5
		}
		if v != want {
			t.Fatalf("out[%d] = %f, want %f", i, v, want)
		}
	}
}

func TestConv2D_InvalidArgumentsPanic(t *testing.T) {
	backend := cpu.New()
	cases := map[string]func(){
		"channels": func() { NewConv2D(0, 1, 3, 3, 1, 1, true, nil, backend) },
		"kernel":   func() { NewConv2D(1, 1, 0, 3, 1, 1, true, nil, backend) },
		"stride":   func() { NewConv2D(1, 1, 3, 3, 0, 1, true, nil, backend) },
		"padding":  func() { NewConv2D(1, 1, 3, 3, 1, -1, true, nil, backend) },
		"input": func() {
			conv := NewConv2D(2, 1, 3, 3, 1, 1, true, nil, backend)
			conv.Forward(tensor.Zeros(tensor.Shape{1, 1, 4, 4}, backend))
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			fn()
		})
	}
}

// TestConv2D_BackwardReachesParameters checks that weight and bias both
// receive gradients through the autodiff backend.
func TestConv2D_BackwardReachesParameters(t *testing.T) {
	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()

	conv := NewConv2D(1, 2, 3, 3, 1, 1, true, rand.New(rand.NewSource(3)), backend)
	input := tensor.Ones(tensor.Shape{1, 1, 4, 4}, backend)
	grads := autodiff.Backward(conv.Forward(input), backend)

	biasGrad := grads[conv.bias.Tensor().Raw()]
	if biasGrad == nil {
		t.Fatal("no gradient for bias")
	}
	for i, v := range biasGrad.Data() {
		if v != 16 {
			t.Errorf("bias grad[%d] = %f, want 16", i, v)
		}
	}
	if grads[conv.weight.Tensor().Raw()] == nil {
		t.Error("no gradient for weight")
	}
}
