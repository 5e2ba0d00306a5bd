// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/chromagan/internal/backend/cpu"
	"github.com/born-ml/chromagan/tensor"
)

// TestBackendInterface verifies that cpu.CPUBackend implements tensor.Backend.
func TestBackendInterface(_ *testing.T) {
	var _ tensor.Backend = (*cpu.CPUBackend)(nil)
}

// TestRawTensorAPI verifies the RawTensor alias exposes the expected API.
func TestRawTensorAPI(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}

	if !raw.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", raw.Shape())
	}
	if raw.NumElements() != 6 {
		t.Errorf("NumElements() = %d, want 6", raw.NumElements())
	}
	if raw.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", raw.Device())
	}

	raw.Fill(2)
	clone := raw.Clone()
	clone.Data()[0] = 5
	if raw.Data()[0] != 2 {
		t.Error("Clone() shares storage with the original")
	}

	if _, err := tensor.NewRaw(tensor.Shape{2, -1}, tensor.CPU); err == nil {
		t.Error("NewRaw accepted a negative dimension")
	}
}

func TestTensorCreationFunctions(t *testing.T) {
	backend := cpu.New()

	tests := []struct {
		name string
		t    *tensor.Tensor[*cpu.CPUBackend]
		want float32
	}{
		{"Zeros", tensor.Zeros(tensor.Shape{2, 3}, backend), 0},
		{"Ones", tensor.Ones(tensor.Shape{2, 3}, backend), 1},
		{"Full", tensor.Full(tensor.Shape{2, 3}, 0.5, backend), 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.t.Shape().Equal(tensor.Shape{2, 3}) {
				t.Errorf("shape = %v, want [2 3]", tt.t.Shape())
			}
			for i, v := range tt.t.Data() {
				if v != tt.want {
					t.Fatalf("element %d = %f, want %f", i, v, tt.want)
				}
			}
		})
	}

	u := tensor.Uniform(tensor.Shape{100}, 0.25, 0.75, rand.New(rand.NewSource(1)), backend)
	for i, v := range u.Data() {
		if v < 0.25 || v > 0.75 {
			t.Fatalf("Uniform element %d = %f outside [0.25, 0.75]", i, v)
		}
	}

	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}
	if got := x.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %f, want 6", got)
	}
	if _, err := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2, 3}, backend); err == nil {
		t.Error("FromSlice accepted mismatched data length")
	}
}

func TestImageLayoutRoundTrip(t *testing.T) {
	backend := cpu.New()
	nhwc := tensor.Zeros(tensor.Shape{2, 4, 4, 3}, backend)
	for i := range nhwc.Data() {
		nhwc.Data()[i] = float32(i)
	}

	nchw := nhwc.Transpose(0, 3, 1, 2)
	if !nchw.Shape().Equal(tensor.Shape{2, 3, 4, 4}) {
		t.Fatalf("NCHW shape = %v", nchw.Shape())
	}
	if nchw.At(1, 2, 3, 1) != nhwc.At(1, 3, 1, 2) {
		t.Error("transpose moved the wrong element")
	}

	back := nchw.Transpose(0, 2, 3, 1)
	for i, v := range back.Data() {
		if v != nhwc.Data()[i] {
			t.Fatalf("round trip differs at %d", i)
		}
	}
}

func TestDeviceConstants(t *testing.T) {
	if tensor.CPU.String() != "CPU" {
		t.Errorf("CPU.String() = %q, want CPU", tensor.CPU.String())
	}
}
