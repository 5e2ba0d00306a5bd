package cpu

import (
	"math/rand"
	"testing"

	"github.com/born-ml/chromagan/internal/parallel"
	"github.com/born-ml/chromagan/internal/tensor"
)

func rawFrom(shape tensor.Shape, values ...float32) *tensor.RawTensor {
	r := tensor.MustRaw(shape, tensor.CPU)
	copy(r.Data(), values)
	return r
}

func randomRaw(rng *rand.Rand, shape tensor.Shape) *tensor.RawTensor {
	r := tensor.MustRaw(shape, tensor.CPU)
	for i := range r.Data() {
		r.Data()[i] = float32(rng.NormFloat64())
	}
	return r
}

func closeEnough(a, b, tol float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}

// naiveConv2D is a direct nested-loop convolution used as ground truth.
func naiveConv2D(input, kernel *tensor.RawTensor, stride, padding int) []float32 {
	in, k := input.Shape(), kernel.Shape()
	n, cIn, h, w := in[0], in[1], in[2], in[3]
	cOut, kH, kW := k[0], k[2], k[3]
	hOut := (h+2*padding-kH)/stride + 1
	wOut := (w+2*padding-kW)/stride + 1

	out := make([]float32, n*cOut*hOut*wOut)
	x, kd := input.Data(), kernel.Data()
	for b := 0; b < n; b++ {
		for co := 0; co < cOut; co++ {
			for oh := 0; oh < hOut; oh++ {
				for ow := 0; ow < wOut; ow++ {
					var sum float32
					for ci := 0; ci < cIn; ci++ {
						for i := 0; i < kH; i++ {
							for j := 0; j < kW; j++ {
								y, xx := oh*stride-padding+i, ow*stride-padding+j
								if y < 0 || y >= h || xx < 0 || xx >= w {
									continue
								}
								sum += x[((b*cIn+ci)*h+y)*w+xx] * kd[((co*cIn+ci)*kH+i)*kW+j]
							}
						}
					}
					out[((b*cOut+co)*hOut+oh)*wOut+ow] = sum
				}
			}
		}
	}
	return out
}

// TestConv2D_BasicForward tests a single-channel 2x2 kernel without padding.
func TestConv2D_BasicForward(t *testing.T) {
	backend := New()

	// 1 2 3
	// 4 5 6
	// 7 8 9
	input := rawFrom(tensor.Shape{1, 1, 3, 3}, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	// 1 0
	// 0 1
	kernel := rawFrom(tensor.Shape{1, 1, 2, 2}, 1, 0, 0, 1)

	output := backend.Conv2D(input, kernel, 1, 0)

	if !output.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("Expected shape [1 1 2 2], got %v", output.Shape())
	}
	expected := []float32{6, 8, 12, 14}
	for i, exp := range expected {
		if output.Data()[i] != exp {
			t.Errorf("Output[%d]: expected %.1f, got %.1f", i, exp, output.Data()[i])
		}
	}
}

// TestConv2D_SamePaddingKeepsSize checks the 3x3/pad 1 geometry used by the networks.
func TestConv2D_SamePaddingKeepsSize(t *testing.T) {
	backend := New()

	input := tensor.MustRaw(tensor.Shape{2, 1, 32, 32}, tensor.CPU)
	input.Fill(1)
	kernel := tensor.MustRaw(tensor.Shape{4, 1, 3, 3}, tensor.CPU)
	kernel.Fill(1)

	output := backend.Conv2D(input, kernel, 1, 1)
	if !output.Shape().Equal(tensor.Shape{2, 4, 32, 32}) {
		t.Fatalf("Expected [2 4 32 32], got %v", output.Shape())
	}
	// Corner sees 4 valid pixels, centre sees 9.
	if got := output.Data()[0]; got != 4 {
		t.Errorf("corner: expected 4, got %f", got)
	}
	if got := output.Data()[5*32+5]; got != 9 {
		t.Errorf("centre: expected 9, got %f", got)
	}

	strided := backend.Conv2D(input, kernel, 2, 1)
	if !strided.Shape().Equal(tensor.Shape{2, 4, 16, 16}) {
		t.Fatalf("Expected [2 4 16 16], got %v", strided.Shape())
	}
}

func TestConv2D_MatchesNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, cfg := range []parallel.Config{parallel.Sequential(), {Enabled: true, NumWorkers: 4, MinChunkSize: 1}} {
		backend := NewWithConfig(cfg)
		for _, geom := range []struct{ stride, padding int }{{1, 0}, {1, 1}, {2, 1}} {
			input := randomRaw(rng, tensor.Shape{3, 2, 6, 6})
			kernel := randomRaw(rng, tensor.Shape{4, 2, 3, 3})

			got := backend.Conv2D(input, kernel, geom.stride, geom.padding).Data()
			want := naiveConv2D(input, kernel, geom.stride, geom.padding)
			if len(got) != len(want) {
				t.Fatalf("size mismatch: %d vs %d", len(got), len(want))
			}
			for i := range want {
				if !closeEnough(got[i], want[i], 1e-4) {
					t.Fatalf("stride=%d pad=%d index %d: got %f want %f", geom.stride, geom.padding, i, got[i], want[i])
				}
			}
		}
	}
}

// TestConv2DBackward_MatchesFiniteDifference checks both gradients against
// a central difference of sum(conv(x, k) * g).
func TestConv2DBackward_MatchesFiniteDifference(t *testing.T) {
	backend := NewWithConfig(parallel.Sequential())
	rng := rand.New(rand.NewSource(11))

	const stride, padding = 2, 1
	input := randomRaw(rng, tensor.Shape{2, 2, 5, 5})
	kernel := randomRaw(rng, tensor.Shape{3, 2, 3, 3})
	out := backend.Conv2D(input, kernel, stride, padding)
	grad := randomRaw(rng, out.Shape())

	objective := func() float64 {
		o := backend.Conv2D(input, kernel, stride, padding).Data()
		var s float64
		for i, v := range o {
			s += float64(v) * float64(grad.Data()[i])
		}
		return s
	}

	check := func(name string, param, analytic *tensor.RawTensor) {
		const h = 1e-2
		for i := range param.Data() {
			orig := param.Data()[i]
			param.Data()[i] = orig + h
			plus := objective()
			param.Data()[i] = orig - h
			minus := objective()
			param.Data()[i] = orig

			numeric := float32((plus - minus) / (2 * h))
			if !closeEnough(analytic.Data()[i], numeric, 2e-2) {
				t.Errorf("%s[%d]: analytic %f, numeric %f", name, i, analytic.Data()[i], numeric)
			}
		}
	}

	check("input", input, backend.Conv2DInputBackward(input, kernel, grad, stride, padding))
	check("kernel", kernel, backend.Conv2DKernelBackward(input, kernel, grad, stride, padding))
}

func TestConv2D_ChannelMismatchPanics(t *testing.T) {
	backend := New()
	input := tensor.MustRaw(tensor.Shape{1, 3, 4, 4}, tensor.CPU)
	kernel := tensor.MustRaw(tensor.Shape{2, 1, 3, 3}, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for channel mismatch")
		}
	}()
	backend.Conv2D(input, kernel, 1, 1)
}
