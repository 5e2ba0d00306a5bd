// Package dataset holds image batches for colorization training: paired
// grayscale/color images, luminance conversion, sampling, and loaders for
// synthetic and CIFAR-10 data.
package dataset

import (
	"github.com/pkg/errors"

	"github.com/born-ml/chromagan/internal/tensor"
)

var (
	// ErrShapeMismatch is returned when image dimensions disagree.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrIndexOutOfRange is returned when a sample index is outside [0, N).
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Images is a batch of N images stored channels-last: [N, H, W, C].
// Pixel values are float32 in [0, 1].
type Images struct {
	N, H, W, C int
	Data       []float32
}

// NewImages allocates a zeroed batch.
func NewImages(n, h, w, c int) (*Images, error) {
	if n < 0 || h <= 0 || w <= 0 || c <= 0 {
		return nil, errors.Wrapf(ErrShapeMismatch, "invalid image batch [%d %d %d %d]", n, h, w, c)
	}
	return &Images{N: n, H: h, W: w, C: c, Data: make([]float32, n*h*w*c)}, nil
}

// Shape returns [N, H, W, C].
func (im *Images) Shape() tensor.Shape {
	return tensor.Shape{im.N, im.H, im.W, im.C}
}

// Len returns the number of images.
func (im *Images) Len() int {
	return im.N
}

// SampleSize is the number of values in one image.
func (im *Images) SampleSize() int {
	return im.H * im.W * im.C
}

// Sample returns image i as a slice aliasing the batch storage.
func (im *Images) Sample(i int) []float32 {
	size := im.SampleSize()
	return im.Data[i*size : (i+1)*size]
}

// Gather copies the images at indices into a new batch, in index order.
// Repeated indices are allowed.
func (im *Images) Gather(indices []int) (*Images, error) {
	out, err := NewImages(len(indices), im.H, im.W, im.C)
	if err != nil {
		return nil, err
	}
	for k, idx := range indices {
		if idx < 0 || idx >= im.N {
			return nil, errors.Wrapf(ErrIndexOutOfRange, "index %d for %d images", idx, im.N)
		}
		copy(out.Sample(k), im.Sample(idx))
	}
	return out, nil
}

// Slice returns images [lo, hi) as a new batch sharing no storage.
func (im *Images) Slice(lo, hi int) (*Images, error) {
	if lo < 0 || hi > im.N || lo > hi {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "slice [%d:%d] of %d images", lo, hi, im.N)
	}
	out, err := NewImages(hi-lo, im.H, im.W, im.C)
	if err != nil {
		return nil, err
	}
	size := im.SampleSize()
	copy(out.Data, im.Data[lo*size:hi*size])
	return out, nil
}

// ToTensor copies the batch into a [N, H, W, C] tensor on backend b.
func ToTensor[B tensor.Backend](im *Images, b B) *tensor.Tensor[B] {
	t := tensor.Zeros(im.Shape(), b)
	copy(t.Data(), im.Data)
	return t
}

// FromTensor copies a [N, H, W, C] tensor into a new batch.
func FromTensor[B tensor.Backend](t *tensor.Tensor[B]) (*Images, error) {
	s := t.Shape()
	if len(s) != 4 {
		return nil, errors.Wrapf(ErrShapeMismatch, "expected [N H W C], got %v", s)
	}
	im, err := NewImages(s[0], s[1], s[2], s[3])
	if err != nil {
		return nil, err
	}
	copy(im.Data, t.Data())
	return im, nil
}

// Pair holds matching grayscale ([N, H, W, 1]) and color ([N, H, W, 3])
// images; Gray.Sample(i) is the luminance of Color.Sample(i).
type Pair struct {
	Gray  *Images
	Color *Images
}

// NewPair validates that gray and color describe the same N images.
func NewPair(gray, color *Images) (*Pair, error) {
	if gray == nil || color == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "pair needs both gray and color images")
	}
	if gray.C != 1 || color.C != 3 {
		return nil, errors.Wrapf(ErrShapeMismatch, "gray must have 1 channel and color 3, got %d and %d", gray.C, color.C)
	}
	if gray.N != color.N || gray.H != color.H || gray.W != color.W {
		return nil, errors.Wrapf(ErrShapeMismatch, "gray %v does not match color %v", gray.Shape(), color.Shape())
	}
	return &Pair{Gray: gray, Color: color}, nil
}

// PairFromColor builds a pair by converting color to luminance.
func PairFromColor(color *Images) (*Pair, error) {
	gray, err := ToGray(color)
	if err != nil {
		return nil, err
	}
	return NewPair(gray, color)
}

// Len returns the number of image pairs.
func (p *Pair) Len() int {
	return p.Gray.N
}

// Split returns the first n pairs and the remainder.
func (p *Pair) Split(n int) (head, tail *Pair, err error) {
	cut := func(lo, hi int) (*Pair, error) {
		g, err := p.Gray.Slice(lo, hi)
		if err != nil {
			return nil, err
		}
		c, err := p.Color.Slice(lo, hi)
		if err != nil {
			return nil, err
		}
		return &Pair{Gray: g, Color: c}, nil
	}
	if head, err = cut(0, n); err != nil {
		return nil, nil, err
	}
	if tail, err = cut(n, p.Len()); err != nil {
		return nil, nil, err
	}
	return head, tail, nil
}
