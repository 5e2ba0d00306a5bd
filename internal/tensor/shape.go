package tensor

import "fmt"

// Shape is the list of tensor dimensions, outermost first.
type Shape []int

// NumElements returns the product of all dimensions (1 for a scalar shape).
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate rejects shapes with zero or negative dimensions.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("dimension %d is %d, must be > 0", i, dim)
		}
	}
	return nil
}

// Equal reports whether both shapes have the same rank and dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// ComputeStrides returns row-major strides: stride[i] is the product of all
// dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// String renders the shape as [d0 d1 ...].
func (s Shape) String() string {
	return fmt.Sprint([]int(s))
}

// BroadcastShapes applies NumPy broadcasting rules to a and b.
//
// Shapes are aligned from the right; a missing dimension counts as 1 and a
// dimension of 1 stretches to match the other operand. The second return value
// reports whether any stretching happened.
//
//	(3, 1) + (3, 5) -> (3, 5), true
//	(3, 5) + (3, 5) -> (3, 5), false
//	(3, 4) + (3, 5) -> error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	stretched := len(a) != len(b)

	for i := 0; i < rank; i++ {
		aDim := dimFromRight(a, i)
		bDim := dimFromRight(b, i)

		switch {
		case aDim == bDim:
			out[rank-1-i] = aDim
		case aDim == 1:
			out[rank-1-i] = bDim
			stretched = true
		case bDim == 1:
			out[rank-1-i] = aDim
			stretched = true
		default:
			return nil, false, fmt.Errorf("shapes %v and %v cannot broadcast (dim %d: %d vs %d)",
				a, b, rank-1-i, aDim, bDim)
		}
	}

	return out, stretched, nil
}

// BroadcastOffset maps a flat index in the broadcast output shape back to the
// flat index of an operand with shape src.
func BroadcastOffset(flat int, out, src Shape) int {
	srcStrides := src.ComputeStrides()
	offset := 0
	for i := len(out) - 1; i >= 0; i-- {
		coord := flat % out[i]
		flat /= out[i]
		j := i - (len(out) - len(src))
		if j < 0 {
			continue
		}
		if src[j] != 1 {
			offset += coord * srcStrides[j]
		}
	}
	return offset
}

func dimFromRight(s Shape, i int) int {
	idx := len(s) - 1 - i
	if idx < 0 {
		return 1
	}
	return s[idx]
}
