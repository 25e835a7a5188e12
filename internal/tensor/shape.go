package tensor

import "fmt"

// Shape represents the dimensions of a tensor. A zero-length shape is a
// scalar holding a single element.
type Shape []int

// NumElements returns the total number of elements in the shape.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// IsScalar reports whether the shape has zero dimensions.
func (s Shape) IsScalar() bool {
	return len(s) == 0
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal reports whether two shapes are identical.
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

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}

// ComputeStrides returns row-major strides for the shape:
// stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes applies NumPy-style broadcasting rules to a pair of
// shapes: dimensions are compared right-to-left, and are compatible when
// equal or when either is 1; missing leading dimensions count as 1.
//
// Examples:
//
//	(3, 1) and (3, 5) → (3, 5)
//	()     and (2, 2) → (2, 2)
//	(3, 4) and (3, 5) → error
func BroadcastShapes(a, b Shape) (Shape, error) {
	n := max(len(a), len(b))
	result := make(Shape, n)

	for i := 0; i < n; i++ {
		aDim, bDim := 1, 1
		if idx := len(a) - 1 - i; idx >= 0 {
			aDim = a[idx]
		}
		if idx := len(b) - 1 - i; idx >= 0 {
			bDim = b[idx]
		}

		switch {
		case aDim == bDim, bDim == 1:
			result[n-1-i] = aDim
		case aDim == 1:
			result[n-1-i] = bDim
		default:
			return nil, fmt.Errorf("shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)",
				a, b, n-1-i, aDim, bDim)
		}
	}
	return result, nil
}

// BroadcastableTo reports whether shape s can be broadcast to target
// without changing any of target's dimensions.
func (s Shape) BroadcastableTo(target Shape) bool {
	if len(s) > len(target) {
		return false
	}
	for i := 0; i < len(s); i++ {
		sDim := s[len(s)-1-i]
		tDim := target[len(target)-1-i]
		if sDim != tDim && sDim != 1 {
			return false
		}
	}
	return true
}
