package tensor

import "fmt"

// Zeros creates a tensor filled with zeros.
// Panics on an invalid shape.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	raw, err := NewRaw(shape, dtype)
	if err != nil {
		panic(err)
	}
	return raw
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *RawTensor {
	return Full(shape, dtype, 1)
}

// Full creates a tensor filled with value, narrowed to dtype.
func Full(shape Shape, dtype DataType, value float64) *RawTensor {
	raw := Zeros(shape, dtype)
	for i := 0; i < raw.NumElements(); i++ {
		raw.SetFloatAt(i, value)
	}
	return raw
}

// Scalar creates a 0-D tensor holding a single value.
func Scalar(dtype DataType, value float64) *RawTensor {
	return Full(Shape{}, dtype, value)
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	var dummy T
	raw, err := NewRaw(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}

	switch d := any(data).(type) {
	case []float32:
		copy(raw.AsFloat32(), d)
	case []float64:
		copy(raw.AsFloat64(), d)
	case []int32:
		copy(raw.AsInt32(), d)
	case []int64:
		copy(raw.AsInt64(), d)
	}
	return raw, nil
}

// MustFromSlice is FromSlice that panics on error. Intended for literals.
func MustFromSlice[T DType](data []T, shape Shape) *RawTensor {
	raw, err := FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return raw
}
