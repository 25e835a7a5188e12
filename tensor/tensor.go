// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor exposes shapes, data types and raw tensors.
//
// Example:
//
//	x := tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	fmt.Println(x.Shape(), x.DType())
package tensor

import "github.com/axon-ml/axon/internal/tensor"

// Shape represents tensor dimensions; a zero-length shape is a scalar.
type Shape = tensor.Shape

// DataType is the runtime element type tag.
type DataType = tensor.DataType

// Supported data types.
const (
	Float32 = tensor.Float32
	Float64 = tensor.Float64
	Int32   = tensor.Int32
	Int64   = tensor.Int64
)

// RawTensor is the low-level tensor representation.
type RawTensor = tensor.RawTensor

// NewRaw creates a zero-initialized tensor.
func NewRaw(shape Shape, dtype DataType) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype)
}

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape, dtype DataType) *RawTensor {
	return tensor.Zeros(shape, dtype)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *RawTensor {
	return tensor.Ones(shape, dtype)
}

// Full creates a tensor filled with value.
func Full(shape Shape, dtype DataType, value float64) *RawTensor {
	return tensor.Full(shape, dtype, value)
}

// Scalar creates a 0-D tensor holding a single value.
func Scalar(dtype DataType, value float64) *RawTensor {
	return tensor.Scalar(dtype, value)
}

// FromSlice creates a tensor from a Go slice.
func FromSlice[T tensor.DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// MustFromSlice is FromSlice that panics on error.
func MustFromSlice[T tensor.DType](data []T, shape Shape) *RawTensor {
	return tensor.MustFromSlice(data, shape)
}

// BroadcastShapes applies NumPy-style broadcasting rules to two shapes.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// Promote returns the result type of a binary operation between a and b.
func Promote(a, b DataType) DataType {
	return tensor.Promote(a, b)
}
