// Package tensor provides the shape, dtype and raw buffer types that the
// Axon graph and interpreter are built on.
package tensor

// DType is a constraint for supported tensor element types.
type DType interface {
	~float32 | ~float64 | ~int32 | ~int64
}

// DataType is the runtime type tag of a tensor's elements.
type DataType int

// Supported data types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the data type is a floating-point type.
func (dt DataType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// ToFloat maps the data type to its floating-point counterpart.
// Float types map to themselves; integer types map to the float type of the
// same width. Gradients are always produced in the result of this mapping,
// since differentiation over discrete domains is undefined.
func (dt DataType) ToFloat() DataType {
	switch dt {
	case Float32, Int32:
		return Float32
	default:
		return Float64
	}
}

// promotion rank, widest last.
var promoteRank = map[DataType]int{
	Int32:   0,
	Int64:   1,
	Float32: 2,
	Float64: 3,
}

// Promote returns the data type carried by the result of a binary
// operation between operands of types a and b.
func Promote(a, b DataType) DataType {
	if a == b {
		return a
	}
	// int64 + float32 widens to float64 so no integer magnitude is lost.
	if (a == Int64 && b == Float32) || (a == Float32 && b == Int64) {
		return Float64
	}
	if promoteRank[a] > promoteRank[b] {
		return a
	}
	return b
}

// inferDataType maps a generic element type to its runtime tag.
func inferDataType[T DType](v T) DataType {
	switch any(v).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	default:
		panic("unsupported type")
	}
}
