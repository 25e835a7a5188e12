package tensor

import (
	"math"
	"testing"
)

func assertShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// DType tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dtype DataType
		str   string
	}{
		{Float32, "float32"},
		{Float64, "float64"},
		{Int32, "int32"},
		{Int64, "int64"},
	}

	for _, tt := range tests {
		if got := tt.dtype.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}

func TestPromote(t *testing.T) {
	tests := []struct {
		a, b, want DataType
	}{
		{Float32, Float32, Float32},
		{Float32, Float64, Float64},
		{Int32, Int64, Int64},
		{Int32, Float32, Float32},
		{Int64, Float32, Float64}, // int64 magnitude does not fit float32
		{Int64, Float64, Float64},
		{Float64, Int32, Float64},
	}

	for _, tt := range tests {
		if got := Promote(tt.a, tt.b); got != tt.want {
			t.Errorf("Promote(%s, %s) = %s, want %s", tt.a, tt.b, got, tt.want)
		}
		// Promotion is symmetric.
		if got := Promote(tt.b, tt.a); got != tt.want {
			t.Errorf("Promote(%s, %s) = %s, want %s", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		dtype, want DataType
	}{
		{Float32, Float32},
		{Float64, Float64},
		{Int32, Float32},
		{Int64, Float64},
	}

	for _, tt := range tests {
		if got := tt.dtype.ToFloat(); got != tt.want {
			t.Errorf("%s.ToFloat() = %s, want %s", tt.dtype, got, tt.want)
		}
	}
}

// Shape tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1}, // scalar
		{Shape{5}, 5},
		{Shape{3, 4}, 12},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeIsScalar(t *testing.T) {
	if !(Shape{}).IsScalar() {
		t.Error("empty shape should be scalar")
	}
	if (Shape{1}).IsScalar() {
		t.Error("shape [1] is not scalar")
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{3, 4}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{3, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (Shape{-1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestComputeStrides(t *testing.T) {
	tests := []struct {
		shape Shape
		want  []int
	}{
		{Shape{}, []int{}},
		{Shape{4}, []int{1}},
		{Shape{3, 4}, []int{4, 1}},
		{Shape{2, 3, 4}, []int{12, 4, 1}},
	}

	for _, tt := range tests {
		got := tt.shape.ComputeStrides()
		if len(got) != len(tt.want) {
			t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%v.ComputeStrides() = %v, want %v", tt.shape, got, tt.want)
				break
			}
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b, want Shape
		wantErr    bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{1, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{}, Shape{2, 2}, Shape{2, 2}, false},
		{Shape{4}, Shape{3, 4}, Shape{3, 4}, false},
		{Shape{3, 4}, Shape{3, 5}, nil, true},
	}

	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v) should fail", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Errorf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
			continue
		}
		assertShape(t, tt.want, got, "BroadcastShapes")
	}
}

func TestBroadcastableTo(t *testing.T) {
	tests := []struct {
		s, target Shape
		want      bool
	}{
		{Shape{}, Shape{3, 4}, true},
		{Shape{4}, Shape{3, 4}, true},
		{Shape{3, 1}, Shape{3, 4}, true},
		{Shape{3, 4}, Shape{3, 4}, true},
		{Shape{4}, Shape{4, 3}, false},
		{Shape{2, 3, 4}, Shape{3, 4}, false},
	}

	for _, tt := range tests {
		if got := tt.s.BroadcastableTo(tt.target); got != tt.want {
			t.Errorf("%v.BroadcastableTo(%v) = %v, want %v", tt.s, tt.target, got, tt.want)
		}
	}
}

// RawTensor tests

func TestFromSlice(t *testing.T) {
	raw, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	assertShape(t, Shape{2, 3}, raw.Shape(), "FromSlice shape")
	if raw.DType() != Float32 {
		t.Errorf("dtype = %s, want float32", raw.DType())
	}
	data := raw.AsFloat32()
	for i, want := range []float32{1, 2, 3, 4, 5, 6} {
		if data[i] != want {
			t.Errorf("data[%d] = %v, want %v", i, data[i], want)
		}
	}
}

func TestFromSliceSizeMismatch(t *testing.T) {
	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2}); err == nil {
		t.Error("size mismatch accepted")
	}
}

func TestFromSliceInt(t *testing.T) {
	raw, err := FromSlice([]int64{7, 8, 9}, Shape{3})
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	if raw.DType() != Int64 {
		t.Errorf("dtype = %s, want int64", raw.DType())
	}
	if raw.AsInt64()[2] != 9 {
		t.Errorf("data[2] = %d, want 9", raw.AsInt64()[2])
	}
}

func TestScalar(t *testing.T) {
	s := Scalar(Float64, 2.5)
	assertShape(t, Shape{}, s.Shape(), "Scalar shape")
	if s.NumElements() != 1 {
		t.Errorf("NumElements() = %d, want 1", s.NumElements())
	}
	if s.AsFloat64()[0] != 2.5 {
		t.Errorf("value = %v, want 2.5", s.AsFloat64()[0])
	}
}

func TestFullAndOnes(t *testing.T) {
	f := Full(Shape{2, 2}, Float32, 3.5)
	for _, v := range f.AsFloat32() {
		if v != 3.5 {
			t.Fatalf("Full value = %v, want 3.5", v)
		}
	}
	ones := Ones(Shape{3}, Int32)
	for _, v := range ones.AsInt32() {
		if v != 1 {
			t.Fatalf("Ones value = %d, want 1", v)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := MustFromSlice([]float32{1, 2}, Shape{2})
	b := a.Clone()
	b.AsFloat32()[0] = 99
	if a.AsFloat32()[0] != 1 {
		t.Error("Clone shares underlying buffer")
	}
}

func TestEqual(t *testing.T) {
	a := MustFromSlice([]float32{1, 2}, Shape{2})
	b := MustFromSlice([]float32{1, 2}, Shape{2})
	c := MustFromSlice([]float32{1, 3}, Shape{2})
	d := MustFromSlice([]float32{1, 2}, Shape{2, 1})

	if !a.Equal(b) {
		t.Error("equal tensors reported unequal")
	}
	if a.Equal(c) {
		t.Error("different contents reported equal")
	}
	if a.Equal(d) {
		t.Error("different shapes reported equal")
	}
	if a.Equal(nil) {
		t.Error("nil reported equal")
	}
}

func TestFloatAtRoundTrip(t *testing.T) {
	for _, dtype := range []DataType{Float32, Float64, Int32, Int64} {
		raw := Zeros(Shape{4}, dtype)
		raw.SetFloatAt(2, 7)
		if got := raw.FloatAt(2); math.Abs(got-7) > 1e-9 {
			t.Errorf("%s: FloatAt(2) = %v, want 7", dtype, got)
		}
		if got := raw.FloatAt(0); got != 0 {
			t.Errorf("%s: FloatAt(0) = %v, want 0", dtype, got)
		}
	}
}
