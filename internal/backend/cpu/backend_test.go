package cpu

import (
	"math"
	"testing"

	"github.com/axon-ml/axon/internal/graph"
	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

func mustEval(t *testing.T, g *graph.Graph, n *graph.Node) *tensor.RawTensor {
	t.Helper()
	out, err := New().Eval(g, n)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	return out
}

func TestEvalBroadcastAdd(t *testing.T) {
	g := graph.New()
	col := g.Constant(tensor.MustFromSlice([]float32{10, 20, 30}, tensor.Shape{3, 1}))
	row := g.Constant(tensor.MustFromSlice([]float32{1, 2, 3, 4}, tensor.Shape{1, 4}))

	out := mustEval(t, g, g.Add(col, row))
	if !out.Shape().Equal(tensor.Shape{3, 4}) {
		t.Fatalf("Expected shape [3 4], got %v", out.Shape())
	}
	want := []float32{11, 12, 13, 14, 21, 22, 23, 24, 31, 32, 33, 34}
	got := out.AsFloat32()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Element %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestEvalMixedDTypePromotion(t *testing.T) {
	g := graph.New()
	a := g.Constant(tensor.MustFromSlice([]int32{1, 2, 3}, tensor.Shape{3}))
	b := g.Constant(tensor.MustFromSlice([]float32{0.5, 0.5, 0.5}, tensor.Shape{3}))

	out := mustEval(t, g, g.Add(a, b))
	if out.DType() != tensor.Float32 {
		t.Fatalf("Expected Float32 result, got %v", out.DType())
	}
	want := []float32{1.5, 2.5, 3.5}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("Element %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestEvalIntegerDivisionTruncates(t *testing.T) {
	g := graph.New()
	a := g.Constant(tensor.MustFromSlice([]int32{7, -7, 9}, tensor.Shape{3}))
	b := g.Constant(tensor.MustFromSlice([]int32{2, 2, 3}, tensor.Shape{3}))

	out := mustEval(t, g, g.Div(a, b))
	if out.DType() != tensor.Int32 {
		t.Fatalf("Expected Int32 result, got %v", out.DType())
	}
	want := []int32{3, -3, 3}
	for i, v := range out.AsInt32() {
		if v != want[i] {
			t.Errorf("Element %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestEvalUnaryMath(t *testing.T) {
	g := graph.New()
	x := g.Constant(tensor.MustFromSlice([]float64{0, 1, 4}, tensor.Shape{3}))

	exp := mustEval(t, g, g.Exp(x)).AsFloat64()
	sqrt := mustEval(t, g, g.Sqrt(x)).AsFloat64()
	wantExp := []float64{1, math.E, math.Exp(4)}
	wantSqrt := []float64{0, 1, 2}
	for i := range wantExp {
		if math.Abs(exp[i]-wantExp[i]) > 1e-12 {
			t.Errorf("Exp element %d: expected %v, got %v", i, wantExp[i], exp[i])
		}
		if sqrt[i] != wantSqrt[i] {
			t.Errorf("Sqrt element %d: expected %v, got %v", i, wantSqrt[i], sqrt[i])
		}
	}
}

func TestEvalMatMul(t *testing.T) {
	g := graph.New()
	a := g.Constant(tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}))
	b := g.Constant(tensor.MustFromSlice([]float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2}))

	out := mustEval(t, g, g.MatMul(a, b))
	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("Expected shape [2 2], got %v", out.Shape())
	}
	want := []float32{58, 64, 139, 154}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("Element %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestEvalTranspose(t *testing.T) {
	g := graph.New()
	x := g.Constant(tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}))

	out := mustEval(t, g, g.Transpose(x))
	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Expected shape [3 2], got %v", out.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("Element %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestEvalTransposePerm3D(t *testing.T) {
	g := graph.New()
	// [2 3 4] with values 0..23; perm (2 0 1) -> [4 2 3].
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	x := g.Constant(tensor.MustFromSlice(data, tensor.Shape{2, 3, 4}))

	out := mustEval(t, g, g.Transpose(x, 2, 0, 1))
	if !out.Shape().Equal(tensor.Shape{4, 2, 3}) {
		t.Fatalf("Expected shape [4 2 3], got %v", out.Shape())
	}
	// out[k][i][j] = in[i][j][k] = i*12 + j*4 + k
	got := out.AsFloat64()
	idx := 0
	for k := 0; k < 4; k++ {
		for i := 0; i < 2; i++ {
			for j := 0; j < 3; j++ {
				want := float64(i*12 + j*4 + k)
				if got[idx] != want {
					t.Errorf("out[%d][%d][%d]: expected %v, got %v", k, i, j, want, got[idx])
				}
				idx++
			}
		}
	}
}

func TestEvalReshapeAndBroadcastTo(t *testing.T) {
	g := graph.New()
	x := g.Constant(tensor.MustFromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}))

	r := mustEval(t, g, g.Reshape(x, tensor.Shape{3, 2}))
	if !r.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("Expected shape [3 2], got %v", r.Shape())
	}
	for i, v := range r.AsFloat32() {
		if v != float32(i+1) {
			t.Errorf("Reshape element %d: expected %v, got %v", i, i+1, v)
		}
	}

	y := g.Constant(tensor.MustFromSlice([]float32{1, 2, 3}, tensor.Shape{3, 1}))
	b := mustEval(t, g, g.BroadcastTo(y, tensor.Shape{3, 2}))
	want := []float32{1, 1, 2, 2, 3, 3}
	for i, v := range b.AsFloat32() {
		if v != want[i] {
			t.Errorf("Broadcast element %d: expected %v, got %v", i, want[i], v)
		}
	}
}

func TestEvalReductions(t *testing.T) {
	g := graph.New()
	x := g.Constant(tensor.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}))

	sum := mustEval(t, g, g.Sum(x))
	if !sum.Shape().IsScalar() || sum.FloatAt(0) != 21 {
		t.Errorf("Sum: expected scalar 21, got %v %v", sum.Shape(), sum.FloatAt(0))
	}

	mean := mustEval(t, g, g.Mean(x))
	if mean.FloatAt(0) != 3.5 {
		t.Errorf("Mean: expected 3.5, got %v", mean.FloatAt(0))
	}

	rows := mustEval(t, g, g.SumDim(x, 1, false))
	if !rows.Shape().Equal(tensor.Shape{2}) {
		t.Fatalf("SumDim(1): expected shape [2], got %v", rows.Shape())
	}
	if rows.FloatAt(0) != 6 || rows.FloatAt(1) != 15 {
		t.Errorf("SumDim(1): expected [6 15], got %v", rows.AsFloat64())
	}

	cols := mustEval(t, g, g.SumDim(x, 0, true))
	if !cols.Shape().Equal(tensor.Shape{1, 3}) {
		t.Fatalf("SumDim(0, keep): expected shape [1 3], got %v", cols.Shape())
	}
	wantCols := []float64{5, 7, 9}
	for i, v := range cols.AsFloat64() {
		if v != wantCols[i] {
			t.Errorf("SumDim(0) element %d: expected %v, got %v", i, wantCols[i], v)
		}
	}
}

func TestEvalSumDimMiddle(t *testing.T) {
	g := graph.New()
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)
	}
	x := g.Constant(tensor.MustFromSlice(data, tensor.Shape{2, 3, 4}))

	out := mustEval(t, g, g.SumDim(x, 1, false))
	if !out.Shape().Equal(tensor.Shape{2, 4}) {
		t.Fatalf("Expected shape [2 4], got %v", out.Shape())
	}
	got := out.AsFloat64()
	for i := 0; i < 2; i++ {
		for k := 0; k < 4; k++ {
			var want float64
			for j := 0; j < 3; j++ {
				want += float64(i*12 + j*4 + k)
			}
			if got[i*4+k] != want {
				t.Errorf("out[%d][%d]: expected %v, got %v", i, k, want, got[i*4+k])
			}
		}
	}
}

func TestEvalIntegerSum(t *testing.T) {
	g := graph.New()
	x := g.Constant(tensor.MustFromSlice([]int64{1, 2, 3, 4}, tensor.Shape{4}))

	out := mustEval(t, g, g.Sum(x))
	if out.DType() != tensor.Int64 {
		t.Fatalf("Expected Int64 sum, got %v", out.DType())
	}
	if out.IntAt(0) != 10 {
		t.Errorf("Expected 10, got %d", out.IntAt(0))
	}
}

func TestEvalCast(t *testing.T) {
	g := graph.New()
	x := g.Constant(tensor.MustFromSlice([]float64{1.9, -1.9, 3.0}, tensor.Shape{3}))

	out := mustEval(t, g, g.Cast(x, tensor.Int32))
	want := []int32{1, -1, 3}
	for i, v := range out.AsInt32() {
		if v != want[i] {
			t.Errorf("Element %d: expected %v, got %v", i, want[i], v)
		}
	}

	back := mustEval(t, g, g.Cast(g.Cast(x, tensor.Int64), tensor.Float32))
	wantF := []float32{1, -1, 3}
	for i, v := range back.AsFloat32() {
		if v != wantF[i] {
			t.Errorf("Round trip element %d: expected %v, got %v", i, wantF[i], v)
		}
	}
}

func TestMaterializeMultipleOutputs(t *testing.T) {
	g := graph.New()
	x := g.Constant(tensor.MustFromSlice([]float64{1, 2, 3}, tensor.Shape{3}))
	sq := g.Mul(x, x)
	total := g.Sum(sq)

	outs, err := New().Materialize(g, sq, total)
	if err != nil {
		t.Fatalf("Materialize failed: %v", err)
	}
	if len(outs) != 2 {
		t.Fatalf("Expected 2 outputs, got %d", len(outs))
	}
	wantSq := []float64{1, 4, 9}
	for i, v := range outs[0].AsFloat64() {
		if v != wantSq[i] {
			t.Errorf("Square element %d: expected %v, got %v", i, wantSq[i], v)
		}
	}
	if outs[1].FloatAt(0) != 14 {
		t.Errorf("Expected total 14, got %v", outs[1].FloatAt(0))
	}
}

func TestEvalParamRequiresValue(t *testing.T) {
	g := graph.New()
	x := g.Param(0, tensor.MustFromSlice([]float32{2}, tensor.Shape{}))

	out := mustEval(t, g, g.Mul(x, x))
	if out.AsFloat32()[0] != 4 {
		t.Errorf("Expected 4, got %v", out.AsFloat32()[0])
	}
}

func TestEvalSequentialConfigMatchesParallel(t *testing.T) {
	g := graph.New()
	data := make([]float64, 10000)
	for i := range data {
		data[i] = float64(i) * 0.25
	}
	x := g.Constant(tensor.MustFromSlice(data, tensor.Shape{100, 100}))
	root := g.Sum(g.Mul(g.Tanh(x), x))

	par, err := New().Eval(g, root)
	if err != nil {
		t.Fatalf("Parallel eval failed: %v", err)
	}
	seq, err := NewWithConfig(parallel.Sequential()).Eval(g, root)
	if err != nil {
		t.Fatalf("Sequential eval failed: %v", err)
	}
	if math.Abs(par.FloatAt(0)-seq.FloatAt(0)) > 1e-9 {
		t.Errorf("Parallel %v and sequential %v disagree", par.FloatAt(0), seq.FloatAt(0))
	}
}
