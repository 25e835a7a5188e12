package cpu

import (
	"fmt"
	"math"

	"github.com/axon-ml/axon/internal/graph"
	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// bcastIndex maps a flat index into the output shape to a flat index into a
// (possibly broadcast) operand: broadcast dimensions get stride zero.
type bcastIndex struct {
	outStrides []int // row-major strides of the output shape
	inStrides  []int // operand strides aligned to the output rank, 0 where broadcast
	identity   bool
}

func newBcastIndex(in, out tensor.Shape) bcastIndex {
	if in.Equal(out) {
		return bcastIndex{identity: true}
	}
	outStrides := out.ComputeStrides()
	inStrides := make([]int, len(out))
	realStrides := in.ComputeStrides()
	offset := len(out) - len(in)
	for d := range out {
		if d < offset {
			continue // missing leading dimension
		}
		if in[d-offset] == 1 && out[d] != 1 {
			continue // broadcast dimension
		}
		inStrides[d] = realStrides[d-offset]
	}
	return bcastIndex{outStrides: outStrides, inStrides: inStrides}
}

func (ix bcastIndex) at(i int) int {
	if ix.identity {
		return i
	}
	idx := 0
	rem := i
	for d := range ix.outStrides {
		idx += rem / ix.outStrides[d] * ix.inStrides[d]
		rem %= ix.outStrides[d]
	}
	return idx
}

// binary evaluates a broadcasting element-wise binary node. Float results
// are computed in float64 and narrowed; integer results stay in int64 so
// integer division keeps Go truncation semantics.
func (in *Interp) binary(n *graph.Node, a, b *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := tensor.Zeros(n.Shape(), n.DType())
	ai := newBcastIndex(a.Shape(), n.Shape())
	bi := newBcastIndex(b.Shape(), n.Shape())

	if n.DType().IsFloat() {
		f, err := floatBinary(n.Op())
		if err != nil {
			return nil, err
		}
		parallel.For(out.NumElements(), in.par, func(i int) {
			out.SetFloatAt(i, f(a.FloatAt(ai.at(i)), b.FloatAt(bi.at(i))))
		})
		return out, nil
	}

	f, err := intBinary(n.Op())
	if err != nil {
		return nil, err
	}
	parallel.For(out.NumElements(), in.par, func(i int) {
		out.SetIntAt(i, f(a.IntAt(ai.at(i)), b.IntAt(bi.at(i))))
	})
	return out, nil
}

func floatBinary(op graph.Op) (func(x, y float64) float64, error) {
	switch op {
	case graph.OpAdd:
		return func(x, y float64) float64 { return x + y }, nil
	case graph.OpSub:
		return func(x, y float64) float64 { return x - y }, nil
	case graph.OpMul:
		return func(x, y float64) float64 { return x * y }, nil
	case graph.OpDiv:
		return func(x, y float64) float64 { return x / y }, nil
	default:
		return nil, fmt.Errorf("not a binary operation: %s", op)
	}
}

func intBinary(op graph.Op) (func(x, y int64) int64, error) {
	switch op {
	case graph.OpAdd:
		return func(x, y int64) int64 { return x + y }, nil
	case graph.OpSub:
		return func(x, y int64) int64 { return x - y }, nil
	case graph.OpMul:
		return func(x, y int64) int64 { return x * y }, nil
	case graph.OpDiv:
		return func(x, y int64) int64 { return x / y }, nil
	default:
		return nil, fmt.Errorf("not a binary operation: %s", op)
	}
}

// negate evaluates element-wise negation for any dtype.
func (in *Interp) negate(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := tensor.Zeros(n.Shape(), n.DType())
	if n.DType().IsFloat() {
		parallel.For(out.NumElements(), in.par, func(i int) {
			out.SetFloatAt(i, -a.FloatAt(i))
		})
	} else {
		parallel.For(out.NumElements(), in.par, func(i int) {
			out.SetIntAt(i, -a.IntAt(i))
		})
	}
	return out, nil
}

// unaryMath evaluates an element-wise float math node.
func (in *Interp) unaryMath(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	var f func(float64) float64
	switch n.Op() {
	case graph.OpExp:
		f = math.Exp
	case graph.OpLog:
		f = math.Log
	case graph.OpSqrt:
		f = math.Sqrt
	case graph.OpSin:
		f = math.Sin
	case graph.OpCos:
		f = math.Cos
	case graph.OpTanh:
		f = math.Tanh
	default:
		return nil, fmt.Errorf("not a unary math operation: %s", n.Op())
	}

	out := tensor.Zeros(n.Shape(), n.DType())
	parallel.For(out.NumElements(), in.par, func(i int) {
		out.SetFloatAt(i, f(a.FloatAt(i)))
	})
	return out, nil
}

// cast converts element types. Integer-to-integer casts stay exact.
func (in *Interp) cast(n *graph.Node, a *tensor.RawTensor) (*tensor.RawTensor, error) {
	out := tensor.Zeros(n.Shape(), n.DType())
	if !n.DType().IsFloat() && !a.DType().IsFloat() {
		parallel.For(out.NumElements(), in.par, func(i int) {
			out.SetIntAt(i, a.IntAt(i))
		})
		return out, nil
	}
	parallel.For(out.NumElements(), in.par, func(i int) {
		out.SetFloatAt(i, a.FloatAt(i))
	})
	return out, nil
}
