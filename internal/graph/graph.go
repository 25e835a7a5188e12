package graph

import (
	"fmt"
	"math"
	"strings"

	"github.com/axon-ml/axon/internal/tensor"
)

// Graph is an arena of expression nodes. Nodes are created only through
// builder methods, which run the operation's shape/type-inference rule and
// perform no numeric work. Operands must already live in the same arena, so
// the graph is acyclic by construction.
//
// A graph is private to one trace: it is not safe for concurrent use, but
// independent graphs may be built and differentiated on separate goroutines
// without coordination.
type Graph struct {
	nodes []*Node
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{nodes: make([]*Node, 0, 64)}
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// Node returns the node with the given arena identifier.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in creation order. The slice must not be modified.
func (g *Graph) Nodes() []*Node {
	return g.nodes
}

// String renders the node listing, one node per line in trace order.
func (g *Graph) String() string {
	var sb strings.Builder
	for _, n := range g.nodes {
		sb.WriteString(n.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// newNode assigns the next arena ID and records the node.
func (g *Graph) newNode(n *Node) *Node {
	n.id = NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return n
}

// checkOwned panics if x was built by a different graph. Mixing arenas
// would break ID-based traversal memoization.
func (g *Graph) checkOwned(op Op, xs ...*Node) {
	for _, x := range xs {
		if int(x.id) >= len(g.nodes) || g.nodes[x.id] != x {
			panic(fmt.Sprintf("%s: operand %%%d belongs to a different graph", op, x.id))
		}
	}
}

// Constant creates a literal leaf node embedding v.
func (g *Graph) Constant(v *tensor.RawTensor) *Node {
	return g.newNode(&Node{
		op:    OpConst,
		shape: v.Shape().Clone(),
		dtype: v.DType(),
		value: v,
	})
}

// ConstScalar creates a 0-D literal leaf node.
func (g *Graph) ConstScalar(dtype tensor.DataType, value float64) *Node {
	return g.Constant(tensor.Scalar(dtype, value))
}

// Param creates a function-argument leaf node tagged with its logical
// position. The embedded tensor supplies the argument's shape, dtype and
// the concrete value used when the graph is materialized.
func (g *Graph) Param(index int, v *tensor.RawTensor) *Node {
	return g.newNode(&Node{
		op:    OpParam,
		shape: v.Shape().Clone(),
		dtype: v.DType(),
		value: v,
		index: index,
	})
}

// elementwise builds a broadcasting binary node with promoted dtype.
func (g *Graph) elementwise(op Op, x, y *Node) *Node {
	g.checkOwned(op, x, y)
	shape, err := tensor.BroadcastShapes(x.shape, y.shape)
	if err != nil {
		panic(fmt.Sprintf("%s: %v", op, err))
	}
	return g.newNode(&Node{
		op:     op,
		inputs: []*Node{x, y},
		shape:  shape,
		dtype:  tensor.Promote(x.dtype, y.dtype),
	})
}

// Add builds element-wise addition with broadcasting.
func (g *Graph) Add(x, y *Node) *Node { return g.elementwise(OpAdd, x, y) }

// Sub builds element-wise subtraction with broadcasting.
func (g *Graph) Sub(x, y *Node) *Node { return g.elementwise(OpSub, x, y) }

// Mul builds element-wise multiplication with broadcasting.
func (g *Graph) Mul(x, y *Node) *Node { return g.elementwise(OpMul, x, y) }

// Div builds element-wise division with broadcasting.
func (g *Graph) Div(x, y *Node) *Node { return g.elementwise(OpDiv, x, y) }

// Neg builds element-wise negation.
func (g *Graph) Neg(x *Node) *Node {
	g.checkOwned(OpNeg, x)
	return g.newNode(&Node{
		op:     OpNeg,
		inputs: []*Node{x},
		shape:  x.shape.Clone(),
		dtype:  x.dtype,
	})
}

// unaryFloat builds an element-wise math node requiring a float operand.
func (g *Graph) unaryFloat(op Op, x *Node) *Node {
	g.checkOwned(op, x)
	if !x.dtype.IsFloat() {
		panic(fmt.Sprintf("%s: requires a floating-point operand, got %s", op, x.dtype))
	}
	return g.newNode(&Node{
		op:     op,
		inputs: []*Node{x},
		shape:  x.shape.Clone(),
		dtype:  x.dtype,
	})
}

// Exp builds element-wise e^x.
func (g *Graph) Exp(x *Node) *Node { return g.unaryFloat(OpExp, x) }

// Log builds element-wise natural logarithm.
func (g *Graph) Log(x *Node) *Node { return g.unaryFloat(OpLog, x) }

// Sqrt builds element-wise square root.
func (g *Graph) Sqrt(x *Node) *Node { return g.unaryFloat(OpSqrt, x) }

// Sin builds element-wise sine.
func (g *Graph) Sin(x *Node) *Node { return g.unaryFloat(OpSin, x) }

// Cos builds element-wise cosine.
func (g *Graph) Cos(x *Node) *Node { return g.unaryFloat(OpCos, x) }

// Tanh builds element-wise hyperbolic tangent.
func (g *Graph) Tanh(x *Node) *Node { return g.unaryFloat(OpTanh, x) }

// MatMul builds a 2-D matrix product: (M, K) @ (K, N) → (M, N).
// Operands must be floating point.
func (g *Graph) MatMul(x, y *Node) *Node {
	g.checkOwned(OpMatMul, x, y)
	if len(x.shape) != 2 || len(y.shape) != 2 {
		panic(fmt.Sprintf("matmul: requires 2-D operands, got %v and %v", x.shape, y.shape))
	}
	if x.shape[1] != y.shape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions do not match: %v @ %v", x.shape, y.shape))
	}
	if !x.dtype.IsFloat() || !y.dtype.IsFloat() {
		panic(fmt.Sprintf("matmul: requires floating-point operands, got %s and %s", x.dtype, y.dtype))
	}
	return g.newNode(&Node{
		op:     OpMatMul,
		inputs: []*Node{x, y},
		shape:  tensor.Shape{x.shape[0], y.shape[1]},
		dtype:  tensor.Promote(x.dtype, y.dtype),
	})
}

// Transpose builds an axis permutation. With no axes given, all dimensions
// are reversed (standard 2-D transpose).
func (g *Graph) Transpose(x *Node, perm ...int) *Node {
	g.checkOwned(OpTranspose, x)
	ndim := len(x.shape)
	if len(perm) == 0 {
		perm = make([]int, ndim)
		for i := range perm {
			perm[i] = ndim - 1 - i
		}
	}
	if len(perm) != ndim {
		panic(fmt.Sprintf("transpose: permutation %v does not match rank of %v", perm, x.shape))
	}
	shape := make(tensor.Shape, ndim)
	seen := make([]bool, ndim)
	for i, p := range perm {
		if p < 0 || p >= ndim || seen[p] {
			panic(fmt.Sprintf("transpose: invalid permutation %v for shape %v", perm, x.shape))
		}
		seen[p] = true
		shape[i] = x.shape[p]
	}
	return g.newNode(&Node{
		op:     OpTranspose,
		inputs: []*Node{x},
		shape:  shape,
		dtype:  x.dtype,
		perm:   append([]int(nil), perm...),
	})
}

// Reshape builds a view of x with a new shape holding the same elements.
func (g *Graph) Reshape(x *Node, shape tensor.Shape) *Node {
	g.checkOwned(OpReshape, x)
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: %v", err))
	}
	if shape.NumElements() != x.shape.NumElements() {
		panic(fmt.Sprintf("reshape: cannot reshape %v (%d elements) to %v (%d elements)",
			x.shape, x.shape.NumElements(), shape, shape.NumElements()))
	}
	return g.newNode(&Node{
		op:     OpReshape,
		inputs: []*Node{x},
		shape:  shape.Clone(),
		dtype:  x.dtype,
	})
}

// BroadcastTo builds an expansion of x to a larger shape under NumPy rules.
func (g *Graph) BroadcastTo(x *Node, shape tensor.Shape) *Node {
	g.checkOwned(OpBroadcast, x)
	if !x.shape.BroadcastableTo(shape) {
		panic(fmt.Sprintf("broadcast: cannot broadcast %v to %v", x.shape, shape))
	}
	return g.newNode(&Node{
		op:     OpBroadcast,
		inputs: []*Node{x},
		shape:  shape.Clone(),
		dtype:  x.dtype,
	})
}

// Sum builds a full reduction to a scalar.
func (g *Graph) Sum(x *Node) *Node {
	g.checkOwned(OpSum, x)
	return g.newNode(&Node{
		op:     OpSum,
		inputs: []*Node{x},
		shape:  tensor.Shape{},
		dtype:  x.dtype,
	})
}

// SumDim builds a reduction along one dimension. With keepDim the reduced
// dimension stays as size 1, otherwise it is dropped.
func (g *Graph) SumDim(x *Node, dim int, keepDim bool) *Node {
	g.checkOwned(OpSumDim, x)
	if dim < 0 || dim >= len(x.shape) {
		panic(fmt.Sprintf("sumdim: invalid dimension %d for shape %v", dim, x.shape))
	}
	var shape tensor.Shape
	if keepDim {
		shape = x.shape.Clone()
		shape[dim] = 1
	} else {
		shape = append(shape, x.shape[:dim]...)
		shape = append(shape, x.shape[dim+1:]...)
	}
	return g.newNode(&Node{
		op:     OpSumDim,
		inputs: []*Node{x},
		shape:  shape,
		dtype:  x.dtype,
		dim:    dim,
		keep:   keepDim,
	})
}

// Mean builds a full mean reduction to a scalar. The result is always
// floating point.
func (g *Graph) Mean(x *Node) *Node {
	g.checkOwned(OpMean, x)
	return g.newNode(&Node{
		op:     OpMean,
		inputs: []*Node{x},
		shape:  tensor.Shape{},
		dtype:  x.dtype.ToFloat(),
	})
}

// Cast builds a type conversion to dtype.
func (g *Graph) Cast(x *Node, dtype tensor.DataType) *Node {
	g.checkOwned(OpCast, x)
	if x.dtype == dtype {
		return x
	}
	return g.newNode(&Node{
		op:     OpCast,
		inputs: []*Node{x},
		shape:  x.shape.Clone(),
		dtype:  dtype,
	})
}

// scalarConst picks a dtype for a scalar literal combined with x: x's own
// dtype where the value is representable, otherwise its float counterpart.
func (g *Graph) scalarConst(x *Node, c float64) *Node {
	dtype := x.dtype
	if !dtype.IsFloat() && c != math.Trunc(c) {
		dtype = dtype.ToFloat()
	}
	return g.ConstScalar(dtype, c)
}

// AddScalar builds x + c using a broadcast scalar literal.
func (g *Graph) AddScalar(x *Node, c float64) *Node {
	return g.Add(x, g.scalarConst(x, c))
}

// SubScalar builds x - c using a broadcast scalar literal.
func (g *Graph) SubScalar(x *Node, c float64) *Node {
	return g.Sub(x, g.scalarConst(x, c))
}

// MulScalar builds x * c using a broadcast scalar literal.
func (g *Graph) MulScalar(x *Node, c float64) *Node {
	return g.Mul(x, g.scalarConst(x, c))
}

// DivScalar builds x / c using a broadcast scalar literal.
func (g *Graph) DivScalar(x *Node, c float64) *Node {
	return g.Div(x, g.scalarConst(x, c))
}
