// Package autodiff implements reverse-mode automatic differentiation as a
// symbolic transform over expression graphs: differentiating a scalar node
// yields new gradient nodes in the same graph, one per requested leaf.
package autodiff

import "github.com/axon-ml/axon/internal/graph"

// vjpFunc is an operation's local differentiation rule: it maps the node
// and its accumulated upstream gradient to one gradient-contribution node
// per operand (vector-Jacobian product). A nil contribution means no
// gradient flows to that operand.
type vjpFunc func(g *graph.Graph, n, u *graph.Node) []*graph.Node

// vjpTable maps every differentiable operation tag to its rule. The tag set
// is closed: extending it means registering the paired shape rule in the
// builder and the gradient rule here.
var vjpTable = map[graph.Op]vjpFunc{
	graph.OpAdd:       addVJP,
	graph.OpSub:       subVJP,
	graph.OpMul:       mulVJP,
	graph.OpDiv:       divVJP,
	graph.OpNeg:       negVJP,
	graph.OpExp:       expVJP,
	graph.OpLog:       logVJP,
	graph.OpSqrt:      sqrtVJP,
	graph.OpSin:       sinVJP,
	graph.OpCos:       cosVJP,
	graph.OpTanh:      tanhVJP,
	graph.OpMatMul:    matmulVJP,
	graph.OpTranspose: transposeVJP,
	graph.OpReshape:   reshapeVJP,
	graph.OpBroadcast: broadcastVJP,
	graph.OpSum:       sumVJP,
	graph.OpSumDim:    sumDimVJP,
	graph.OpMean:      meanVJP,
	graph.OpCast:      castVJP,
}

// addVJP: d(a+b)/da = d(a+b)/db = 1. Broadcast dimensions are summed away
// so each contribution matches its operand's shape.
func addVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	a, b := n.Inputs()[0], n.Inputs()[1]
	return []*graph.Node{
		reduceBroadcast(g, u, a),
		reduceBroadcast(g, u, b),
	}
}

// subVJP: d(a-b)/da = 1, d(a-b)/db = -1.
func subVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	a, b := n.Inputs()[0], n.Inputs()[1]
	return []*graph.Node{
		reduceBroadcast(g, u, a),
		reduceBroadcast(g, g.Neg(u), b),
	}
}

// mulVJP: d(a*b)/da = b, d(a*b)/db = a.
func mulVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	a, b := n.Inputs()[0], n.Inputs()[1]
	return []*graph.Node{
		reduceBroadcast(g, g.Mul(u, b), a),
		reduceBroadcast(g, g.Mul(u, a), b),
	}
}

// divVJP: d(a/b)/da = 1/b, d(a/b)/db = -a/b².
func divVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	a, b := n.Inputs()[0], n.Inputs()[1]
	gradA := g.Div(u, b)
	gradB := g.Neg(g.Div(g.Mul(u, a), g.Mul(b, b)))
	return []*graph.Node{
		reduceBroadcast(g, gradA, a),
		reduceBroadcast(g, gradB, b),
	}
}

func negVJP(g *graph.Graph, _, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Neg(u)}
}

// expVJP: d(e^a)/da = e^a, which n itself already computes.
func expVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Mul(u, n)}
}

// logVJP: d(ln a)/da = 1/a.
func logVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Div(u, n.Inputs()[0])}
}

// sqrtVJP: d(√a)/da = 1/(2√a), reusing n as √a.
func sqrtVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Div(u, g.MulScalar(n, 2))}
}

func sinVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Mul(u, g.Cos(n.Inputs()[0]))}
}

func cosVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Neg(g.Mul(u, g.Sin(n.Inputs()[0])))}
}

// tanhVJP: d(tanh a)/da = 1 - tanh²a, reusing n as tanh a.
func tanhVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	one := g.ConstScalar(n.DType(), 1)
	return []*graph.Node{g.Mul(u, g.Sub(one, g.Mul(n, n)))}
}

// matmulVJP: d(A@B)/dA = U @ Bᵀ, d(A@B)/dB = Aᵀ @ U.
func matmulVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	a, b := n.Inputs()[0], n.Inputs()[1]
	return []*graph.Node{
		g.MatMul(u, g.Transpose(b)),
		g.MatMul(g.Transpose(a), u),
	}
}

// transposeVJP undoes the forward permutation on the upstream gradient.
func transposeVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	perm := n.Perm()
	inverse := make([]int, len(perm))
	for i, p := range perm {
		inverse[p] = i
	}
	return []*graph.Node{g.Transpose(u, inverse...)}
}

func reshapeVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Reshape(u, n.Inputs()[0].Shape())}
}

func broadcastVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{reduceBroadcast(g, u, n.Inputs()[0])}
}

// sumVJP: every element contributed with weight 1, so the scalar upstream
// gradient is broadcast back over the operand's shape.
func sumVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.BroadcastTo(u, n.Inputs()[0].Shape())}
}

func sumDimVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	in := n.Inputs()[0]
	if !n.KeepDim() {
		// Reinstate the reduced dimension as size 1 before broadcasting.
		kept := in.Shape().Clone()
		kept[n.Dim()] = 1
		u = g.Reshape(u, kept)
	}
	return []*graph.Node{g.BroadcastTo(u, in.Shape())}
}

// meanVJP: like sumVJP, scaled by 1/N.
func meanVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	in := n.Inputs()[0]
	spread := g.BroadcastTo(u, in.Shape())
	return []*graph.Node{g.MulScalar(spread, 1/float64(in.Shape().NumElements()))}
}

// castVJP passes the gradient through in the operand's float counterpart;
// gradients never revert to integer types.
func castVJP(g *graph.Graph, n, u *graph.Node) []*graph.Node {
	return []*graph.Node{g.Cast(u, n.Inputs()[0].DType().ToFloat())}
}

// reduceBroadcast sums a gradient over the dimensions that broadcasting
// expanded in the forward pass, so the contribution matches the operand's
// shape exactly.
func reduceBroadcast(g *graph.Graph, u *graph.Node, operand *graph.Node) *graph.Node {
	target := operand.Shape()
	if u.Shape().Equal(target) {
		return u
	}
	if target.IsScalar() {
		return g.Sum(u)
	}

	// Leading dimensions absent from the operand are summed away first.
	for len(u.Shape()) > len(target) {
		u = g.SumDim(u, 0, false)
	}
	// Then dimensions the operand holds as size 1.
	for i := 0; i < len(target); i++ {
		if target[i] == 1 && u.Shape()[i] > 1 {
			u = g.SumDim(u, i, true)
		}
	}
	if !u.Shape().Equal(target) {
		u = g.Reshape(u, target)
	}
	return u
}
