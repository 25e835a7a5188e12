// Package cpu implements the reference interpreter that materializes
// expression graphs on the host CPU. The symbolic core never depends on it;
// it is the execution collaborator consumed by tests, the CLI and callers
// that want concrete numbers out of a finished graph.
package cpu

import (
	"fmt"

	"github.com/axon-ml/axon/internal/graph"
	"github.com/axon-ml/axon/internal/parallel"
	"github.com/axon-ml/axon/internal/tensor"
)

// Interp evaluates graph nodes in forward dependency order, one fresh
// tensor per node. Shared subexpressions are computed once per Materialize
// call; node tensors are never mutated.
type Interp struct {
	par parallel.Config
}

// New creates an interpreter with default parallelism.
func New() *Interp {
	return &Interp{par: parallel.DefaultConfig()}
}

// NewWithConfig creates an interpreter with explicit parallelism settings.
func NewWithConfig(cfg parallel.Config) *Interp {
	return &Interp{par: cfg}
}

// Eval materializes a single output node.
func (in *Interp) Eval(g *graph.Graph, out *graph.Node) (*tensor.RawTensor, error) {
	results, err := in.Materialize(g, out)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// Materialize evaluates the subgraph reachable from the given outputs and
// returns one tensor per output, in order.
func (in *Interp) Materialize(g *graph.Graph, outputs ...*graph.Node) ([]*tensor.RawTensor, error) {
	values := make([]*tensor.RawTensor, g.NumNodes())

	for _, n := range g.Postorder(outputs...) {
		v, err := in.eval(n, values)
		if err != nil {
			return nil, fmt.Errorf("materialize %%%d (%s): %w", n.ID(), n.Op(), err)
		}
		values[n.ID()] = v
	}

	results := make([]*tensor.RawTensor, len(outputs))
	for i, out := range outputs {
		results[i] = values[out.ID()]
	}
	return results, nil
}

// eval dispatches one node to its kernel. Operand values are already
// present, since Materialize walks in postorder.
func (in *Interp) eval(n *graph.Node, values []*tensor.RawTensor) (*tensor.RawTensor, error) {
	arg := func(i int) *tensor.RawTensor {
		return values[n.Inputs()[i].ID()]
	}

	switch n.Op() {
	case graph.OpConst, graph.OpParam:
		return n.Value(), nil

	case graph.OpAdd, graph.OpSub, graph.OpMul, graph.OpDiv:
		return in.binary(n, arg(0), arg(1))

	case graph.OpNeg:
		return in.negate(n, arg(0))

	case graph.OpExp, graph.OpLog, graph.OpSqrt, graph.OpSin, graph.OpCos, graph.OpTanh:
		return in.unaryMath(n, arg(0))

	case graph.OpMatMul:
		return in.matmul(n, arg(0), arg(1))

	case graph.OpTranspose:
		return in.transpose(n, arg(0))

	case graph.OpReshape:
		return in.reshape(n, arg(0))

	case graph.OpBroadcast:
		return in.broadcastTo(n, arg(0))

	case graph.OpSum:
		return in.sumAll(n, arg(0))

	case graph.OpSumDim:
		return in.sumDim(n, arg(0))

	case graph.OpMean:
		return in.mean(n, arg(0))

	case graph.OpCast:
		return in.cast(n, arg(0))

	default:
		return nil, fmt.Errorf("no kernel for operation %s", n.Op())
	}
}
