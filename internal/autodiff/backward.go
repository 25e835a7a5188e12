package autodiff

import (
	"fmt"

	"github.com/axon-ml/axon/internal/graph"
	"github.com/axon-ml/axon/internal/tensor"
)

// Backward differentiates the scalar node root with respect to the given
// leaf nodes and returns one gradient node per leaf, shaped identically to
// that leaf. Gradient nodes are appended to g, so they can be materialized
// together with the primal outputs or differentiated again.
//
// The traversal processes nodes in reverse depth-first postorder, which is
// a topological order of the DAG: every consumer's rule has added its
// contribution to a node's accumulator before that node's own rule fires.
// Each node is visited exactly once regardless of how many consumers
// reference it.
//
// Gradients are always floating point; integer-typed leaves yield gradients
// of the matching float type. A leaf the root does not reach yields a zero
// tensor of the leaf's shape.
func Backward(g *graph.Graph, root *graph.Node, leaves []*graph.Node) ([]*graph.Node, error) {
	if !root.Shape().IsScalar() {
		return nil, fmt.Errorf("differentiation root %%%d (%s) has shape %v, want scalar: %w",
			root.ID(), root.Op(), root.Shape(), graph.ErrShapeMismatch)
	}

	// Snapshot the reachable subgraph before gradient nodes grow the arena.
	order := g.Postorder(root)

	// acc holds the running sum of upstream contributions per node. The
	// first contribution stands for zero-plus-contribution; later ones are
	// folded in with Add nodes.
	acc := make(map[graph.NodeID]*graph.Node, len(order))

	seedType := root.DType()
	if !seedType.IsFloat() {
		seedType = seedType.ToFloat()
	}
	acc[root.ID()] = g.ConstScalar(seedType, 1)

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		u, ok := acc[n.ID()]
		if !ok || n.Op().IsLeaf() {
			continue
		}
		rule, ok := vjpTable[n.Op()]
		if !ok {
			return nil, fmt.Errorf("no differentiation rule registered for %s (node %%%d, shape %v): %w",
				n.Op(), n.ID(), n.Shape(), graph.ErrUnknownOp)
		}
		for j, contrib := range rule(g, n, u) {
			if contrib == nil {
				continue
			}
			operand := n.Inputs()[j]
			if prev, ok := acc[operand.ID()]; ok {
				acc[operand.ID()] = g.Add(prev, contrib)
			} else {
				acc[operand.ID()] = contrib
			}
		}
	}

	grads := make([]*graph.Node, len(leaves))
	for i, leaf := range leaves {
		if gn, ok := acc[leaf.ID()]; ok {
			if !gn.DType().IsFloat() {
				gn = g.Cast(gn, leaf.DType().ToFloat())
			}
			grads[i] = gn
		} else {
			grads[i] = g.Constant(tensor.Zeros(leaf.Shape(), leaf.DType().ToFloat()))
		}
	}
	return grads, nil
}
