package graph

import (
	"fmt"
	"strings"

	"github.com/axon-ml/axon/internal/tensor"
)

// NodeID addresses a node within its graph's arena. IDs are dense and
// assigned in creation order, so they double as a record of trace order.
type NodeID int32

// Node is one traced operation: an op tag, ordered operand references and
// the inferred result shape and dtype. Leaf nodes additionally embed a
// constant tensor. Nodes are never mutated after creation and may be
// referenced by any number of consumers (the graph is a DAG, not a tree).
type Node struct {
	id     NodeID
	op     Op
	inputs []*Node
	shape  tensor.Shape
	dtype  tensor.DataType

	value *tensor.RawTensor // OpConst, OpParam
	index int               // OpParam: logical argument position
	perm  []int             // OpTranspose: axis permutation
	dim   int               // OpSumDim: reduced dimension
	keep  bool              // OpSumDim: keep reduced dimension as size 1
}

// ID returns the node's arena identifier.
func (n *Node) ID() NodeID { return n.id }

// Op returns the operation tag.
func (n *Node) Op() Op { return n.op }

// Inputs returns the ordered operand nodes. The slice must not be modified.
func (n *Node) Inputs() []*Node { return n.inputs }

// Shape returns the inferred result shape.
func (n *Node) Shape() tensor.Shape { return n.shape }

// DType returns the inferred result data type.
func (n *Node) DType() tensor.DataType { return n.dtype }

// Value returns the embedded tensor of a Const or Param leaf, nil otherwise.
func (n *Node) Value() *tensor.RawTensor { return n.value }

// Index returns the logical argument position of a Param leaf.
func (n *Node) Index() int { return n.index }

// Perm returns the axis permutation of a Transpose node.
func (n *Node) Perm() []int { return n.perm }

// Dim returns the reduced dimension of a SumDim node.
func (n *Node) Dim() int { return n.dim }

// KeepDim reports whether a SumDim node keeps the reduced dimension.
func (n *Node) KeepDim() bool { return n.keep }

// String returns a one-line description, e.g. "%3 = Mul(%1, %2) float32[2 3]".
func (n *Node) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%%%d = %s(", n.id, n.op)
	for i, in := range n.inputs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%%%d", in.id)
	}
	fmt.Fprintf(&sb, ") %s%v", n.dtype, n.shape)
	if n.op == OpParam {
		fmt.Fprintf(&sb, " arg=%d", n.index)
	}
	return sb.String()
}
