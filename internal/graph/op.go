// Package graph implements the symbolic expression graph that Axon traces
// tensor programs into. Builder methods construct immutable nodes instead of
// computing values; numeric execution belongs to a backend interpreter.
package graph

// Op is the closed set of primitive operation tags. Adding an operation
// means adding a tag here plus its shape rule in the builder and its
// differentiation rule in the autodiff registry.
type Op int

// Operation tags.
const (
	OpConst Op = iota // literal leaf, embedded tensor
	OpParam           // function-argument leaf, tagged with its position

	// Element-wise binary, with broadcasting and type promotion.
	OpAdd
	OpSub
	OpMul
	OpDiv

	// Element-wise unary.
	OpNeg
	OpExp
	OpLog
	OpSqrt
	OpSin
	OpCos
	OpTanh

	// Linear algebra and shape manipulation.
	OpMatMul
	OpTranspose
	OpReshape
	OpBroadcast

	// Reductions.
	OpSum    // all elements, scalar result
	OpSumDim // along one dimension
	OpMean   // all elements, scalar result

	// Type conversion.
	OpCast
)

var opNames = [...]string{
	OpConst:     "Const",
	OpParam:     "Param",
	OpAdd:       "Add",
	OpSub:       "Sub",
	OpMul:       "Mul",
	OpDiv:       "Div",
	OpNeg:       "Neg",
	OpExp:       "Exp",
	OpLog:       "Log",
	OpSqrt:      "Sqrt",
	OpSin:       "Sin",
	OpCos:       "Cos",
	OpTanh:      "Tanh",
	OpMatMul:    "MatMul",
	OpTranspose: "Transpose",
	OpReshape:   "Reshape",
	OpBroadcast: "Broadcast",
	OpSum:       "Sum",
	OpSumDim:    "SumDim",
	OpMean:      "Mean",
	OpCast:      "Cast",
}

// String returns the operation name.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

// IsLeaf reports whether the operation has no operands.
func (op Op) IsLeaf() bool {
	return op == OpConst || op == OpParam
}
