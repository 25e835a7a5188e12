package graph

import "errors"

// Sentinel errors surfaced by the differentiation engine. Call sites wrap
// them with node and shape details; match with errors.Is.
var (
	// ErrShapeMismatch reports a differentiation root (or objective
	// transform output) whose shape does not reduce to a scalar.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrUnknownOp reports a traced operation with no registered
	// differentiation rule. This is an engine/extension gap, not a
	// user-input error.
	ErrUnknownOp = errors.New("unknown operation")
)
