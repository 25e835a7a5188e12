// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph exposes the symbolic expression graph.
//
// A traced program builds nodes instead of computing values:
//
//	g := graph.New()
//	x := g.Param(0, tensor.MustFromSlice([]float32{1, 2}, tensor.Shape{2}))
//	y := g.Sum(g.Mul(x, x)) // y = Σ x², still symbolic
//
// Materialize the graph with backend/cpu, or differentiate it with the
// autodiff package.
package graph

import "github.com/axon-ml/axon/internal/graph"

// Graph is an arena of expression nodes.
type Graph = graph.Graph

// Node is one traced operation.
type Node = graph.Node

// NodeID addresses a node within its graph's arena.
type NodeID = graph.NodeID

// Op is an operation tag.
type Op = graph.Op

// Sentinel errors; match with errors.Is.
var (
	ErrShapeMismatch = graph.ErrShapeMismatch
	ErrUnknownOp     = graph.ErrUnknownOp
)

// New creates an empty graph.
func New() *Graph {
	return graph.New()
}
