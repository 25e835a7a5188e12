// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff exposes reverse-mode automatic differentiation over
// expression graphs.
//
// Example:
//
//	g := graph.New()
//	x := g.Param(0, tensor.MustFromSlice([]float32{3}, tensor.Shape{}))
//	grads, err := autodiff.Grad(g, x, func(vars container.Value) container.Value {
//	    x := vars.(*graph.Node)
//	    return g.Mul(x, x) // x², scalar
//	})
//	// grads.(*graph.Node) is the symbolic node for 2x.
package autodiff

import (
	"github.com/axon-ml/axon/internal/autodiff"
	"github.com/axon-ml/axon/internal/container"
	"github.com/axon-ml/axon/internal/graph"
)

// Func is a traced tensor program.
type Func = autodiff.Func

// Objective selects the scalar node to differentiate from a composite
// result.
type Objective = autodiff.Objective

// Option configures ValueAndGrad.
type Option = autodiff.Option

// WithObjective sets the scalar reduction differentiated by ValueAndGrad.
func WithObjective(o Objective) Option {
	return autodiff.WithObjective(o)
}

// Grad traces fn once and returns the gradient of its scalar output with
// respect to every variable leaf, in the caller's composite shape.
func Grad(g *graph.Graph, vars container.Value, fn Func, opts ...Option) (container.Value, error) {
	return autodiff.Grad(g, vars, fn, opts...)
}

// ValueAndGrad traces fn once and returns both its untransformed primal
// result and the gradients of the chosen scalar objective.
func ValueAndGrad(g *graph.Graph, vars container.Value, fn Func, opts ...Option) (container.Value, container.Value, error) {
	return autodiff.ValueAndGrad(g, vars, fn, opts...)
}

// Backward differentiates the scalar node root with respect to leaves,
// returning one gradient node per leaf.
func Backward(g *graph.Graph, root *graph.Node, leaves []*graph.Node) ([]*graph.Node, error) {
	return autodiff.Backward(g, root, leaves)
}
