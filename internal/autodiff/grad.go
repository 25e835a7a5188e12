package autodiff

import (
	"fmt"

	"github.com/axon-ml/axon/internal/container"
	"github.com/axon-ml/axon/internal/graph"
)

// Func is a traced tensor program. It receives the variables exactly as the
// caller shaped them — a plain *graph.Node or any container.Flattenable —
// and returns the node(s) it computes by calling builder methods on the
// graph it closes over.
type Func func(vars container.Value) container.Value

// Objective selects the scalar node to differentiate from a traced
// function's (possibly composite) result. It only shapes the seed of the
// backward pass; the primal result returned to the caller stays untouched.
type Objective func(result container.Value) (*graph.Node, error)

// Option configures ValueAndGrad.
type Option func(*options)

type options struct {
	objective Objective
}

// WithObjective sets the scalar reduction differentiated by ValueAndGrad.
// Without it the traced function's result must itself be one scalar node.
// This lets a function emit auxiliary outputs alongside its objective:
//
//	value, grads, err := autodiff.ValueAndGrad(g, vars, fn,
//	    autodiff.WithObjective(func(res container.Value) (*graph.Node, error) {
//	        return res.(container.Dict)["loss"].(*graph.Node), nil
//	    }))
func WithObjective(o Objective) Option {
	return func(opts *options) { opts.objective = o }
}

// Grad traces fn once at the given variables and returns the gradient of
// its scalar output with respect to every variable leaf, reassembled into
// the caller's composite shape. Variable leaves must be graph nodes
// (typically Param or Constant leaves); their order inside the composite is
// the flatten order and determines accumulation order.
func Grad(g *graph.Graph, vars container.Value, fn Func, opts ...Option) (container.Value, error) {
	_, grads, err := ValueAndGrad(g, vars, fn, opts...)
	return grads, err
}

// ValueAndGrad traces fn once and returns both its untransformed primal
// result and the gradients of the chosen scalar objective. The default
// objective is the identity, valid only when the result is one scalar node;
// otherwise a ShapeMismatch error is returned.
func ValueAndGrad(g *graph.Graph, vars container.Value, fn Func, opts ...Option) (container.Value, container.Value, error) {
	cfg := options{objective: identityObjective}
	for _, opt := range opts {
		opt(&cfg)
	}

	leaves, spec := container.Flatten(vars)
	leafNodes := make([]*graph.Node, len(leaves))
	for i, l := range leaves {
		n, ok := l.(*graph.Node)
		if !ok {
			return nil, nil, fmt.Errorf("variable leaf %d is %T, want *graph.Node", i, l)
		}
		leafNodes[i] = n
	}

	result := fn(vars)

	root, err := cfg.objective(result)
	if err != nil {
		return nil, nil, err
	}

	gradNodes, err := Backward(g, root, leafNodes)
	if err != nil {
		return nil, nil, err
	}

	gradLeaves := make([]container.Value, len(gradNodes))
	for i, gn := range gradNodes {
		gradLeaves[i] = gn
	}
	grads, err := container.Unflatten(spec, gradLeaves)
	if err != nil {
		return nil, nil, err
	}
	return result, grads, nil
}

// identityObjective requires the traced result to be a single node; the
// scalar-shape check itself happens in Backward.
func identityObjective(result container.Value) (*graph.Node, error) {
	n, ok := result.(*graph.Node)
	if !ok {
		return nil, fmt.Errorf("traced function returned %T; use WithObjective to select a scalar objective", result)
	}
	return n, nil
}
