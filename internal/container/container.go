// Package container implements the flatten/unflatten protocol that lets
// nested composite values — ordered lists, key-value groupings, or
// user-defined aggregates — act as differentiation variables.
//
// A composite decomposes into a deterministic ordered sequence of leaves
// plus an opaque Spec. The Spec rebuilds an equal composite around
// replacement leaves, preserving keys, positions and any static metadata.
// Replacement leaves may be of a different kind than the originals: the
// autodiff engine flattens variables whose leaves are graph nodes and
// unflattens gradient nodes back into the same scaffolding.
package container

import "fmt"

// Value is a node in a composite: either a leaf payload (typically a graph
// node or a raw tensor) or a Flattenable sub-composite.
type Value = any

// Flattenable is the capability a composite kind implements to serve as a
// variable container. It is a static interface implemented per concrete
// type; no reflection is involved.
type Flattenable interface {
	// Flatten returns the ordered leaves and a Spec that rebuilds an
	// equal composite around replacement leaves.
	Flatten() ([]Value, Spec)
}

// Spec is the opaque reconstruction token produced by Flatten.
type Spec interface {
	// Unflatten rebuilds a composite with identical scaffolding but with
	// leaves replaced in order. Fails if the leaf count does not match.
	Unflatten(leaves []Value) (Value, error)

	// NumLeaves returns the number of leaves the composite holds.
	NumLeaves() int
}

// Static wraps a value that is part of a composite's scaffolding rather
// than its differentiable payload. Statics are carried through the Spec and
// reproduced verbatim on unflatten; they never appear among the leaves.
type Static struct {
	V any
}

// Flatten decomposes v. A plain value that is not Flattenable is a single
// leaf described by a nil Spec.
func Flatten(v Value) ([]Value, Spec) {
	if f, ok := v.(Flattenable); ok {
		return f.Flatten()
	}
	return []Value{v}, nil
}

// Unflatten rebuilds a composite from a Spec and replacement leaves.
// A nil Spec round-trips a single leaf.
func Unflatten(spec Spec, leaves []Value) (Value, error) {
	if spec == nil {
		if len(leaves) != 1 {
			return nil, fmt.Errorf("unflatten: expected 1 leaf, got %d", len(leaves))
		}
		return leaves[0], nil
	}
	if got, want := len(leaves), spec.NumLeaves(); got != want {
		return nil, fmt.Errorf("unflatten: expected %d leaves, got %d", want, got)
	}
	return spec.Unflatten(leaves)
}

// NumLeaves returns the leaf count of v without materializing the leaves.
func NumLeaves(v Value) int {
	leaves, _ := Flatten(v)
	return len(leaves)
}

// child describes one element of a composite: a leaf slot, a static, or a
// nested Spec.
type child struct {
	spec   Spec // non-nil for a nested composite
	static *Static
}

// flattenChildren is the shared traversal for built-in containers.
func flattenChildren(elems []Value) ([]Value, []child, int) {
	var leaves []Value
	children := make([]child, len(elems))
	for i, e := range elems {
		switch v := e.(type) {
		case Static:
			children[i] = child{static: &v}
		case Flattenable:
			sub, spec := v.Flatten()
			leaves = append(leaves, sub...)
			children[i] = child{spec: spec}
		default:
			leaves = append(leaves, e)
		}
	}
	return leaves, children, len(leaves)
}

// unflattenChildren rebuilds elements from children, consuming leaves in
// order. Returns the elements and the number of leaves consumed.
func unflattenChildren(children []child, leaves []Value) ([]Value, error) {
	elems := make([]Value, len(children))
	pos := 0
	for i, c := range children {
		switch {
		case c.static != nil:
			elems[i] = *c.static
		case c.spec != nil:
			n := c.spec.NumLeaves()
			if pos+n > len(leaves) {
				return nil, fmt.Errorf("unflatten: ran out of leaves at element %d", i)
			}
			sub, err := c.spec.Unflatten(leaves[pos : pos+n])
			if err != nil {
				return nil, err
			}
			elems[i] = sub
			pos += n
		default:
			if pos >= len(leaves) {
				return nil, fmt.Errorf("unflatten: ran out of leaves at element %d", i)
			}
			elems[i] = leaves[pos]
			pos++
		}
	}
	if pos != len(leaves) {
		return nil, fmt.Errorf("unflatten: %d leaves left over", len(leaves)-pos)
	}
	return elems, nil
}
