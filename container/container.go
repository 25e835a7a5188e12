// Copyright 2026 The Axon Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package container exposes the flatten/unflatten protocol that lets
// nested composite values act as differentiation variables.
//
//	params := container.Dict{
//	    "w":    wNode,
//	    "b":    bNode,
//	    "name": container.Static{V: "linear"},
//	}
//	leaves, spec := container.Flatten(params)   // [bNode, wNode] (sorted keys)
//	rebuilt, _ := container.Unflatten(spec, replacements)
package container

import "github.com/axon-ml/axon/internal/container"

// Value is a leaf payload or a Flattenable composite.
type Value = container.Value

// Flattenable is the capability a composite kind implements to serve as a
// variable container.
type Flattenable = container.Flattenable

// Spec is the opaque reconstruction token produced by Flatten.
type Spec = container.Spec

// Static wraps scaffolding metadata carried through the Spec instead of
// appearing among the leaves.
type Static = container.Static

// List is an ordered composite.
type List = container.List

// Dict is a string-keyed composite with sorted-key leaf order.
type Dict = container.Dict

// Flatten decomposes v into ordered leaves and a reconstruction Spec.
func Flatten(v Value) ([]Value, Spec) {
	return container.Flatten(v)
}

// Unflatten rebuilds a composite from a Spec and replacement leaves.
func Unflatten(spec Spec, leaves []Value) (Value, error) {
	return container.Unflatten(spec, leaves)
}

// NumLeaves returns the leaf count of v.
func NumLeaves(v Value) int {
	return container.NumLeaves(v)
}
