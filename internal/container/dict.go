package container

import "sort"

// Dict is a string-keyed composite. Leaves are emitted in sorted-key order,
// so flatten order is deterministic and stable across structurally equal
// dicts regardless of map iteration order.
type Dict map[string]Value

// Flatten implements Flattenable.
func (d Dict) Flatten() ([]Value, Spec) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	elems := make([]Value, len(keys))
	for i, k := range keys {
		elems[i] = d[k]
	}
	leaves, children, n := flattenChildren(elems)
	return leaves, &dictSpec{keys: keys, children: children, leaves: n}
}

type dictSpec struct {
	keys     []string
	children []child
	leaves   int
}

func (s *dictSpec) NumLeaves() int { return s.leaves }

func (s *dictSpec) Unflatten(leaves []Value) (Value, error) {
	elems, err := unflattenChildren(s.children, leaves)
	if err != nil {
		return nil, err
	}
	d := make(Dict, len(s.keys))
	for i, k := range s.keys {
		d[k] = elems[i]
	}
	return d, nil
}
