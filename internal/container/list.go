package container

// List is an ordered composite. Elements may be leaves, Static metadata or
// nested Flattenable composites; leaf order follows element order.
type List []Value

// Flatten implements Flattenable.
func (l List) Flatten() ([]Value, Spec) {
	leaves, children, n := flattenChildren(l)
	return leaves, &listSpec{children: children, leaves: n}
}

type listSpec struct {
	children []child
	leaves   int
}

func (s *listSpec) NumLeaves() int { return s.leaves }

func (s *listSpec) Unflatten(leaves []Value) (Value, error) {
	elems, err := unflattenChildren(s.children, leaves)
	if err != nil {
		return nil, err
	}
	return List(elems), nil
}
