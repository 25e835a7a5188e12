package graph

// Postorder returns the nodes reachable from roots in iterative depth-first
// postorder: every operand precedes each of its consumers, and each node
// appears exactly once no matter how many consumers reference it. Since the
// arena is acyclic by construction, the reversed slice is a valid
// topological order for backward traversals.
func (g *Graph) Postorder(roots ...*Node) []*Node {
	type frame struct {
		n    *Node
		next int
	}

	visited := make([]bool, len(g.nodes))
	order := make([]*Node, 0, len(g.nodes))
	var stack []frame

	for _, root := range roots {
		if visited[root.id] {
			continue
		}
		visited[root.id] = true
		stack = append(stack, frame{n: root})

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			ins := f.n.inputs
			if f.next < len(ins) {
				in := ins[f.next]
				f.next++
				if !visited[in.id] {
					visited[in.id] = true
					stack = append(stack, frame{n: in})
				}
				continue
			}
			order = append(order, f.n)
			stack = stack[:len(stack)-1]
		}
	}
	return order
}
