package tree

// The three classical traversals, iterative with explicit stacks so a
// degenerate (pending, unbalanced) tree cannot blow the call stack.

// InOrder yields (key, color) pairs in ascending key order.
func (tree *rbTree[K]) InOrder() []KeyColor[K] {
	size := tree.Len()
	if size <= 0 {
		return nil
	}
	out := make([]KeyColor[K], 0, size)

	stack := make([]*rbNode[K], 0, size>>1+1)
	for aux := tree.root; aux != tree.sentinel; aux = aux.left {
		stack = append(stack, aux)
	}
	for n := len(stack); n > 0; n = len(stack) {
		aux := stack[n-1]
		stack = stack[:n-1]
		out = append(out, KeyColor[K]{Key: aux.key, Color: aux.color})
		for aux = aux.right; aux != tree.sentinel; aux = aux.left {
			stack = append(stack, aux)
		}
	}
	return out
}

// PreOrder yields parents before their subtrees, left before right.
func (tree *rbTree[K]) PreOrder() []KeyColor[K] {
	size := tree.Len()
	if size <= 0 {
		return nil
	}
	out := make([]KeyColor[K], 0, size)

	stack := []*rbNode[K]{tree.root}
	for n := len(stack); n > 0; n = len(stack) {
		aux := stack[n-1]
		stack = stack[:n-1]
		out = append(out, KeyColor[K]{Key: aux.key, Color: aux.color})
		if aux.right != tree.sentinel {
			stack = append(stack, aux.right)
		}
		if aux.left != tree.sentinel {
			stack = append(stack, aux.left)
		}
	}
	return out
}

// PostOrder yields subtrees before their parents, left before right.
func (tree *rbTree[K]) PostOrder() []KeyColor[K] {
	size := tree.Len()
	if size <= 0 {
		return nil
	}
	out := make([]KeyColor[K], size)

	// Reversed right-first pre-order.
	idx := size
	stack := []*rbNode[K]{tree.root}
	for n := len(stack); n > 0; n = len(stack) {
		aux := stack[n-1]
		stack = stack[:n-1]
		idx--
		out[idx] = KeyColor[K]{Key: aux.key, Color: aux.color}
		if aux.left != tree.sentinel {
			stack = append(stack, aux.left)
		}
		if aux.right != tree.sentinel {
			stack = append(stack, aux.right)
		}
	}
	return out
}

// foreachNode visits every real node in pre-order. Traversal stops
// when action returns false.
func (tree *rbTree[K]) foreachNode(action func(x *rbNode[K]) bool) {
	if tree.root == tree.sentinel {
		return
	}
	stack := []*rbNode[K]{tree.root}
	for n := len(stack); n > 0; n = len(stack) {
		aux := stack[n-1]
		stack = stack[:n-1]
		if !action(aux) {
			return
		}
		if aux.right != tree.sentinel {
			stack = append(stack, aux.right)
		}
		if aux.left != tree.sentinel {
			stack = append(stack, aux.left)
		}
	}
}
