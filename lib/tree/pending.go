package tree

// The pending FIFO is the engine's signature design choice: a raw
// structural insert and the fixup restoring the red-black properties
// are separate operations, so a caller can interleave many inserts
// with selective, observable fixup steps.

func (tree *rbTree[K]) PendingLen() int64 {
	return int64(len(tree.pending))
}

// RebalanceStep dequeues one pending node and runs the mode-selected
// fixup on it. An empty queue is a logged no-op, not a failure.
func (tree *rbTree[K]) RebalanceStep() {
	if len(tree.pending) == 0 {
		tree.stepf("No pending nodes to rebalance.")
		return
	}

	x := tree.pending[0]
	tree.pending = tree.pending[1:]

	fixupCounterAdd(1)
	if tree.colorOnly {
		tree.insertFixupColorOnly(x)
	} else {
		tree.insertFixupFull(x)
	}
}

// RebalanceAll drains the pending FIFO by repeated stepping. With the
// full strategy the tree satisfies all red-black properties when this
// returns; the color-only strategy offers no such guarantee.
func (tree *rbTree[K]) RebalanceAll() {
	for len(tree.pending) > 0 {
		tree.RebalanceStep()
	}
	if tree.colorOnly {
		return
	}

	// A batch of raw inserts stacks red-red pairs, and one fixup per
	// dequeued node only resolves them locally: the ascent stops at
	// the first black parent and never looks back down. Sweep the
	// survivors until none remain. Raw inserts and full fixups both
	// keep black-heights uniform, and every corrective fixup paints
	// at least one red node black, so the sweep terminates with a
	// valid tree.
	for {
		victim := tree.findRedViolation()
		if victim == nil {
			return
		}
		tree.insertFixupFull(victim)
	}
}

// findRedViolation returns the red child of some red node, nil when no
// red-violation exists.
func (tree *rbTree[K]) findRedViolation() *rbNode[K] {
	var victim *rbNode[K]
	tree.foreachNode(func(x *rbNode[K]) bool {
		if x.isRed() {
			if x.left.isRed() {
				victim = x.left
				return false
			}
			if x.right.isRed() {
				victim = x.right
				return false
			}
		}
		return true
	})
	return victim
}
