package tree

import (
	"github.com/samber/lo"

	"github.com/evelake/xtree/lib/queue"
)

// ScorerWeights tunes the heuristic node scorer. The defaults are
// empirical constants; keep their relative magnitudes when adjusting.
type ScorerWeights struct {
	// Imbalance multiplies the black-height difference between a
	// node's subtrees.
	Imbalance int64
	// RedViolation is the flat penalty added when a red node has a red
	// child.
	RedViolation int64
	// Depth multiplies the node's distance from the root; deeper nodes
	// are deprioritized.
	Depth int64
}

func DefaultScorerWeights() ScorerWeights {
	return ScorerWeights{
		Imbalance:    5,
		RedViolation: 10,
		Depth:        1,
	}
}

func (w ScorerWeights) orDefaults() ScorerWeights {
	d := DefaultScorerWeights()
	if w.Imbalance <= 0 {
		w.Imbalance = d.Imbalance
	}
	if w.RedViolation <= 0 {
		w.RedViolation = d.RedViolation
	}
	if w.Depth <= 0 {
		w.Depth = d.Depth
	}
	return w
}

// Flatten produces the ascending key sequence of the current tree.
func (tree *rbTree[K]) Flatten() []K {
	return lo.Map(tree.InOrder(), func(p KeyColor[K], _ int) K {
		return p.Key
	})
}

// RebuildBalanced flattens the tree and rebuilds a shape-optimal plain
// BST by recursive midpoint selection, ignoring colors entirely (every
// rebuilt node is black). Pending entries reference nodes of the
// replaced structure and are discarded.
func (tree *rbTree[K]) RebuildBalanced() {
	keys := tree.Flatten()
	tree.pending = tree.pending[:0]
	if len(keys) == 0 {
		tree.root = tree.sentinel
		return
	}
	tree.root = tree.buildBalanced(keys, 0, len(keys)-1, nil)
	tree.stepf("Binary Tree Balanced: Converted to a balanced BST.")
}

func (tree *rbTree[K]) buildBalanced(keys []K, start, end int, parent *rbNode[K]) *rbNode[K] {
	if start > end {
		return tree.sentinel
	}
	mid := (start + end) >> 1
	n := &rbNode[K]{
		key:    keys[mid],
		color:  Black,
		parent: parent,
		left:   tree.sentinel,
		right:  tree.sentinel,
	}
	n.left = tree.buildBalanced(keys, start, mid-1, n)
	n.right = tree.buildBalanced(keys, mid+1, end, n)
	return n
}

// recolorAllRed paints every real node red except the root, priming
// the rebuilt skeleton for invariant-driven fixups.
func (tree *rbTree[K]) recolorAllRed() {
	tree.foreachNode(func(x *rbNode[K]) bool {
		if x == tree.root {
			x.color = Black
		} else {
			x.color = Red
		}
		return true
	})
}

// blackHeightOf is the scorer's optimistic black-height: max of the
// two subtrees, so it stays meaningful on trees that are not yet
// valid. The checker uses the strict variant instead.
func (tree *rbTree[K]) blackHeightOf(n *rbNode[K]) int64 {
	if n == tree.sentinel {
		return 1
	}
	l, r := tree.blackHeightOf(n.left), tree.blackHeightOf(n.right)
	h := max(l, r)
	if n.color == Black {
		h++
	}
	return h
}

func (tree *rbTree[K]) depthOf(n *rbNode[K]) int64 {
	depth := int64(0)
	for ; n != nil && n != tree.root; n = n.parent {
		depth++
	}
	return depth
}

func (tree *rbTree[K]) scoreNode(n *rbNode[K]) int64 {
	if n == tree.sentinel {
		return -1
	}

	imbalance := tree.blackHeightOf(n.left) - tree.blackHeightOf(n.right)
	if imbalance < 0 {
		imbalance = -imbalance
	}

	var redViolation int64
	if n.color == Red && (n.left.color == Red || n.right.color == Red) {
		redViolation = 1
	}

	return imbalance*tree.weights.Imbalance +
		redViolation*tree.weights.RedViolation -
		tree.depthOf(n)*tree.weights.Depth
}

func (tree *rbTree[K]) selectBestNode() *rbNode[K] {
	if tree.root == tree.sentinel {
		return nil
	}

	pq := queue.NewArrayRankingQueue[*rbNode[K]](
		queue.WithArrayRankingQueueCapacity[*rbNode[K]](int(tree.Len())),
	)
	tree.foreachNode(func(x *rbNode[K]) bool {
		pq.Push(x, tree.scoreNode(x))
		return true
	})

	best, _ := pq.Pop()
	return best
}

// SelectBestNode scores every real node and returns the highest
// scorer, the prime candidate for the next corrective fixup. Returns
// nil on an empty tree.
func (tree *rbTree[K]) SelectBestNode() RBNode[K] {
	best := tree.selectBestNode()
	if best == nil {
		return nil
	}
	return best
}

// BuildFromSample grows the tree one key at a time, interleaving raw
// shape rebuilds with a single best-node correction per key to
// simulate progressive convergence toward red-black validity. The key
// set always ends up equal to the distinct keys of the sample; full
// validity is heuristic only and must be confirmed with
// CheckProperties when correctness is required.
func (tree *rbTree[K]) BuildFromSample(keys []K) {
	for _, key := range keys {
		tree.Insert(key)
		tree.RebuildBalanced()
		tree.recolorAllRed()
		if best := tree.selectBestNode(); best != nil {
			tree.stepf("Best node for rebalancing: %v", best.key)
			tree.insertFixupFull(best)
			tree.RebalanceAll()
		}
		tree.RebalanceAll()
	}
}
