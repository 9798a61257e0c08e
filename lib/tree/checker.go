package tree

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// CheckProperties validates the live structure against the four
// red-black properties and reports every violation found, not just the
// first. It never aborts. An empty result means the tree is valid.
//
// While the pending FIFO is non-empty, or after color-only fixups,
// violations are expected and must not be treated as defects.
func (tree *rbTree[K]) CheckProperties() []string {
	violations := make([]string, 0, 4)

	// p5: root is black, skipped for the empty tree.
	if tree.root != tree.sentinel && tree.root.color != Black {
		violations = append(violations, fmt.Sprintf("Root node %v is not black.", tree.root.key))
	}

	// p2: the sentinel is black.
	if tree.sentinel.color != Black {
		violations = append(violations, "NIL sentinel is not black (unexpected).")
	}

	// p3: no red node has a red child.
	tree.foreachNode(func(x *rbNode[K]) bool {
		if x.color == Red {
			if x.left.color == Red {
				violations = append(violations,
					fmt.Sprintf("Red node %v has a red left child (%v).", x.key, x.left.key))
			}
			if x.right.color == Red {
				violations = append(violations,
					fmt.Sprintf("Red node %v has a red right child (%v).", x.key, x.right.key))
			}
		}
		return true
	})

	// p4: uniform black-height on every root-to-sentinel path.
	if tree.root != tree.sentinel {
		if bh := tree.blackHeightCheck(tree.root, nil, &violations); bh < 0 {
			violations = append(violations, "Paths do not have the same black-height (see mismatch above).")
		}
	}

	return violations
}

// blackHeightCheck returns the black-height of the subtree rooted at
// n (the sentinel counts as one black node), or -1 on mismatch. The
// first mismatch on a path is reported with the exact key path from
// the root so a caller can locate the defective subtree.
func (tree *rbTree[K]) blackHeightCheck(n *rbNode[K], path []string, violations *[]string) int {
	if n == tree.sentinel {
		return 1
	}

	path = append(path, fmt.Sprintf("(val=%v, color=%s)", n.key, n.color))
	leftBH := tree.blackHeightCheck(n.left, path, violations)
	rightBH := tree.blackHeightCheck(n.right, path, violations)
	if leftBH < 0 || rightBH < 0 {
		return -1
	}

	if leftBH != rightBH {
		*violations = append(*violations, fmt.Sprintf(
			"Black-height mismatch at node %v: path=%s, left_bh=%d, right_bh=%d",
			n.key, strings.Join(path, " -> "), leftBH, rightBH))
		return -1
	}

	if n.color == Black {
		return leftBH + 1
	}
	return leftBH
}

// Validate folds CheckProperties into a single error, nil when the
// tree is valid. Every violation is retained as a wrapped error.
func (tree *rbTree[K]) Validate() (err error) {
	for _, v := range tree.CheckProperties() {
		err = multierr.Append(err, errors.New(v))
	}
	return err
}
