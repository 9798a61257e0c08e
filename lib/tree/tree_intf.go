package tree

import "github.com/evelake/xtree/lib/infra"

type RBColor uint8

const (
	Black RBColor = iota
	Red
)

func (c RBColor) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

// RBNode is the per-node read model handed to collaborators such as a
// renderer. Left/Right return the shared sentinel for absent children,
// Parent returns nil only at the root.
type RBNode[K infra.ScalarKey] interface {
	Key() K
	Color() RBColor
	Left() RBNode[K]
	Right() RBNode[K]
	Parent() RBNode[K]
}

// KeyColor is one traversal production.
type KeyColor[K infra.ScalarKey] struct {
	Key   K
	Color RBColor
}

// RBTree is a steppable red-black tree over signed scalar keys.
//
// Structural inserts and invariant restoration are decoupled: Insert
// parks the new node on a FIFO and RebalanceStep/RebalanceAll consume
// it with the mode-selected fixup. Between those calls the red-black
// properties may be transiently broken. After RebalanceAll in full
// mode (and only then) CheckProperties reports no violations.
type RBTree[K infra.ScalarKey] interface {
	Len() int64
	Root() RBNode[K]
	Sentinel() RBNode[K]
	IsSentinel(node RBNode[K]) bool

	Search(key K) (RBNode[K], bool)
	Insert(key K)
	Delete(key K)
	Clear()

	ColorOnly() bool
	SetColorOnly(enabled bool)
	PendingLen() int64
	RebalanceStep()
	RebalanceAll()

	InOrder() []KeyColor[K]
	PreOrder() []KeyColor[K]
	PostOrder() []KeyColor[K]

	Flatten() []K
	RebuildBalanced()
	SelectBestNode() RBNode[K]
	BuildFromSample(keys []K)

	CheckProperties() []string
	Validate() error

	Steps() []string
	DrainSteps() []string
}
