package tree

import (
	randv2 "math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type checkData struct {
	color RBColor
	key   int64
}

func newTestTree(opts ...RBTreeOpt[int64]) *rbTree[int64] {
	return NewRBTree[int64](opts...).(*rbTree[int64])
}

func requireInOrder(t *testing.T, tree RBTree[int64], expected []checkData) {
	t.Helper()
	pairs := tree.InOrder()
	require.Len(t, pairs, len(expected))
	for i, p := range pairs {
		require.Equal(t, expected[i].color, p.Color)
		require.Equal(t, expected[i].key, p.Key)
	}
}

func TestRbtreeInsertAndDelete_EagerRebalance(t *testing.T) {
	tree := newTestTree()

	insertAll := func(keys ...int64) {
		for _, k := range keys {
			tree.Insert(k)
			tree.RebalanceAll()
		}
	}

	insertAll(52)
	requireInOrder(t, tree, []checkData{
		{Black, 52},
	})
	require.NoError(t, tree.Validate())

	insertAll(47)
	requireInOrder(t, tree, []checkData{
		{Red, 47}, {Black, 52},
	})
	require.NoError(t, tree.Validate())

	insertAll(3)
	requireInOrder(t, tree, []checkData{
		{Red, 3}, {Black, 47}, {Red, 52},
	})
	require.NoError(t, tree.Validate())

	insertAll(35)
	requireInOrder(t, tree, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})
	require.NoError(t, tree.Validate())

	insertAll(24)
	requireInOrder(t, tree, []checkData{
		{Red, 3},
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})
	require.NoError(t, tree.Validate())

	// remove

	tree.Delete(24)
	requireInOrder(t, tree, []checkData{
		{Red, 3},
		{Black, 35},
		{Black, 47},
		{Black, 52},
	})
	require.NoError(t, tree.Validate())

	tree.Delete(47)
	requireInOrder(t, tree, []checkData{
		{Black, 3},
		{Black, 35},
		{Black, 52},
	})
	require.NoError(t, tree.Validate())

	tree.Delete(52)
	requireInOrder(t, tree, []checkData{
		{Red, 3}, {Black, 35},
	})
	require.NoError(t, tree.Validate())

	tree.Delete(3)
	requireInOrder(t, tree, []checkData{
		{Black, 35},
	})
	require.NoError(t, tree.Validate())

	tree.Delete(35)
	require.Equal(t, int64(0), tree.Len())
	require.True(t, tree.IsSentinel(tree.Root()))
}

func TestRbtreeInsert_102030_FullMode(t *testing.T) {
	tree := newTestTree()
	tree.Insert(10)
	tree.Insert(20)
	tree.Insert(30)
	require.Equal(t, int64(2), tree.PendingLen())

	tree.RebalanceAll()
	require.Equal(t, int64(0), tree.PendingLen())

	root := tree.Root()
	require.Equal(t, int64(20), root.Key())
	require.Equal(t, Black, root.Color())
	require.Equal(t, int64(10), root.Left().Key())
	require.Equal(t, Red, root.Left().Color())
	require.Equal(t, int64(30), root.Right().Key())
	require.Equal(t, Red, root.Right().Color())

	require.Empty(t, tree.CheckProperties())
	require.Contains(t, tree.Steps(), "Left rotation at node 10.")
}

func TestRbtreeInsert_Duplicate_Idempotent(t *testing.T) {
	tree := newTestTree()
	tree.Insert(10)
	tree.RebalanceAll()
	before := tree.InOrder()
	tree.DrainSteps()

	tree.Insert(10)
	require.Equal(t, int64(1), tree.Len())
	require.Equal(t, before, tree.InOrder())
	require.Equal(t, []string{"Value 10 already exists, skipping."}, tree.DrainSteps())
}

func TestRbtreeDelete_Absent_NoOp(t *testing.T) {
	tree := newTestTree()
	tree.Insert(10)
	tree.Insert(20)
	tree.RebalanceAll()
	require.NoError(t, tree.Validate())
	tree.DrainSteps()

	tree.Delete(99)
	require.Equal(t, int64(2), tree.Len())
	require.NoError(t, tree.Validate())
	require.Equal(t, []string{"Value 99 not found for deletion."}, tree.DrainSteps())
}

func TestRbtreeDelete_TwoChildNode_SuccessorTakesPlace(t *testing.T) {
	tree := newTestTree()
	for k := int64(1); k <= 7; k++ {
		tree.Insert(k)
		tree.RebalanceAll()
	}
	require.NoError(t, tree.Validate())

	tree.Delete(4)
	require.NoError(t, tree.Validate())
	requireInOrder(t, tree, []checkData{
		{Black, 1}, {Black, 2}, {Black, 3}, {Red, 5}, {Black, 6}, {Red, 7},
	})

	// The in-order successor inherits 4's slot, children and color.
	succ, ok := tree.Search(5)
	require.True(t, ok)
	require.Equal(t, int64(3), succ.Left().Key())
	require.Equal(t, int64(6), succ.Right().Key())
	require.Equal(t, Red, succ.Color())
}

func TestRbtreeRoundTrip_InsertAllDeleteAll(t *testing.T) {
	total := 256
	keys := make([]int64, 0, total)
	for _, i := range randv2.Perm(total) {
		keys = append(keys, int64(i)*3+1)
	}

	tree := newTestTree()
	for _, k := range keys {
		tree.Insert(k)
	}
	tree.RebalanceAll()
	require.NoError(t, tree.Validate())
	require.Equal(t, int64(total), tree.Len())

	for _, i := range randv2.Perm(total) {
		tree.Delete(keys[i])
		require.NoError(t, tree.Validate())
	}
	require.Equal(t, int64(0), tree.Len())
	require.True(t, tree.IsSentinel(tree.Root()))
}

func TestRbtreeRandomInsert_BatchRebalance(t *testing.T) {
	type testcase struct {
		name  string
		total int
		eager bool
	}
	testcases := []testcase{
		{name: "eager 800", total: 800, eager: true},
		{name: "batch 1000", total: 1000},
		{name: "batch 5000", total: 5000},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := newTestTree()
			for _, i := range randv2.Perm(tc.total) {
				tree.Insert(int64(i))
				if tc.eager {
					tree.RebalanceAll()
					require.NoError(tt, tree.Validate())
				}
			}
			tree.RebalanceAll()
			require.NoError(tt, tree.Validate())
			require.Equal(tt, int64(tc.total), tree.Len())

			keys := tree.Flatten()
			require.Len(tt, keys, tc.total)
			require.True(tt, sort.SliceIsSorted(keys, func(i, j int) bool {
				return keys[i] < keys[j]
			}))
			for i := 1; i < len(keys); i++ {
				require.Less(tt, keys[i-1], keys[i])
			}
		})
	}
}

func TestRbtreeDeferredRebalance_RestoresProperties(t *testing.T) {
	// No intermediate rebalancing: the whole batch goes through the
	// pending FIFO before a single fixup runs, stacking red-red pairs.
	t.Run("ascending chain", func(tt *testing.T) {
		tree := newTestTree()
		for k := int64(1); k <= 64; k++ {
			tree.Insert(k)
		}
		require.Equal(tt, int64(63), tree.PendingLen())
		tree.RebalanceAll()
		require.Equal(tt, int64(0), tree.PendingLen())
		require.Empty(tt, tree.CheckProperties())
	})

	t.Run("random rounds", func(tt *testing.T) {
		for _, total := range []int{16, 100, 234, 300} {
			for round := 0; round < 5; round++ {
				tree := newTestTree()
				for _, i := range randv2.Perm(total) {
					tree.Insert(int64(i))
				}
				tree.RebalanceAll()
				require.Empty(tt, tree.CheckProperties())
				require.Equal(tt, int64(total), tree.Len())
			}
		}
	})

	t.Run("interleaved batches", func(tt *testing.T) {
		tree := newTestTree()
		perm := randv2.Perm(512)
		for len(perm) > 0 {
			n := min(37, len(perm))
			for _, i := range perm[:n] {
				tree.Insert(int64(i))
			}
			perm = perm[n:]
			tree.RebalanceAll()
			require.NoError(tt, tree.Validate())
		}
		require.Equal(tt, int64(512), tree.Len())
	})
}

func TestRbtreeSearch(t *testing.T) {
	tree := newTestTree()
	for _, k := range []int64{8, 3, 10, 1, 6} {
		tree.Insert(k)
		tree.RebalanceAll()
	}

	x, ok := tree.Search(6)
	require.True(t, ok)
	require.Equal(t, int64(6), x.Key())

	_, ok = tree.Search(7)
	require.False(t, ok)
}

func TestRbtreeClear_KeepsJournal(t *testing.T) {
	tree := newTestTree()
	tree.Insert(1)
	tree.Insert(2)
	tree.Clear()

	require.True(t, tree.IsSentinel(tree.Root()))
	require.Equal(t, int64(0), tree.Len())
	require.Equal(t, int64(0), tree.PendingLen())

	steps := tree.Steps()
	require.Contains(t, steps, "Inserted node 1 (red).")
	require.Contains(t, steps, "Cleared the entire tree.")
}

func TestRbtreeTraversals(t *testing.T) {
	tree := newTestTree()
	for _, k := range []int64{2, 1, 3} {
		tree.Insert(k)
		tree.RebalanceAll()
	}

	inorder := tree.InOrder()
	require.Equal(t, []int64{1, 2, 3}, []int64{inorder[0].Key, inorder[1].Key, inorder[2].Key})

	preorder := tree.PreOrder()
	require.Equal(t, []int64{2, 1, 3}, []int64{preorder[0].Key, preorder[1].Key, preorder[2].Key})

	postorder := tree.PostOrder()
	require.Equal(t, []int64{1, 3, 2}, []int64{postorder[0].Key, postorder[1].Key, postorder[2].Key})

	empty := newTestTree()
	require.Nil(t, empty.InOrder())
	require.Nil(t, empty.PreOrder())
	require.Nil(t, empty.PostOrder())
}

func BenchmarkRBTree_Serial(b *testing.B) {
	b.StopTimer()
	tree := NewRBTree[int]()
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(i)
		tree.RebalanceAll()
	}
}

func BenchmarkRBTree_Random(b *testing.B) {
	b.StopTimer()
	tree := NewRBTree[int]()
	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		tree.Insert(rngArr[i])
		tree.RebalanceAll()
	}
}
