package queue

import (
	randv2 "math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArrayRankingQueue_HighestFirst(t *testing.T) {
	pq := NewArrayRankingQueue[string]()
	pq.Push("low", 1)
	pq.Push("high", 42)
	pq.Push("mid", 7)

	require.Equal(t, int64(3), pq.Len())

	v, pri := pq.Peek()
	require.Equal(t, "high", v)
	require.Equal(t, int64(42), pri)

	v, _ = pq.Pop()
	require.Equal(t, "high", v)
	v, _ = pq.Pop()
	require.Equal(t, "mid", v)
	v, _ = pq.Pop()
	require.Equal(t, "low", v)
	require.Equal(t, int64(0), pq.Len())
}

func TestArrayRankingQueue_PopEmpty(t *testing.T) {
	pq := NewArrayRankingQueue[int](WithArrayRankingQueueCapacity[int](8))
	v, pri := pq.Pop()
	require.Equal(t, 0, v)
	require.Equal(t, int64(0), pri)
}

func TestArrayRankingQueue_ReverseComparator(t *testing.T) {
	pq := NewArrayRankingQueue[int](
		WithArrayRankingQueueComparator[int](func(iPri, jPri int64) CmpEnum {
			res := jPri - iPri
			if res > 0 {
				return iGTj
			} else if res < 0 {
				return iLTj
			}
			return iEQj
		}),
	)
	pq.Push(10, 10)
	pq.Push(3, 3)
	pq.Push(7, 7)
	v, _ := pq.Pop()
	require.Equal(t, 3, v)
}

func TestArrayRankingQueue_RandomDrain(t *testing.T) {
	pq := NewArrayRankingQueue[int64]()
	total := 512
	pris := make([]int64, 0, total)
	for i := 0; i < total; i++ {
		pri := int64(randv2.Uint32() % 4096)
		pris = append(pris, pri)
		pq.Push(pri, pri)
	}
	sort.Slice(pris, func(i, j int) bool { return pris[i] > pris[j] })
	for i := 0; i < total; i++ {
		_, pri := pq.Pop()
		require.Equal(t, pris[i], pri)
	}
}
