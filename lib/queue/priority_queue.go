package queue

import "container/heap"

type rankedItem[E comparable] struct {
	priority int64
	value    E
}

type rankedHeap[E comparable] struct {
	arr        []rankedItem[E]
	comparator RankComparator
}

func (h *rankedHeap[E]) Len() int { return len(h.arr) }
func (h *rankedHeap[E]) Less(i, j int) bool {
	return h.comparator(h.arr[i].priority, h.arr[j].priority) == iGTj
}
func (h *rankedHeap[E]) Swap(i, j int) {
	h.arr[i], h.arr[j] = h.arr[j], h.arr[i]
}

func (h *rankedHeap[E]) Push(i interface{}) {
	item, ok := i.(rankedItem[E])
	if !ok {
		return
	}
	h.arr = append(h.arr, item)
}

func (h *rankedHeap[E]) Pop() interface{} {
	prev := h.arr
	n := len(prev)
	if n <= 0 {
		return nil
	}
	item := prev[n-1]
	prev[n-1] = rankedItem[E]{} // nil object
	h.arr = prev[:n-1]
	return item
}

// ArrayRankingQueue is a binary-heap ranking queue. Not thread safe,
// the engine that feeds it is synchronous by contract.
type ArrayRankingQueue[E comparable] struct {
	queue *rankedHeap[E]
}

func (pq *ArrayRankingQueue[E]) Len() int64 {
	return int64(len(pq.queue.arr))
}

func (pq *ArrayRankingQueue[E]) Push(value E, priority int64) {
	heap.Push(pq.queue, rankedItem[E]{priority: priority, value: value})
}

func (pq *ArrayRankingQueue[E]) Pop() (val E, pri int64) {
	if len(pq.queue.arr) == 0 {
		// return empty value by default
		return
	}
	item := heap.Pop(pq.queue).(rankedItem[E])
	return item.value, item.priority
}

func (pq *ArrayRankingQueue[E]) Peek() (val E, pri int64) {
	if len(pq.queue.arr) == 0 {
		return
	}
	return pq.queue.arr[0].value, pq.queue.arr[0].priority
}

type ArrayRankingQueueOption[E comparable] func(*ArrayRankingQueue[E])

func NewArrayRankingQueue[E comparable](opts ...ArrayRankingQueueOption[E]) RankingQueue[E] {
	pq := &ArrayRankingQueue[E]{
		queue: new(rankedHeap[E]),
	}
	for _, o := range opts {
		if o != nil {
			o(pq)
		}
	}
	if pq.queue.arr == nil {
		pq.queue.arr = make([]rankedItem[E], 0, 64)
	}
	if pq.queue.comparator == nil {
		// Highest score pops first.
		pq.queue.comparator = func(iPri, jPri int64) CmpEnum {
			res := iPri - jPri
			if res > 0 {
				return iGTj
			} else if res < 0 {
				return iLTj
			}
			return iEQj
		}
	}
	return pq
}

func WithArrayRankingQueueCapacity[E comparable](capacity int) ArrayRankingQueueOption[E] {
	return func(pq *ArrayRankingQueue[E]) {
		if capacity <= 0 {
			capacity = 64
		}
		pq.queue.arr = make([]rankedItem[E], 0, capacity)
	}
}

func WithArrayRankingQueueComparator[E comparable](fn RankComparator) ArrayRankingQueueOption[E] {
	return func(pq *ArrayRankingQueue[E]) {
		if fn != nil {
			pq.queue.comparator = fn
		}
	}
}
