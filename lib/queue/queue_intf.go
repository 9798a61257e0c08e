// Reference:
// https://github.com/nsqio/nsq/blob/master/internal/pqueue/pqueue.go

package queue

// RankingQueue pops the highest-priority item first. It backs the
// rebuild driver's candidate selection, where the structurally worst
// node must surface before any other.
type RankingQueue[E comparable] interface {
	Len() int64
	Push(value E, priority int64)
	Pop() (E, int64)
	Peek() (E, int64)
}

type CmpEnum int64

const (
	iLTj CmpEnum = -1 + iota
	iEQj
	iGTj
)

// RankComparator decides which of two ranked entries surfaces first.
// if return 1, i pops before j
// if return 0, order is unspecified
// if return -1, j pops before i
type RankComparator func(iPri, jPri int64) CmpEnum
