// Package johnson orders tasks for a two-machine flow shop with Johnson's Rule.
package johnson

import (
	"container/heap"

	"johnsonShop/internal/flowshop"
)

// Sequence returns the Johnson order of tasks as a permutation of their indices.
//
// The task with the smallest processing time on either machine is placed next;
// ties go to the task that comes first in the remaining list. If that time is
// on machine 1 (p1 <= p2) the task takes the earliest free slot, otherwise the
// latest free slot. Processing times are not validated here.
func Sequence(tasks []flowshop.Task) []int {
	n := len(tasks)
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	seq := make([]int, n)
	lo, hi := 0, n
	for len(remaining) > 0 {
		pos := 0
		best := tasks[remaining[0]].Min()
		for k := 1; k < len(remaining); k++ {
			if v := tasks[remaining[k]].Min(); v < best {
				pos, best = k, v
			}
		}

		idx := remaining[pos]
		lo, hi = place(seq, lo, hi, idx, tasks[idx])
		remaining = append(remaining[:pos], remaining[pos+1:]...)
	}
	return seq
}

// SequenceHeap is Sequence backed by a priority queue. Removing a task keeps the
// relative order of the rest, so "first in the remaining list" is the smallest
// original index and both functions return the same permutation.
func SequenceHeap(tasks []flowshop.Task) []int {
	n := len(tasks)
	q := make(taskQueue, n)
	for i, t := range tasks {
		q[i] = queued{key: t.Min(), idx: i}
	}
	heap.Init(&q)

	seq := make([]int, n)
	lo, hi := 0, n
	for q.Len() > 0 {
		it := heap.Pop(&q).(queued)
		lo, hi = place(seq, lo, hi, it.idx, tasks[it.idx])
	}
	return seq
}

// SequenceWith dispatches on cfg.Strategy.
func SequenceWith(cfg Config, tasks []flowshop.Task) ([]int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Strategy == StrategyHeap {
		return SequenceHeap(tasks), nil
	}
	return Sequence(tasks), nil
}

// place fills the front of seq forward and the back of seq backward.
func place(seq []int, lo, hi, idx int, t flowshop.Task) (int, int) {
	if t.P1 <= t.P2 {
		seq[lo] = idx
		return lo + 1, hi
	}
	hi--
	seq[hi] = idx
	return lo, hi
}

type queued struct {
	key float64
	idx int
}

type taskQueue []queued

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].key != q[j].key {
		return q[i].key < q[j].key
	}
	return q[i].idx < q[j].idx
}

func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *taskQueue) Push(x any) { *q = append(*q, x.(queued)) }

func (q *taskQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}
