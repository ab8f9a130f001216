package scheduler

import (
	"container/heap"
	"time"
)

// delayedJob is an entry in the delayed min-heap, ordered by deadline with
// ties broken by insertion sequence (spec.md §4.C: "ties broken by
// insertion order").
type delayedJob struct {
	deadline time.Time
	seq      uint64
	fn       func()
}

// delayedHeap implements container/heap.Interface over delayedJob, giving
// the scheduler an O(log n) "next deadline" lookup. None of the retrieval
// pack's libraries provide a delay queue for bare closures (x/time/rate is a
// token-bucket limiter, not a deadline-ordered queue), so container/heap is
// used directly here; see DESIGN.md.
type delayedHeap []*delayedJob

func (h delayedHeap) Len() int { return len(h) }

func (h delayedHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h delayedHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *delayedHeap) Push(x any) {
	*h = append(*h, x.(*delayedJob))
}

func (h *delayedHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// peekDeadline returns the earliest deadline in the heap, if any.
func peekDeadline(h delayedHeap) (time.Time, bool) {
	if len(h) == 0 {
		return time.Time{}, false
	}
	return h[0].deadline, true
}

var _ = heap.Interface(&delayedHeap{})
