package suggest

import (
	"container/heap"
	"sort"

	"github.com/bastiangx/wordkey/pkg/dictionary"
)

// rankHeap keeps the worst-ranked candidate at the root.
type rankHeap []dictionary.WeightedString

func (h rankHeap) Len() int           { return len(h) }
func (h rankHeap) Less(i, j int) bool { return dictionary.Less(h[j], h[i]) }
func (h rankHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankHeap) Push(x any) {
	*h = append(*h, x.(dictionary.WeightedString))
}

func (h *rankHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topK retains the k best candidates offered to it in O(log k) per offer.
type topK struct {
	k int
	h rankHeap
}

func newTopK(k int) *topK {
	return &topK{k: k, h: make(rankHeap, 0, k)}
}

func (t *topK) Offer(ws dictionary.WeightedString) {
	if len(t.h) < t.k {
		heap.Push(&t.h, ws)
		return
	}
	if dictionary.Less(ws, t.h[0]) {
		t.h[0] = ws
		heap.Fix(&t.h, 0)
	}
}

// Sorted returns the retained candidates best first.
func (t *topK) Sorted() []dictionary.WeightedString {
	out := make([]dictionary.WeightedString, len(t.h))
	copy(out, t.h)
	sort.Slice(out, func(i, j int) bool {
		return dictionary.Less(out[i], out[j])
	})
	return out
}
