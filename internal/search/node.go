// Package search drives exploration over the successor engine: a greedy
// best-first search with a heap-backed open list and a fingerprint-keyed
// closed list. The engine's states are immutable values, which is what
// permits the optional parallel heuristic evaluation of successors.
package search

import (
	"liftplan/internal/state"
	"liftplan/internal/successor"
)

// node is one search node: a state plus the parent link and the operator
// that produced it, for plan extraction.
type node struct {
	state  *state.State
	parent *node
	op     successor.OperatorID
	h      int
	order  int // insertion counter, FIFO tie-break within equal h
}

// openList is a min-heap over (h, order), used via container/heap.
type openList []*node

func (o openList) Len() int { return len(o) }

func (o openList) Less(i, j int) bool {
	if o[i].h != o[j].h {
		return o[i].h < o[j].h
	}
	return o[i].order < o[j].order
}

func (o openList) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openList) Push(x any) { *o = append(*o, x.(*node)) }

func (o *openList) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
