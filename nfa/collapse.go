package nfa

import (
	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/internal/conv"
	"github.com/coregx/coremx/internal/sparse"
)

// EpsilonClosure returns the states reachable from id using only epsilon
// edges, including id itself, in depth-first discovery order.
// Returns nil for an invalid ID.
func (n *NFA) EpsilonClosure(id StateID) []StateID {
	if int(id) >= len(n.states) {
		return nil
	}
	set := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
	n.closureInto(id, set, nil)
	return toStateIDs(set.Values())
}

// closureInto adds the epsilon-closure of id to set.
// Visited states are never re-entered, so epsilon cycles terminate.
// The explicit stack bounds memory by the state count instead of recursing.
func (n *NFA) closureInto(id StateID, set *sparse.SparseSet, stack []StateID) []StateID {
	stack = append(stack[:0], id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !set.Insert(uint32(cur)) {
			continue
		}
		edges := n.states[cur]
		// push in reverse so the first edge is explored first
		for i := len(edges) - 1; i >= 0; i-- {
			if e := edges[i]; e.IsEpsilon() && !set.Contains(uint32(e.To)) {
				stack = append(stack, e.To)
			}
		}
	}
	return stack
}

// EpsilonClosures computes the closure of every state.
func (n *NFA) EpsilonClosures() [][]StateID {
	count := conv.IntToUint32(len(n.states))
	set := sparse.NewSparseSet(count)
	closures := make([][]StateID, len(n.states))
	var stack []StateID
	for id := range n.states {
		set.Clear()
		stack = n.closureInto(StateID(id), set, stack)
		closures[id] = toStateIDs(set.Values())
	}
	return closures
}

// edgeKey identifies a lifted edge for deduplication
type edgeKey struct {
	to   StateID
	unit codeunit.Unit
}

// Collapse removes every epsilon edge in place.
//
// A state accepts iff its epsilon-closure contains an accepting state. The
// new edges of a state are the regular edges of every state in its closure,
// with targets left unchanged; duplicate (unit, target) pairs are dropped.
//
// Collapsing an already collapsed NFA leaves it unchanged.
func (n *NFA) Collapse() {
	closures := n.EpsilonClosures()

	accepting := sparse.NewSparseSet(conv.IntToUint32(len(n.states)))
	for id, closure := range closures {
		for _, m := range closure {
			if n.accepting.Contains(uint32(m)) {
				accepting.Insert(uint32(id))
				break
			}
		}
	}

	lifted := make([][]Edge, len(n.states))
	seen := make(map[edgeKey]struct{})
	for id, closure := range closures {
		clear(seen)
		var edges []Edge
		for _, m := range closure {
			for _, e := range n.states[m] {
				if e.IsEpsilon() {
					continue
				}
				key := edgeKey{to: e.To, unit: e.Unit}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				edges = append(edges, e)
			}
		}
		lifted[id] = edges
	}

	n.states = lifted
	n.accepting = accepting
	n.collapsed = true
}

func toStateIDs(vals []uint32) []StateID {
	ids := make([]StateID, len(vals))
	for i, v := range vals {
		ids[i] = StateID(v)
	}
	return ids
}
