// Package nfa provides the Thompson NFA used by coremx.
//
// States live in a dense arena and are referenced by StateID; construction
// only ever appends states. Each state holds an ordered list of outgoing
// edges, either epsilon (non-consuming) or regular (consuming exactly one
// code unit). Collapse removes all epsilon edges in place, after which the
// automaton can be compiled into per-symbol transition matrices.
package nfa

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/internal/sparse"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// EdgeKind distinguishes consuming from non-consuming edges.
type EdgeKind uint8

const (
	// EdgeEpsilon is taken without reading input
	EdgeEpsilon EdgeKind = iota

	// EdgeRegular consumes exactly Edge.Unit
	EdgeRegular
)

// String returns a human-readable representation of the EdgeKind
func (k EdgeKind) String() string {
	switch k {
	case EdgeEpsilon:
		return "Epsilon"
	case EdgeRegular:
		return "Regular"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Edge is an outgoing transition of a state.
type Edge struct {
	To   StateID
	Kind EdgeKind
	Unit codeunit.Unit // EdgeRegular only
}

// Epsilon returns an epsilon edge to the given state.
func Epsilon(to StateID) Edge {
	return Edge{To: to, Kind: EdgeEpsilon}
}

// Regular returns an edge consuming u to the given state.
func Regular(to StateID, u codeunit.Unit) Edge {
	return Edge{To: to, Kind: EdgeRegular, Unit: u}
}

// IsEpsilon returns true for epsilon edges
func (e Edge) IsEpsilon() bool {
	return e.Kind == EdgeEpsilon
}

// String returns a human-readable representation of the edge
func (e Edge) String() string {
	if e.Kind == EdgeEpsilon {
		return fmt.Sprintf("-ε-> %d", e.To)
	}
	return fmt.Sprintf("-%q-> %d", e.Unit.String(), e.To)
}

// NFA is a Thompson automaton over code units.
//
// Before Collapse the accepting set is a single state. After Collapse every
// edge is regular and several states may accept. A collapsed NFA is read-only
// and safe to share between goroutines.
type NFA struct {
	// states[id] holds the outgoing edges of state id
	states [][]Edge

	start StateID

	// accepting holds the accepting states
	accepting *sparse.SparseSet

	collapsed bool
}

// Start returns the start state
func (n *NFA) Start() StateID {
	return n.start
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// Edges returns the outgoing edges of id in insertion order.
// The slice must not be modified. Returns nil for an invalid ID.
func (n *NFA) Edges(id StateID) []Edge {
	if int(id) >= len(n.states) {
		return nil
	}
	return n.states[id]
}

// IsAccepting returns true if id is an accepting state
func (n *NFA) IsAccepting(id StateID) bool {
	return n.accepting.Contains(uint32(id))
}

// Accepting returns the accepting states in ascending order
func (n *NFA) Accepting() []StateID {
	vals := n.accepting.Sorted()
	ids := make([]StateID, len(vals))
	for i, v := range vals {
		ids[i] = StateID(v)
	}
	return ids
}

// IsCollapsed returns true once Collapse has run
func (n *NFA) IsCollapsed() bool {
	return n.collapsed
}

// HasEpsilon returns true if any state has an epsilon edge
func (n *NFA) HasEpsilon() bool {
	for _, edges := range n.states {
		for _, e := range edges {
			if e.IsEpsilon() {
				return true
			}
		}
	}
	return false
}

// EdgeCount returns the total number of edges
func (n *NFA) EdgeCount() int {
	c := 0
	for _, edges := range n.states {
		c += len(edges)
	}
	return c
}

// Alphabet returns the distinct units labelling regular edges, ordered by
// their bytes.
func (n *NFA) Alphabet() []codeunit.Unit {
	seen := make(map[codeunit.Unit]struct{})
	var units []codeunit.Unit
	for _, edges := range n.states {
		for _, e := range edges {
			if e.Kind != EdgeRegular {
				continue
			}
			if _, ok := seen[e.Unit]; ok {
				continue
			}
			seen[e.Unit] = struct{}{}
			units = append(units, e.Unit)
		}
	}
	sort.Slice(units, func(i, j int) bool {
		return bytes.Compare(units[i].Bytes(), units[j].Bytes()) < 0
	})
	return units
}

// String returns a human-readable summary of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, edges: %d, start: %d, accepting: %v, collapsed: %v}",
		len(n.states), n.EdgeCount(), n.start, n.Accepting(), n.collapsed)
}

// Dump returns a deterministic multi-line listing of every state and edge.
//
// Example output for the pattern "a":
//
//	start: 0
//	accepting: [1]
//	0: -"a"-> 1
//	1:
func (n *NFA) Dump() string {
	var b strings.Builder
	fmt.Fprintf(&b, "start: %d\n", n.start)
	fmt.Fprintf(&b, "accepting: %v\n", n.Accepting())
	for id, edges := range n.states {
		fmt.Fprintf(&b, "%d:", id)
		for _, e := range edges {
			b.WriteByte(' ')
			b.WriteString(e.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
