// Package matrix simulates a collapsed NFA with per-symbol boolean matrices.
//
// Every distinct code unit on a regular edge gets an n×n adjacency matrix
// (n = state count). Matching keeps a bitset of live states and, for each
// input unit, replaces it with the OR of the matrix rows of the live states.
// This runs every NFA branch at once, like subset construction performed on
// the fly without caching DFA states.
//
// A Table never changes after New returns, so one Table can serve any number
// of concurrent Walk calls; each call allocates only its own two bitsets.
package matrix

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/nfa"
)

// ErrNotCollapsed is returned by New for an NFA that still has epsilon edges.
var ErrNotCollapsed = errors.New("matrix: NFA is not collapsed")

// Verdict is the outcome of a walk, with the reason for rejection.
type Verdict uint8

const (
	// Accept means an accepting state was live after the last unit
	Accept Verdict = iota

	// RejectAlphabetMiss means an input unit labels no edge at all
	RejectAlphabetMiss

	// RejectDead means no state survived some input unit
	RejectDead

	// RejectNotAccepting means input ended with no accepting state live
	RejectNotAccepting

	// RejectInvalidInput means the input bytes are not well-formed UTF-8
	// and no walk took place
	RejectInvalidInput
)

// String returns a human-readable representation of the Verdict
func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case RejectAlphabetMiss:
		return "reject: unit not in alphabet"
	case RejectDead:
		return "reject: no live states"
	case RejectNotAccepting:
		return "reject: no accepting state"
	case RejectInvalidInput:
		return "reject: invalid input encoding"
	default:
		return fmt.Sprintf("Verdict(%d)", v)
	}
}

// Table holds the transition matrices of a collapsed NFA.
type Table struct {
	states    int
	start     int
	accepting Bitset
	matrices  map[codeunit.Unit]*Matrix
}

// New builds one matrix per distinct symbol of a collapsed NFA.
// Building never modifies the NFA.
//
// Panics if a collapsed NFA still contains an epsilon edge, since that can
// only result from a bug in Collapse.
func New(a *nfa.NFA) (*Table, error) {
	if !a.IsCollapsed() {
		return nil, ErrNotCollapsed
	}

	n := a.States()
	t := &Table{
		states:    n,
		start:     int(a.Start()),
		accepting: NewBitset(n),
		matrices:  make(map[codeunit.Unit]*Matrix),
	}
	for _, id := range a.Accepting() {
		t.accepting.Set(int(id))
	}

	for i := 0; i < n; i++ {
		for _, e := range a.Edges(nfa.StateID(i)) {
			if e.Kind != nfa.EdgeRegular {
				panic(fmt.Sprintf("matrix: %v edge at state %d in collapsed NFA", e.Kind, i))
			}
			m, ok := t.matrices[e.Unit]
			if !ok {
				m = NewMatrix(n)
				t.matrices[e.Unit] = m
			}
			m.Set(i, int(e.To))
		}
	}

	return t, nil
}

// States returns the side length of every matrix
func (t *Table) States() int {
	return t.states
}

// Matrix returns the matrix for u, or false if u labels no edge.
func (t *Table) Matrix(u codeunit.Unit) (*Matrix, bool) {
	m, ok := t.matrices[u]
	return m, ok
}

// Alphabet returns the symbols that have a matrix, ordered by their bytes.
func (t *Table) Alphabet() []codeunit.Unit {
	units := make([]codeunit.Unit, 0, len(t.matrices))
	for u := range t.matrices {
		units = append(units, u)
	}
	sort.Slice(units, func(i, j int) bool {
		return bytes.Compare(units[i].Bytes(), units[j].Bytes()) < 0
	})
	return units
}

// StartAccepts reports whether the empty input is accepted.
func (t *Table) StartAccepts() bool {
	return t.accepting.Has(t.start)
}

// Walk runs the automaton over units and reports the verdict.
func (t *Table) Walk(units []codeunit.Unit) Verdict {
	cur := NewBitset(t.states)
	next := NewBitset(t.states)
	cur.Set(t.start)

	for _, u := range units {
		m, ok := t.matrices[u]
		if !ok {
			return RejectAlphabetMiss
		}
		m.Step(cur, next)
		if !next.Any() {
			return RejectDead
		}
		cur, next = next, cur
	}

	if cur.Intersects(t.accepting) {
		return Accept
	}
	return RejectNotAccepting
}

// Accepts reports whether the automaton accepts units.
func (t *Table) Accepts(units []codeunit.Unit) bool {
	return t.Walk(units) == Accept
}

// AcceptsBytes segments input and reports whether it is accepted.
// A malformed input buffer returns the segmenter's error.
func (t *Table) AcceptsBytes(input []byte) (bool, error) {
	units, err := codeunit.Segment(input)
	if err != nil {
		return false, err
	}
	return t.Accepts(units), nil
}
