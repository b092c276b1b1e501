package nfa

import (
	"fmt"

	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/internal/conv"
	"github.com/coregx/coremx/internal/sparse"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
// States are appended to an arena and never removed or merged.
type Builder struct {
	states    [][]Edge
	start     StateID
	accepting []StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([][]Edge, 0, capacity),
		start:  InvalidState,
	}
}

// AddState appends a state with no edges and returns its ID
func (b *Builder) AddState() StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, nil)
	return id
}

// AddEpsilon adds a non-consuming edge from -> to
func (b *Builder) AddEpsilon(from, to StateID) error {
	return b.addEdge(from, Epsilon(to))
}

// AddRegular adds an edge from -> to consuming u
func (b *Builder) AddRegular(from, to StateID, u codeunit.Unit) error {
	if u.IsZero() {
		return &BuildError{Message: "regular edge with empty unit", StateID: from}
	}
	return b.addEdge(from, Regular(to, u))
}

func (b *Builder) addEdge(from StateID, e Edge) error {
	if int(from) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: from,
		}
	}
	b.states[from] = append(b.states[from], e)
	return nil
}

// SetStart sets the starting state for the NFA
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// AddAccepting marks id as accepting
func (b *Builder) AddAccepting(id StateID) {
	b.accepting = append(b.accepting, id)
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start state is valid
// - All accepting states are valid
// - All edge targets point to valid states
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: b.start,
		}
	}
	for _, id := range b.accepting {
		if int(id) >= len(b.states) {
			return &BuildError{
				Message: "accepting state out of bounds",
				StateID: id,
			}
		}
	}

	for i, edges := range b.states {
		for j, e := range edges {
			if int(e.To) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid edge %d target %d", j, e.To),
					StateID: StateID(conv.IntToUint32(i)),
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
// The builder must not be used afterwards.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	accepting := sparse.NewSparseSet(conv.IntToUint32(len(b.states)))
	for _, id := range b.accepting {
		accepting.Insert(uint32(id))
	}

	return &NFA{
		states:    b.states,
		start:     b.start,
		accepting: accepting,
	}, nil
}
