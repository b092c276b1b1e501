package nfa

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpsilonClosure(t *testing.T) {
	n := mustCompile(t, "ab|cd")

	tests := []struct {
		id   StateID
		want []StateID
	}{
		{0, []StateID{0}},
		{1, []StateID{1, 2, 3, 5}},
		{2, []StateID{2, 3, 5}},
		{4, []StateID{4, 7, 8}},
		{6, []StateID{6, 7, 8}},
		{9, []StateID{9}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.EpsilonClosure(tt.id), "closure(%d)", tt.id)
	}
}

func TestEpsilonClosure_Cycle(t *testing.T) {
	// 0 -ε-> 1 -ε-> 2 -ε-> 0, 2 -x-> 3
	b := NewBuilder()
	for i := 0; i < 4; i++ {
		b.AddState()
	}
	require.NoError(t, b.AddEpsilon(0, 1))
	require.NoError(t, b.AddEpsilon(1, 2))
	require.NoError(t, b.AddEpsilon(2, 0))
	require.NoError(t, b.AddEpsilon(1, 1))
	require.NoError(t, b.AddRegular(2, 3, unit("x")))
	b.SetStart(0)
	b.AddAccepting(3)
	n, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, []StateID{0, 1, 2}, n.EpsilonClosure(0))
	assert.Equal(t, []StateID{2, 0, 1}, n.EpsilonClosure(2))

	n.Collapse()
	assert.False(t, n.HasEpsilon())
	for id := StateID(0); id < 3; id++ {
		assert.Equal(t, []Edge{Regular(3, unit("x"))}, n.Edges(id), "state %d", id)
	}
	assert.Equal(t, []StateID{3}, n.Accepting())
}

func TestCollapse_AcceptingRecomputed(t *testing.T) {
	n := mustCompile(t, "(ab)|(cd)")
	n.Collapse()

	assert.True(t, n.IsCollapsed())
	assert.False(t, n.HasEpsilon())
	assert.Equal(t, []StateID{4, 8, 9}, n.Accepting())
}

func TestCollapse_TargetsNotRedirected(t *testing.T) {
	n := mustCompile(t, "a|b")
	n.Collapse()

	// start lifts both regular edges, targets keep pointing at 2 and 4
	assert.Equal(t, []Edge{Regular(2, unit("a")), Regular(4, unit("b"))}, n.Edges(0))
	// 2 and 4 reach the end state only through epsilon edges, so they accept
	assert.Equal(t, []StateID{2, 4, 5}, n.Accepting())
}

func TestCollapse_Golden(t *testing.T) {
	g := goldie.New(t)

	tests := []struct {
		name    string
		pattern string
	}{
		{"scoped_alternation_collapsed", "ab|cd"},
		{"grouped_alternation_collapsed", "(ab)|(cd)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := mustCompile(t, tt.pattern)
			n.Collapse()
			g.Assert(t, tt.name, []byte(n.Dump()))
		})
	}
}

func TestCollapse_Idempotent(t *testing.T) {
	for _, p := range []string{"a", "abc", "ab|cd", "(ab)|(cd)", "a|b|c", "((a|b)(c|d))|e"} {
		t.Run(p, func(t *testing.T) {
			n := mustCompile(t, p)
			n.Collapse()
			before := n.Dump()
			n.Collapse()
			assert.Equal(t, before, n.Dump())
		})
	}
}

func TestCollapse_EpsilonFreeUnchanged(t *testing.T) {
	n := mustCompile(t, "a")
	before := n.Dump()
	n.Collapse()
	assert.Equal(t, before, n.Dump())
}

func TestCollapse_Deduplicates(t *testing.T) {
	// 0 -ε-> 1, 0 -ε-> 2, both 1 and 2 -x-> 3
	b := NewBuilder()
	for i := 0; i < 4; i++ {
		b.AddState()
	}
	require.NoError(t, b.AddEpsilon(0, 1))
	require.NoError(t, b.AddEpsilon(0, 2))
	require.NoError(t, b.AddRegular(1, 3, unit("x")))
	require.NoError(t, b.AddRegular(2, 3, unit("x")))
	require.NoError(t, b.AddRegular(2, 3, unit("y")))
	b.SetStart(0)
	b.AddAccepting(3)
	n, err := b.Build()
	require.NoError(t, err)

	n.Collapse()
	assert.Equal(t, []Edge{Regular(3, unit("x")), Regular(3, unit("y"))}, n.Edges(0))
}

func TestEpsilonClosures_AllStates(t *testing.T) {
	n := mustCompile(t, "a|b|c")
	closures := n.EpsilonClosures()
	require.Len(t, closures, n.States())
	for id, c := range closures {
		assert.Equal(t, StateID(id), c[0], "closure must start with the state itself")
		assert.Equal(t, n.EpsilonClosure(StateID(id)), c)
	}
}
