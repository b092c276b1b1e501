package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/coremx/codeunit"
	"github.com/coregx/coremx/nfa"
)

func compile(t *testing.T, pattern string) *Table {
	t.Helper()
	a, err := nfa.NewDefaultCompiler().Compile(pattern)
	require.NoError(t, err)
	a.Collapse()
	table, err := New(a)
	require.NoError(t, err)
	return table
}

func accepts(t *testing.T, table *Table, input string) bool {
	t.Helper()
	ok, err := table.AcceptsBytes([]byte(input))
	require.NoError(t, err)
	return ok
}

func TestTable_Match(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"abc", []string{"abc"}, []string{"ab", "d", "", "abcc", "abd"}},
		{"ab|cd", []string{"abd", "acd"}, []string{"ab", "cd", "ac", "abcd"}},
		{"(ab)|(cd)", []string{"ab", "cd"}, []string{"abd", "acd", "ac", ""}},
		{"a(b|c)d", []string{"abd", "acd"}, []string{"ad", "abcd"}},
		{"a|b|c", []string{"a", "b", "c"}, []string{"d", "ab", ""}},
		{"h(\u00e9|e)llo", []string{"h\u00e9llo", "hello"}, []string{"hallo", "he\u0301llo"}},
		{`\(\|\)`, []string{"(|)"}, []string{"()", "|"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			table := compile(t, tt.pattern)
			for _, in := range tt.accept {
				assert.True(t, accepts(t, table, in), "%q should accept %q", tt.pattern, in)
			}
			for _, in := range tt.reject {
				assert.False(t, accepts(t, table, in), "%q should reject %q", tt.pattern, in)
			}
		})
	}
}

func TestTable_Verdicts(t *testing.T) {
	table := compile(t, "ab|cd")

	walk := func(s string) Verdict {
		return table.Walk(codeunit.MustSegment(s))
	}
	assert.Equal(t, Accept, walk("abd"))
	assert.Equal(t, RejectAlphabetMiss, walk("axd"))
	assert.Equal(t, RejectDead, walk("ad"))
	assert.Equal(t, RejectNotAccepting, walk("ab"))
	assert.Equal(t, RejectNotAccepting, walk(""))

	assert.Equal(t, "accept", Accept.String())
	assert.Equal(t, "reject: invalid input encoding", RejectInvalidInput.String())
	assert.Equal(t, "Verdict(42)", Verdict(42).String())
}

func TestTable_EmptyInputAcceptsIffStartAccepts(t *testing.T) {
	// Built by hand: the grammar cannot express the empty string.
	b := nfa.NewBuilder()
	s := b.AddState()
	e := b.AddState()
	require.NoError(t, b.AddEpsilon(s, e))
	require.NoError(t, b.AddRegular(e, e, codeunit.FromByte('x')))
	b.SetStart(s)
	b.AddAccepting(e)
	a, err := b.Build()
	require.NoError(t, err)
	a.Collapse()

	table, err := New(a)
	require.NoError(t, err)
	assert.True(t, table.StartAccepts())
	assert.True(t, accepts(t, table, ""))
	assert.True(t, accepts(t, table, "xxx"))
	assert.False(t, accepts(t, table, "xy"))

	assert.False(t, compile(t, "a").StartAccepts())
}

func TestTable_Structure(t *testing.T) {
	a, err := nfa.NewDefaultCompiler().Compile("a|b")
	require.NoError(t, err)

	_, err = New(a)
	assert.ErrorIs(t, err, ErrNotCollapsed)

	a.Collapse()
	before := a.Dump()
	table, err := New(a)
	require.NoError(t, err)
	assert.Equal(t, before, a.Dump(), "building matrices must not modify the NFA")

	assert.Equal(t, 6, table.States())
	assert.Equal(t, []codeunit.Unit{codeunit.FromByte('a'), codeunit.FromByte('b')}, table.Alphabet())

	m, ok := table.Matrix(codeunit.FromByte('a'))
	require.True(t, ok)
	assert.Equal(t, 6, m.Size())
	assert.True(t, m.Get(0, 2))
	assert.True(t, m.Get(1, 2))
	assert.False(t, m.Get(0, 4))
	assert.Equal(t, 1, m.Row(0).Count())
	assert.Equal(t, "001000\n001000\n000000\n000000\n000000\n000000\n", m.String())

	_, ok = table.Matrix(codeunit.FromByte('z'))
	assert.False(t, ok)
}

func TestTable_Deterministic(t *testing.T) {
	table := compile(t, "(ab)|(cd)")
	for i := 0; i < 100; i++ {
		assert.True(t, accepts(t, table, "cd"))
		assert.False(t, accepts(t, table, "ac"))
	}
}

func TestTable_MalformedInput(t *testing.T) {
	table := compile(t, "a")
	_, err := table.AcceptsBytes([]byte{0xE2, 0x82})
	assert.ErrorIs(t, err, codeunit.ErrTruncatedEncoding)
	_, err = table.AcceptsBytes([]byte{0xFF})
	assert.ErrorIs(t, err, codeunit.ErrInvalidEncoding)
}

func TestTable_LargeAutomaton(t *testing.T) {
	// More than 64 states exercises multi-word bitsets.
	pattern := "(abcdefghijklmnopqrstuvwxyz0123456789)|(ABCDEFGHIJKLMNOPQRSTUVWXYZ)"
	table := compile(t, pattern)
	assert.Greater(t, table.States(), 64)
	assert.True(t, accepts(t, table, "abcdefghijklmnopqrstuvwxyz0123456789"))
	assert.True(t, accepts(t, table, "ABCDEFGHIJKLMNOPQRSTUVWXYZ"))
	assert.False(t, accepts(t, table, "abcdefghijklmnopqrstuvwxyz012345678"))
}

func BenchmarkTable_Walk(b *testing.B) {
	a, err := nfa.NewDefaultCompiler().Compile("(hello)|(world)|(h(e|a)llo)")
	if err != nil {
		b.Fatal(err)
	}
	a.Collapse()
	table, err := New(a)
	if err != nil {
		b.Fatal(err)
	}
	units := codeunit.MustSegment("hallo")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.Walk(units)
	}
}

func TestFootprint(t *testing.T) {
	assert.Equal(t, int64(320), Footprint(10, 4))
	assert.Equal(t, int64(1040), Footprint(65, 1))
	assert.Equal(t, int64(0), Footprint(10, 0))

	table := compile(t, "(hello)|(world)")
	var allocated int64
	for _, u := range table.Alphabet() {
		m, ok := table.Matrix(u)
		require.True(t, ok)
		for i := 0; i < m.Size(); i++ {
			allocated += int64(len(m.Row(i))) * 8
		}
	}
	assert.Equal(t, Footprint(table.States(), len(table.Alphabet())), allocated)
}
