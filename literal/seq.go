// Package literal enumerates the finite language of a coremx pattern.
//
// The dialect has no repetition, so every pattern matches a finite set of
// strings. For small patterns that set is enumerated into a Seq, which the
// prefilter package uses to reject inputs cheaply before running the
// automaton (length bounds, common prefix/suffix, Aho-Corasick containment).
//
// Example:
//
//	seq, ok := literal.New(literal.DefaultConfig()).Extract(syntax.MustParse("h(e|a)llo"))
//	// ok == true, seq = ["hello", "hallo"]
package literal

import (
	"bytes"
	"sort"
)

// Literal is one complete word of a pattern's language.
type Literal struct {
	Bytes []byte
}

// NewLiteral creates a Literal from the given byte sequence.
func NewLiteral(b []byte) Literal {
	return Literal{Bytes: b}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns the literal's bytes as a string.
func (l Literal) String() string {
	return string(l.Bytes)
}

// Seq is a set of distinct literals in discovery order.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
// Duplicates are kept; call Dedup to remove them.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{literals: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence holds no literals.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// Words returns the literal bytes in order.
func (s *Seq) Words() [][]byte {
	words := make([][]byte, s.Len())
	for i := range words {
		words[i] = s.literals[i].Bytes
	}
	return words
}

// Contains reports whether b is one of the literals.
func (s *Seq) Contains(b []byte) bool {
	for _, lit := range s.literals {
		if bytes.Equal(lit.Bytes, b) {
			return true
		}
	}
	return false
}

// Dedup removes repeated literals, keeping the first occurrence.
func (s *Seq) Dedup() {
	if s.IsEmpty() {
		return
	}
	seen := make(map[string]struct{}, len(s.literals))
	kept := s.literals[:0]
	for _, lit := range s.literals {
		if _, ok := seen[string(lit.Bytes)]; ok {
			continue
		}
		seen[string(lit.Bytes)] = struct{}{}
		kept = append(kept, lit)
	}
	s.literals = kept
}

// Minimize drops literals that contain a shorter kept literal.
//
// For substring search the result is equivalent: any text containing
// "foobar" also contains "foo". The language itself is not preserved, so only
// containment prefilters may use a minimized Seq.
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	sort.SliceStable(s.literals, func(i, j int) bool {
		return len(s.literals[i].Bytes) < len(s.literals[j].Bytes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, cur := range s.literals {
		redundant := false
		for _, k := range kept {
			if bytes.Contains(cur.Bytes, k.Bytes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, cur)
		}
	}
	s.literals = kept
}

// Clone returns a deep copy of the sequence.
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}
	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{Bytes: bytes.Clone(lit.Bytes)}
	}
	return &Seq{literals: cloned}
}

// MinLen returns the length of the shortest literal, or 0 if empty.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	m := len(s.literals[0].Bytes)
	for _, lit := range s.literals[1:] {
		m = min(m, len(lit.Bytes))
	}
	return m
}

// MaxLen returns the length of the longest literal, or 0 if empty.
func (s *Seq) MaxLen() int {
	m := 0
	for _, lit := range s.literals {
		m = max(m, len(lit.Bytes))
	}
	return m
}

// LongestCommonPrefix returns the longest common prefix of all literals.
// Returns an empty slice for an empty sequence.
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	prefix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		prefix = commonPrefix(prefix, lit.Bytes)
		if len(prefix) == 0 {
			break
		}
	}
	return prefix
}

// LongestCommonSuffix returns the longest common suffix of all literals.
// Returns an empty slice for an empty sequence.
func (s *Seq) LongestCommonSuffix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}
	suffix := s.literals[0].Bytes
	for _, lit := range s.literals[1:] {
		suffix = commonSuffix(suffix, lit.Bytes)
		if len(suffix) == 0 {
			break
		}
	}
	return suffix
}

func commonPrefix(a, b []byte) []byte {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func commonSuffix(a, b []byte) []byte {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return a[len(a)-i:]
}
