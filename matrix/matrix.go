package matrix

import "strings"

// Matrix is a square boolean adjacency matrix for one symbol:
// Get(i, j) is true iff a regular edge i -> j carries that symbol.
type Matrix struct {
	rows []Bitset
}

// NewMatrix returns an n×n matrix with every entry false.
func NewMatrix(n int) *Matrix {
	rows := make([]Bitset, n)
	for i := range rows {
		rows[i] = NewBitset(n)
	}
	return &Matrix{rows: rows}
}

// Footprint returns the bytes of bitset words New allocates for an automaton
// with the given number of states and distinct symbols.
func Footprint(states, symbols int) int64 {
	words := int64((states + 63) / 64)
	return int64(symbols) * int64(states) * words * 8
}

// Size returns the side length.
func (m *Matrix) Size() int {
	return len(m.rows)
}

// Set marks the edge i -> j.
func (m *Matrix) Set(i, j int) {
	m.rows[i].Set(j)
}

// Get reports whether the edge i -> j exists.
func (m *Matrix) Get(i, j int) bool {
	return m.rows[i].Has(j)
}

// Row returns the targets reachable from i. The row must not be modified.
func (m *Matrix) Row(i int) Bitset {
	return m.rows[i]
}

// Step computes next[j] = OR over i in cur of m[i][j]. next is overwritten.
func (m *Matrix) Step(cur, next Bitset) {
	next.Reset()
	cur.ForEach(func(i int) {
		next.Or(m.rows[i])
	})
}

// String renders the matrix as rows of 0 and 1.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := range m.rows {
		for j := range m.rows {
			if m.Get(i, j) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
