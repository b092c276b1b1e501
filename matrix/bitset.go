package matrix

import "math/bits"

// Bitset is a fixed-size boolean vector packed into 64-bit words.
type Bitset []uint64

// NewBitset returns a zeroed bitset able to hold n bits.
func NewBitset(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

// Set sets bit i.
func (b Bitset) Set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

// Has reports whether bit i is set.
func (b Bitset) Has(i int) bool {
	return b[i/64]&(1<<(uint(i)%64)) != 0
}

// Reset clears every bit.
func (b Bitset) Reset() {
	clear(b)
}

// Any reports whether at least one bit is set.
func (b Bitset) Any() bool {
	for _, w := range b {
		if w != 0 {
			return true
		}
	}
	return false
}

// Count returns the number of set bits.
func (b Bitset) Count() int {
	c := 0
	for _, w := range b {
		c += bits.OnesCount64(w)
	}
	return c
}

// Or sets every bit that is set in o. Both bitsets must have the same size.
func (b Bitset) Or(o Bitset) {
	for i, w := range o {
		b[i] |= w
	}
}

// Intersects reports whether b and o share a set bit.
func (b Bitset) Intersects(o Bitset) bool {
	for i, w := range b {
		if w&o[i] != 0 {
			return true
		}
	}
	return false
}

// ForEach calls fn with the index of every set bit in ascending order.
func (b Bitset) ForEach(fn func(i int)) {
	for wi, w := range b {
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			fn(wi*64 + tz)
			w &= w - 1
		}
	}
}
