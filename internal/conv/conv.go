// Package conv provides checked integer conversions for automaton indices.
//
// State counts are tracked as int while state IDs and sparse set members are
// uint32. A count that does not fit is a programming error (the compiler caps
// automaton size long before that), so these helpers panic instead of
// returning an error.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// Compare as uint so 32-bit platforms don't overflow on MaxUint32
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}
