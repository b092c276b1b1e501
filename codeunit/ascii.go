package codeunit

import "encoding/binary"

// IsASCII reports whether every byte of b is below 0x80. An ASCII buffer
// segments into one unit per byte with no validation needed.
//
// Eight bytes are checked at a time (SWAR): ASCII bytes have bit 7 clear,
// so a chunk ANDed with 0x80 in every byte lane is zero iff all its bytes
// are ASCII.
func IsASCII(b []byte) bool {
	const hi8 = uint64(0x8080808080808080)

	i := 0
	for ; i+8 <= len(b); i += 8 {
		if binary.LittleEndian.Uint64(b[i:])&hi8 != 0 {
			return false
		}
	}
	for ; i < len(b); i++ {
		if b[i] >= 0x80 {
			return false
		}
	}
	return true
}

// segmentASCII splits an ASCII buffer into single-byte units.
func segmentASCII(b []byte) []Unit {
	units := make([]Unit, len(b))
	for i, c := range b {
		units[i] = Unit{b: string(rune(c))}
	}
	return units
}
