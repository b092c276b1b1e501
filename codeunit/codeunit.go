// Package codeunit splits raw byte buffers into UTF-8 code units.
//
// A code unit is the byte span of a single UTF-8 encoded codepoint (1 to 4
// bytes). Units are never decoded to a scalar value: two units are equal iff
// their bytes are identical. The segmenter only checks the leading and
// continuation bit patterns, so overlong encodings and surrogate halves are
// accepted as opaque units.
//
// Example:
//
//	units, err := codeunit.Segment([]byte("héllo"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(len(units)) // 5
package codeunit

import (
	"errors"
	"fmt"
)

// Encoding errors
var (
	// ErrInvalidEncoding indicates a malformed leading or continuation byte
	ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

	// ErrTruncatedEncoding indicates a multi-byte unit cut off at end of buffer
	ErrTruncatedEncoding = errors.New("truncated UTF-8 encoding")
)

// Error reports where in the buffer segmentation failed.
type Error struct {
	// Offset is the byte offset of the leading byte of the offending unit.
	Offset int
	Err    error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%v at byte offset %d", e.Err, e.Offset)
}

// Unwrap returns the underlying sentinel error
func (e *Error) Unwrap() error {
	return e.Err
}

// Unit is a single code unit.
//
// Unit is comparable and may be used as a map key; equality is raw byte
// equality. The zero Unit is not a valid code unit.
type Unit struct {
	b string
}

// Bytes returns a copy of the unit's bytes.
func (u Unit) Bytes() []byte {
	return []byte(u.b)
}

// Len returns the unit's length in bytes (1-4, or 0 for the zero Unit).
func (u Unit) Len() int {
	return len(u.b)
}

// IsZero reports whether u is the zero Unit.
func (u Unit) IsZero() bool {
	return u.b == ""
}

// Is reports whether u is the single-byte unit c.
func (u Unit) Is(c byte) bool {
	return len(u.b) == 1 && u.b[0] == c
}

// String returns the unit's bytes as a string.
func (u Unit) String() string {
	return u.b
}

// GoString returns a quoted form suitable for debugging output.
func (u Unit) GoString() string {
	return fmt.Sprintf("codeunit.Unit(%q)", u.b)
}

// Size returns the total byte length of the unit starting with lead.
// Returns false if lead is not a valid leading byte.
func Size(lead byte) (int, bool) {
	switch {
	case lead&0b1000_0000 == 0b0000_0000:
		return 1, true
	case lead&0b1110_0000 == 0b1100_0000:
		return 2, true
	case lead&0b1111_0000 == 0b1110_0000:
		return 3, true
	case lead&0b1111_1000 == 0b1111_0000:
		return 4, true
	default:
		return 0, false
	}
}

// isContinuation reports whether b matches 10xxxxxx
func isContinuation(b byte) bool {
	return b&0b1100_0000 == 0b1000_0000
}

// next returns the length of the unit at b[off:].
func next(b []byte, off int) (int, error) {
	size, ok := Size(b[off])
	if !ok {
		return 0, &Error{Offset: off, Err: ErrInvalidEncoding}
	}
	for i := 1; i < size; i++ {
		if off+i >= len(b) {
			return 0, &Error{Offset: off, Err: ErrTruncatedEncoding}
		}
		if !isContinuation(b[off+i]) {
			return 0, &Error{Offset: off, Err: ErrInvalidEncoding}
		}
	}
	return size, nil
}

// Segment splits b into code units.
//
// The returned units own copies of their bytes; b may be reused afterwards.
// Segmentation stops at the first malformed unit and returns an *Error
// wrapping ErrInvalidEncoding or ErrTruncatedEncoding.
func Segment(b []byte) ([]Unit, error) {
	if IsASCII(b) {
		return segmentASCII(b), nil
	}
	units := make([]Unit, 0, len(b))
	for off := 0; off < len(b); {
		size, err := next(b, off)
		if err != nil {
			return nil, err
		}
		units = append(units, Unit{b: string(b[off : off+size])})
		off += size
	}
	return units, nil
}

// SegmentString is like Segment for a string.
func SegmentString(s string) ([]Unit, error) {
	return Segment([]byte(s))
}

// Count returns the number of code units in b without materializing them.
func Count(b []byte) (int, error) {
	if IsASCII(b) {
		return len(b), nil
	}
	n := 0
	for off := 0; off < len(b); {
		size, err := next(b, off)
		if err != nil {
			return 0, err
		}
		off += size
		n++
	}
	return n, nil
}

// MustSegment is like SegmentString but panics on malformed input.
// Intended for metacharacter tables and tests.
func MustSegment(s string) []Unit {
	units, err := SegmentString(s)
	if err != nil {
		panic("codeunit: MustSegment(" + fmt.Sprintf("%q", s) + "): " + err.Error())
	}
	return units
}

// FromByte returns the single-byte unit for an ASCII byte.
// Panics if c is not ASCII, since such a byte is never a complete unit.
func FromByte(c byte) Unit {
	if c >= 0x80 {
		panic(fmt.Sprintf("codeunit: FromByte(0x%02x): not an ASCII byte", c))
	}
	return Unit{b: string([]byte{c})}
}

// Join concatenates the bytes of units.
func Join(units []Unit) []byte {
	n := 0
	for _, u := range units {
		n += len(u.b)
	}
	buf := make([]byte, 0, n)
	for _, u := range units {
		buf = append(buf, u.b...)
	}
	return buf
}
