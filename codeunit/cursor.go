package codeunit

// Cursor is a forward-only view over a unit sequence.
// Only Advance moves the position; there is no way to rewind.
type Cursor struct {
	units []Unit
	pos   int
}

// NewCursor creates a cursor positioned at the first unit.
func NewCursor(units []Unit) *Cursor {
	return &Cursor{units: units}
}

// Peek returns the current unit without consuming it.
// Returns false at end of input.
func (c *Cursor) Peek() (Unit, bool) {
	if c.pos >= len(c.units) {
		return Unit{}, false
	}
	return c.units[c.pos], true
}

// Advance returns the current unit and moves past it.
// Returns false at end of input.
func (c *Cursor) Advance() (Unit, bool) {
	u, ok := c.Peek()
	if ok {
		c.pos++
	}
	return u, ok
}

// PeekIs reports whether the current unit is the single-byte unit b.
func (c *Cursor) PeekIs(b byte) bool {
	u, ok := c.Peek()
	return ok && u.Is(b)
}

// Pos returns the index of the next unit to be read.
func (c *Cursor) Pos() int {
	return c.pos
}

// Done reports whether all units have been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.units)
}
