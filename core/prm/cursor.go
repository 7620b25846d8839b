package prm

import (
	prmerr "github.com/Fenex/vangers-tool/core/errors"
)

// Cursor is a read position over a cleaned line sequence. It is owned by the
// parse that advances it and never rewinds: lines consumed on a failing path
// stay consumed.
type Cursor struct {
	lines []Line
	pos   int
}

// NewCursor returns a cursor at the first line.
func NewCursor(lines []Line) *Cursor {
	return &Cursor{lines: lines}
}

// Next returns the current line and advances past it.
func (c *Cursor) Next() (Line, bool) {
	if c.pos >= len(c.lines) {
		return Line{}, false
	}
	l := c.lines[c.pos]
	c.pos++
	return l, true
}

// Peek returns the current line without advancing.
func (c *Cursor) Peek() (Line, bool) {
	if c.pos >= len(c.lines) {
		return Line{}, false
	}
	return c.lines[c.pos], true
}

// Require is Next for lines a block cannot do without. Running out of input
// is a structural error, distinct from the line being malformed.
func (c *Cursor) Require(what string) (Line, error) {
	l, ok := c.Next()
	if !ok {
		return Line{}, prmerr.NewStructural(prmerr.ErrShortBlock, "expected %s, reached end of file", what)
	}
	return l, nil
}

// Done reports whether all lines have been consumed.
func (c *Cursor) Done() bool {
	return c.pos >= len(c.lines)
}

// Pos returns the number of lines consumed so far.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unconsumed lines.
func (c *Cursor) Remaining() int {
	return len(c.lines) - c.pos
}
