package wirecodec

import (
	"bytes"
	"fmt"
)

// Cursor is a forward-only read position over a borrowed byte slice.
// Slices returned by Next alias B; the cursor never copies.
type Cursor struct {
	B []byte // visible input
	N int    // current read position
}

// NewCursor creates a Cursor positioned at the start of b.
func NewCursor(b []byte) *Cursor {
	return &Cursor{B: b}
}

// Next returns the next n bytes and advances past them.
func (c *Cursor) Next(n int) ([]byte, error) {
	if n < 0 || n > c.Available() {
		return nil, fmt.Errorf("%w: need %d bytes, %d available", ErrUnexpectedEnd, n, c.Available())
	}
	b := c.B[c.N : c.N+n : c.N+n]
	c.N += n
	return b, nil
}

// nextNul returns the bytes up to the next 0x00 and advances past the
// terminator. The terminator is not included.
func (c *Cursor) nextNul() ([]byte, error) {
	i := bytes.IndexByte(c.B[c.N:], 0)
	if i < 0 {
		return nil, fmt.Errorf("%w: scanned %d bytes", ErrInvalidTerminator, c.Available())
	}
	b := c.B[c.N : c.N+i : c.N+i]
	c.N += i + 1
	return b, nil
}

// Offset returns the number of bytes consumed so far.
func (c *Cursor) Offset() int { return c.N }

// Available returns the number of bytes left in the visible window.
func (c *Cursor) Available() int {
	length := len(c.B) - c.N
	if length <= 0 {
		return 0
	}
	return length
}

// Rest returns the unread part of the visible window without consuming it.
func (c *Cursor) Rest() []byte { return c.B[c.N:] }

// limit narrows the visible window to the next n bytes and returns the
// previous window so the caller can restore it. n must not exceed Available.
func (c *Cursor) limit(n int) []byte {
	full := c.B
	c.B = c.B[:c.N+n]
	return full
}

// restore widens the window back to full, keeping the read position.
func (c *Cursor) restore(full []byte) { c.B = full }
