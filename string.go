package wirecodec

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// encodeNulString writes s followed by a 0x00 terminator. A string that
// already contains a NUL cannot be decoded back and is rejected.
func (e *Encoder) encodeNulString(s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %d byte string", ErrInvalidText, len(s))
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		return fmt.Errorf("%w: embedded NUL at byte %d of a null-terminated string", ErrInvalidText, i)
	}
	e.writeString(s)
	e.writeUint(W8, 0)
	return e.err
}

// encodePrefixString writes the byte length of s in w bytes, then s.
func (e *Encoder) encodePrefixString(w Width, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %d byte string", ErrInvalidText, len(s))
	}
	if !fits(len(s), w) {
		return fmt.Errorf("%w: %d bytes exceed %v prefix", ErrOverflow, len(s), w)
	}
	e.writeUint(w, uint64(len(s)))
	e.writeString(s)
	return e.err
}
