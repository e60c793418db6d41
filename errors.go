package wirecodec

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Decode errors
var (
	// ErrUnexpectedEnd indicates the cursor ran out of input in the middle of a value.
	// It also matches io.ErrUnexpectedEOF under errors.Is.
	ErrUnexpectedEnd = fmt.Errorf("wirecodec: unexpected end of input: %w", io.ErrUnexpectedEOF)

	// ErrInvalidText indicates a string payload that is not valid UTF-8, or a
	// null-terminated string that contains a NUL byte on encode.
	ErrInvalidText = errors.New("wirecodec: invalid UTF-8 text")

	// ErrInvalidTerminator indicates a null-terminated string with no 0x00 before the end of input.
	ErrInvalidTerminator = errors.New("wirecodec: missing string terminator")

	// ErrLengthExceedsBuffer indicates a declared length, count or byte budget
	// larger than the input that remains.
	ErrLengthExceedsBuffer = errors.New("wirecodec: declared length exceeds remaining input")

	// ErrBudgetMismatch indicates a byte-budget sequence whose budget does not
	// end on an element boundary.
	ErrBudgetMismatch = errors.New("wirecodec: byte budget does not align to whole elements")

	// ErrTrailingBytes is returned by strict decodes when input remains after the top-level value.
	ErrTrailingBytes = errors.New("wirecodec: unexpected trailing bytes")
)

// Encode errors
var (
	// ErrOverflow indicates a length, count or byte budget too large for its prefix width.
	ErrOverflow = errors.New("wirecodec: value too large for prefix width")
)

// Schema errors
var (
	// ErrUnsupportedShape indicates a Go type with no positional encoding
	// (floats, maps, pointers, interfaces, platform-sized ints, untagged slices...).
	ErrUnsupportedShape = errors.New("wirecodec: unsupported value shape")

	// ErrInvalidTag indicates a malformed `wire` struct tag, or one that does not fit the field's kind.
	ErrInvalidTag = errors.New("wirecodec: invalid wire tag")

	// ErrInvalidTarget indicates Unmarshal was called with something other than a non-nil pointer.
	ErrInvalidTarget = errors.New("wirecodec: decode target must be a non-nil pointer")
)

// FieldError records where in a value an encode or decode failed.
// It unwraps to the underlying sentinel error.
type FieldError struct {
	Path   string // e.g. "Rreaddir.Data[1].Name"
	Offset int    // byte offset into the output (encode) or input (decode)
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v (field %s, offset %d)", e.Err, e.Path, e.Offset)
}

func (e *FieldError) Unwrap() error { return e.Err }

// atField attributes err to a path segment. The first call records the
// offset; enclosing calls only prepend their segment. Index segments are
// written as "[i]" and joined without a dot.
func atField(err error, segment string, offset int) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		fe.Path = joinPath(segment, fe.Path)
		return fe
	}
	if segment == "" {
		return err
	}
	return &FieldError{Path: segment, Offset: offset, Err: err}
}

func joinPath(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	case strings.HasPrefix(child, "["):
		return parent + child
	}
	return parent + "." + child
}
