package wirecodec

import "fmt"

// MaxPadding is the most trailing bytes TrailingZeros will accept.
// Anything larger is treated as a framing error rather than padding.
const MaxPadding = 1024

// checkTrailing applies mode to the bytes left after a top-level decode.
func checkTrailing(rest []byte, mode Trailing) error {
	if len(rest) == 0 {
		return nil
	}
	switch mode {
	case TrailingLenient:
		return nil
	case TrailingZeros:
		if len(rest) > MaxPadding {
			return fmt.Errorf("%w: %d bytes exceeds maximum padding of %d bytes", ErrTrailingBytes, len(rest), MaxPadding)
		}
		for i, b := range rest {
			if b != 0 {
				return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingBytes, b, i)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %d bytes remain", ErrTrailingBytes, len(rest))
	}
}
