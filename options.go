package wirecodec

// Trailing selects what a top-level decode does with input left over after
// the value has been fully decoded.
type Trailing uint8

const (
	// TrailingStrict rejects any leftover byte with ErrTrailingBytes.
	TrailingStrict Trailing = iota
	// TrailingLenient ignores leftover bytes.
	TrailingLenient
	// TrailingZeros accepts up to MaxPadding leftover bytes as long as they are all zero.
	TrailingZeros
)

func (t Trailing) String() string {
	switch t {
	case TrailingStrict:
		return "strict"
	case TrailingLenient:
		return "lenient"
	case TrailingZeros:
		return "zeros"
	}
	return "unknown"
}

// Options configures one encode or decode call.
type Options struct {
	// Order is the byte order of every multi-byte integer, prefixes included.
	Order ByteOrder
	// Trailing is the leftover-input policy of top-level decodes.
	Trailing Trailing
	// ZeroCopy makes decoded strings and byte slices alias the input buffer.
	// The input must then outlive, and never be modified under, the decoded value.
	ZeroCopy bool
	// Logger receives debug diagnostics. Defaults to a no-op logger.
	Logger Logger
}

// Option mutates Options.
type Option func(*Options)

func newOptions(opts []Option) Options {
	o := Options{Order: LE, Trailing: TrailingStrict, Logger: noopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Order == nil {
		o.Order = LE
	}
	if o.Logger == nil {
		o.Logger = noopLogger{}
	}
	return o
}

// WithByteOrder sets the byte order. The default is little-endian.
func WithByteOrder(order ByteOrder) Option {
	return func(o *Options) { o.Order = order }
}

// WithTrailing sets the trailing-bytes policy. The default is TrailingStrict.
func WithTrailing(t Trailing) Option {
	return func(o *Options) { o.Trailing = t }
}

// Lenient is shorthand for WithTrailing(TrailingLenient).
func Lenient() Option { return WithTrailing(TrailingLenient) }

// WithZeroCopy makes decoded strings and []byte fields borrow from the input.
func WithZeroCopy() Option {
	return func(o *Options) { o.ZeroCopy = true }
}

// WithLogger routes debug diagnostics to l.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}
