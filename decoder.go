package wirecodec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"
	"unsafe"
)

// Decoder reads values from a borrowed byte slice through a Cursor.
// It tracks the first error; after an error every read is a no-op.
// A Decoder must not be shared between goroutines.
type Decoder struct {
	cur  Cursor
	err  error // first error encountered
	opts Options
}

// NewDecoder creates a Decoder over data. data is not copied.
func NewDecoder(data []byte, opts ...Option) *Decoder {
	return &Decoder{cur: Cursor{B: data}, opts: newOptions(opts)}
}

func (d *Decoder) Err() error { return d.err }

// Offset returns the number of input bytes consumed so far.
func (d *Decoder) Offset() int { return d.cur.Offset() }

// Remaining returns the number of input bytes not yet consumed.
func (d *Decoder) Remaining() int { return d.cur.Available() }

// setError records the first non-nil error.
func (d *Decoder) setError(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// Decode reads one value into the non-nil pointer v using the default codec
// of its element type. On failure *v is left untouched.
func (d *Decoder) Decode(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		d.setError(fmt.Errorf("%w: got %T", ErrInvalidTarget, v))
		return d.err
	}
	c, err := CodecOf(rv.Elem().Type())
	if err != nil {
		d.setError(err)
		return err
	}
	return d.DecodeValue(c, rv.Elem())
}

// DecodeValue reads one value under codec c into the settable v.
// On failure v is left untouched.
func (d *Decoder) DecodeValue(c Codec, v reflect.Value) error {
	if d.err != nil {
		return d.err
	}
	if !v.CanSet() {
		d.setError(fmt.Errorf("%w: value of type %v is not settable", ErrInvalidTarget, v.Type()))
		return d.err
	}
	if err := check(c, v.Type()); err != nil {
		d.setError(err)
		return err
	}

	start := d.cur.Offset()
	tmp := reflect.New(v.Type()).Elem()
	if err := d.decodeValue(c, tmp); err != nil {
		err = atField(err, rootName(c), start)
		d.setError(err)
		d.opts.Logger.Debug("wirecodec: decode failed", "type", v.Type().String(), "offset", d.cur.Offset(), "err", err)
		return err
	}
	v.Set(tmp)
	return nil
}

// Finish applies the trailing-bytes policy to whatever input is left.
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	rest := d.cur.Rest()
	if err := checkTrailing(rest, d.opts.Trailing); err != nil {
		d.setError(&FieldError{Path: "<trailing>", Offset: d.cur.Offset(), Err: err})
		return d.err
	}
	if len(rest) > 0 {
		d.opts.Logger.Debug("wirecodec: ignoring trailing bytes", "count", len(rest), "mode", d.opts.Trailing.String())
	}
	return nil
}

// --- Primitive Read Operations ---

func (d *Decoder) readUint(w Width) (uint64, error) {
	b, err := d.cur.Next(w.Size())
	if err != nil {
		return 0, err
	}
	return getUint(d.opts.Order, w, b), nil
}

// readLength reads a w-wide length and checks it against the remaining input.
func (d *Decoder) readLength(w Width) (int, error) {
	n, err := d.readUint(w)
	if err != nil {
		return 0, err
	}
	if n > uint64(d.cur.Available()) {
		return 0, fmt.Errorf("%w: length %d, %d bytes remain", ErrLengthExceedsBuffer, n, d.cur.Available())
	}
	return int(n), nil
}

func (d *Decoder) read(w Width) uint64 {
	if d.err != nil {
		return 0
	}
	v, err := d.readUint(w)
	d.setError(err)
	return v
}

func (d *Decoder) ReadUint8(dest *uint8) {
	if v := d.read(W8); d.err == nil {
		*dest = uint8(v)
	}
}

func (d *Decoder) ReadUint16(dest *uint16) {
	if v := d.read(W16); d.err == nil {
		*dest = uint16(v)
	}
}

func (d *Decoder) ReadUint32(dest *uint32) {
	if v := d.read(W32); d.err == nil {
		*dest = uint32(v)
	}
}

func (d *Decoder) ReadUint64(dest *uint64) {
	if v := d.read(W64); d.err == nil {
		*dest = v
	}
}

func (d *Decoder) ReadInt8(dest *int8) {
	if v := d.read(W8); d.err == nil {
		*dest = int8(v)
	}
}

func (d *Decoder) ReadInt16(dest *int16) {
	if v := d.read(W16); d.err == nil {
		*dest = int16(v)
	}
}

func (d *Decoder) ReadInt32(dest *int32) {
	if v := d.read(W32); d.err == nil {
		*dest = int32(v)
	}
}

func (d *Decoder) ReadInt64(dest *int64) {
	if v := d.read(W64); d.err == nil {
		*dest = int64(v)
	}
}

func (d *Decoder) ReadBool(dest *bool) {
	if v := d.read(W8); d.err == nil {
		*dest = v != 0
	}
}

// ReadBytes reads n raw bytes. With zero-copy enabled the result aliases the input.
func (d *Decoder) ReadBytes(n int) []byte {
	if d.err != nil {
		return nil
	}
	b, err := d.cur.Next(n)
	if err != nil {
		d.setError(err)
		return nil
	}
	return d.bytes(b)
}

// str converts a validated payload, borrowing it when zero-copy is on.
func (d *Decoder) str(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	if d.opts.ZeroCopy {
		return unsafe.String(unsafe.SliceData(b), len(b))
	}
	return string(b)
}

func (d *Decoder) bytes(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	if d.opts.ZeroCopy {
		return b
	}
	return bytes.Clone(b)
}

// --- Traversal ---

func (d *Decoder) decodeValue(c Codec, v reflect.Value) error {
	switch c := c.(type) {
	case Uint:
		x, err := d.readUint(c.Width)
		if err != nil {
			return err
		}
		setUint(v, x)
	case NulString:
		b, err := d.cur.nextNul()
		if err != nil {
			return err
		}
		if !utf8.Valid(b) {
			return fmt.Errorf("%w: %d byte null-terminated string", ErrInvalidText, len(b))
		}
		v.SetString(d.str(b))
	case PrefixString:
		n, err := d.readLength(c.Width)
		if err != nil {
			return err
		}
		b, _ := d.cur.Next(n)
		if !utf8.Valid(b) {
			return fmt.Errorf("%w: %d byte %v string", ErrInvalidText, n, c)
		}
		v.SetString(d.str(b))
	case CountSeq:
		return d.decodeCount(c, v)
	case BudgetSeq:
		return d.decodeBudget(c, v)
	case Array:
		if isByteRun(c.Elem, v) {
			b, err := d.cur.Next(c.Len)
			if err != nil {
				return err
			}
			copy(v.Bytes(), b)
			return nil
		}
		for i := 0; i < c.Len; i++ {
			start := d.cur.Offset()
			if err := d.decodeValue(c.Elem, v.Index(i)); err != nil {
				return atField(err, fmt.Sprintf("[%d]", i), start)
			}
		}
	case Struct:
		for _, f := range c.Schema.Fields {
			start := d.cur.Offset()
			if err := d.decodeValue(f.Codec, v.Field(f.Index)); err != nil {
				return atField(err, f.Name, start)
			}
		}
	default:
		return fmt.Errorf("%w: unknown codec %T", ErrUnsupportedShape, c)
	}
	return nil
}

// decodeCount reads exactly as many elements as the prefix announces,
// counting down from the announced total.
func (d *Decoder) decodeCount(c CountSeq, v reflect.Value) error {
	count, err := d.readUint(c.Width)
	if err != nil {
		return err
	}
	// Every element encodes to at least minSize bytes, so a count the input cannot
	// possibly hold is rejected before anything is allocated.
	least := minSize(c.Elem)
	if least == 0 {
		return fmt.Errorf("%w: sequence element %v can encode to zero bytes", ErrUnsupportedShape, c.Elem)
	}
	if count > uint64(d.cur.Available()/least) {
		return fmt.Errorf("%w: %d elements of at least %d bytes, %d bytes remain",
			ErrLengthExceedsBuffer, count, least, d.cur.Available())
	}
	n := int(count)
	if n == 0 {
		v.SetZero()
		return nil
	}
	if isByteRun(c.Elem, v) {
		b, _ := d.cur.Next(n)
		v.SetBytes(d.bytes(b))
		return nil
	}

	s := reflect.MakeSlice(v.Type(), n, n)
	for remaining, i := n, 0; remaining > 0; remaining, i = remaining-1, i+1 {
		start := d.cur.Offset()
		if err := d.decodeValue(c.Elem, s.Index(i)); err != nil {
			return atField(err, fmt.Sprintf("[%d]", i), start)
		}
	}
	v.Set(s)
	return nil
}

// decodeBudget reads elements until the announced byte budget is used up.
// The cursor window is narrowed to the budget, so an element running past it
// fails instead of reading into the next field.
func (d *Decoder) decodeBudget(c BudgetSeq, v reflect.Value) error {
	budget, err := d.readLength(c.Width)
	if err != nil {
		return err
	}
	if budget == 0 {
		v.SetZero()
		return nil
	}
	if isByteRun(c.Elem, v) {
		b, _ := d.cur.Next(budget)
		v.SetBytes(d.bytes(b))
		return nil
	}

	least := minSize(c.Elem)
	if least == 0 {
		return fmt.Errorf("%w: sequence element %v can encode to zero bytes", ErrUnsupportedShape, c.Elem)
	}

	full := d.cur.limit(budget)
	defer d.cur.restore(full)
	clipped := len(full) > len(d.cur.B)

	s := reflect.MakeSlice(v.Type(), 0, budget/least)
	elemType := v.Type().Elem()
	for remaining, i := budget, 0; remaining > 0; i++ {
		start := d.cur.Offset()
		elem := reflect.New(elemType).Elem()
		if err := d.decodeValue(c.Elem, elem); err != nil {
			return atField(overBudget(err, remaining, clipped), fmt.Sprintf("[%d]", i), start)
		}
		remaining -= d.cur.Offset() - start
		s = reflect.Append(s, elem)
	}
	v.Set(s)
	return nil
}

// overBudget reclassifies running out of input inside a budget window: the
// input is there, the budget just does not end on an element boundary.
// A terminator scan that stopped at the window edge counts the same way when
// the window is narrower than the input.
func overBudget(err error, remaining int, clipped bool) error {
	switch {
	case errors.Is(err, ErrUnexpectedEnd), errors.Is(err, ErrLengthExceedsBuffer):
	case clipped && errors.Is(err, ErrInvalidTerminator):
	default:
		return err
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		fe.Err = fmt.Errorf("%w: %d budget bytes left (%v)", ErrBudgetMismatch, remaining, fe.Err)
		return fe
	}
	return fmt.Errorf("%w: %d budget bytes left (%v)", ErrBudgetMismatch, remaining, err)
}

func setUint(v reflect.Value, x uint64) {
	switch v.Kind() {
	case reflect.Bool:
		v.SetBool(x != 0)
	case reflect.Int8:
		v.SetInt(int64(int8(x)))
	case reflect.Int16:
		v.SetInt(int64(int16(x)))
	case reflect.Int32:
		v.SetInt(int64(int32(x)))
	case reflect.Int64:
		v.SetInt(int64(x))
	default:
		v.SetUint(x)
	}
}
