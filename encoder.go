package wirecodec

import (
	"fmt"
	"reflect"
)

// Encoder appends encoded values to an in-memory buffer.
// It tracks the first error; after an error every write is a no-op.
// An Encoder must not be shared between goroutines.
type Encoder struct {
	buf     []byte
	count   int   // total bytes written, including while measuring
	err     error // first error encountered
	measure bool  // count bytes without storing them
	opts    Options
}

// NewEncoder creates an Encoder with an empty buffer.
func NewEncoder(opts ...Option) *Encoder {
	return &Encoder{opts: newOptions(opts)}
}

func (e *Encoder) Bytes() []byte { return e.buf }
func (e *Encoder) Count() int    { return e.count }
func (e *Encoder) Err() error    { return e.err }

// Reset discards the buffer contents and any latched error, keeping capacity.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.count = 0
	e.err = nil
}

// setError records the first non-nil error.
func (e *Encoder) setError(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

// Encode appends v using the default codec of its type. Pointers are
// followed. On failure the buffer is rolled back to where this value began.
func (e *Encoder) Encode(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			e.setError(fmt.Errorf("%w: nil pointer", ErrUnsupportedShape))
			return e.err
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		e.setError(fmt.Errorf("%w: nil value", ErrUnsupportedShape))
		return e.err
	}
	c, err := CodecOf(rv.Type())
	if err != nil {
		e.setError(err)
		return err
	}
	return e.EncodeValue(c, rv)
}

// EncodeValue appends v under codec c. v must have the Go type c was built for.
func (e *Encoder) EncodeValue(c Codec, v reflect.Value) error {
	if e.err != nil {
		return e.err
	}
	if err := check(c, v.Type()); err != nil {
		e.setError(err)
		return err
	}

	mark, start := len(e.buf), e.count
	if err := e.encodeValue(c, v); err != nil {
		err = atField(err, rootName(c), start)
		e.buf, e.count = e.buf[:mark], start
		e.setError(err)
		e.opts.Logger.Debug("wirecodec: encode failed", "type", v.Type().String(), "err", err)
		return err
	}
	return nil
}

// --- Primitive Write Operations ---

func (e *Encoder) writeUint(w Width, v uint64) {
	if e.err != nil {
		return
	}
	e.count += w.Size()
	if !e.measure {
		e.buf = appendUint(e.opts.Order, w, e.buf, v)
	}
}

func (e *Encoder) writeString(s string) {
	if e.err != nil {
		return
	}
	e.count += len(s)
	if !e.measure {
		e.buf = append(e.buf, s...)
	}
}

// WriteBytes appends p unchanged.
func (e *Encoder) WriteBytes(p []byte) {
	if e.err != nil {
		return
	}
	e.count += len(p)
	if !e.measure {
		e.buf = append(e.buf, p...)
	}
}

func (e *Encoder) WriteUint8(v uint8)   { e.writeUint(W8, uint64(v)) }
func (e *Encoder) WriteUint16(v uint16) { e.writeUint(W16, uint64(v)) }
func (e *Encoder) WriteUint32(v uint32) { e.writeUint(W32, uint64(v)) }
func (e *Encoder) WriteUint64(v uint64) { e.writeUint(W64, v) }
func (e *Encoder) WriteInt8(v int8)     { e.writeUint(W8, uint64(v)) }
func (e *Encoder) WriteInt16(v int16)   { e.writeUint(W16, uint64(v)) }
func (e *Encoder) WriteInt32(v int32)   { e.writeUint(W32, uint64(v)) }
func (e *Encoder) WriteInt64(v int64)   { e.writeUint(W64, uint64(v)) }

func (e *Encoder) WriteBool(v bool) {
	if v {
		e.writeUint(W8, 1)
	} else {
		e.writeUint(W8, 0)
	}
}

// --- Traversal ---

func (e *Encoder) encodeValue(c Codec, v reflect.Value) error {
	switch c := c.(type) {
	case Uint:
		e.writeUint(c.Width, uintOf(v))
	case NulString:
		return e.encodeNulString(v.String())
	case PrefixString:
		return e.encodePrefixString(c.Width, v.String())
	case CountSeq:
		n := v.Len()
		if !fits(n, c.Width) {
			return fmt.Errorf("%w: %d elements in a %v count", ErrOverflow, n, c.Width)
		}
		e.writeUint(c.Width, uint64(n))
		return e.encodeElems(c.Elem, v)
	case BudgetSeq:
		return e.encodeBudget(c, v)
	case Array:
		return e.encodeElems(c.Elem, v)
	case Struct:
		for _, f := range c.Schema.Fields {
			start := e.count
			if err := e.encodeValue(f.Codec, v.Field(f.Index)); err != nil {
				return atField(err, f.Name, start)
			}
		}
	default:
		return fmt.Errorf("%w: unknown codec %T", ErrUnsupportedShape, c)
	}
	return e.err
}

func (e *Encoder) encodeElems(elem Codec, v reflect.Value) error {
	if isByteRun(elem, v) {
		e.WriteBytes(v.Bytes())
		return e.err
	}
	for i := 0; i < v.Len(); i++ {
		start := e.count
		if err := e.encodeValue(elem, v.Index(i)); err != nil {
			return atField(err, fmt.Sprintf("[%d]", i), start)
		}
	}
	return e.err
}

// encodeBudget writes the byte length of the elements ahead of them. The
// length comes from a measuring pass so nothing already written is patched.
// A measuring encoder counts the elements in the same pass.
func (e *Encoder) encodeBudget(c BudgetSeq, v reflect.Value) error {
	if e.measure {
		start := e.count
		e.writeUint(c.Width, 0)
		if err := e.encodeElems(c.Elem, v); err != nil {
			return err
		}
		if size := e.count - start - c.Width.Size(); !fits(size, c.Width) {
			return fmt.Errorf("%w: %d bytes in a %v byte budget", ErrOverflow, size, c.Width)
		}
		return nil
	}

	m := &Encoder{measure: true, opts: e.opts, count: e.count + c.Width.Size()}
	if err := m.encodeElems(c.Elem, v); err != nil {
		return err
	}
	size := m.count - e.count - c.Width.Size()
	if !fits(size, c.Width) {
		return fmt.Errorf("%w: %d bytes in a %v byte budget", ErrOverflow, size, c.Width)
	}
	e.writeUint(c.Width, uint64(size))
	return e.encodeElems(c.Elem, v)
}

// isByteRun reports whether v is a []byte or addressable [N]byte of Uint{W8}
// elements that can be written in one piece.
func isByteRun(elem Codec, v reflect.Value) bool {
	if u, ok := elem.(Uint); !ok || u.Width != W8 || v.Type().Elem().Kind() != reflect.Uint8 {
		return false
	}
	return v.Kind() == reflect.Slice || v.CanAddr()
}

func uintOf(v reflect.Value) uint64 {
	switch v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			return 1
		}
		return 0
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int())
	}
	return v.Uint()
}

func rootName(c Codec) string {
	if s, ok := c.(Struct); ok {
		return s.Schema.Name
	}
	return ""
}
