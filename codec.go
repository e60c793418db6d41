// Package wirecodec converts Go structs to and from positional binary
// messages: fields are written back to back in declaration order with no
// names, tags or type markers. Each field's framing is fixed by its Go type
// and an optional `wire` struct tag (see TagKey).
//
// Wire format (little-endian unless WithByteOrder says otherwise):
//
//	Go type           default framing       tag options
//	uint8..uint64     1/2/4/8 bytes         -
//	int8..int64       two's complement      -
//	bool              1 byte, 0 or 1        -
//	string            UTF-8 + 0x00          str8|str16|str32|str64 (length prefix)
//	[N]T              N elements            -
//	[]T               (tag required)        count8..count64 | size8..size64
//	struct            fields inlined        -
//
// A count prefix holds the number of elements; a size prefix holds the
// total encoded byte length of the elements. Decoding an input that does not
// describe exactly one value fails; see WithTrailing to relax that.
package wirecodec

import (
	"bytes"
	"fmt"
	"reflect"
)

// Marshal returns the encoding of v. On failure no bytes are returned.
func Marshal(v any, opts ...Option) ([]byte, error) {
	scratch := getScratch()
	defer putScratch(scratch)

	e := &Encoder{buf: *scratch, opts: newOptions(opts)}
	err := e.Encode(v)
	*scratch = e.buf[:0]
	if err != nil {
		return nil, err
	}
	return bytes.Clone(e.buf), nil
}

// MarshalAppend appends the encoding of v to dst. On failure dst is
// returned unchanged.
func MarshalAppend(dst []byte, v any, opts ...Option) ([]byte, error) {
	e := &Encoder{buf: dst, count: len(dst), opts: newOptions(opts)}
	if err := e.Encode(v); err != nil {
		return dst, err
	}
	return e.buf, nil
}

// Size returns the number of bytes Marshal would produce for v.
func Size(v any, opts ...Option) (int, error) {
	e := &Encoder{measure: true, opts: newOptions(opts)}
	if err := e.Encode(v); err != nil {
		return 0, err
	}
	return e.count, nil
}

// Unmarshal decodes one value from data into the non-nil pointer v. On
// failure *v is left unchanged.
func Unmarshal(data []byte, v any, opts ...Option) error {
	d := NewDecoder(data, opts...)
	if err := d.Decode(v); err != nil {
		return err
	}
	return d.Finish()
}

// Decode decodes one T from data.
func Decode[T any](data []byte, opts ...Option) (T, error) {
	var v T
	err := Unmarshal(data, &v, opts...)
	return v, err
}

// Marshal encodes v, a value or pointer of the schema's struct type.
func (s *Schema) Marshal(v any, opts ...Option) ([]byte, error) {
	rv, err := s.value(v)
	if err != nil {
		return nil, err
	}
	e := NewEncoder(opts...)
	if err := e.EncodeValue(Struct{s}, rv); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// MarshalAppend appends the encoding of v to dst.
func (s *Schema) MarshalAppend(dst []byte, v any, opts ...Option) ([]byte, error) {
	rv, err := s.value(v)
	if err != nil {
		return dst, err
	}
	e := &Encoder{buf: dst, count: len(dst), opts: newOptions(opts)}
	if err := e.EncodeValue(Struct{s}, rv); err != nil {
		return dst, err
	}
	return e.buf, nil
}

// Unmarshal decodes data into v, a non-nil pointer to the schema's struct type.
func (s *Schema) Unmarshal(data []byte, v any, opts ...Option) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: got %T", ErrInvalidTarget, v)
	}
	if rv.Elem().Type() != s.Type {
		return fmt.Errorf("%w: %v does not match schema %s", ErrInvalidTarget, rv.Elem().Type(), s.Name)
	}
	d := NewDecoder(data, opts...)
	if err := d.DecodeValue(Struct{s}, rv.Elem()); err != nil {
		return err
	}
	return d.Finish()
}

func (s *Schema) value(v any) (reflect.Value, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Type() != s.Type {
		return reflect.Value{}, fmt.Errorf("%w: %T does not match schema %s", ErrUnsupportedShape, v, s.Name)
	}
	return rv, nil
}
