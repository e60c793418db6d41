package wirecodec

import (
	"fmt"
	"reflect"
	"slices"
)

// Codec is the framing policy of one value. The set of implementations is
// closed: Uint, NulString, PrefixString, CountSeq, BudgetSeq, Array and Struct.
type Codec interface {
	fmt.Stringer
	codec()
}

// Uint is a fixed-width integer. It also encodes signed integers (two's
// complement) and bools (0 or 1) of the same width.
type Uint struct{ Width Width }

// NulString is UTF-8 text followed by a single 0x00 byte.
type NulString struct{}

// PrefixString is a Width-wide byte length followed by that many UTF-8 bytes.
type PrefixString struct{ Width Width }

// CountSeq is a Width-wide element count followed by the elements.
type CountSeq struct {
	Width Width
	Elem  Codec
}

// BudgetSeq is a Width-wide total byte length followed by the elements.
// Decoding stops when the byte budget is used up.
type BudgetSeq struct {
	Width Width
	Elem  Codec
}

// Array is a fixed number of elements with no framing.
type Array struct {
	Len  int
	Elem Codec
}

// Struct is a nested record: its fields concatenated in order, with no
// framing of its own.
type Struct struct{ Schema *Schema }

func (Uint) codec()         {}
func (NulString) codec()    {}
func (PrefixString) codec() {}
func (CountSeq) codec()     {}
func (BudgetSeq) codec()    {}
func (Array) codec()        {}
func (Struct) codec()       {}

func (c Uint) String() string         { return c.Width.String() }
func (NulString) String() string      { return "str" }
func (c PrefixString) String() string { return fmt.Sprintf("str%d", c.Width.Bits()) }
func (c CountSeq) String() string     { return fmt.Sprintf("count%d/%v", c.Width.Bits(), c.Elem) }
func (c BudgetSeq) String() string    { return fmt.Sprintf("size%d/%v", c.Width.Bits(), c.Elem) }
func (c Array) String() string        { return fmt.Sprintf("[%d]%v", c.Len, c.Elem) }
func (c Struct) String() string       { return c.Schema.Name }

// Schema is the ordered field list of a struct type. Field order is wire order.
// Schemas come from NewSchema or SchemaOf and must not be modified afterwards;
// a Schema written as a literal is rejected by every encode and decode.
type Schema struct {
	Name   string
	Type   reflect.Type
	Fields []Field

	min   int  // smallest possible encoded size
	built bool // validated by NewSchema or the tag builder
}

// Field binds one struct field to its framing policy.
type Field struct {
	Name  string
	Index int // position in Type, as passed to reflect.Value.Field
	Codec Codec
}

// NewSchema builds a schema for struct type t from an explicit field list,
// bypassing `wire` tags. Each field must be exported and its codec must fit
// the field's Go type.
func NewSchema(t reflect.Type, fields ...Field) (*Schema, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: schema type %v is not a struct", ErrUnsupportedShape, t)
	}
	s := &Schema{Name: typeName(t), Type: t, Fields: slices.Clone(fields)}
	for _, f := range s.Fields {
		if f.Index < 0 || f.Index >= t.NumField() {
			return nil, fmt.Errorf("%w: %s has no field at index %d", ErrUnsupportedShape, s.Name, f.Index)
		}
		sf := t.Field(f.Index)
		if !sf.IsExported() {
			return nil, fmt.Errorf("%w: %s.%s is not exported", ErrUnsupportedShape, s.Name, sf.Name)
		}
		if f.Codec == nil {
			return nil, fmt.Errorf("%w: %s.%s has no codec", ErrUnsupportedShape, s.Name, sf.Name)
		}
		if err := check(f.Codec, sf.Type); err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.Name, sf.Name, err)
		}
	}
	s.min = s.minSize()
	if err := checkSequences(Struct{s}, map[*Schema]bool{}); err != nil {
		return nil, err
	}
	s.built = true
	return s, nil
}

func (s *Schema) minSize() int {
	n := 0
	for _, f := range s.Fields {
		n += minSize(f.Codec)
	}
	return n
}

// minSize returns the fewest bytes c can encode to.
func minSize(c Codec) int {
	switch c := c.(type) {
	case Uint:
		return c.Width.Size()
	case NulString:
		return 1
	case PrefixString:
		return c.Width.Size()
	case CountSeq:
		return c.Width.Size()
	case BudgetSeq:
		return c.Width.Size()
	case Array:
		return c.Len * minSize(c.Elem)
	case Struct:
		return c.Schema.min
	}
	return 0
}

// check reports whether c can encode values of Go type t.
func check(c Codec, t reflect.Type) error {
	switch c := c.(type) {
	case Uint:
		if !c.Width.valid() {
			return fmt.Errorf("%w: bad width %v", ErrUnsupportedShape, c.Width)
		}
		if !isInteger(t.Kind()) || t.Size() != uintptr(c.Width) {
			return fmt.Errorf("%w: %v cannot hold %v", ErrUnsupportedShape, t, c)
		}
	case NulString:
		if t.Kind() != reflect.String {
			return fmt.Errorf("%w: %v cannot hold %v", ErrUnsupportedShape, t, c)
		}
	case PrefixString:
		if !c.Width.valid() || t.Kind() != reflect.String {
			return fmt.Errorf("%w: %v cannot hold %v", ErrUnsupportedShape, t, c)
		}
	case CountSeq:
		if !c.Width.valid() || t.Kind() != reflect.Slice || c.Elem == nil {
			return fmt.Errorf("%w: %v cannot hold %v", ErrUnsupportedShape, t, c)
		}
		return check(c.Elem, t.Elem())
	case BudgetSeq:
		if !c.Width.valid() || t.Kind() != reflect.Slice || c.Elem == nil {
			return fmt.Errorf("%w: %v cannot hold %v", ErrUnsupportedShape, t, c)
		}
		return check(c.Elem, t.Elem())
	case Array:
		if t.Kind() != reflect.Array || t.Len() != c.Len || c.Elem == nil {
			return fmt.Errorf("%w: %v cannot hold %v", ErrUnsupportedShape, t, c)
		}
		return check(c.Elem, t.Elem())
	case Struct:
		if c.Schema == nil || c.Schema.Type != t {
			return fmt.Errorf("%w: %v does not match schema", ErrUnsupportedShape, t)
		}
		if !c.Schema.built {
			return fmt.Errorf("%w: schema %s was not built by NewSchema or SchemaOf", ErrUnsupportedShape, c.Schema.Name)
		}
	default:
		return fmt.Errorf("%w: unknown codec %T", ErrUnsupportedShape, c)
	}
	return nil
}

// checkSequences rejects sequences of elements that can encode to zero
// bytes; decoding them would never make progress through the input.
func checkSequences(c Codec, seen map[*Schema]bool) error {
	switch c := c.(type) {
	case CountSeq:
		if minSize(c.Elem) == 0 {
			return fmt.Errorf("%w: sequence element %v can encode to zero bytes", ErrUnsupportedShape, c.Elem)
		}
		return checkSequences(c.Elem, seen)
	case BudgetSeq:
		if minSize(c.Elem) == 0 {
			return fmt.Errorf("%w: sequence element %v can encode to zero bytes", ErrUnsupportedShape, c.Elem)
		}
		return checkSequences(c.Elem, seen)
	case Array:
		return checkSequences(c.Elem, seen)
	case Struct:
		if seen[c.Schema] {
			return nil
		}
		seen[c.Schema] = true
		for _, f := range c.Schema.Fields {
			if err := checkSequences(f.Codec, seen); err != nil {
				return fmt.Errorf("%s.%s: %w", c.Schema.Name, f.Name, err)
			}
		}
	}
	return nil
}

func isInteger(k reflect.Kind) bool {
	switch k {
	case reflect.Bool,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
