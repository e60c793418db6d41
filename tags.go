package wirecodec

import (
	"fmt"
	"reflect"
	"strings"
)

// TagKey is the struct tag read by SchemaOf.
//
// A tag is a list of layers separated by '/', applied from the outer type to
// the inner one. An empty layer keeps the type's default.
//
//	str               null-terminated string (the default for string)
//	str8 .. str64     string with an 8/16/32/64-bit byte-length prefix
//	count8 .. count64 slice with an element-count prefix
//	size8 .. size64   slice with a total-byte-length prefix
//	-                 field is not encoded
//
// For example `wire:"count16/str8"` on a []string writes a 16-bit element
// count and gives every element an 8-bit length prefix.
const TagKey = "wire"

var widths = map[string]Width{"8": W8, "16": W16, "32": W32, "64": W64}

// parseWidth matches layer against prefix followed by a width in bits.
func parseWidth(layer, prefix string) (Width, bool) {
	bits, ok := strings.CutPrefix(layer, prefix)
	if !ok {
		return 0, false
	}
	w, ok := widths[bits]
	return w, ok
}

// builder derives schemas from Go types. Schemas are registered before
// their fields are filled so recursive types resolve to themselves.
type builder struct {
	schemas map[reflect.Type]*Schema
	built   []*Schema
}

func (b *builder) codecFor(t reflect.Type, layers []string) (Codec, error) {
	var layer string
	var rest []string
	if len(layers) > 0 {
		layer, rest = layers[0], layers[1:]
	}

	switch k := t.Kind(); {
	case isInteger(k):
		if layer != "" || len(rest) > 0 {
			return nil, fmt.Errorf("%w: %q on %v, integers take no framing", ErrInvalidTag, strings.Join(layers, "/"), t)
		}
		return Uint{Width(t.Size())}, nil

	case k == reflect.String:
		if len(rest) > 0 {
			return nil, fmt.Errorf("%w: %q on %v, strings have no inner layer", ErrInvalidTag, strings.Join(layers, "/"), t)
		}
		if layer == "" || layer == "str" {
			return NulString{}, nil
		}
		if w, ok := parseWidth(layer, "str"); ok {
			return PrefixString{w}, nil
		}
		return nil, fmt.Errorf("%w: %q on %v", ErrInvalidTag, layer, t)

	case k == reflect.Slice:
		if layer == "" {
			return nil, fmt.Errorf("%w: slice %v needs a count or size tag", ErrUnsupportedShape, t)
		}
		elem, err := b.codecFor(t.Elem(), rest)
		if err != nil {
			return nil, err
		}
		if w, ok := parseWidth(layer, "count"); ok {
			return CountSeq{Width: w, Elem: elem}, nil
		}
		if w, ok := parseWidth(layer, "size"); ok {
			return BudgetSeq{Width: w, Elem: elem}, nil
		}
		return nil, fmt.Errorf("%w: %q on %v", ErrInvalidTag, layer, t)

	case k == reflect.Array:
		if layer != "" {
			return nil, fmt.Errorf("%w: %q on %v, arrays take no framing", ErrInvalidTag, layer, t)
		}
		elem, err := b.codecFor(t.Elem(), rest)
		if err != nil {
			return nil, err
		}
		return Array{Len: t.Len(), Elem: elem}, nil

	case k == reflect.Struct:
		if layer != "" || len(rest) > 0 {
			return nil, fmt.Errorf("%w: %q on %v, structs take no framing", ErrInvalidTag, strings.Join(layers, "/"), t)
		}
		s, err := b.schema(t)
		if err != nil {
			return nil, err
		}
		return Struct{s}, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrUnsupportedShape, t)
}

func (b *builder) schema(t reflect.Type) (*Schema, error) {
	if s, ok := b.schemas[t]; ok {
		return s, nil
	}
	if c, ok := codecCache.Load(t); ok {
		return c.(Struct).Schema, nil
	}

	s := &Schema{Name: typeName(t), Type: t}
	b.schemas[t] = s
	b.built = append(b.built, s)

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get(TagKey)
		if tag == "-" {
			continue
		}
		var layers []string
		if tag != "" {
			layers = strings.Split(tag, "/")
		}
		c, err := b.codecFor(sf.Type, layers)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", s.Name, sf.Name, err)
		}
		s.Fields = append(s.Fields, Field{Name: sf.Name, Index: i, Codec: c})
	}
	s.min = s.minSize()
	s.built = true
	return s, nil
}

// SchemaOf returns the schema of struct type t, derived from its exported
// fields in declaration order and their `wire` tags.
func SchemaOf(t reflect.Type) (*Schema, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v is not a struct", ErrUnsupportedShape, t)
	}
	c, err := CodecOf(t)
	if err != nil {
		return nil, err
	}
	return c.(Struct).Schema, nil
}
