package wirecodec

import (
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// codecCache avoids rebuilding schemas through reflection on every call.
// Only fully built and validated codecs are stored.
var codecCache = xsync.NewMap[reflect.Type, Codec]()

// CodecOf returns the default codec of Go type t: struct fields follow their
// `wire` tags, strings are null-terminated and integers use their own width.
func CodecOf(t reflect.Type) (Codec, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrUnsupportedShape)
	}
	if c, ok := codecCache.Load(t); ok {
		return c, nil
	}

	b := &builder{schemas: make(map[reflect.Type]*Schema)}
	c, err := b.codecFor(t, nil)
	if err != nil {
		return nil, err
	}
	settle(b.built)
	if err := checkSequences(c, map[*Schema]bool{}); err != nil {
		return nil, err
	}

	// Concurrent first calls may both build; the first stored schema wins so
	// every caller shares one *Schema per type.
	for _, s := range b.built {
		codecCache.LoadOrStore(s.Type, Struct{s})
	}
	actual, _ := codecCache.LoadOrStore(t, c)
	return actual, nil
}

// settle recomputes minimum sizes until they stop changing. A schema that
// refers back to one still being built saw a partial size the first time.
func settle(schemas []*Schema) {
	for changed := true; changed; {
		changed = false
		for _, s := range schemas {
			if n := s.minSize(); n != s.min {
				s.min = n
				changed = true
			}
		}
	}
}
