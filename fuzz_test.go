//go:build fuzz

package wirecodec

import (
	"bytes"
	"testing"
	"unicode/utf8"
)

// FuzzDecodeRreaddir feeds arbitrary input to the decoder. Whatever decodes
// must encode back to the same bytes.
func FuzzDecodeRreaddir(f *testing.F) {
	seed, err := Marshal(Rreaddir{Size: 1, Typ: 2, Tag: 3, Data: dirents})
	if err != nil {
		f.Fatal(err)
	}
	f.Add(seed)
	f.Add([]byte{})
	f.Add([]byte{0, 0, 0, 0, 0, 0, 0, 0xff})

	f.Fuzz(func(t *testing.T, data []byte) {
		msg, err := Decode[Rreaddir](data)
		if err != nil {
			return
		}
		out, err := Marshal(msg)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		if !bytes.Equal(out, data) {
			t.Errorf("round trip mismatch: got %x, want %x", out, data)
		}
	})
}

// FuzzBudgetSequence checks that budget framing never reads past its window.
func FuzzBudgetSequence(f *testing.F) {
	f.Add([]byte{4, 1, 0, 2, 0})
	f.Add([]byte{3, 1, 0, 2, 0})
	f.Add([]byte{0})

	f.Fuzz(func(t *testing.T, data []byte) {
		d := NewDecoder(data)
		var v PolySize
		if err := d.Decode(&v); err != nil {
			return
		}
		if want := 1 + 4*len(v.Points); d.Offset() != want {
			t.Fatalf("consumed %d bytes, want %d", d.Offset(), want)
		}
	})
}

// FuzzVersionString round-trips arbitrary strings through both string framings.
func FuzzVersionString(f *testing.F) {
	f.Add("muffin")
	f.Add("")
	f.Add("héllo")

	f.Fuzz(func(t *testing.T, s string) {
		v := Version16{Size: 47, Version: s}
		data, err := Marshal(v)
		if err != nil {
			if utf8.ValidString(s) && len(s) <= 0xffff {
				t.Fatalf("encode %q: %v", s, err)
			}
			return
		}
		got, err := Decode[Version16](data)
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got != v {
			t.Errorf("got %+v, want %+v", got, v)
		}
	})
}
