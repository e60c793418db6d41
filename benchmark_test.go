package wirecodec

import (
	"encoding/binary"
	"testing"
)

type BenchmarkPayload struct {
	ID      uint32
	Val1    uint64
	Val2    uint64
	Val3    uint64
	IsAlive bool
	Padding [3]byte
}

func BenchmarkMarshalFixed(b *testing.B) {
	p := BenchmarkPayload{ID: 1, Val1: 100}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Marshal(&p)
	}
}

func BenchmarkUnmarshalFixed(b *testing.B) {
	data, _ := Marshal(BenchmarkPayload{ID: 1, Val1: 100})
	var p BenchmarkPayload
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Unmarshal(data, &p)
	}
}

func BenchmarkMarshalAppendReaddir(b *testing.B) {
	msg := Rreaddir{Size: 1, Typ: 41, Tag: 1, Data: dirents}
	buf := make([]byte, 0, 128)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ = MarshalAppend(buf[:0], &msg)
	}
}

func BenchmarkUnmarshalReaddir(b *testing.B) {
	data, _ := Marshal(Rreaddir{Size: 1, Typ: 41, Tag: 1, Data: dirents})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var msg Rreaddir
		_ = Unmarshal(data, &msg)
	}
}

func BenchmarkUnmarshalReaddirZeroCopy(b *testing.B) {
	data, _ := Marshal(Rreaddir{Size: 1, Typ: 41, Tag: 1, Data: dirents})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var msg Rreaddir
		_ = Unmarshal(data, &msg, WithZeroCopy())
	}
}

func BenchmarkMarshalByteBudget(b *testing.B) {
	msg := RreaddirSized{Size: 1, Typ: 41, Tag: 1, Data: dirents}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Marshal(&msg)
	}
}

// Baseline comparison using binary.Append directly, to see the overhead of
// schema traversal on a fixed-size struct.
func BenchmarkStandardBinaryAppend(b *testing.B) {
	p := BenchmarkPayload{ID: 1, Val1: 100}
	buf := make([]byte, 0, binary.Size(p))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf, _ = binary.Append(buf[:0], binary.LittleEndian, &p)
	}
}
