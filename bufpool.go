package wirecodec

import (
	"bytes"
	"sync"
)

// scratchPool reuses encode buffers. Marshal copies the result out, so a
// pooled buffer never escapes to the caller.
var scratchPool = sync.Pool{
	New: func() any {
		// 4KB covers most protocol messages without regrowing.
		b := make([]byte, 0, 4096)
		return &b
	},
}

// readPool holds the buffers ReadFrom drains its reader into.
var readPool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// maxPooled keeps one oversized message from pinning a large buffer in the pool.
const maxPooled = 64 * 1024

func getScratch() *[]byte {
	b := scratchPool.Get().(*[]byte)
	*b = (*b)[:0]
	return b
}

func putScratch(b *[]byte) {
	if cap(*b) > maxPooled {
		return
	}
	scratchPool.Put(b)
}

func getReadBuffer() *bytes.Buffer {
	buf := readPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putReadBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooled {
		return
	}
	readPool.Put(buf)
}
