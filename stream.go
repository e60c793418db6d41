package wirecodec

import (
	"io"
)

// WriteTo encodes v and writes it to w in a single Write call.
func WriteTo(w io.Writer, v any, opts ...Option) (int64, error) {
	scratch := getScratch()
	defer putScratch(scratch)

	e := &Encoder{buf: *scratch, opts: newOptions(opts)}
	err := e.Encode(v)
	buf := e.buf
	*scratch = e.buf[:0]
	if err != nil {
		return 0, err
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), err
	}
	if n < len(buf) {
		return int64(n), io.ErrShortWrite
	}
	return int64(n), nil
}

// ReadFrom reads r to EOF and decodes the whole input as one value into v.
// It does not decode incrementally: the message must fit in memory.
func ReadFrom(r io.Reader, v any, opts ...Option) (int64, error) {
	o := newOptions(opts)
	if o.ZeroCopy {
		// Decoded values keep pointing into the input, so it cannot be pooled.
		data, err := io.ReadAll(r)
		if err != nil {
			return int64(len(data)), err
		}
		return int64(len(data)), Unmarshal(data, v, opts...)
	}

	buf := getReadBuffer()
	defer putReadBuffer(buf)

	n, err := buf.ReadFrom(r)
	if err != nil {
		return n, err
	}
	return n, Unmarshal(buf.Bytes(), v, opts...)
}
